package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput   = errors.New("entrada inválida")
	ErrInvalidDate    = errors.New("fecha inválida")
	ErrInvalidNumber  = errors.New("número inválido")
	ErrMissingColumn  = errors.New("columna requerida ausente")
	ErrUnauthorized   = errors.New("no autorizado")
	ErrForbidden      = errors.New("acceso denegado")
	ErrInvalidCode    = errors.New("código de verificación inválido")
	ErrExportDisabled = errors.New("exportación deshabilitada en modo demo")
)
