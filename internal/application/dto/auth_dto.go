package dto

// LoginRequest body de POST /api/auth/login.
type LoginRequest struct {
	Password string `json:"password"`
}

// TOTPRequest body de POST /api/auth/totp.
type TOTPRequest struct {
	Code string `json:"code"`
}

// SessionResponse token de sesión y etapa alcanzada.
// Con MFARequired=true el token solo sirve para POST /api/auth/totp.
type SessionResponse struct {
	Token       string `json:"token"`
	Stage       string `json:"stage"`
	MFARequired bool   `json:"mfa_required"`
	ExpiresIn   int    `json:"expires_in"` // segundos
}

// GateStatusDTO respuesta de GET /api/auth/status.
type GateStatusDTO struct {
	Open         bool   `json:"open"`          // sin contraseña configurada
	TOTPRequired bool   `json:"totp_required"` // segundo factor activo
	Stage        string `json:"stage"`         // etapa del token enviado (vacío si no hay)
}
