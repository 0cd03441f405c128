// totp_enroll muestra la URL otpauth:// del TOTP_SECRET configurado y guarda su QR en PNG
// para darlo de alta en una app autenticadora.
//
// Uso: go run ./cmd/totp_enroll [archivo.png]
// Por defecto escribe totp_qr.png en el directorio actual.
package main

import (
	"fmt"
	"image/png"
	"os"

	"github.com/jhoicas/pyme-dashboard/internal/application/auth"
	"github.com/jhoicas/pyme-dashboard/pkg/config"
)

func main() {
	outPath := "totp_qr.png"
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	gate, err := auth.NewGate(auth.GateConfig{
		Password:     cfg.Gate.Password,
		PasswordHash: cfg.Gate.PasswordHash,
		TOTPSecret:   cfg.Gate.TOTPSecret,
		TOTPIssuer:   cfg.Gate.TOTPIssuer,
		JWT:          auth.JWTConfig{Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Control de acceso: %v\n", err)
		os.Exit(1)
	}

	key, err := gate.TOTPKey(cfg.App.BusinessName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Clave TOTP: %v\n", err)
		os.Exit(1)
	}
	img, err := key.Image(256, 256)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar QR: %v\n", err)
		os.Exit(1)
	}

	f, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir PNG: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(key.URL())
	fmt.Printf("QR guardado en %s\n", outPath)
}
