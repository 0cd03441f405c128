// Package auth implementa el control de acceso al dashboard: contraseña única del
// negocio y, opcionalmente, un segundo factor TOTP.
package auth

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/pyme-dashboard/internal/application/dto"
	"github.com/jhoicas/pyme-dashboard/internal/domain"
	"github.com/jhoicas/pyme-dashboard/pkg/jwt"
)

// Etapas del control de acceso. anonymous → password → authorized.
const (
	StageAnonymous  = ""
	StagePassword   = "password"   // contraseña correcta, falta el código TOTP
	StageAuthorized = "authorized" // acceso al dashboard
)

// subject único: el dashboard no tiene usuarios, solo un secreto compartido.
const subject = "dashboard"

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// GateConfig secretos del control de acceso.
// Sin Password ni PasswordHash el gate queda abierto.
type GateConfig struct {
	Password     string
	PasswordHash string // bcrypt; tiene prioridad sobre Password
	TOTPSecret   string // base32; vacío = sin segundo factor
	TOTPIssuer   string
	JWT          JWTConfig
}

// Gate máquina de estados del acceso. La etapa alcanzada viaja en el claim "stage"
// del token, el servidor no guarda sesiones.
type Gate struct {
	hash       []byte
	totpSecret string
	issuer     string
	jwtCfg     JWTConfig
	now        func() time.Time
}

// NewGate construye el gate. Una contraseña en texto plano se hashea con bcrypt al arrancar.
func NewGate(cfg GateConfig) (*Gate, error) {
	g := &Gate{
		totpSecret: strings.ToUpper(strings.ReplaceAll(cfg.TOTPSecret, " ", "")),
		issuer:     cfg.TOTPIssuer,
		jwtCfg:     cfg.JWT,
		now:        time.Now,
	}
	switch {
	case cfg.PasswordHash != "":
		g.hash = []byte(cfg.PasswordHash)
	case cfg.Password != "":
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("auth: hashear contraseña: %w", err)
		}
		g.hash = hash
	}
	if !g.Open() && cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("auth: JWT_SECRET es obligatorio cuando hay contraseña configurada")
	}
	return g, nil
}

// Open indica que no hay contraseña configurada: todo el mundo está autorizado.
func (g *Gate) Open() bool { return len(g.hash) == 0 }

// RequiresTOTP indica si el segundo factor está activo.
func (g *Gate) RequiresTOTP() bool { return !g.Open() && g.totpSecret != "" }

// Login verifica la contraseña. Con TOTP activo devuelve un token de etapa "password";
// sin TOTP, uno de etapa "authorized".
func (g *Gate) Login(in dto.LoginRequest) (*dto.SessionResponse, error) {
	if g.Open() {
		return g.session(StageAuthorized)
	}
	if err := bcrypt.CompareHashAndPassword(g.hash, []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if g.RequiresTOTP() {
		return g.session(StagePassword)
	}
	return g.session(StageAuthorized)
}

// VerifyTOTP valida el código de 6 dígitos sobre un token de etapa "password"
// y emite el token "authorized". Se admite un paso de desfase (±30 s).
func (g *Gate) VerifyTOTP(token string, in dto.TOTPRequest) (*dto.SessionResponse, error) {
	if !g.RequiresTOTP() {
		return nil, domain.ErrForbidden
	}
	stage, err := g.Stage(token)
	if err != nil || stage != StagePassword {
		return nil, domain.ErrUnauthorized
	}
	ok, err := totp.ValidateCustom(strings.TrimSpace(in.Code), g.totpSecret, g.now().UTC(), totp.ValidateOpts{
		Period:    30,
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil || !ok {
		return nil, domain.ErrInvalidCode
	}
	return g.session(StageAuthorized)
}

// Stage devuelve la etapa del token. Un token vacío es anónimo.
func (g *Gate) Stage(token string) (string, error) {
	if token == "" {
		return StageAnonymous, nil
	}
	sub, stage, err := jwt.Parse(g.jwtCfg.Secret, token)
	if err != nil {
		return StageAnonymous, err
	}
	if sub != subject {
		return StageAnonymous, domain.ErrUnauthorized
	}
	return stage, nil
}

// Authorized es la única señal que consume el dashboard.
func (g *Gate) Authorized(token string) bool {
	if g.Open() {
		return true
	}
	stage, err := g.Stage(token)
	return err == nil && stage == StageAuthorized
}

// Status describe el gate y la etapa del token recibido.
func (g *Gate) Status(token string) dto.GateStatusDTO {
	out := dto.GateStatusDTO{Open: g.Open(), TOTPRequired: g.RequiresTOTP()}
	if g.Open() {
		out.Stage = StageAuthorized
		return out
	}
	if stage, err := g.Stage(token); err == nil {
		out.Stage = stage
	}
	return out
}

// TOTPKey devuelve la clave otpauth:// para dar de alta el secreto en una app autenticadora.
func (g *Gate) TOTPKey(account string) (*otp.Key, error) {
	if g.totpSecret == "" {
		return nil, fmt.Errorf("auth: TOTP_SECRET no configurado")
	}
	if account == "" {
		account = subject
	}
	issuer := g.issuer
	if issuer == "" {
		issuer = g.jwtCfg.Issuer
	}
	v := url.Values{}
	v.Set("secret", g.totpSecret)
	v.Set("issuer", issuer)
	v.Set("algorithm", "SHA1")
	v.Set("digits", "6")
	v.Set("period", "30")
	u := url.URL{
		Scheme:   "otpauth",
		Host:     "totp",
		Path:     "/" + issuer + ":" + account,
		RawQuery: v.Encode(),
	}
	return otp.NewKeyFromURL(u.String())
}

func (g *Gate) session(stage string) (*dto.SessionResponse, error) {
	if g.Open() {
		return &dto.SessionResponse{Stage: StageAuthorized}, nil
	}
	token, err := jwt.Generate(g.jwtCfg.Secret, subject, stage, g.jwtCfg.Issuer, g.expMinutes(stage))
	if err != nil {
		return nil, err
	}
	return &dto.SessionResponse{
		Token:       token,
		Stage:       stage,
		MFARequired: stage == StagePassword,
		ExpiresIn:   g.expMinutes(stage) * 60,
	}, nil
}

// expMinutes: el token intermedio vive lo justo para introducir el código.
func (g *Gate) expMinutes(stage string) int {
	if stage == StagePassword {
		return 5
	}
	if g.jwtCfg.ExpMinutes <= 0 {
		return 480
	}
	return g.jwtCfg.ExpMinutes
}
