package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/pyme-dashboard/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestJWT_GenerateAndParse_ConStage(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "dashboard", "authorized", "pyme-test", 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	subject, stage, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, "dashboard", subject)
	assert.Equal(t, "authorized", stage)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "dashboard", "authorized", "pyme-test", -1)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "dashboard", "password", "pyme-test", 60)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err)
}

func TestJWT_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", "dashboard", "authorized", "pyme-test", 60)
	assert.Error(t, err)

	_, _, err = pkgjwt.Parse("", "cualquier.cosa.aqui")
	assert.Error(t, err)
}
