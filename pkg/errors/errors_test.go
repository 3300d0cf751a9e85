package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"credenciais inválidas", ErrInvalidCredentials, http.StatusUnauthorized},
		{"autenticação necessária", ErrAuthRequired, http.StatusUnauthorized},
		{"username duplicado", ErrDuplicateUsername, http.StatusUnprocessableEntity},
		{"recurso não encontrado", ErrNotFound, http.StatusNotFound},
		{"acesso negado", ErrForbidden, http.StatusForbidden},
		{"falha de armazenamento", ErrStorage, http.StatusInternalServerError},
		{"erro desconhecido", errors.New("qualquer coisa"), http.StatusInternalServerError},
		{"erro encadeado preserva o mapeamento", fmt.Errorf("contexto: %w", ErrNotFound), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusFor(tt.err))
		})
	}
}

func TestAPIError(t *testing.T) {
	inner := errors.New("falha de conexão")
	apiErr := InternalServer("", inner)

	assert.Equal(t, http.StatusInternalServerError, apiErr.Code)
	assert.Contains(t, apiErr.Error(), "Erro interno do servidor")
	assert.Contains(t, apiErr.Error(), "falha de conexão")
	assert.ErrorIs(t, apiErr, inner)
}

func TestAPIError_WithDetails(t *testing.T) {
	apiErr := UnprocessableEntity("dados inválidos", nil).
		WithDetails(map[string]string{"campo": "username"})

	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Code)
	assert.Equal(t, map[string]string{"campo": "username"}, apiErr.Details)
}
