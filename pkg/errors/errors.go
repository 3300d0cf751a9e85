package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Tipos de erro comuns do microblog
var (
	ErrInvalidCredentials = errors.New("usuário ou senha inválidos")
	ErrDuplicateUsername  = errors.New("nome de usuário já existe")
	ErrNotFound           = errors.New("recurso não encontrado")
	ErrForbidden          = errors.New("acesso negado")
	ErrAuthRequired       = errors.New("autenticação necessária")
	ErrStorage            = errors.New("falha no armazenamento")
)

// APIError representa um erro da API com informações adicionais
type APIError struct {
	Code        int         `json:"-"`
	Message     string      `json:"message"`
	Details     interface{} `json:"details,omitempty"`
	OriginalErr error       `json:"-"`
}

// Error implementa a interface error
func (e *APIError) Error() string {
	if e.OriginalErr != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.OriginalErr)
	}
	return e.Message
}

// Unwrap permite usar errors.Is e errors.As
func (e *APIError) Unwrap() error {
	return e.OriginalErr
}

// New cria um novo APIError
func New(code int, message string, err error) *APIError {
	return &APIError{
		Code:        code,
		Message:     message,
		OriginalErr: err,
	}
}

// WithDetails adiciona detalhes ao erro
func (e *APIError) WithDetails(details interface{}) *APIError {
	e.Details = details
	return e
}

// Unauthorized cria um erro 401
func Unauthorized(message string, err error) *APIError {
	if message == "" {
		message = "Autenticação necessária"
	}
	return New(http.StatusUnauthorized, message, err)
}

// Forbidden cria um erro 403
func Forbidden(message string, err error) *APIError {
	if message == "" {
		message = "Acesso negado"
	}
	return New(http.StatusForbidden, message, err)
}

// NotFound cria um erro 404
func NotFound(resource string, err error) *APIError {
	message := fmt.Sprintf("%s não encontrado", resource)
	return New(http.StatusNotFound, message, err)
}

// UnprocessableEntity cria um erro 422
func UnprocessableEntity(message string, err error) *APIError {
	return New(http.StatusUnprocessableEntity, message, err)
}

// InternalServer cria um erro 500
func InternalServer(message string, err error) *APIError {
	if message == "" {
		message = "Erro interno do servidor"
	}
	return New(http.StatusInternalServerError, message, err)
}

// StatusFor mapeia um erro de domínio para o código HTTP correspondente.
// Credenciais inválidas e falta de autenticação retornam 401, username
// duplicado 422, recurso ausente 404, falta de permissão 403 e qualquer
// outra falha 500.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrAuthRequired):
		return http.StatusUnauthorized
	case errors.Is(err, ErrDuplicateUsername):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
