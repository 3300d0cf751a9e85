package security

import (
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher encapsula o hash adaptativo de senhas (bcrypt)
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher cria um hasher com o custo padrão do bcrypt
func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{cost: bcrypt.DefaultCost}
}

// Hash gera o hash da senha em texto plano
func (h *PasswordHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Matches verifica se a senha em texto plano corresponde ao hash armazenado
func (h *PasswordHasher) Matches(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
