package model

import "time"

// Nomes das roles do sistema. O conjunto é fixo e semeado no bootstrap.
const (
	RoleAdmin = "ADMIN"
	RoleBasic = "BASIC"
)

// IDs estáveis das roles semeadas
const (
	RoleAdminID int64 = 1
	RoleBasicID int64 = 2
)

// User representa um usuário do sistema para a camada de API
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Roles        []string  `json:"roles"`
	CreatedAt    time.Time `json:"createdAt"`
}

// HasRole verifica se o usuário possui a role informada
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r == name {
			return true
		}
	}
	return false
}

// RoleEntity é a representação de banco de dados de uma role
type RoleEntity struct {
	ID   int64  `gorm:"primaryKey;column:role_id"`
	Name string `gorm:"uniqueIndex;not null;size:20"`
}

// TableName define o nome da tabela
func (RoleEntity) TableName() string {
	return "roles"
}

// UserEntity é a representação de banco de dados de um usuário.
// As roles formam uma relação muitos-para-muitos via tabela user_roles.
type UserEntity struct {
	ID        string       `gorm:"primaryKey;type:uuid;column:user_id"`
	Username  string       `gorm:"uniqueIndex;not null;size:50"`
	Password  string       `gorm:"not null"`
	Roles     []RoleEntity `gorm:"many2many:user_roles;joinForeignKey:user_id;joinReferences:role_id"`
	CreatedAt time.Time    `gorm:"autoCreateTime"`
	UpdatedAt time.Time    `gorm:"autoUpdateTime"`
}

// TableName define o nome da tabela
func (UserEntity) TableName() string {
	return "users"
}

// ToModel converte a entidade para o modelo de API
func (e *UserEntity) ToModel() *User {
	roles := make([]string, 0, len(e.Roles))
	for _, r := range e.Roles {
		roles = append(roles, r.Name)
	}

	return &User{
		ID:           e.ID,
		Username:     e.Username,
		PasswordHash: e.Password,
		Roles:        roles,
		CreatedAt:    e.CreatedAt,
	}
}
