package model

import "time"

// Tweet representa uma postagem para a camada de serviço
type Tweet struct {
	ID             int64     `json:"id"`
	Content        string    `json:"content"`
	AuthorID       string    `json:"authorId"`
	AuthorUsername string    `json:"username"`
	CreatedAt      time.Time `json:"createdAt"`
}

// FeedItem é a projeção de um tweet exibida no feed
type FeedItem struct {
	ID       int64  `json:"id"`
	Content  string `json:"content"`
	Username string `json:"username"`
}

// FeedPage é uma página do feed com os totais calculados sobre toda a
// coleção de tweets. A chave feedItens preserva a grafia do contrato
// original da API.
type FeedPage struct {
	FeedItens     []FeedItem `json:"feedItens"`
	Page          int        `json:"page"`
	PageSize      int        `json:"pageSize"`
	TotalPages    int        `json:"totalPages"`
	TotalElements int64      `json:"totalElements"`
}

// TweetEntity é a representação de banco de dados de um tweet.
// O dono é imutável após a criação e o timestamp de criação é a única
// chave de ordenação do feed.
type TweetEntity struct {
	ID        int64      `gorm:"primaryKey;autoIncrement;column:tweet_id"`
	Content   string     `gorm:"not null;type:text"`
	UserID    string     `gorm:"not null;type:uuid;index"`
	User      UserEntity `gorm:"foreignKey:UserID;references:ID"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index"`
}

// TableName define o nome da tabela
func (TweetEntity) TableName() string {
	return "tweets"
}

// ToModel converte a entidade para o modelo de serviço
func (e *TweetEntity) ToModel() *Tweet {
	return &Tweet{
		ID:             e.ID,
		Content:        e.Content,
		AuthorID:       e.UserID,
		AuthorUsername: e.User.Username,
		CreatedAt:      e.CreatedAt,
	}
}
