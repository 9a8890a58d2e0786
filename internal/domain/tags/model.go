package tags

import (
	"time"
)

type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Nome string `gorm:"not null;uniqueIndex:idx_tags_nome" json:"nome"`
	Cor  string `gorm:"not null" json:"cor"`

	CriadoPorID     *uint `json:"-"`
	AtualizadoPorID *uint `json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
