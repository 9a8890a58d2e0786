package users

import (
	"time"
)

type User struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	NomeUsuario  string  `gorm:"not null;uniqueIndex:idx_usuarios_nome_usuario" json:"nome_usuario"`
	SenhaHash    string  `gorm:"not null" json:"-"`
	NomeCompleto string  `json:"nome_completo"`
	Email        string  `json:"email"`

	// Marks users that can be scheduled as presenters on calendar events.
	PerfilApresentador bool    `gorm:"not null;default:false" json:"perfil_apresentador"`
	LogoEmpresaPath    *string `json:"logo_empresa_path,omitempty"`

	CriadoPorID     *uint `json:"-"`
	AtualizadoPorID *uint `json:"-"`

	CreatedAt time.Time `json:"criado_em"`
	UpdatedAt time.Time `json:"atualizado_em"`
}

func (User) TableName() string { return "usuarios" }
