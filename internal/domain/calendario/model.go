package calendario

import (
	"time"

	"roteiro-backend/internal/domain/users"
)

type Evento struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	NomeGravacao  string `gorm:"not null" json:"nome_gravacao"`
	DataEvento    string `gorm:"not null;index" json:"data_evento"`
	HorarioInicio string `json:"horario_inicio"`
	HorarioFim    string `json:"horario_fim"`
	Tema          string `json:"tema"`
	Cor           string `json:"cor"`

	UsuarioID uint `gorm:"not null" json:"usuario_id"`

	Apresentadores []users.User `gorm:"many2many:evento_apresentadores" json:"apresentadores,omitempty"`

	CriadoPorID     *uint `json:"-"`
	AtualizadoPorID *uint `json:"-"`

	CreatedAt time.Time `json:"criado_em"`
	UpdatedAt time.Time `json:"atualizado_em"`
}
