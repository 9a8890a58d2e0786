package equipamentos

import (
	"time"
)

type Equipamento struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Nome        string  `gorm:"not null" json:"nome"`
	NumeroSerie *string `gorm:"uniqueIndex:idx_equipamentos_numero_serie" json:"numero_serie"`
	Categoria   string  `json:"categoria"`

	TipoEquipamento      string `json:"tipo_equipamento"`
	DataUltimaManutencao string `json:"data_ultima_manutencao"`

	CriadoPorID     *uint `json:"-"`
	AtualizadoPorID *uint `json:"-"`

	CreatedAt time.Time `json:"criado_em"`
	UpdatedAt time.Time `json:"atualizado_em"`
}
