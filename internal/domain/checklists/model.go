package checklists

import (
	"time"

	"roteiro-backend/internal/domain/calendario"
	"roteiro-backend/internal/domain/equipamentos"
)

type Checklist struct {
	ID                    uint   `gorm:"primaryKey" json:"id"`
	NomeGravacaoAssociada string `gorm:"not null" json:"nome_gravacao_associada"`
	DataChecklist         string `json:"data_checklist"`

	EventoID *uint              `gorm:"index" json:"evento_id"`
	Evento   *calendario.Evento `gorm:"foreignKey:EventoID" json:"-"`

	UsuarioID uint `gorm:"not null" json:"usuario_id"`

	Itens []ChecklistItem `gorm:"foreignKey:ChecklistID;constraint:OnDelete:CASCADE" json:"itens,omitempty"`

	CriadoPorID     *uint `json:"-"`
	AtualizadoPorID *uint `json:"-"`

	CreatedAt time.Time `json:"criado_em"`
	UpdatedAt time.Time `json:"atualizado_em"`
}

func (Checklist) TableName() string { return "checklists_gravacao" }

type ChecklistItem struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	ChecklistID uint `gorm:"not null;index" json:"checklist_id"`

	EquipamentoID uint                      `gorm:"not null" json:"equipamento_id"`
	Equipamento   *equipamentos.Equipamento `gorm:"foreignKey:EquipamentoID;constraint:OnDelete:RESTRICT" json:"equipamento,omitempty"`

	QuantidadeALevar int `gorm:"not null;default:1" json:"quantidade_a_levar"`
}

func (ChecklistItem) TableName() string { return "checklist_itens" }
