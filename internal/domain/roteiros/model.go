package roteiros

import (
	"time"

	"roteiro-backend/internal/domain/calendario"
	"roteiro-backend/internal/domain/tags"
)

// Row kinds of a roteiro. Pauta rows carry the content columns; divisoria
// rows render as a full-width section banner.
const (
	LinhaPauta     = "pauta"
	LinhaDivisoria = "divisoria"
)

type Roteiro struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Nome        string `gorm:"not null" json:"nome"`
	TipoRoteiro string `json:"tipo_roteiro"`
	Ano         int    `gorm:"not null;index:idx_roteiros_ano_mes,priority:1" json:"ano"`
	Mes         int    `gorm:"not null;index:idx_roteiros_ano_mes,priority:2" json:"mes"`

	ConteudoPrincipal    string `json:"conteudo_principal"`
	DataCriacaoDocumento string `json:"data_criacao_documento"`

	UsuarioID uint  `gorm:"not null;index" json:"usuario_id"`
	EventoID  *uint `gorm:"index" json:"evento_id"`

	Evento *calendario.Evento `gorm:"foreignKey:EventoID" json:"-"`

	Tags  []tags.Tag `gorm:"many2many:roteiro_tags" json:"tags,omitempty"`
	Cenas []Cena     `gorm:"foreignKey:RoteiroID;constraint:OnDelete:CASCADE" json:"-"`

	CriadoPorID     *uint `json:"-"`
	AtualizadoPorID *uint `json:"-"`

	CreatedAt time.Time `json:"criado_em"`
	UpdatedAt time.Time `json:"atualizado_em"`
}

type Cena struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	RoteiroID uint `gorm:"not null;index:idx_cenas_roteiro_ordem,priority:1" json:"roteiro_id"`

	// Display and print sequence inside the roteiro. The value is
	// client-supplied; contiguity is only guaranteed after a sync.
	Ordem int `gorm:"not null;default:0;index:idx_cenas_roteiro_ordem,priority:2" json:"ordem"`

	TipoLinha string `gorm:"not null;default:'pauta'" json:"tipo_linha"`

	Video        string `json:"video"`
	TecTransicao string `json:"tec_transicao"`
	Audio        string `json:"audio"`
	Localizacao  string `json:"localizacao"`

	// Divisoria rows only.
	NomeDivisao string `json:"nome_divisao"`

	EstiloLinha           JSONMap `json:"estilo_linha_json"`
	ColunasPersonalizadas JSONMap `json:"colunas_personalizadas_json"`

	Tags []tags.Tag `gorm:"many2many:cena_tags" json:"tags,omitempty"`

	CriadoPorID     *uint `json:"-"`
	AtualizadoPorID *uint `json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
