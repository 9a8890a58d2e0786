package roteiros

import (
	domain "roteiro-backend/internal/domain/roteiros"
	"roteiro-backend/internal/domain/tags"

	"github.com/oapi-codegen/nullable"
)

// ---------- requests

type CreateRoteiroRequest struct {
	Nome                 string `json:"nome"`
	TipoRoteiro          string `json:"tipo_roteiro"`
	Ano                  int    `json:"ano"`
	Mes                  int    `json:"mes"`
	ConteudoPrincipal    string `json:"conteudo_principal"`
	DataCriacaoDocumento string `json:"data_criacao_documento"`
	EventoID             *uint  `json:"evento_id"`
	Tags                 []uint `json:"tags"`
}

type UpdateRoteiroRequest struct {
	Nome                 *string `json:"nome"`
	TipoRoteiro          *string `json:"tipo_roteiro"`
	Ano                  *int    `json:"ano"`
	Mes                  *int    `json:"mes"`
	ConteudoPrincipal    *string `json:"conteudo_principal"`
	DataCriacaoDocumento *string `json:"data_criacao_documento"`
	// Three states: field missing leaves the link untouched, explicit null
	// clears it, a value relinks.
	EventoID nullable.Nullable[uint] `json:"evento_id"`
	Tags     *[]uint                 `json:"tags"`
}

func (r UpdateRoteiroRequest) empty() bool {
	return r.Nome == nil && r.TipoRoteiro == nil && r.Ano == nil && r.Mes == nil &&
		r.ConteudoPrincipal == nil && r.DataCriacaoDocumento == nil &&
		!r.EventoID.IsSpecified() && r.Tags == nil
}

type CreateCenaRequest struct {
	Ordem                 *int           `json:"ordem"`
	TipoLinha             string         `json:"tipo_linha"`
	Video                 string         `json:"video"`
	TecTransicao          string         `json:"tec_transicao"`
	Audio                 string         `json:"audio"`
	Localizacao           string         `json:"localizacao"`
	NomeDivisao           string         `json:"nome_divisao"`
	EstiloLinha           domain.JSONMap `json:"estilo_linha_json"`
	ColunasPersonalizadas domain.JSONMap `json:"colunas_personalizadas_json"`
	TagIDs                []uint         `json:"tagIds"`
}

// UpdateCenaRequest is a partial update. The two JSON columns are nullable:
// an explicit null wipes the stored styling, an absent field keeps it.
type UpdateCenaRequest struct {
	Ordem                 *int                              `json:"ordem"`
	TipoLinha             *string                           `json:"tipo_linha"`
	Video                 *string                           `json:"video"`
	TecTransicao          *string                           `json:"tec_transicao"`
	Audio                 *string                           `json:"audio"`
	Localizacao           *string                           `json:"localizacao"`
	NomeDivisao           *string                           `json:"nome_divisao"`
	EstiloLinha           nullable.Nullable[domain.JSONMap] `json:"estilo_linha_json"`
	ColunasPersonalizadas nullable.Nullable[domain.JSONMap] `json:"colunas_personalizadas_json"`
	TagIDs                *[]uint                           `json:"tagIds"`
}

// SyncCenaInput is one row of the full desired list submitted by the edit
// page. Rows with a nil ID are inserted; the rest are updated in place.
type SyncCenaInput struct {
	ID                    *uint          `json:"id"`
	TipoLinha             string         `json:"tipo_linha"`
	Video                 string         `json:"video"`
	TecTransicao          string         `json:"tec_transicao"`
	Audio                 string         `json:"audio"`
	Localizacao           string         `json:"localizacao"`
	NomeDivisao           string         `json:"nome_divisao"`
	EstiloLinha           domain.JSONMap `json:"estilo_linha_json"`
	ColunasPersonalizadas domain.JSONMap `json:"colunas_personalizadas_json"`
	TagIDs                []uint         `json:"tagIds"`
}

type SyncCenasRequest struct {
	Cenas []SyncCenaInput `json:"cenas"`
}

type ReorderCenasRequest struct {
	CenasOrder []struct {
		ID    uint `json:"id"`
		Ordem int  `json:"ordem"`
	} `json:"cenasOrder"`
}

// ---------- responses

type RoteiroListItem struct {
	ID                   uint       `json:"id"`
	Nome                 string     `json:"nome"`
	TipoRoteiro          string     `json:"tipo_roteiro"`
	Ano                  int        `json:"ano"`
	Mes                  int        `json:"mes"`
	DataCriacaoDocumento string     `json:"data_criacao_documento"`
	EventoID             *uint      `json:"evento_id"`
	CriadorNome          string     `json:"criador_nome"`
	Tags                 []tags.Tag `json:"tags"`
}
