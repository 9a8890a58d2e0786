package auditoria

import (
	"encoding/json"
	"log"
	"time"

	"gorm.io/gorm"
)

// Actions recorded by the mutating handlers.
const (
	AcaoCriacao                  = "CRIACAO"
	AcaoAtualizacao              = "ATUALIZACAO"
	AcaoDelecao                  = "DELECAO"
	AcaoReordenacaoCenas         = "REORDENACAO_CENAS"
	AcaoSincronizacaoCenas       = "SINCRONIZACAO_CENAS"
	AcaoAtualizacaoPerfilProprio = "ATUALIZACAO_PERFIL_PROPRIO"
	AcaoCriacaoUsuario           = "CRIACAO_USUARIO"
	AcaoAtualizacaoUsuarioAdmin  = "ATUALIZACAO_USUARIO_ADMIN"
)

// LogAuditoria is one append-only audit entry. Rows are never updated or
// deleted through the API.
type LogAuditoria struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	TabelaAfetada     string    `gorm:"not null;index" json:"tabela_afetada"`
	RegistroAfetadoID *uint     `json:"registro_afetado_id"`
	AcaoRealizada     string    `gorm:"not null" json:"acao_realizada"`
	UsuarioID         *uint     `gorm:"index" json:"usuario_id"`
	DetalhesAlteracao *string   `json:"detalhes_alteracao"`
	CreatedAt         time.Time `json:"criado_em"`
}

func (LogAuditoria) TableName() string { return "logs_auditoria" }

// Record appends one audit entry, best effort: a failure is logged and
// swallowed so auditing never fails the request that triggered it.
func Record(db *gorm.DB, tabela string, registroID uint, acao string, usuarioID uint, detalhes any) {
	entry := LogAuditoria{TabelaAfetada: tabela, AcaoRealizada: acao}
	if registroID != 0 {
		entry.RegistroAfetadoID = &registroID
	}
	if usuarioID != 0 {
		entry.UsuarioID = &usuarioID
	}
	if detalhes != nil {
		if b, err := json.Marshal(detalhes); err == nil {
			s := string(b)
			entry.DetalhesAlteracao = &s
		}
	}
	if err := db.Create(&entry).Error; err != nil {
		log.Printf("falha ao gravar log de auditoria: %v", err)
	}
}
