package checklists

import (
	"errors"
	"net/http"
	"strconv"

	"roteiro-backend/database"
	"roteiro-backend/internal/domain/auditoria"
	domain "roteiro-backend/internal/domain/checklists"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/nullable"
	"gorm.io/gorm"
)

func mustUserID(c *gin.Context) (uint, bool) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return 0, false
	}
	return userID, true
}

type ChecklistItemInput struct {
	EquipamentoID    uint `json:"equipamento_id" binding:"required"`
	QuantidadeALevar int  `json:"quantidade_a_levar"`
}

type CreateChecklistRequest struct {
	NomeGravacaoAssociada string               `json:"nome_gravacao_associada" binding:"required"`
	DataChecklist         string               `json:"data_checklist"`
	EventoID              *uint                `json:"evento_id"`
	Itens                 []ChecklistItemInput `json:"itens"`
}

// UpdateChecklistRequest is a partial update; a present itens list (even
// empty) replaces the whole item set. An explicit null evento_id unlinks
// the checklist from its event.
type UpdateChecklistRequest struct {
	NomeGravacaoAssociada *string                 `json:"nome_gravacao_associada"`
	DataChecklist         *string                 `json:"data_checklist"`
	EventoID              nullable.Nullable[uint] `json:"evento_id"`
	Itens                 *[]ChecklistItemInput   `json:"itens"`
}

func insertItens(tx *gorm.DB, checklistID uint, inputs []ChecklistItemInput) error {
	for _, in := range inputs {
		quantidade := in.QuantidadeALevar
		if quantidade <= 0 {
			quantidade = 1
		}
		item := domain.ChecklistItem{
			ChecklistID:      checklistID,
			EquipamentoID:    in.EquipamentoID,
			QuantidadeALevar: quantidade,
		}
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
	}
	return nil
}

// ------------------------------
// POST /checklists
// ------------------------------
func CreateChecklist(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req CreateChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "O nome da gravação associada é obrigatório.", "error": err.Error()})
		return
	}

	checklist := domain.Checklist{
		NomeGravacaoAssociada: req.NomeGravacaoAssociada,
		DataChecklist:         req.DataChecklist,
		EventoID:              req.EventoID,
		UsuarioID:             userID,
		CriadoPorID:           &userID,
		AtualizadoPorID:       &userID,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if e := tx.Create(&checklist).Error; e != nil {
			return e
		}
		return insertItens(tx, checklist.ID, req.Itens)
	})

	if err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Evento ou equipamento referenciado não existe.", "error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno do servidor.", "error": err.Error()})
		return
	}

	auditoria.Record(database.DB, "checklists_gravacao", checklist.ID, auditoria.AcaoCriacao, userID, gin.H{
		"nome_gravacao_associada": checklist.NomeGravacaoAssociada,
		"data_checklist":          checklist.DataChecklist,
		"itemCount":               len(req.Itens),
	})
	c.JSON(http.StatusCreated, gin.H{"message": "Checklist criado com sucesso!", "checklistId": checklist.ID})
}

// ------------------------------
// GET /checklists
// ------------------------------
func GetAllChecklists(c *gin.Context) {
	var lists []domain.Checklist
	err := database.DB.
		Preload("Itens").
		Preload("Itens.Equipamento").
		Order("data_checklist DESC, nome_gravacao_associada ASC").
		Find(&lists).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno do servidor.", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, lists)
}

// ------------------------------
// GET /checklists/:id
// ------------------------------
func GetChecklistByID(c *gin.Context) {
	var checklist domain.Checklist
	err := database.DB.
		Preload("Itens").
		Preload("Itens.Equipamento").
		First(&checklist, "id = ?", c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Checklist não encontrado."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno do servidor.", "error": err.Error()})
		return
	}
	if checklist.Itens == nil {
		checklist.Itens = []domain.ChecklistItem{}
	}
	c.JSON(http.StatusOK, checklist)
}

// ------------------------------
// PUT /checklists/:id
// ------------------------------
func UpdateChecklist(c *gin.Context) {
	id := c.Param("id")
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req UpdateChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Corpo da requisição inválido.", "error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.NomeGravacaoAssociada != nil {
		updates["nome_gravacao_associada"] = *req.NomeGravacaoAssociada
	}
	if req.DataChecklist != nil {
		updates["data_checklist"] = *req.DataChecklist
	}
	if req.EventoID.IsSpecified() {
		if req.EventoID.IsNull() {
			updates["evento_id"] = nil
		} else {
			updates["evento_id"] = req.EventoID.MustGet()
		}
	}

	if len(updates) == 0 && req.Itens == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Nenhum dado fornecido para atualização."})
		return
	}
	updates["atualizado_por_id"] = userID

	var updated domain.Checklist
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var current domain.Checklist
		if e := tx.First(&current, "id = ?", id).Error; e != nil {
			return e
		}
		if e := tx.Model(&domain.Checklist{}).Where("id = ?", current.ID).Updates(updates).Error; e != nil {
			return e
		}
		if req.Itens != nil {
			if e := tx.Delete(&domain.ChecklistItem{}, "checklist_id = ?", current.ID).Error; e != nil {
				return e
			}
			if e := insertItens(tx, current.ID, *req.Itens); e != nil {
				return e
			}
		}
		return tx.Preload("Itens").Preload("Itens.Equipamento").First(&updated, "id = ?", current.ID).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Checklist não encontrado."})
			return
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Evento ou equipamento referenciado não existe.", "error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno do servidor.", "error": err.Error()})
		return
	}

	if updated.Itens == nil {
		updated.Itens = []domain.ChecklistItem{}
	}
	auditoria.Record(database.DB, "checklists_gravacao", updated.ID, auditoria.AcaoAtualizacao, userID, updates)
	c.JSON(http.StatusOK, gin.H{"message": "Checklist atualizado com sucesso!", "checklist": updated})
}

// ------------------------------
// DELETE /checklists/:id
// ------------------------------
func DeleteChecklist(c *gin.Context) {
	id := c.Param("id")
	userID := c.GetUint("user_id")

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if e := tx.Delete(&domain.ChecklistItem{}, "checklist_id = ?", id).Error; e != nil {
			return e
		}
		res := tx.Delete(&domain.Checklist{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Checklist não encontrado."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno do servidor.", "error": err.Error()})
		return
	}

	checklistID, _ := strconv.ParseUint(id, 10, 32)
	auditoria.Record(database.DB, "checklists_gravacao", uint(checklistID), auditoria.AcaoDelecao, userID, gin.H{"checklistId": id})
	c.JSON(http.StatusOK, gin.H{"message": "Checklist excluído com sucesso!"})
}
