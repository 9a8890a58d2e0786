package equipamentos

import (
	"errors"
	"net/http"
	"strconv"

	"roteiro-backend/database"
	"roteiro-backend/internal/domain/auditoria"
	domain "roteiro-backend/internal/domain/equipamentos"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var (
	errSerialConflict = errors.New("numero de serie em uso")
	errEquipInUse     = errors.New("equipamento em uso")
)

type CreateEquipamentoRequest struct {
	Nome                 string  `json:"nome" binding:"required"`
	NumeroSerie          *string `json:"numero_serie"`
	Categoria            string  `json:"categoria"`
	TipoEquipamento      string  `json:"tipo_equipamento"`
	DataUltimaManutencao string  `json:"data_ultima_manutencao"`
}

type UpdateEquipamentoRequest struct {
	Nome                 *string `json:"nome"`
	NumeroSerie          *string `json:"numero_serie"`
	Categoria            *string `json:"categoria"`
	TipoEquipamento      *string `json:"tipo_equipamento"`
	DataUltimaManutencao *string `json:"data_ultima_manutencao"`
}

// ------------------------------
// POST /equipamentos
// ------------------------------
func CreateEquipamento(c *gin.Context) {
	var req CreateEquipamentoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "O nome do equipamento é obrigatório.", "error": err.Error()})
		return
	}

	equipamento := domain.Equipamento{
		Nome:                 req.Nome,
		NumeroSerie:          req.NumeroSerie,
		Categoria:            req.Categoria,
		TipoEquipamento:      req.TipoEquipamento,
		DataUltimaManutencao: req.DataUltimaManutencao,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if req.NumeroSerie != nil && *req.NumeroSerie != "" {
			var count int64
			if e := tx.Model(&domain.Equipamento{}).Where("numero_serie = ?", *req.NumeroSerie).Count(&count).Error; e != nil {
				return e
			}
			if count > 0 {
				return errSerialConflict
			}
		}
		return tx.Create(&equipamento).Error
	})

	if err != nil {
		if errors.Is(err, errSerialConflict) || errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"message": "Já existe um equipamento com este número de série."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno do servidor.", "error": err.Error()})
		return
	}

	auditoria.Record(database.DB, "equipamentos", equipamento.ID, auditoria.AcaoCriacao, c.GetUint("user_id"), gin.H{
		"nome": equipamento.Nome, "numero_serie": equipamento.NumeroSerie,
	})
	c.JSON(http.StatusCreated, gin.H{"message": "Equipamento cadastrado com sucesso!", "equipamentoId": equipamento.ID})
}

// ------------------------------
// GET /equipamentos?categoria=...
// ------------------------------
func GetAllEquipamentos(c *gin.Context) {
	query := database.DB.Model(&domain.Equipamento{})
	if categoria := c.Query("categoria"); categoria != "" {
		query = query.Where("categoria = ?", categoria)
	}

	var equipamentos []domain.Equipamento
	if err := query.Order("nome ASC").Find(&equipamentos).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno do servidor.", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, equipamentos)
}

// ------------------------------
// GET /equipamentos/:id
// ------------------------------
func GetEquipamentoByID(c *gin.Context) {
	var equipamento domain.Equipamento
	if err := database.DB.First(&equipamento, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Equipamento não encontrado."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno do servidor.", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, equipamento)
}

// ------------------------------
// PUT /equipamentos/:id
// ------------------------------
func UpdateEquipamento(c *gin.Context) {
	id := c.Param("id")

	var req UpdateEquipamentoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Corpo da requisição inválido.", "error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Nome != nil {
		updates["nome"] = *req.Nome
	}
	if req.NumeroSerie != nil {
		updates["numero_serie"] = *req.NumeroSerie
	}
	if req.Categoria != nil {
		updates["categoria"] = *req.Categoria
	}
	if req.TipoEquipamento != nil {
		updates["tipo_equipamento"] = *req.TipoEquipamento
	}
	if req.DataUltimaManutencao != nil {
		updates["data_ultima_manutencao"] = *req.DataUltimaManutencao
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Nenhum dado fornecido para atualização."})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if req.NumeroSerie != nil && *req.NumeroSerie != "" {
			var count int64
			if e := tx.Model(&domain.Equipamento{}).
				Where("numero_serie = ? AND id <> ?", *req.NumeroSerie, id).
				Count(&count).Error; e != nil {
				return e
			}
			if count > 0 {
				return errSerialConflict
			}
		}
		res := tx.Model(&domain.Equipamento{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, errSerialConflict) || errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"message": "Já existe um equipamento com este número de série."})
			return
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Equipamento não encontrado."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno do servidor.", "error": err.Error()})
		return
	}

	var updated domain.Equipamento
	if err := database.DB.First(&updated, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno do servidor.", "error": err.Error()})
		return
	}
	auditoria.Record(database.DB, "equipamentos", updated.ID, auditoria.AcaoAtualizacao, c.GetUint("user_id"), updates)
	c.JSON(http.StatusOK, gin.H{"message": "Equipamento atualizado com sucesso!", "equipamento": updated})
}

// ------------------------------
// DELETE /equipamentos/:id — refused while any checklist still lists the
// equipment.
// ------------------------------
func DeleteEquipamento(c *gin.Context) {
	id := c.Param("id")

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var refs int64
		if e := tx.Table("checklist_itens").Where("equipamento_id = ?", id).Count(&refs).Error; e != nil {
			return e
		}
		if refs > 0 {
			return errEquipInUse
		}
		res := tx.Delete(&domain.Equipamento{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, errEquipInUse) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Este equipamento está em uso em um ou mais checklists e não pode ser excluído."})
			return
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Equipamento não encontrado."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno do servidor.", "error": err.Error()})
		return
	}

	equipamentoID, _ := strconv.ParseUint(id, 10, 32)
	auditoria.Record(database.DB, "equipamentos", uint(equipamentoID), auditoria.AcaoDelecao, c.GetUint("user_id"), gin.H{"equipamentoId": id})
	c.JSON(http.StatusOK, gin.H{"message": "Equipamento excluído com sucesso!"})
}
