package tags

import (
	"errors"
	"net/http"
	"strconv"

	"roteiro-backend/database"
	"roteiro-backend/internal/domain/auditoria"
	"roteiro-backend/internal/domain/tags"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateTagRequest struct {
	Nome string `json:"nome" binding:"required"`
	Cor  string `json:"cor"`
}

type UpdateTagRequest struct {
	Nome *string `json:"nome"`
	Cor  *string `json:"cor"`
}

// POST /tags
func CreateTag(c *gin.Context) {
	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Nome da tag é obrigatório."})
		return
	}
	userID := c.GetUint("user_id")

	var tag tags.Tag
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var existing tags.Tag
		e := tx.First(&existing, "nome = ?", req.Nome).Error
		if e == nil {
			return errConflict
		}
		if !errors.Is(e, gorm.ErrRecordNotFound) {
			return e
		}

		cor := req.Cor
		if cor == "" {
			var all []tags.Tag
			if err := tx.Where("cor IS NOT NULL").Find(&all).Error; err != nil {
				return err
			}
			cor = tags.PickColor(tags.UsedColors(all))
		}

		tag = tags.Tag{Nome: req.Nome, Cor: cor, CriadoPorID: &userID, AtualizadoPorID: &userID}
		return tx.Create(&tag).Error
	})

	if err != nil {
		if errors.Is(err, errConflict) {
			c.JSON(http.StatusConflict, gin.H{"message": "Tag com este nome já existe."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno do servidor ao criar tag.", "error": err.Error()})
		return
	}

	auditoria.Record(database.DB, "tags", tag.ID, auditoria.AcaoCriacao, userID, gin.H{"nome": tag.Nome, "cor": tag.Cor})
	c.JSON(http.StatusCreated, gin.H{"message": "Tag criada com sucesso!", "tag": tag})
}

// GET /tags
func GetAllTags(c *gin.Context) {
	var all []tags.Tag
	if err := database.DB.Order("nome ASC").Find(&all).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno do servidor.", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, all)
}

// GET /tags/:id
func GetTagByID(c *gin.Context) {
	id := c.Param("id")
	var tag tags.Tag
	if err := database.DB.First(&tag, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Tag não encontrada."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno do servidor.", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, tag)
}

// PUT /tags/:id
func UpdateTag(c *gin.Context) {
	id := c.Param("id")
	userID := c.GetUint("user_id")

	var req UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Corpo da requisição inválido.", "error": err.Error()})
		return
	}
	if req.Nome == nil && req.Cor == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Nenhum dado fornecido para atualização."})
		return
	}

	var updated tags.Tag
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var current tags.Tag
		if e := tx.First(&current, "id = ?", id).Error; e != nil {
			return e
		}

		if req.Nome != nil && *req.Nome != current.Nome {
			var other tags.Tag
			e := tx.First(&other, "nome = ? AND id != ?", *req.Nome, id).Error
			if e == nil {
				return errConflict
			}
			if !errors.Is(e, gorm.ErrRecordNotFound) {
				return e
			}
		}

		updates := map[string]interface{}{"atualizado_por_id": userID}
		if req.Nome != nil {
			updates["nome"] = *req.Nome
		}
		if req.Cor != nil {
			updates["cor"] = *req.Cor
		}
		if e := tx.Model(&tags.Tag{}).Where("id = ?", id).Updates(updates).Error; e != nil {
			return e
		}
		return tx.First(&updated, "id = ?", id).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Tag não encontrada."})
			return
		}
		if errors.Is(err, errConflict) {
			c.JSON(http.StatusConflict, gin.H{"message": "Já existe outra tag com este nome."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno do servidor ao atualizar tag.", "error": err.Error()})
		return
	}

	auditoria.Record(database.DB, "tags", updated.ID, auditoria.AcaoAtualizacao, userID, req)
	c.JSON(http.StatusOK, gin.H{"message": "Tag atualizada com sucesso!", "tag": updated})
}

// DELETE /tags/:id — refused while any roteiro or cena still references the
// tag; associations are never cascaded from this side.
func DeleteTag(c *gin.Context) {
	id := c.Param("id")
	userID := c.GetUint("user_id")

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var refs int64
		if e := tx.Table("roteiro_tags").Where("tag_id = ?", id).Count(&refs).Error; e != nil {
			return e
		}
		if refs > 0 {
			return errTagInUse
		}
		if e := tx.Table("cena_tags").Where("tag_id = ?", id).Count(&refs).Error; e != nil {
			return e
		}
		if refs > 0 {
			return errTagInUse
		}

		res := tx.Delete(&tags.Tag{}, "id = ?", id)
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
			c.JSON(http.StatusNotFound, gin.H{"message": "Tag não encontrada para exclusão."})
			return
		}
		if errors.Is(err, errTagInUse) {
			c.JSON(http.StatusConflict, gin.H{"message": "Esta tag está em uso e não pode ser excluída."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno do servidor ao excluir tag.", "error": err.Error()})
		return
	}

	tagID, _ := strconv.ParseUint(id, 10, 32)
	auditoria.Record(database.DB, "tags", uint(tagID), auditoria.AcaoDelecao, userID, gin.H{"tagId": id})
	c.JSON(http.StatusOK, gin.H{"message": "Tag excluída com sucesso!"})
}

var (
	errConflict = errors.New("conflict")
	errTagInUse = errors.New("tag in use")
)
