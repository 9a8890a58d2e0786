package roteiros

import (
	"errors"
	"net/http"
	"strconv"

	"roteiro-backend/database"
	"roteiro-backend/internal/domain/auditoria"
	domain "roteiro-backend/internal/domain/roteiros"
	"roteiro-backend/internal/domain/tags"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ------------------------------
// POST /roteiros/:id/cenas
// ------------------------------
func AddCena(c *gin.Context) {
	roteiroID := c.Param("id")
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req CreateCenaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Corpo da requisição inválido.", "error": err.Error()})
		return
	}

	var cena domain.Cena
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var roteiro domain.Roteiro
		if e := tx.Select("id").First(&roteiro, "id = ?", roteiroID).Error; e != nil {
			return e
		}

		ordem := 0
		if req.Ordem != nil {
			ordem = *req.Ordem
		}
		tipoLinha := req.TipoLinha
		if tipoLinha == "" {
			tipoLinha = domain.LinhaPauta
		}

		cena = domain.Cena{
			RoteiroID:             roteiro.ID,
			Ordem:                 ordem,
			TipoLinha:             tipoLinha,
			Video:                 req.Video,
			TecTransicao:          req.TecTransicao,
			Audio:                 req.Audio,
			Localizacao:           req.Localizacao,
			NomeDivisao:           req.NomeDivisao,
			EstiloLinha:           req.EstiloLinha,
			ColunasPersonalizadas: req.ColunasPersonalizadas,
			CriadoPorID:           &userID,
			AtualizadoPorID:       &userID,
		}
		if e := tx.Create(&cena).Error; e != nil {
			return e
		}
		return replaceCenaTags(tx, cena.ID, req.TagIDs)
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Roteiro pai não encontrado."})
			return
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Tag referenciada não existe.", "error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno do servidor.", "error": err.Error()})
		return
	}

	auditoria.Record(database.DB, "cenas", cena.ID, auditoria.AcaoCriacao, userID, gin.H{
		"roteiroId": roteiroID, "video": cena.Video, "tipo_linha": cena.TipoLinha,
	})
	c.JSON(http.StatusCreated, gin.H{"message": "Linha adicionada com sucesso!", "cenaId": cena.ID})
}

// ------------------------------
// GET /roteiros/:id/cenas
// ------------------------------
func GetCenas(c *gin.Context) {
	roteiroID := c.Param("id")

	var roteiro domain.Roteiro
	if err := database.DB.Select("id").First(&roteiro, "id = ?", roteiroID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Roteiro não encontrado."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno do servidor.", "error": err.Error()})
		return
	}

	cenas, err := loadCenas(database.DB, roteiro.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno do servidor.", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cenas)
}

// ------------------------------
// GET /roteiros/:id/cenas/:cenaId
// ------------------------------
func GetCenaByID(c *gin.Context) {
	roteiroID := c.Param("id")
	cenaID := c.Param("cenaId")

	var cena domain.Cena
	err := database.DB.Preload("Tags").First(&cena, "id = ? AND roteiro_id = ?", cenaID, roteiroID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Cena não encontrada neste roteiro."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno do servidor.", "error": err.Error()})
		return
	}
	if cena.Tags == nil {
		cena.Tags = []tags.Tag{}
	}
	c.JSON(http.StatusOK, cena)
}

// ------------------------------
// PUT /roteiros/:id/cenas/:cenaId — partial update; a present tagIds (even
// empty) replaces the whole tag set.
// ------------------------------
func UpdateCena(c *gin.Context) {
	roteiroID := c.Param("id")
	cenaID := c.Param("cenaId")
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req UpdateCenaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Corpo da requisição inválido.", "error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Ordem != nil {
		updates["ordem"] = *req.Ordem
	}
	if req.TipoLinha != nil {
		updates["tipo_linha"] = *req.TipoLinha
	}
	if req.Video != nil {
		updates["video"] = *req.Video
	}
	if req.TecTransicao != nil {
		updates["tec_transicao"] = *req.TecTransicao
	}
	if req.Audio != nil {
		updates["audio"] = *req.Audio
	}
	if req.Localizacao != nil {
		updates["localizacao"] = *req.Localizacao
	}
	if req.NomeDivisao != nil {
		updates["nome_divisao"] = *req.NomeDivisao
	}
	if req.EstiloLinha.IsSpecified() {
		if req.EstiloLinha.IsNull() {
			updates["estilo_linha"] = nil
		} else {
			updates["estilo_linha"] = req.EstiloLinha.MustGet()
		}
	}
	if req.ColunasPersonalizadas.IsSpecified() {
		if req.ColunasPersonalizadas.IsNull() {
			updates["colunas_personalizadas"] = nil
		} else {
			updates["colunas_personalizadas"] = req.ColunasPersonalizadas.MustGet()
		}
	}

	if len(updates) == 0 && req.TagIDs == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Nenhum dado fornecido para atualização da linha."})
		return
	}
	updates["atualizado_por_id"] = userID

	var updated domain.Cena
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var current domain.Cena
		if e := tx.First(&current, "id = ? AND roteiro_id = ?", cenaID, roteiroID).Error; e != nil {
			return e
		}

		if e := tx.Model(&domain.Cena{}).Where("id = ?", current.ID).Updates(updates).Error; e != nil {
			return e
		}
		if req.TagIDs != nil {
			if e := replaceCenaTags(tx, current.ID, *req.TagIDs); e != nil {
				return e
			}
		}
		return tx.Preload("Tags").First(&updated, "id = ?", current.ID).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Linha não encontrada ou não pertence a este roteiro."})
			return
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Tag referenciada não existe.", "error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno do servidor.", "error": err.Error()})
		return
	}

	if updated.Tags == nil {
		updated.Tags = []tags.Tag{}
	}
	auditoria.Record(database.DB, "cenas", updated.ID, auditoria.AcaoAtualizacao, userID, updates)
	c.JSON(http.StatusOK, gin.H{"message": "Linha atualizada com sucesso!", "cena": updated})
}

// ------------------------------
// DELETE /roteiros/:id/cenas/:cenaId
// ------------------------------
func DeleteCena(c *gin.Context) {
	roteiroID := c.Param("id")
	cenaID := c.Param("cenaId")
	userID := c.GetUint("user_id")

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if e := tx.Exec("DELETE FROM cena_tags WHERE cena_id = ?", cenaID).Error; e != nil {
			return e
		}
		res := tx.Delete(&domain.Cena{}, "id = ? AND roteiro_id = ?", cenaID, roteiroID)
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
			c.JSON(http.StatusNotFound, gin.H{"message": "Linha não encontrada ou não pertence a este roteiro."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno do servidor.", "error": err.Error()})
		return
	}

	cenaIDNum, _ := strconv.ParseUint(cenaID, 10, 32)
	auditoria.Record(database.DB, "cenas", uint(cenaIDNum), auditoria.AcaoDelecao, userID, gin.H{"roteiroId": roteiroID, "cenaId": cenaID})
	c.JSON(http.StatusOK, gin.H{"message": "Linha excluída com sucesso!"})
}
