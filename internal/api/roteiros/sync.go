package roteiros

import (
	"errors"
	"net/http"
	"strconv"

	"roteiro-backend/database"
	"roteiro-backend/internal/domain/auditoria"
	domain "roteiro-backend/internal/domain/roteiros"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ------------------------------
// PUT /roteiros/:id/cenas/sync
//
// Reconciles the roteiro's row set with the submitted list in a single
// transaction: rows absent from the payload are deleted, rows carrying a
// persisted id are updated in place, rows without an id are inserted, and
// every row's ordem becomes its index in the payload. An empty list clears
// the roteiro.
// ------------------------------
func SyncCenas(c *gin.Context) {
	roteiroID := c.Param("id")
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req SyncCenasRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Corpo da requisição inválido.", "error": err.Error()})
		return
	}

	var result []domain.Cena
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var roteiro domain.Roteiro
		if e := tx.Select("id").First(&roteiro, "id = ?", roteiroID).Error; e != nil {
			return e
		}

		var existingIDs []uint
		if e := tx.Model(&domain.Cena{}).Where("roteiro_id = ?", roteiro.ID).Pluck("id", &existingIDs).Error; e != nil {
			return e
		}

		submitted := make(map[uint]bool, len(req.Cenas))
		for _, in := range req.Cenas {
			if in.ID != nil {
				submitted[*in.ID] = true
			}
		}

		var toDelete []uint
		for _, id := range existingIDs {
			if !submitted[id] {
				toDelete = append(toDelete, id)
			}
		}
		if len(toDelete) > 0 {
			if e := tx.Exec("DELETE FROM cena_tags WHERE cena_id IN ?", toDelete).Error; e != nil {
				return e
			}
			if e := tx.Delete(&domain.Cena{}, "id IN ?", toDelete).Error; e != nil {
				return e
			}
		}

		existing := make(map[uint]bool, len(existingIDs))
		for _, id := range existingIDs {
			existing[id] = true
		}

		for i, in := range req.Cenas {
			tipoLinha := in.TipoLinha
			if tipoLinha == "" {
				tipoLinha = domain.LinhaPauta
			}

			if in.ID != nil && existing[*in.ID] {
				updates := map[string]interface{}{
					"ordem":                  i,
					"tipo_linha":             tipoLinha,
					"video":                  in.Video,
					"tec_transicao":          in.TecTransicao,
					"audio":                  in.Audio,
					"localizacao":            in.Localizacao,
					"nome_divisao":           in.NomeDivisao,
					"estilo_linha":           in.EstiloLinha,
					"colunas_personalizadas": in.ColunasPersonalizadas,
					"atualizado_por_id":      userID,
				}
				if e := tx.Model(&domain.Cena{}).Where("id = ?", *in.ID).Updates(updates).Error; e != nil {
					return e
				}
				if e := replaceCenaTags(tx, *in.ID, in.TagIDs); e != nil {
					return e
				}
				continue
			}

			cena := domain.Cena{
				RoteiroID:             roteiro.ID,
				Ordem:                 i,
				TipoLinha:             tipoLinha,
				Video:                 in.Video,
				TecTransicao:          in.TecTransicao,
				Audio:                 in.Audio,
				Localizacao:           in.Localizacao,
				NomeDivisao:           in.NomeDivisao,
				EstiloLinha:           in.EstiloLinha,
				ColunasPersonalizadas: in.ColunasPersonalizadas,
				CriadoPorID:           &userID,
				AtualizadoPorID:       &userID,
			}
			if e := tx.Create(&cena).Error; e != nil {
				return e
			}
			existing[cena.ID] = true
			if e := replaceCenaTags(tx, cena.ID, in.TagIDs); e != nil {
				return e
			}
		}

		var e error
		result, e = loadCenas(tx, roteiro.ID)
		return e
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Roteiro não encontrado."})
			return
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Tag referenciada não existe.", "error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro ao sincronizar as linhas do roteiro.", "error": err.Error()})
		return
	}

	roteiroIDNum, _ := strconv.ParseUint(roteiroID, 10, 32)
	auditoria.Record(database.DB, "cenas", uint(roteiroIDNum), auditoria.AcaoSincronizacaoCenas, userID, gin.H{
		"roteiroId": roteiroID, "linhas": len(req.Cenas),
	})
	c.JSON(http.StatusOK, gin.H{"message": "Linhas sincronizadas com sucesso!", "cenas": result})
}

// ------------------------------
// PUT /roteiros/:id/cenas/reorder
// ------------------------------
func ReorderCenas(c *gin.Context) {
	roteiroID := c.Param("id")
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req ReorderCenasRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.CenasOrder) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Lista de ordenação inválida ou vazia."})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var roteiro domain.Roteiro
		if e := tx.Select("id").First(&roteiro, "id = ?", roteiroID).Error; e != nil {
			return e
		}
		for _, item := range req.CenasOrder {
			res := tx.Model(&domain.Cena{}).
				Where("id = ? AND roteiro_id = ?", item.ID, roteiro.ID).
				Updates(map[string]interface{}{"ordem": item.Ordem, "atualizado_por_id": userID})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Roteiro ou linha não encontrada para reordenação."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro ao reordenar as linhas.", "error": err.Error()})
		return
	}

	roteiroIDNum, _ := strconv.ParseUint(roteiroID, 10, 32)
	auditoria.Record(database.DB, "cenas", uint(roteiroIDNum), auditoria.AcaoReordenacaoCenas, userID, gin.H{
		"roteiroId": roteiroID, "cenasOrder": req.CenasOrder,
	})
	c.JSON(http.StatusOK, gin.H{"message": "Ordem das linhas atualizada com sucesso!"})
}
