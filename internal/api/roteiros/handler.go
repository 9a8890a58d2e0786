package roteiros

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"roteiro-backend/database"
	"roteiro-backend/internal/domain/auditoria"
	domain "roteiro-backend/internal/domain/roteiros"
	"roteiro-backend/internal/domain/tags"
	"roteiro-backend/internal/domain/users"

	"github.com/gin-gonic/gin"
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

// ------------------------------
// POST /roteiros
// ------------------------------
func CreateRoteiro(c *gin.Context) {
	var req CreateRoteiroRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Corpo da requisição inválido.", "error": err.Error()})
		return
	}
	if req.Nome == "" || req.Ano == 0 || req.Mes == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Nome, ano e mês do roteiro são obrigatórios."})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var roteiro domain.Roteiro
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		roteiro = domain.Roteiro{
			Nome:                 req.Nome,
			TipoRoteiro:          req.TipoRoteiro,
			Ano:                  req.Ano,
			Mes:                  req.Mes,
			ConteudoPrincipal:    req.ConteudoPrincipal,
			DataCriacaoDocumento: req.DataCriacaoDocumento,
			EventoID:             req.EventoID,
			UsuarioID:            userID,
			CriadoPorID:          &userID,
			AtualizadoPorID:      &userID,
		}
		if err := tx.Create(&roteiro).Error; err != nil {
			return err
		}
		return replaceRoteiroTags(tx, roteiro.ID, req.Tags)
	})

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno do servidor ao criar roteiro.", "error": err.Error()})
		return
	}

	auditoria.Record(database.DB, "roteiros", roteiro.ID, auditoria.AcaoCriacao, userID, gin.H{
		"nome": roteiro.Nome, "ano": roteiro.Ano, "mes": roteiro.Mes, "tags": req.Tags,
	})
	c.JSON(http.StatusCreated, gin.H{
		"message":      "Roteiro criado com sucesso!",
		"roteiroId":    roteiro.ID,
		"nome":         roteiro.Nome,
		"ano":          roteiro.Ano,
		"mes":          roteiro.Mes,
		"tipo_roteiro": roteiro.TipoRoteiro,
		"evento_id":    roteiro.EventoID,
	})
}

// ------------------------------
// GET /roteiros?ano=&mes=&tagIds=
// ------------------------------
func GetAllRoteiros(c *gin.Context) {
	q := database.DB.Model(&domain.Roteiro{}).Preload("Tags")

	if ano := c.Query("ano"); ano != "" {
		q = q.Where("ano = ?", ano)
	}
	if mes := c.Query("mes"); mes != "" {
		q = q.Where("mes = ?", mes)
	}
	if raw := c.Query("tagIds"); raw != "" {
		var ids []uint
		for _, part := range strings.Split(raw, ",") {
			if n, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
				ids = append(ids, uint(n))
			}
		}
		if len(ids) > 0 {
			// ANY-of semantics: a roteiro matches when it carries at
			// least one of the requested tags.
			q = q.Distinct("roteiros.*").
				Joins("JOIN roteiro_tags rt_filter ON rt_filter.roteiro_id = roteiros.id AND rt_filter.tag_id IN ?", ids)
		}
	}

	var list []domain.Roteiro
	if err := q.Order("ano DESC, mes DESC, nome ASC").Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno do servidor.", "error": err.Error()})
		return
	}

	criadores := criadorNames(list)
	out := make([]RoteiroListItem, 0, len(list))
	for _, r := range list {
		item := RoteiroListItem{
			ID:                   r.ID,
			Nome:                 r.Nome,
			TipoRoteiro:          r.TipoRoteiro,
			Ano:                  r.Ano,
			Mes:                  r.Mes,
			DataCriacaoDocumento: r.DataCriacaoDocumento,
			EventoID:             r.EventoID,
			CriadorNome:          criadores[r.UsuarioID],
			Tags:                 r.Tags,
		}
		if item.Tags == nil {
			item.Tags = []tags.Tag{}
		}
		out = append(out, item)
	}
	c.JSON(http.StatusOK, out)
}

func criadorNames(list []domain.Roteiro) map[uint]string {
	ids := make([]uint, 0, len(list))
	seen := map[uint]bool{}
	for _, r := range list {
		if !seen[r.UsuarioID] {
			seen[r.UsuarioID] = true
			ids = append(ids, r.UsuarioID)
		}
	}
	names := map[uint]string{}
	if len(ids) == 0 {
		return names
	}
	var criadores []users.User
	if err := database.DB.Where("id IN ?", ids).Find(&criadores).Error; err != nil {
		return names
	}
	for _, u := range criadores {
		names[u.ID] = u.NomeUsuario
	}
	return names
}

// ------------------------------
// GET /roteiros/:id  (lightweight: metadata + roteiro-level tags; the edit
// page fetches cenas through its own call)
// ------------------------------
func GetRoteiroByID(c *gin.Context) {
	id := c.Param("id")

	var roteiro domain.Roteiro
	err := database.DB.Preload("Tags").Preload("Evento").First(&roteiro, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Roteiro não encontrado."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno do servidor.", "error": err.Error()})
		return
	}
	if roteiro.Tags == nil {
		roteiro.Tags = []tags.Tag{}
	}
	c.JSON(http.StatusOK, roteiro)
}

// ------------------------------
// PUT /roteiros/:id
// ------------------------------
func UpdateRoteiro(c *gin.Context) {
	id := c.Param("id")
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req UpdateRoteiroRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Corpo da requisição inválido.", "error": err.Error()})
		return
	}
	if req.empty() {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Nenhum dado fornecido para atualização."})
		return
	}

	updates := map[string]interface{}{"atualizado_por_id": userID}
	if req.Nome != nil {
		updates["nome"] = *req.Nome
	}
	if req.TipoRoteiro != nil {
		updates["tipo_roteiro"] = *req.TipoRoteiro
	}
	if req.Ano != nil {
		updates["ano"] = *req.Ano
	}
	if req.Mes != nil {
		updates["mes"] = *req.Mes
	}
	if req.ConteudoPrincipal != nil {
		updates["conteudo_principal"] = *req.ConteudoPrincipal
	}
	if req.DataCriacaoDocumento != nil {
		updates["data_criacao_documento"] = *req.DataCriacaoDocumento
	}
	if req.EventoID.IsSpecified() {
		if req.EventoID.IsNull() {
			updates["evento_id"] = nil
		} else {
			updates["evento_id"] = req.EventoID.MustGet()
		}
	}

	var updated domain.Roteiro
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var current domain.Roteiro
		if e := tx.First(&current, "id = ?", id).Error; e != nil {
			return e
		}

		if e := tx.Model(&domain.Roteiro{}).Where("id = ?", id).Updates(updates).Error; e != nil {
			return e
		}

		if req.Tags != nil {
			if e := replaceRoteiroTags(tx, current.ID, *req.Tags); e != nil {
				return e
			}
		}

		return tx.Preload("Tags").First(&updated, "id = ?", id).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Roteiro não encontrado."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno do servidor ao atualizar roteiro.", "error": err.Error()})
		return
	}

	auditoria.Record(database.DB, "roteiros", updated.ID, auditoria.AcaoAtualizacao, userID, updates)
	c.JSON(http.StatusOK, gin.H{"message": "Roteiro atualizado com sucesso!", "roteiro": updated})
}

// ------------------------------
// DELETE /roteiros/:id — cena tag links, cenas, roteiro tag links, roteiro,
// in that order, one transaction.
// ------------------------------
func DeleteRoteiro(c *gin.Context) {
	id := c.Param("id")
	userID := c.GetUint("user_id")

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var cenaIDs []uint
		if e := tx.Model(&domain.Cena{}).Where("roteiro_id = ?", id).Pluck("id", &cenaIDs).Error; e != nil {
			return e
		}
		if len(cenaIDs) > 0 {
			if e := tx.Exec("DELETE FROM cena_tags WHERE cena_id IN ?", cenaIDs).Error; e != nil {
				return e
			}
		}
		if e := tx.Where("roteiro_id = ?", id).Delete(&domain.Cena{}).Error; e != nil {
			return e
		}
		if e := tx.Exec("DELETE FROM roteiro_tags WHERE roteiro_id = ?", id).Error; e != nil {
			return e
		}

		res := tx.Delete(&domain.Roteiro{}, "id = ?", id)
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
			c.JSON(http.StatusNotFound, gin.H{"message": "Roteiro não encontrado para exclusão."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno do servidor ao excluir roteiro.", "error": err.Error()})
		return
	}

	roteiroID, _ := strconv.ParseUint(id, 10, 32)
	auditoria.Record(database.DB, "roteiros", uint(roteiroID), auditoria.AcaoDelecao, userID, gin.H{"roteiroId": id})
	c.JSON(http.StatusOK, gin.H{"message": "Roteiro excluído com sucesso!"})
}
