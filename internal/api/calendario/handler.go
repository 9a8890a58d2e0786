package calendario

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"roteiro-backend/database"
	"roteiro-backend/internal/domain/auditoria"
	domain "roteiro-backend/internal/domain/calendario"
	roteirosdomain "roteiro-backend/internal/domain/roteiros"
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

func replaceApresentadores(tx *gorm.DB, eventoID uint, userIDs []uint) error {
	if err := tx.Exec("DELETE FROM evento_apresentadores WHERE evento_id = ?", eventoID).Error; err != nil {
		return err
	}
	for _, id := range userIDs {
		if err := tx.Exec("INSERT INTO evento_apresentadores (evento_id, user_id) VALUES (?, ?)", eventoID, id).Error; err != nil {
			return err
		}
	}
	return nil
}

// ------------------------------
// POST /eventos
// ------------------------------
func CreateEvento(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req CreateEventoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Nome da gravação e data do evento são obrigatórios.", "error": err.Error()})
		return
	}

	evento := domain.Evento{
		NomeGravacao:    req.NomeGravacao,
		DataEvento:      req.DataEvento,
		HorarioInicio:   req.HorarioInicio,
		HorarioFim:      req.HorarioFim,
		Tema:            req.Tema,
		Cor:             req.Cor,
		UsuarioID:       userID,
		CriadoPorID:     &userID,
		AtualizadoPorID: &userID,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if e := tx.Create(&evento).Error; e != nil {
			return e
		}
		return replaceApresentadores(tx, evento.ID, req.ApresentadorIDs)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Apresentador referenciado não existe.", "error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno do servidor.", "error": err.Error()})
		return
	}

	auditoria.Record(database.DB, "eventos", evento.ID, auditoria.AcaoCriacao, userID, gin.H{
		"nome_gravacao": evento.NomeGravacao, "data_evento": evento.DataEvento, "apresentadorIds": req.ApresentadorIDs,
	})
	c.JSON(http.StatusCreated, gin.H{"message": "Evento criado com sucesso!", "eventoId": evento.ID})
}

// ------------------------------
// GET /eventos?start=YYYY-MM-DD&end=YYYY-MM-DD&apresentadorId=&tema=
// ------------------------------
func GetAllEventos(c *gin.Context) {
	query := database.DB.Model(&domain.Evento{}).Preload("Apresentadores")

	if start := c.Query("start"); start != "" {
		query = query.Where("data_evento >= ?", start)
	}
	if end := c.Query("end"); end != "" {
		query = query.Where("data_evento <= ?", end)
	}
	if apresentadorID := c.Query("apresentadorId"); apresentadorID != "" {
		query = query.Where("id IN (SELECT evento_id FROM evento_apresentadores WHERE user_id = ?)", apresentadorID)
	}
	if tema := c.Query("tema"); tema != "" {
		query = query.Where("tema LIKE ?", "%"+tema+"%")
	}

	var eventos []domain.Evento
	if err := query.Order("data_evento ASC, horario_inicio ASC").Find(&eventos).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno do servidor.", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, eventos)
}

// ------------------------------
// GET /eventos/dropdown — simplified list for linking roteiros and checklists.
// ------------------------------
func GetEventosDropdown(c *gin.Context) {
	var eventos []domain.Evento
	if err := database.DB.Order("data_evento DESC, nome_gravacao ASC").Find(&eventos).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno do servidor.", "error": err.Error()})
		return
	}

	items := make([]EventoDropdownItem, 0, len(eventos))
	for _, evento := range eventos {
		items = append(items, EventoDropdownItem{ID: evento.ID, Nome: dropdownLabel(evento)})
	}
	c.JSON(http.StatusOK, items)
}

func dropdownLabel(evento domain.Evento) string {
	if parsed, err := time.Parse("2006-01-02", evento.DataEvento); err == nil {
		return fmt.Sprintf("%s (%s)", evento.NomeGravacao, parsed.Format("02/01/2006"))
	}
	return evento.NomeGravacao
}

// ------------------------------
// GET /eventos/:id
// ------------------------------
func GetEventoByID(c *gin.Context) {
	var evento domain.Evento
	err := database.DB.Preload("Apresentadores").First(&evento, "id = ?", c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Evento não encontrado."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno do servidor.", "error": err.Error()})
		return
	}
	if evento.Apresentadores == nil {
		evento.Apresentadores = []users.User{}
	}
	c.JSON(http.StatusOK, evento)
}

// ------------------------------
// PUT /eventos/:id
// ------------------------------
func UpdateEvento(c *gin.Context) {
	id := c.Param("id")
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req UpdateEventoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Corpo da requisição inválido.", "error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.NomeGravacao != nil {
		updates["nome_gravacao"] = *req.NomeGravacao
	}
	if req.DataEvento != nil {
		updates["data_evento"] = *req.DataEvento
	}
	if req.HorarioInicio != nil {
		updates["horario_inicio"] = *req.HorarioInicio
	}
	if req.HorarioFim != nil {
		updates["horario_fim"] = *req.HorarioFim
	}
	if req.Tema != nil {
		updates["tema"] = *req.Tema
	}
	if req.Cor != nil {
		updates["cor"] = *req.Cor
	}

	if len(updates) == 0 && req.ApresentadorIDs == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Nenhum dado fornecido para atualização."})
		return
	}
	updates["atualizado_por_id"] = userID

	var updated domain.Evento
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var current domain.Evento
		if e := tx.First(&current, "id = ?", id).Error; e != nil {
			return e
		}
		if e := tx.Model(&domain.Evento{}).Where("id = ?", current.ID).Updates(updates).Error; e != nil {
			return e
		}
		if req.ApresentadorIDs != nil {
			if e := replaceApresentadores(tx, current.ID, *req.ApresentadorIDs); e != nil {
				return e
			}
		}
		return tx.Preload("Apresentadores").First(&updated, "id = ?", current.ID).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Evento não encontrado."})
			return
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Apresentador referenciado não existe.", "error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno do servidor.", "error": err.Error()})
		return
	}

	if updated.Apresentadores == nil {
		updated.Apresentadores = []users.User{}
	}
	auditoria.Record(database.DB, "eventos", updated.ID, auditoria.AcaoAtualizacao, userID, updates)
	c.JSON(http.StatusOK, gin.H{"message": "Evento atualizado com sucesso!", "evento": updated})
}

// ------------------------------
// DELETE /eventos/:id — roteiros and checklists pointing at the event keep
// existing with the link cleared.
// ------------------------------
func DeleteEvento(c *gin.Context) {
	id := c.Param("id")
	userID := c.GetUint("user_id")

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if e := tx.Model(&roteirosdomain.Roteiro{}).Where("evento_id = ?", id).Update("evento_id", nil).Error; e != nil {
			return e
		}
		if e := tx.Exec("UPDATE checklists_gravacao SET evento_id = NULL WHERE evento_id = ?", id).Error; e != nil {
			return e
		}
		if e := tx.Exec("DELETE FROM evento_apresentadores WHERE evento_id = ?", id).Error; e != nil {
			return e
		}
		res := tx.Delete(&domain.Evento{}, "id = ?", id)
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
			c.JSON(http.StatusNotFound, gin.H{"message": "Evento não encontrado."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno do servidor.", "error": err.Error()})
		return
	}

	eventoID, _ := strconv.ParseUint(id, 10, 32)
	auditoria.Record(database.DB, "eventos", uint(eventoID), auditoria.AcaoDelecao, userID, gin.H{"eventoId": id})
	c.JSON(http.StatusOK, gin.H{"message": "Evento excluído com sucesso!"})
}
