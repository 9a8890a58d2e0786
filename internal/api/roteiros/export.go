package roteiros

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"roteiro-backend/config"
	"roteiro-backend/database"
	domain "roteiro-backend/internal/domain/roteiros"
	"roteiro-backend/internal/domain/users"
	"roteiro-backend/internal/pdf"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ------------------------------
// GET /roteiros/:id/export-pdf
// ------------------------------
func ExportRoteiroPDF(c *gin.Context) {
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

	cenas, err := loadCenas(database.DB, roteiro.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno do servidor.", "error": err.Error()})
		return
	}

	view := buildRoteiroView(roteiro, cenas)

	output, err := pdf.Render(view)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro ao gerar o PDF do roteiro.", "error": err.Error()})
		return
	}

	filename := exportFilename(roteiro.Nome)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", output)
}

// buildRoteiroView denormalizes everything the renderer needs so it never has
// to reach back into the database.
func buildRoteiroView(roteiro domain.Roteiro, cenas []domain.Cena) pdf.RoteiroView {
	view := pdf.RoteiroView{
		Titulo:        roteiro.Nome,
		TipoRoteiro:   roteiro.TipoRoteiro,
		Ano:           roteiro.Ano,
		Mes:           roteiro.Mes,
		DataDocumento: roteiro.DataCriacaoDocumento,
	}

	if roteiro.Evento != nil {
		view.EventoNome = roteiro.Evento.NomeGravacao
	}

	var criador users.User
	if err := database.DB.First(&criador, "id = ?", roteiro.UsuarioID).Error; err == nil {
		view.CriadorNome = criador.NomeUsuario
		if criador.NomeCompleto != "" {
			view.CriadorNome = criador.NomeCompleto
		}
		if criador.LogoEmpresaPath != nil && *criador.LogoEmpresaPath != "" {
			logoPath := filepath.Join(config.UPLOADS_DIR, filepath.Base(*criador.LogoEmpresaPath))
			if _, statErr := os.Stat(logoPath); statErr == nil {
				view.LogoPath = logoPath
			}
		}
	}

	for _, cena := range cenas {
		cv := pdf.CenaView{
			TipoLinha:    cena.TipoLinha,
			Video:        cena.Video,
			TecTransicao: cena.TecTransicao,
			Audio:        cena.Audio,
			NomeDivisao:  cena.NomeDivisao,
		}
		for _, tag := range cena.Tags {
			cv.Tags = append(cv.Tags, pdf.TagView{Nome: tag.Nome, Cor: tag.Cor})
		}
		view.Cenas = append(view.Cenas, cv)
	}
	return view
}

func exportFilename(nome string) string {
	sanitized := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_':
			return r
		case r == ' ':
			return '_'
		}
		return -1
	}, nome)
	if sanitized == "" {
		sanitized = "roteiro"
	}
	return sanitized + ".pdf"
}
