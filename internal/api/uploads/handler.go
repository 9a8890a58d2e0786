package uploads

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"roteiro-backend/config"
	"roteiro-backend/database"
	"roteiro-backend/internal/domain/users"

	"github.com/gin-gonic/gin"
)

const maxLogoSize = 5 << 20 // 5MB

var allowedLogoExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// ------------------------------
// POST /upload/logo — multipart field "logo". The stored file replaces the
// user's previous logo, which is removed from disk.
// ------------------------------
func UploadLogo(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	file, err := c.FormFile("logo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Nenhum arquivo enviado ou tipo de arquivo inválido."})
		return
	}
	if file.Size > maxLogoSize {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Arquivo excede o tamanho máximo de 5MB."})
		return
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedLogoExt[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Tipo de arquivo não suportado. Apenas JPEG, JPG, PNG e GIF são permitidos."})
		return
	}

	if err := os.MkdirAll(config.UPLOADS_DIR, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno do servidor.", "error": err.Error()})
		return
	}

	filename := fmt.Sprintf("logo_%d_%d%s", userID, time.Now().UnixMilli(), ext)
	destination := filepath.Join(config.UPLOADS_DIR, filename)
	if err := c.SaveUploadedFile(file, destination); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro ao salvar o arquivo enviado.", "error": err.Error()})
		return
	}

	var user users.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno do servidor.", "error": err.Error()})
		return
	}
	oldLogoPath := user.LogoEmpresaPath

	logoPath := "/uploads/" + filename
	updates := map[string]interface{}{"logo_empresa_path": logoPath, "atualizado_por_id": userID}
	if err := database.DB.Model(&users.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno do servidor.", "error": err.Error()})
		return
	}

	if oldLogoPath != nil && *oldLogoPath != "" {
		oldFile := filepath.Join(config.UPLOADS_DIR, filepath.Base(*oldLogoPath))
		if oldFile != destination {
			os.Remove(oldFile)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logo enviado com sucesso!", "filePath": logoPath})
}
