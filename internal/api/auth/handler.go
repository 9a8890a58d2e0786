package auth

import (
	"errors"
	"net/http"
	"time"

	"roteiro-backend/config"
	"roteiro-backend/database"
	"roteiro-backend/internal/domain/auditoria"
	"roteiro-backend/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenTTL = 12 * time.Hour

type RegisterRequest struct {
	NomeUsuario        string `json:"nome_usuario" binding:"required"`
	Senha              string `json:"senha" binding:"required"`
	NomeCompleto       string `json:"nome_completo"`
	Email              string `json:"email" binding:"required"`
	PerfilApresentador bool   `json:"perfil_apresentador"`
}

type LoginRequest struct {
	NomeUsuario string `json:"nome_usuario" binding:"required"`
	Senha       string `json:"senha" binding:"required"`
}

func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Nome de usuário, senha e email são obrigatórios."})
		return
	}

	var existing users.User
	err := database.DB.First(&existing, "nome_usuario = ? OR email = ?", req.NomeUsuario, req.Email).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"message": "Usuário ou email já cadastrado."})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno do servidor.", "error": err.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Senha), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro ao processar senha.", "error": err.Error()})
		return
	}

	user := users.User{
		NomeUsuario:        req.NomeUsuario,
		SenhaHash:          string(hash),
		NomeCompleto:       req.NomeCompleto,
		Email:              req.Email,
		PerfilApresentador: req.PerfilApresentador,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno do servidor ao registrar usuário.", "error": err.Error()})
		return
	}

	auditoria.Record(database.DB, "usuarios", user.ID, auditoria.AcaoCriacao, user.ID, gin.H{"nome_usuario": user.NomeUsuario, "email": user.Email})
	c.JSON(http.StatusCreated, gin.H{"message": "Usuário registrado com sucesso!", "userId": user.ID})
}

func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Nome de usuário e senha são obrigatórios."})
		return
	}

	var user users.User
	if err := database.DB.First(&user, "nome_usuario = ?", req.NomeUsuario).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Credenciais inválidas."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno do servidor ao fazer login.", "error": err.Error()})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.SenhaHash), []byte(req.Senha)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Credenciais inválidas."})
		return
	}

	token, err := GenerateToken(user.ID, user.NomeUsuario)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro ao gerar token.", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login bem-sucedido!",
		"token":   token,
		"user": gin.H{
			"id":                  user.ID,
			"nome_usuario":        user.NomeUsuario,
			"nome_completo":       user.NomeCompleto,
			"email":               user.Email,
			"perfil_apresentador": user.PerfilApresentador,
		},
	})
}

// GenerateToken signs a session token for the given user.
func GenerateToken(userID uint, nomeUsuario string) (string, error) {
	claims := jwt.MapClaims{
		"userId":       userID,
		"nome_usuario": nomeUsuario,
		"exp":          time.Now().Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.JWT_SECRET))
}
