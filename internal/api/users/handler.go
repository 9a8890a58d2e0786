package users

import (
	"errors"
	"net/http"

	"roteiro-backend/database"
	"roteiro-backend/internal/domain/auditoria"
	"roteiro-backend/internal/domain/users"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
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

// GET /users/me
func GetCurrentUser(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Usuário não encontrado."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno do servidor.", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}

type UpdateProfileRequest struct {
	NomeCompleto       *string `json:"nome_completo"`
	Email              *string `json:"email"`
	PerfilApresentador *bool   `json:"perfil_apresentador"`
	LogoEmpresaPath    *string `json:"logo_empresa_path"`
	SenhaAntiga        *string `json:"senha_antiga"`
	NovaSenha          *string `json:"nova_senha"`
}

// PUT /users/me
func UpdateProfile(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Corpo da requisição inválido.", "error": err.Error()})
		return
	}

	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Usuário não encontrado."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno do servidor.", "error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.NomeCompleto != nil {
		updates["nome_completo"] = *req.NomeCompleto
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.PerfilApresentador != nil {
		updates["perfil_apresentador"] = *req.PerfilApresentador
	}
	if req.LogoEmpresaPath != nil {
		updates["logo_empresa_path"] = *req.LogoEmpresaPath
	}

	// Password change requires the current one.
	if req.NovaSenha != nil && *req.NovaSenha != "" {
		if req.SenhaAntiga == nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Senha antiga é obrigatória para alterar a senha."})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.SenhaHash), []byte(*req.SenhaAntiga)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Senha antiga incorreta."})
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.NovaSenha), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro ao processar senha.", "error": err.Error()})
			return
		}
		updates["senha_hash"] = string(hash)
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Nenhum dado fornecido para atualização."})
		return
	}

	if err := database.DB.Model(&user).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno do servidor ao atualizar perfil.", "error": err.Error()})
		return
	}

	var updated users.User
	if err := database.DB.First(&updated, userID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno do servidor.", "error": err.Error()})
		return
	}
	delete(updates, "senha_hash") // the hash never reaches the audit trail
	auditoria.Record(database.DB, "usuarios", userID, auditoria.AcaoAtualizacaoPerfilProprio, userID, updates)
	c.JSON(http.StatusOK, gin.H{"message": "Perfil atualizado com sucesso!", "user": updated})
}

// GET /users — directory used by the presenter pickers.
func ListUsers(c *gin.Context) {
	var all []users.User
	if err := database.DB.Order("nome_completo ASC").Find(&all).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno do servidor.", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, all)
}

// GET /users/:id
func GetUserByID(c *gin.Context) {
	var user users.User
	if err := database.DB.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Usuário não encontrado."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno do servidor.", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, user)
}

type CreateUserRequest struct {
	NomeUsuario        string `json:"nome_usuario" binding:"required"`
	Senha              string `json:"senha" binding:"required"`
	NomeCompleto       string `json:"nome_completo"`
	Email              string `json:"email"`
	PerfilApresentador bool   `json:"perfil_apresentador"`
}

// POST /users — direct user creation from the management screen, as opposed to
// self-service /register.
func CreateUser(c *gin.Context) {
	creatorID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Nome de usuário e senha são obrigatórios."})
		return
	}

	var existing users.User
	err := database.DB.First(&existing, "nome_usuario = ?", req.NomeUsuario).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"message": "Nome de usuário já está em uso."})
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
		CriadoPorID:        &creatorID,
		AtualizadoPorID:    &creatorID,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno do servidor ao criar usuário.", "error": err.Error()})
		return
	}

	auditoria.Record(database.DB, "usuarios", user.ID, auditoria.AcaoCriacaoUsuario, creatorID, gin.H{
		"nome_usuario": user.NomeUsuario, "nome_completo": user.NomeCompleto,
		"email": user.Email, "perfil_apresentador": user.PerfilApresentador,
	})
	c.JSON(http.StatusCreated, gin.H{"message": "Usuário criado com sucesso!", "user": user})
}

type UpdateUserRequest struct {
	NomeCompleto       *string `json:"nome_completo"`
	Email              *string `json:"email"`
	PerfilApresentador *bool   `json:"perfil_apresentador"`
}

// PUT /users/:id — non-password fields only; password changes go through the
// owner's own profile endpoint.
func UpdateUserByID(c *gin.Context) {
	id := c.Param("id")
	editorID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Corpo da requisição inválido.", "error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.NomeCompleto != nil {
		updates["nome_completo"] = *req.NomeCompleto
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.PerfilApresentador != nil {
		updates["perfil_apresentador"] = *req.PerfilApresentador
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Nenhum dado fornecido para atualização."})
		return
	}
	updates["atualizado_por_id"] = editorID

	res := database.DB.Model(&users.User{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno do servidor.", "error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Usuário não encontrado."})
		return
	}

	var updated users.User
	if err := database.DB.First(&updated, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno do servidor.", "error": err.Error()})
		return
	}
	auditoria.Record(database.DB, "usuarios", updated.ID, auditoria.AcaoAtualizacaoUsuarioAdmin, editorID, updates)
	c.JSON(http.StatusOK, gin.H{"message": "Usuário atualizado com sucesso!", "user": updated})
}
