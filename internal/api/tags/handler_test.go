package tags_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"roteiro-backend/config"
	"roteiro-backend/database"
	"roteiro-backend/internal/api/auth"
	routes "roteiro-backend/internal/app/http"
	"roteiro-backend/internal/domain/auditoria"
	tagsdomain "roteiro-backend/internal/domain/tags"
	"roteiro-backend/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupServer(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.JWT_SECRET = "test-secret"

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	r := gin.New()
	routes.RegisterRoutes(r)

	user := users.User{NomeUsuario: "tester", SenhaHash: "irrelevant"}
	require.NoError(t, db.Create(&user).Error)
	token, err := auth.GenerateToken(user.ID, user.NomeUsuario)
	require.NoError(t, err)
	return r, "Bearer " + token
}

func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestCreateTagAssignsPaletteColor(t *testing.T) {
	r, token := setupServer(t)

	resp := doRequest(t, r, "POST", "/tags", token, gin.H{"nome": "drone"})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var body struct {
		Tag tagsdomain.Tag `json:"tag"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "drone", body.Tag.Nome)
	assert.Contains(t, tagsdomain.PredefinedColors, body.Tag.Cor)
}

func TestCreateTagKeepsExplicitColor(t *testing.T) {
	r, token := setupServer(t)

	resp := doRequest(t, r, "POST", "/tags", token, gin.H{"nome": "externa", "cor": "#123456"})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var body struct {
		Tag tagsdomain.Tag `json:"tag"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "#123456", body.Tag.Cor)
}

func TestCreateTagDuplicateNameConflicts(t *testing.T) {
	r, token := setupServer(t)

	resp := doRequest(t, r, "POST", "/tags", token, gin.H{"nome": "drone"})
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = doRequest(t, r, "POST", "/tags", token, gin.H{"nome": "drone"})
	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestCreateTagRequiresName(t *testing.T) {
	r, token := setupServer(t)

	resp := doRequest(t, r, "POST", "/tags", token, gin.H{"cor": "#FFFFFF"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestGetAllTagsOrderedByName(t *testing.T) {
	r, token := setupServer(t)

	for _, nome := range []string{"zebra", "abelha", "macaco"} {
		resp := doRequest(t, r, "POST", "/tags", token, gin.H{"nome": nome})
		require.Equal(t, http.StatusCreated, resp.Code)
	}

	resp := doRequest(t, r, "GET", "/tags", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var list []tagsdomain.Tag
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &list))
	require.Len(t, list, 3)
	assert.Equal(t, "abelha", list[0].Nome)
	assert.Equal(t, "macaco", list[1].Nome)
	assert.Equal(t, "zebra", list[2].Nome)
}

func TestUpdateTagRenameConflict(t *testing.T) {
	r, token := setupServer(t)

	doRequest(t, r, "POST", "/tags", token, gin.H{"nome": "drone"})
	resp := doRequest(t, r, "POST", "/tags", token, gin.H{"nome": "externa"})
	require.Equal(t, http.StatusCreated, resp.Code)

	var body struct {
		Tag tagsdomain.Tag `json:"tag"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

	resp = doRequest(t, r, "PUT", "/tags/2", token, gin.H{"nome": "drone"})
	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestUpdateTagNoFields(t *testing.T) {
	r, token := setupServer(t)

	doRequest(t, r, "POST", "/tags", token, gin.H{"nome": "drone"})
	resp := doRequest(t, r, "PUT", "/tags/1", token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestDeleteTagNotFound(t *testing.T) {
	r, token := setupServer(t)

	resp := doRequest(t, r, "DELETE", "/tags/999", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestDeleteTagInUseIsRefused(t *testing.T) {
	r, token := setupServer(t)

	resp := doRequest(t, r, "POST", "/tags", token, gin.H{"nome": "drone"})
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = doRequest(t, r, "POST", "/roteiros", token, gin.H{
		"nome": "Programa Piloto", "ano": 2026, "mes": 8, "tags": []uint{1},
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	resp = doRequest(t, r, "DELETE", "/tags/1", token, nil)
	assert.Equal(t, http.StatusConflict, resp.Code)

	// Detaching the tag from the roteiro frees it for deletion.
	resp = doRequest(t, r, "PUT", "/roteiros/1", token, gin.H{"tags": []uint{}})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = doRequest(t, r, "DELETE", "/tags/1", token, nil)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestTagMutationsWriteAuditTrail(t *testing.T) {
	r, token := setupServer(t)

	resp := doRequest(t, r, "POST", "/tags", token, gin.H{"nome": "drone", "cor": "#FFADAD"})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	resp = doRequest(t, r, "PUT", "/tags/1", token, gin.H{"nome": "drone-externo"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	resp = doRequest(t, r, "DELETE", "/tags/1", token, nil)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var logs []auditoria.LogAuditoria
	require.NoError(t, database.DB.Order("id ASC").Find(&logs).Error)
	require.Len(t, logs, 3)

	acoes := []string{logs[0].AcaoRealizada, logs[1].AcaoRealizada, logs[2].AcaoRealizada}
	assert.Equal(t, []string{auditoria.AcaoCriacao, auditoria.AcaoAtualizacao, auditoria.AcaoDelecao}, acoes)
	for _, entry := range logs {
		assert.Equal(t, "tags", entry.TabelaAfetada)
		require.NotNil(t, entry.RegistroAfetadoID)
		assert.Equal(t, uint(1), *entry.RegistroAfetadoID)
		require.NotNil(t, entry.UsuarioID)
	}
	require.NotNil(t, logs[0].DetalhesAlteracao)
	assert.Contains(t, *logs[0].DetalhesAlteracao, "#FFADAD")
}

func TestTagsRequireAuthentication(t *testing.T) {
	r, _ := setupServer(t)

	resp := doRequest(t, r, "GET", "/tags", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
