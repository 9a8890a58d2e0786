package equipamentos_test

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

func TestCreateEquipamento(t *testing.T) {
	r, token := setupServer(t)

	resp := doRequest(t, r, "POST", "/equipamentos", token, gin.H{
		"nome": "Câmera Sony FX6", "numero_serie": "SN-001", "categoria": "cameras",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
}

func TestCreateEquipamentoDuplicateSerial(t *testing.T) {
	r, token := setupServer(t)

	resp := doRequest(t, r, "POST", "/equipamentos", token, gin.H{"nome": "Câmera A", "numero_serie": "SN-001"})
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = doRequest(t, r, "POST", "/equipamentos", token, gin.H{"nome": "Câmera B", "numero_serie": "SN-001"})
	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestCreateEquipamentoWithoutSerial(t *testing.T) {
	r, token := setupServer(t)

	// Serial is optional; several can be absent at once.
	for _, nome := range []string{"Tripé A", "Tripé B"} {
		resp := doRequest(t, r, "POST", "/equipamentos", token, gin.H{"nome": nome})
		require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	}
}

func TestGetAllEquipamentosFilterByCategoria(t *testing.T) {
	r, token := setupServer(t)

	for _, it := range []gin.H{
		{"nome": "Câmera", "categoria": "cameras"},
		{"nome": "Lapela", "categoria": "audio"},
	} {
		resp := doRequest(t, r, "POST", "/equipamentos", token, it)
		require.Equal(t, http.StatusCreated, resp.Code)
	}

	resp := doRequest(t, r, "GET", "/equipamentos?categoria=audio", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var list []struct {
		Nome string `json:"nome"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Lapela", list[0].Nome)
}

func TestUpdateEquipamentoSerialConflict(t *testing.T) {
	r, token := setupServer(t)

	doRequest(t, r, "POST", "/equipamentos", token, gin.H{"nome": "Câmera A", "numero_serie": "SN-001"})
	resp := doRequest(t, r, "POST", "/equipamentos", token, gin.H{"nome": "Câmera B", "numero_serie": "SN-002"})
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = doRequest(t, r, "PUT", "/equipamentos/2", token, gin.H{"numero_serie": "SN-001"})
	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestDeleteEquipamentoInUseIsRefused(t *testing.T) {
	r, token := setupServer(t)

	resp := doRequest(t, r, "POST", "/equipamentos", token, gin.H{"nome": "Câmera"})
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = doRequest(t, r, "POST", "/checklists", token, gin.H{
		"nome_gravacao_associada": "Gravação Externa",
		"itens":                   []gin.H{{"equipamento_id": 1, "quantidade_a_levar": 2}},
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	resp = doRequest(t, r, "DELETE", "/equipamentos/1", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	// Removing the checklist frees the equipment.
	resp = doRequest(t, r, "DELETE", "/checklists/1", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = doRequest(t, r, "DELETE", "/equipamentos/1", token, nil)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestDeleteEquipamentoNotFound(t *testing.T) {
	r, token := setupServer(t)

	resp := doRequest(t, r, "DELETE", "/equipamentos/999", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
