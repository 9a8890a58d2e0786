package checklists_test

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

type checklistJSON struct {
	ID                    uint   `json:"id"`
	NomeGravacaoAssociada string `json:"nome_gravacao_associada"`
	Itens                 []struct {
		EquipamentoID    uint `json:"equipamento_id"`
		QuantidadeALevar int  `json:"quantidade_a_levar"`
		Equipamento      *struct {
			Nome string `json:"nome"`
		} `json:"equipamento"`
	} `json:"itens"`
}

func createEquipamento(t *testing.T, r *gin.Engine, token, nome string) {
	t.Helper()
	resp := doRequest(t, r, "POST", "/equipamentos", token, gin.H{"nome": nome})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
}

func TestCreateChecklistWithItens(t *testing.T) {
	r, token := setupServer(t)
	createEquipamento(t, r, token, "Câmera")
	createEquipamento(t, r, token, "Tripé")

	resp := doRequest(t, r, "POST", "/checklists", token, gin.H{
		"nome_gravacao_associada": "Gravação Externa",
		"data_checklist":          "2026-09-10",
		"itens": []gin.H{
			{"equipamento_id": 1, "quantidade_a_levar": 2},
			{"equipamento_id": 2},
		},
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	resp = doRequest(t, r, "GET", "/checklists/1", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var checklist checklistJSON
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &checklist))
	require.Len(t, checklist.Itens, 2)
	assert.Equal(t, 2, checklist.Itens[0].QuantidadeALevar)
	// Omitted quantity defaults to one unit.
	assert.Equal(t, 1, checklist.Itens[1].QuantidadeALevar)
	require.NotNil(t, checklist.Itens[0].Equipamento)
	assert.Equal(t, "Câmera", checklist.Itens[0].Equipamento.Nome)
}

func TestCreateChecklistRequiresNome(t *testing.T) {
	r, token := setupServer(t)

	resp := doRequest(t, r, "POST", "/checklists", token, gin.H{"data_checklist": "2026-09-10"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestUpdateChecklistReplacesItens(t *testing.T) {
	r, token := setupServer(t)
	createEquipamento(t, r, token, "Câmera")
	createEquipamento(t, r, token, "Lapela")

	resp := doRequest(t, r, "POST", "/checklists", token, gin.H{
		"nome_gravacao_associada": "Gravação Externa",
		"itens":                   []gin.H{{"equipamento_id": 1}},
	})
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = doRequest(t, r, "PUT", "/checklists/1", token, gin.H{
		"itens": []gin.H{{"equipamento_id": 2, "quantidade_a_levar": 3}},
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body struct {
		Checklist checklistJSON `json:"checklist"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Checklist.Itens, 1)
	assert.Equal(t, uint(2), body.Checklist.Itens[0].EquipamentoID)
	assert.Equal(t, 3, body.Checklist.Itens[0].QuantidadeALevar)
}

func TestUpdateChecklistEventoNullUnlinks(t *testing.T) {
	r, token := setupServer(t)

	resp := doRequest(t, r, "POST", "/eventos", token, gin.H{
		"nome_gravacao": "Gravação Externa", "data_evento": "2026-09-10",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	resp = doRequest(t, r, "POST", "/checklists", token, gin.H{
		"nome_gravacao_associada": "Gravação Externa",
		"evento_id":               1,
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	readEventoID := func() *uint {
		resp := doRequest(t, r, "GET", "/checklists/1", token, nil)
		require.Equal(t, http.StatusOK, resp.Code)
		var checklist struct {
			EventoID *uint `json:"evento_id"`
		}
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &checklist))
		return checklist.EventoID
	}
	require.NotNil(t, readEventoID())

	// Omitting evento_id keeps the link; an explicit null removes it.
	resp = doRequest(t, r, "PUT", "/checklists/1", token, gin.H{"data_checklist": "2026-09-11"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	require.NotNil(t, readEventoID())

	resp = doRequest(t, r, "PUT", "/checklists/1", token, gin.H{"evento_id": nil})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Nil(t, readEventoID())
}

func TestUpdateChecklistNoFields(t *testing.T) {
	r, token := setupServer(t)
	createEquipamento(t, r, token, "Câmera")

	resp := doRequest(t, r, "POST", "/checklists", token, gin.H{
		"nome_gravacao_associada": "Gravação Externa",
	})
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = doRequest(t, r, "PUT", "/checklists/1", token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestDeleteChecklistRemovesItens(t *testing.T) {
	r, token := setupServer(t)
	createEquipamento(t, r, token, "Câmera")

	resp := doRequest(t, r, "POST", "/checklists", token, gin.H{
		"nome_gravacao_associada": "Gravação Externa",
		"itens":                   []gin.H{{"equipamento_id": 1}},
	})
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = doRequest(t, r, "DELETE", "/checklists/1", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var count int64
	require.NoError(t, database.DB.Table("checklist_itens").Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteChecklistNotFound(t *testing.T) {
	r, token := setupServer(t)

	resp := doRequest(t, r, "DELETE", "/checklists/999", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
