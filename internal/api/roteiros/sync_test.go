package roteiros_test

import (
	"bytes"
	"encoding/json"
	"fmt"
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

func dbCount(table string, out *int64) error {
	return database.DB.Table(table).Count(out).Error
}

type cenaJSON struct {
	ID          uint   `json:"id"`
	Ordem       int    `json:"ordem"`
	TipoLinha   string `json:"tipo_linha"`
	Video       string `json:"video"`
	NomeDivisao string `json:"nome_divisao"`
}

func createRoteiro(t *testing.T, r *gin.Engine, token string) uint {
	t.Helper()
	resp := doRequest(t, r, "POST", "/roteiros", token, gin.H{
		"nome": "Programa Piloto", "ano": 2026, "mes": 8,
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var body struct {
		RoteiroID uint `json:"roteiroId"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.NotZero(t, body.RoteiroID)
	return body.RoteiroID
}

func syncCenas(t *testing.T, r *gin.Engine, token string, roteiroID uint, cenas []gin.H) []cenaJSON {
	t.Helper()
	resp := doRequest(t, r, "PUT", fmt.Sprintf("/roteiros/%d/cenas/sync", roteiroID), token, gin.H{"cenas": cenas})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body struct {
		Cenas []cenaJSON `json:"cenas"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	return body.Cenas
}

func TestSyncInsertsNewRowsInSubmittedOrder(t *testing.T) {
	r, token := setupServer(t)
	roteiroID := createRoteiro(t, r, token)

	cenas := syncCenas(t, r, token, roteiroID, []gin.H{
		{"tipo_linha": "pauta", "video": "Abertura"},
		{"tipo_linha": "divisoria", "nome_divisao": "BLOCO 1"},
		{"tipo_linha": "pauta", "video": "Entrevista"},
	})

	require.Len(t, cenas, 3)
	assert.Equal(t, []int{0, 1, 2}, []int{cenas[0].Ordem, cenas[1].Ordem, cenas[2].Ordem})
	assert.Equal(t, "Abertura", cenas[0].Video)
	assert.Equal(t, "BLOCO 1", cenas[1].NomeDivisao)
	assert.Equal(t, "Entrevista", cenas[2].Video)
}

func TestSyncIsIdempotent(t *testing.T) {
	r, token := setupServer(t)
	roteiroID := createRoteiro(t, r, token)

	first := syncCenas(t, r, token, roteiroID, []gin.H{
		{"video": "Abertura"},
		{"video": "Encerramento"},
	})

	payload := []gin.H{
		{"id": first[0].ID, "video": "Abertura"},
		{"id": first[1].ID, "video": "Encerramento"},
	}
	second := syncCenas(t, r, token, roteiroID, payload)

	require.Len(t, second, 2)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, first[1].ID, second[1].ID)
	assert.Equal(t, first, second)
}

func TestSyncPayloadOrderWins(t *testing.T) {
	r, token := setupServer(t)
	roteiroID := createRoteiro(t, r, token)

	first := syncCenas(t, r, token, roteiroID, []gin.H{
		{"video": "A"}, {"video": "B"}, {"video": "C"},
	})

	// Resubmit as C, A, B; persisted ordem must follow the new positions.
	reordered := syncCenas(t, r, token, roteiroID, []gin.H{
		{"id": first[2].ID, "video": "C"},
		{"id": first[0].ID, "video": "A"},
		{"id": first[1].ID, "video": "B"},
	})

	require.Len(t, reordered, 3)
	assert.Equal(t, "C", reordered[0].Video)
	assert.Equal(t, 0, reordered[0].Ordem)
	assert.Equal(t, "A", reordered[1].Video)
	assert.Equal(t, 1, reordered[1].Ordem)
	assert.Equal(t, "B", reordered[2].Video)
	assert.Equal(t, 2, reordered[2].Ordem)
}

func TestSyncDeletesOmittedRows(t *testing.T) {
	r, token := setupServer(t)
	roteiroID := createRoteiro(t, r, token)

	first := syncCenas(t, r, token, roteiroID, []gin.H{
		{"video": "A"}, {"video": "B"}, {"video": "C"},
	})

	remaining := syncCenas(t, r, token, roteiroID, []gin.H{
		{"id": first[0].ID, "video": "A"},
		{"id": first[2].ID, "video": "C"},
	})

	require.Len(t, remaining, 2)
	assert.Equal(t, first[0].ID, remaining[0].ID)
	assert.Equal(t, first[2].ID, remaining[1].ID)

	resp := doRequest(t, r, "GET", fmt.Sprintf("/roteiros/%d/cenas/%d", roteiroID, first[1].ID), token, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestSyncEmptyListClearsRoteiro(t *testing.T) {
	r, token := setupServer(t)
	roteiroID := createRoteiro(t, r, token)

	syncCenas(t, r, token, roteiroID, []gin.H{{"video": "A"}, {"video": "B"}})
	cleared := syncCenas(t, r, token, roteiroID, []gin.H{})
	assert.Empty(t, cleared)
}

func TestSyncMixedUpdateAndInsert(t *testing.T) {
	r, token := setupServer(t)
	roteiroID := createRoteiro(t, r, token)

	first := syncCenas(t, r, token, roteiroID, []gin.H{{"video": "A"}})

	mixed := syncCenas(t, r, token, roteiroID, []gin.H{
		{"video": "Nova abertura"},
		{"id": first[0].ID, "video": "A editada"},
	})

	require.Len(t, mixed, 2)
	assert.NotEqual(t, first[0].ID, mixed[0].ID)
	assert.Equal(t, "Nova abertura", mixed[0].Video)
	assert.Equal(t, first[0].ID, mixed[1].ID)
	assert.Equal(t, "A editada", mixed[1].Video)
}

func TestSyncUnknownRoteiro(t *testing.T) {
	r, token := setupServer(t)

	resp := doRequest(t, r, "PUT", "/roteiros/999/cenas/sync", token, gin.H{"cenas": []gin.H{}})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestReorderCenas(t *testing.T) {
	r, token := setupServer(t)
	roteiroID := createRoteiro(t, r, token)

	first := syncCenas(t, r, token, roteiroID, []gin.H{{"video": "A"}, {"video": "B"}})

	resp := doRequest(t, r, "PUT", fmt.Sprintf("/roteiros/%d/cenas/reorder", roteiroID), token, gin.H{
		"cenasOrder": []gin.H{
			{"id": first[0].ID, "ordem": 1},
			{"id": first[1].ID, "ordem": 0},
		},
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = doRequest(t, r, "GET", fmt.Sprintf("/roteiros/%d/cenas", roteiroID), token, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var cenas []cenaJSON
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &cenas))
	require.Len(t, cenas, 2)
	assert.Equal(t, "B", cenas[0].Video)
	assert.Equal(t, "A", cenas[1].Video)
}

func TestReorderRejectsForeignCena(t *testing.T) {
	r, token := setupServer(t)
	roteiroA := createRoteiro(t, r, token)

	resp := doRequest(t, r, "POST", "/roteiros", token, gin.H{"nome": "Outro", "ano": 2026, "mes": 9})
	require.Equal(t, http.StatusCreated, resp.Code)

	cenas := syncCenas(t, r, token, roteiroA, []gin.H{{"video": "A"}})

	resp = doRequest(t, r, "PUT", "/roteiros/2/cenas/reorder", token, gin.H{
		"cenasOrder": []gin.H{{"id": cenas[0].ID, "ordem": 0}},
	})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
