package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/farellandr/dataswift/internal/models"
	"github.com/farellandr/dataswift/internal/server"
	"github.com/farellandr/dataswift/internal/store"
)

func newTestServer(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PAYMENT_DELAY_MS", "0")

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&store.Blob{}))

	st, err := store.New(db, models.User{
		ID:         "USR-ROOT",
		Name:       "dev team",
		Email:      "admin@dataswift.com",
		Password:   "lumen99devaccess",
		Avatar:     "https://i.pravatar.cc/150?u=devteam",
		Role:       models.RoleAdmin,
		JoinedDate: "01-Jan-2023",
	})
	require.NoError(t, err)

	r := gin.New()
	server.SetupRoutes(r, st)
	return r, st
}

func doRequest(t *testing.T, r *gin.Engine, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

type loginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
	View  models.View `json:"view"`
}

func loginAs(t *testing.T, r *gin.Engine, identifier, password string) loginResponse {
	t.Helper()
	w := doRequest(t, r, http.MethodPost, "/v1/login", "", gin.H{
		"identifier": identifier,
		"password":   password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp loginResponse
	decodeBody(t, w, &resp)
	require.NotEmpty(t, resp.Token)
	return resp
}

func signupUser(t *testing.T, r *gin.Engine, name, phone, password string) loginResponse {
	t.Helper()
	w := doRequest(t, r, http.MethodPost, "/v1/login", "", gin.H{
		"identifier": phone,
		"password":   password,
		"name":       name,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp loginResponse
	decodeBody(t, w, &resp)
	require.NotEmpty(t, resp.Token)
	return resp
}

func seededPlan(t *testing.T, st *store.Store, network models.Network, size string) models.DataPlan {
	t.Helper()
	for _, p := range st.Plans() {
		if p.Network == network && p.Size == size {
			return p
		}
	}
	t.Fatalf("seed catalog missing %s %s", network, size)
	return models.DataPlan{}
}
