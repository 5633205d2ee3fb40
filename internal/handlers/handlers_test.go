package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/alimgiray/demography/internal/repositories"
	"github.com/alimgiray/demography/internal/services"
	"github.com/alimgiray/demography/pkg/database"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open(filepath.Join(t.TempDir(), "persons.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := repositories.NewPersonRepository(db)
	personService := services.NewPersonService(repo, services.NewQueryService(repo, nil), services.NewDemographyService(repo, nil), nil)

	router := gin.New()
	RegisterPersonRoutes(router, personService, 20)
	router.GET("/health", NewHealthHandler(db).HealthCheck)
	router.NoRoute(NotFound)
	return router
}

func doRequest(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, _ := json.Marshal(b)
		reader = bytes.NewReader(data)
	}

	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func personPayload(name string, height float64, nationality, eyeColor string) map[string]any {
	p := map[string]any{
		"name":        name,
		"coordinates": map[string]any{"x": 1.5, "y": 2},
		"height":      height,
		"birthday":    "1990-01-02",
		"nationality": nationality,
		"location":    map[string]any{"x": 3, "y": 4, "name": "Rome"},
	}
	if eyeColor != "" {
		p["eyeColor"] = eyeColor
	}
	return p
}
