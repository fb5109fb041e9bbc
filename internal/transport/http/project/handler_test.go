package project_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Additional-Code/bidentry/internal/config"
	"github.com/Additional-Code/bidentry/internal/database"
	repo "github.com/Additional-Code/bidentry/internal/repository/project"
	"github.com/Additional-Code/bidentry/internal/seeddata"
	"github.com/Additional-Code/bidentry/internal/seeder"
	service "github.com/Additional-Code/bidentry/internal/service/project"
	"github.com/Additional-Code/bidentry/internal/testutil"
	transport "github.com/Additional-Code/bidentry/internal/transport/http/project"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Meta    map[string]any  `json:"meta"`
	Error   struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	} `json:"error"`
}

func newServer(t *testing.T, seed bool) *echo.Echo {
	t.Helper()
	conns := testutil.NewSQLite(t)
	if seed {
		data := seeddata.Data{
			Projects:  []seeddata.Project{{Name: "Library Annex"}, {Name: "Fire Station 4"}},
			Proposals: []seeddata.Proposal{},
		}
		require.NoError(t, seeder.New(database.NewContext(conns), data).Initialize(context.Background()))
	}

	svc := service.NewService(service.Params{
		Repository: repo.NewRepository(conns),
		Config:     config.Config{},
		Logger:     zap.NewNop(),
	})
	e := echo.New()
	transport.Register(e, transport.NewHandler(svc))
	return e
}

func do(t *testing.T, e *echo.Echo, target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	var body envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestListProjects(t *testing.T) {
	rec, body := do(t, newServer(t, true), "/projects")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, body.Success)
	assert.EqualValues(t, 2, body.Meta["count"])

	var projects []map[string]any
	require.NoError(t, json.Unmarshal(body.Data, &projects))
	require.Len(t, projects, 2)
	assert.Equal(t, "Library Annex", projects[0]["name"])
	assert.Contains(t, projects[0], "created_at")
}

func TestGetProject(t *testing.T) {
	e := newServer(t, true)

	rec, body := do(t, e, "/projects/2")
	assert.Equal(t, http.StatusOK, rec.Code)
	var project map[string]any
	require.NoError(t, json.Unmarshal(body.Data, &project))
	assert.Equal(t, "Fire Station 4", project["name"])

	rec, body = do(t, e, "/projects/99")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", body.Error.Kind)

	rec, body = do(t, e, "/projects/abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad_request", body.Error.Kind)
}

func TestUnseededDatabaseReturns503(t *testing.T) {
	rec, body := do(t, newServer(t, false), "/projects")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.False(t, body.Success)
	assert.Equal(t, "unavailable", body.Error.Kind)
}
