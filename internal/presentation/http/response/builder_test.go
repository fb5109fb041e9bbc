package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Additional-Code/bidentry/internal/presentation/http/response"
	"github.com/Additional-Code/bidentry/pkg/errorbank"
)

func render(t *testing.T, build func(c echo.Context) error) (int, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, build(c))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestSuccessList(t *testing.T) {
	status, body := render(t, func(c echo.Context) error {
		return response.New(c).WithList([]string{"a", "b"}, 2).Build()
	})

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, []any{"a", "b"}, body["data"])
	assert.Equal(t, map[string]any{"count": float64(2)}, body["meta"])
	assert.NotContains(t, body, "error")
}

func TestErrorUsesKindStatusAndHidesCause(t *testing.T) {
	status, body := render(t, func(c echo.Context) error {
		err := errorbank.Unavailable("database has not been seeded", errorbank.WithCause(errors.New("no such table: project")))
		return response.New(c).WithData("ignored").WithError(err).Build()
	})

	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, false, body["success"])
	assert.NotContains(t, body, "data")
	assert.Equal(t, map[string]any{
		"kind":    "unavailable",
		"message": "database has not been seeded",
	}, body["error"])
}

func TestPlainErrorIsInternal(t *testing.T) {
	status, body := render(t, func(c echo.Context) error {
		return response.New(c).WithError(errors.New("boom")).Build()
	})

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal", body["error"].(map[string]any)["kind"])
}

func TestExplicitStatus(t *testing.T) {
	status, _ := render(t, func(c echo.Context) error {
		return response.New(c).WithStatus(http.StatusAccepted).WithData("ok").Build()
	})
	assert.Equal(t, http.StatusAccepted, status)
}
