package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeOpenAPI3Spec(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/openapi.json", nil)
	req.Host = "ledger.example.com"
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, ServeOpenAPI3Spec(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var spec OpenAPI3Spec
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &spec))
	assert.Equal(t, "3.0.3", spec.OpenAPI)
	assert.Contains(t, spec.Paths, "/ledger/goal")

	schemas, ok := spec.Components["schemas"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, schemas, "domain.LedgerView")

	// No Swagger 2.0 refs survive the conversion
	assert.False(t, strings.Contains(rec.Body.String(), "#/definitions/"))

	require.Len(t, spec.Servers, 2)
	assert.Equal(t, "http://ledger.example.com/api/v1", spec.Servers[1].URL)
}

func TestTransformParameter_PathParam(t *testing.T) {
	param := map[string]interface{}{
		"name":     "platform",
		"in":       "path",
		"required": true,
		"type":     "string",
		"enum":     []interface{}{"Zomato", "Swiggy"},
	}

	result := transformParameter(param)

	assert.Equal(t, "platform", result["name"])
	schema, ok := result["schema"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "string", schema["type"])
	assert.NotContains(t, result, "type")
}
