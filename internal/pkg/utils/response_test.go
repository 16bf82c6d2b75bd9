package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/place-discovery/internal/pkg/errors"
)

func TestSendError(t *testing.T) {
	app := fiber.New()
	app.Get("/wrapped", func(c *fiber.Ctx) error {
		return SendError(c, fmt.Errorf("load page: %w", errors.ErrQueryFailed.Wrap(assert.AnError)))
	})
	app.Get("/unknown", func(c *fiber.Ctx) error {
		return SendError(c, assert.AnError)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/wrapped", nil))
	require.NoError(t, err)
	assert.Equal(t, 502, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var payload map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "QUERY_FAILED", payload["error"]["code"])

	resp, err = app.Test(httptest.NewRequest("GET", "/unknown", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
}

func TestSendSuccess(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		hasMore := false
		return SendSuccess(c, []string{"a"}, &Meta{Total: 1, HasMore: &hasMore})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"data":["a"],"meta":{"total":1,"has_more":false}}`, string(body))
}

func TestValidateRadius(t *testing.T) {
	assert.True(t, ValidateRadius(10000))
	assert.False(t, ValidateRadius(50))
	assert.False(t, ValidateRadius(200000))
	assert.True(t, ValidateCoordinates(13.0246, 77.7626))
	assert.False(t, ValidateCoordinates(91, 0))
}
