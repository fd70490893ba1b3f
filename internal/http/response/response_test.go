package response_test

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/user-accounts/internal/http/response"
)

func TestError(t *testing.T) {
	resp := response.Error("invalid request body")

	assert.Equal(t, response.StatusError, resp.Status)
	assert.Equal(t, "invalid request body", resp.Error)
}

func TestOKWithData(t *testing.T) {
	resp := response.OKWithData(map[string]any{"status": "ok"})

	assert.Equal(t, response.StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
	assert.NotNil(t, resp.Data)
}

func TestValidationError_RequiredFields(t *testing.T) {
	type request struct {
		Username string `validate:"required"`
		Password string `validate:"required"`
	}

	err := validator.New().Struct(request{})
	require.Error(t, err)

	resp := response.ValidationError(err.(validator.ValidationErrors))

	assert.Equal(t, response.StatusError, resp.Status)
	assert.Equal(t, "field Username is a required field, field Password is a required field", resp.Error)
}
