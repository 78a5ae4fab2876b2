package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stockroom/backend/internal/domain/shared"
	"github.com/stockroom/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestBaseHandlerSuccess(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	h.Success(c, map[string]string{"key": "value"})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
}

func TestBaseHandlerHandleError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedErr  string
	}{
		{
			name:         "not found maps to 404",
			err:          shared.ErrNotFound,
			expectedCode: http.StatusNotFound,
			expectedErr:  "NOT_FOUND",
		},
		{
			name:         "insufficient stock maps to 422",
			err:          shared.ErrInsufficientStock,
			expectedCode: http.StatusUnprocessableEntity,
			expectedErr:  "INSUFFICIENT_STOCK",
		},
		{
			name:         "invalid state maps to 422",
			err:          shared.ErrInvalidState,
			expectedCode: http.StatusUnprocessableEntity,
			expectedErr:  "INVALID_STATE",
		},
		{
			name:         "concurrency conflict maps to 409",
			err:          shared.ErrConcurrencyConflict,
			expectedCode: http.StatusConflict,
			expectedErr:  "CONCURRENCY_CONFLICT",
		},
		{
			name:         "storage error maps to 500 without detail",
			err:          shared.NewStorageError("product.Save", assert.AnError),
			expectedCode: http.StatusInternalServerError,
			expectedErr:  "STORAGE_ERROR",
		},
		{
			name:         "unknown error maps to 500",
			err:          assert.AnError,
			expectedCode: http.StatusInternalServerError,
			expectedErr:  "INTERNAL_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/", nil)

			h.HandleError(c, tt.err)

			assert.Equal(t, tt.expectedCode, w.Code)

			var resp dto.Response
			err := json.Unmarshal(w.Body.Bytes(), &resp)
			require.NoError(t, err)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.expectedErr, resp.Error.Code)
		})
	}
}

func TestBaseHandlerHandleErrorNil(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	h.HandleError(c, nil)

	// Nothing written
	assert.Empty(t, w.Body.String())
}
