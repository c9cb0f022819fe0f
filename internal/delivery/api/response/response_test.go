package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	deliverycontext "warden/internal/delivery/context"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext() (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	deliverycontext.SetRequestID(c, "req-1")

	return c, rec
}

func TestSuccess(t *testing.T) {
	c, rec := newContext()

	require.NoError(t, Success(c, http.StatusCreated, map[string]string{"id": "1"}))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"data":{"id":"1"},"meta":{"request_id":"req-1"}}`, rec.Body.String())
}

func TestError_DetailsVisibility(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   string
	}{
		{
			name:   "client error keeps details",
			status: http.StatusBadRequest,
			want:   `{"error":{"code":"C","message":"m","details":"d"},"meta":{"request_id":"req-1"}}`,
		},
		{
			name:   "unauthorized drops details",
			status: http.StatusUnauthorized,
			want:   `{"error":{"code":"C","message":"m"},"meta":{"request_id":"req-1"}}`,
		},
		{
			name:   "server error drops details",
			status: http.StatusInternalServerError,
			want:   `{"error":{"code":"C","message":"m"},"meta":{"request_id":"req-1"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newContext()

			require.NoError(t, Error(c, tt.status, "C", "m", "d"))

			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, tt.want, rec.Body.String())
		})
	}
}
