package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DjordjeVuckovic/posts-feed/internal/apperr"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidation(t *testing.T) {
	err := apperr.NewValidation("take must be a positive integer")

	assert.Equal(t, "take must be a positive integer", err.Error())
	assert.Nil(t, err.Unwrap())
}

func TestNewValidationWrap(t *testing.T) {
	inner := fmt.Errorf("strconv.ParseInt: parsing \"abc\": invalid syntax")
	err := apperr.NewValidationWrap("where__id_less_than must be an integer", inner)

	assert.Equal(t, "where__id_less_than must be an integer: "+inner.Error(), err.Error())
	assert.True(t, errors.Is(err, inner))
}

func TestValidationError_SurvivesFmtWrapping(t *testing.T) {
	original := apperr.NewValidation("order__createdAt must be ASC or DESC")

	wrapped := fmt.Errorf("failed to parse params: %w", original)
	doubleWrapped := fmt.Errorf("paginate posts: %w", wrapped)

	var ve *apperr.ValidationError
	require.True(t, errors.As(doubleWrapped, &ve))
	assert.Equal(t, "order__createdAt must be ASC or DESC", ve.Message)
}

func TestValidationError_NotFoundForPlainErrors(t *testing.T) {
	wrapped := fmt.Errorf("storage error: %w", fmt.Errorf("database connection failed"))

	var ve *apperr.ValidationError
	assert.False(t, errors.As(wrapped, &ve))
}

func TestNotFoundError(t *testing.T) {
	err := apperr.NewNotFound("post", 42)

	assert.Equal(t, "post 42 not found", err.Error())

	var nf *apperr.NotFoundError
	require.True(t, errors.As(fmt.Errorf("get: %w", err), &nf))
	assert.Equal(t, int64(42), nf.ID)
}

func TestStoreError(t *testing.T) {
	inner := errors.New("connection refused")
	err := apperr.NewStore("query", inner)

	assert.Equal(t, "store query: connection refused", err.Error())
	assert.ErrorIs(t, err, inner)
}

func TestGlobalErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "validation error",
			err:        fmt.Errorf("parse: %w", apperr.NewValidation("take must be a positive integer")),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"take must be a positive integer","title":"validation error"}`,
		},
		{
			name:       "validation cause stays out of the body",
			err:        apperr.NewValidationWrap("take must be a positive integer", errors.New(`strconv.Atoi: parsing "ten": invalid syntax`)),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"take must be a positive integer","title":"validation error"}`,
		},
		{
			name:       "not found",
			err:        apperr.NewNotFound("post", 7),
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"post 7 not found","title":"not found"}`,
		},
		{
			name:       "store error hides cause",
			err:        apperr.NewStore("query", errors.New("dial tcp: refused")),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"storage unavailable","title":"store error"}`,
		},
		{
			name:       "echo http error",
			err:        echo.NewHTTPError(http.StatusMethodNotAllowed, "method not allowed"),
			wantStatus: http.StatusMethodNotAllowed,
			wantBody:   `{"error":"method not allowed"}`,
		},
		{
			name:       "unknown error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/posts", nil), rec)

			apperr.GlobalErrorHandler()(tt.err, c)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
