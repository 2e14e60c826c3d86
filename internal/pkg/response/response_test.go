package response

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	apperrors "github.com/xyz-asif/foundit/pkg/errors"
)

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestSuccessAndErrorResponses(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Success(c, map[string]string{"foo": "bar"})
	require.Equal(t, 200, w.Code)
	body := decode(t, w)
	require.Equal(t, "success", body["status"])
	require.Contains(t, body, "data")

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	Error(c, 400, "bad request", "BAD_REQ")
	require.Equal(t, 400, w.Code)
	body = decode(t, w)
	require.Equal(t, "bad request", body["error"])
	require.Equal(t, "BAD_REQ", body["code"])
	require.NotContains(t, body, "fields")
}

func TestServiceErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	backend := errors.New("E11000 connection reset by peer")

	cases := []struct {
		err    error
		status int
		code   string
	}{
		{apperrors.Validation("op", []string{"itemName"}), 422, "VALIDATION_FAILED"},
		{apperrors.Unauthenticated("op"), 401, "AUTH_REQUIRED"},
		{apperrors.Upload("op", backend), 502, "UPLOAD_FAILED"},
		{apperrors.Persist("op", backend), 500, "PERSIST_FAILED"},
		{apperrors.Fetch("op", backend), 503, "FETCH_FAILED"},
		{backend, 500, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		ServiceError(c, tc.err)

		require.Equal(t, tc.status, w.Code, tc.code)
		body := decode(t, w)
		require.Equal(t, tc.code, body["code"])
		require.NotContains(t, body["error"], "E11000")
	}
}

func TestServiceErrorListsMissingFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ServiceError(c, apperrors.Validation("op", []string{"foundLocation", "retrieveLocation"}))
	body := decode(t, w)
	require.Equal(t, []any{"foundLocation", "retrieveLocation"}, body["fields"])
}
