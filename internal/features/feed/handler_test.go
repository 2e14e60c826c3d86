package feed

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/xyz-asif/foundit/internal/features/reports"
	apperrors "github.com/xyz-asif/foundit/pkg/errors"
)

type stubFetcher struct {
	snapshot *Snapshot
	err      error
}

func (s stubFetcher) Snapshot(context.Context) (*Snapshot, error) {
	return s.snapshot, s.err
}

func serve(f Fetcher) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/feed/recent", NewHandler(f).GetRecentFeed)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/feed/recent", nil))
	return w
}

func TestGetRecentFeed(t *testing.T) {
	since := time.Date(2024, 5, 3, 12, 0, 0, 0, time.UTC)
	w := serve(stubFetcher{snapshot: &Snapshot{
		Items: []reports.Report{{ItemName: "Keys", ReporterName: "Alice"}},
		Since: since,
		Count: 1,
	}})

	require.Equal(t, 200, w.Code)
	require.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	var body struct {
		Status string   `json:"status"`
		Data   Snapshot `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "success", body.Status)
	require.Equal(t, 1, body.Data.Count)
	require.Equal(t, since, body.Data.Since)
	require.Equal(t, "Keys", body.Data.Items[0].ItemName)
}

func TestGetRecentFeed_EmptyIsArray(t *testing.T) {
	w := serve(stubFetcher{snapshot: &Snapshot{Items: []reports.Report{}}})
	require.Equal(t, 200, w.Code)
	require.Contains(t, w.Body.String(), `"items":[]`)
}

func TestGetRecentFeed_FetchFailed(t *testing.T) {
	w := serve(stubFetcher{err: apperrors.Fetch("feed.FetchRecent", errors.New("mongo down"))})
	require.Equal(t, 503, w.Code)
	require.Contains(t, w.Body.String(), "FETCH_FAILED")
	require.NotContains(t, w.Body.String(), "mongo down")
}
