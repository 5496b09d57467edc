package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/viniciusth/suffixindex/internal/libs/obs"
	"github.com/viniciusth/suffixindex/internal/search"
)

func setupTestRouter(t *testing.T, limiter *rate.Limiter) *chi.Mux {
	t.Helper()

	obs.InitLogger("error") // Quiet logs during tests
	logger := obs.Logger("test")

	svc, err := search.Build(
		[]string{"Hello world Hello", "Fellow", "Yellow", "Hero"},
		search.IndexOptions{},
		search.DefaultOptions(),
		logger,
	)
	require.NoError(t, err)

	return NewRouter(NewHandler(svc, logger), limiter)
}

func get(t *testing.T, router http.Handler, target string, out interface{}) int {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if out != nil {
		require.NoError(t, json.NewDecoder(w.Body).Decode(out))
	}
	return w.Code
}

func TestHandleHealth(t *testing.T) {
	router := setupTestRouter(t, nil)

	var resp HealthResponse
	require.Equal(t, http.StatusOK, get(t, router, "/health", &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, 4, resp.StringCount)
	assert.Equal(t, 17+6+6+4+4, resp.SuffixCount)
}

func TestHandleSearch(t *testing.T) {
	router := setupTestRouter(t, nil)

	var resp SearchResponse
	require.Equal(t, http.StatusOK, get(t, router, "/search?q=ello", &resp))
	assert.Equal(t, "ello", resp.Query)
	assert.Equal(t, 3, resp.Count)
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, SearchItem{ID: 0, Text: "Hello world Hello", Positions: []int{1, 13}}, resp.Results[0])

	resp = SearchResponse{}
	require.Equal(t, http.StatusOK, get(t, router, "/search?q=ello&limit=2", &resp))
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, 3, resp.Total)
}

func TestHandleSearchEmptyQuery(t *testing.T) {
	router := setupTestRouter(t, nil)

	var resp SearchResponse
	require.Equal(t, http.StatusOK, get(t, router, "/search?q=", &resp))
	assert.Empty(t, resp.Results)
	assert.Zero(t, resp.Total)
}

func TestHandleSearchInvalidLimit(t *testing.T) {
	router := setupTestRouter(t, nil)

	for _, limit := range []string{"abc", "-1"} {
		var resp ErrorResponse
		require.Equal(t, http.StatusBadRequest, get(t, router, "/search?q=ello&limit="+limit, &resp))
		assert.Equal(t, "INVALID_LIMIT", resp.Code)
	}
}

func TestHandleMatch(t *testing.T) {
	router := setupTestRouter(t, nil)

	var resp MatchResponse
	require.Equal(t, http.StatusOK, get(t, router, "/match?q=llow", &resp))
	assert.ElementsMatch(t, []string{"Fellow", "Yellow"}, resp.Matches)

	resp = MatchResponse{}
	require.Equal(t, http.StatusOK, get(t, router, "/match?q=zzz", &resp))
	assert.NotNil(t, resp.Matches)
	assert.Zero(t, resp.Count)
}

func TestHandleRankAndSelect(t *testing.T) {
	router := setupTestRouter(t, nil)

	var rank RankResponse
	require.Equal(t, http.StatusOK, get(t, router, "/rank?q=ello", &rank))

	var sel SelectResponse
	require.Equal(t, http.StatusOK, get(t, router, "/select/"+strconv.Itoa(rank.Rank), &sel))
	assert.Equal(t, "ello", sel.Suffix)

	var errResp ErrorResponse
	require.Equal(t, http.StatusNotFound, get(t, router, "/select/1000", &errResp))
	assert.Equal(t, "RANK_OUT_OF_RANGE", errResp.Code)

	errResp = ErrorResponse{}
	require.Equal(t, http.StatusBadRequest, get(t, router, "/select/first", &errResp))
	assert.Equal(t, "INVALID_RANK", errResp.Code)
}

func TestRateLimit(t *testing.T) {
	router := setupTestRouter(t, rate.NewLimiter(rate.Every(1<<62), 2))

	assert.Equal(t, http.StatusOK, get(t, router, "/search?q=He", nil))
	assert.Equal(t, http.StatusOK, get(t, router, "/search?q=Hel", nil))

	var resp ErrorResponse
	assert.Equal(t, http.StatusTooManyRequests, get(t, router, "/search?q=Hell", &resp))
	assert.Equal(t, "RATE_LIMITED", resp.Code)

	// Health checks bypass the limiter.
	assert.Equal(t, http.StatusOK, get(t, router, "/health", nil))
}

func TestNewLimiter(t *testing.T) {
	assert.Nil(t, NewLimiter(0, 10))
	l := NewLimiter(5, 3)
	require.NotNil(t, l)
	assert.Equal(t, 3, l.Burst())
}
