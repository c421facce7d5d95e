package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jsphweid/tranhdex/analysis"
	"github.com/jsphweid/tranhdex/config"
	"github.com/jsphweid/tranhdex/model"
	"github.com/jsphweid/tranhdex/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var scorePath = filepath.Join("..", "musicxml", "testdata", "ly_ngua_o.musicxml")

func newTestServer(t *testing.T) http.Handler {
	cat, err := store.OpenCatalog(t.TempDir())
	require.NoError(t, err)
	return NewServer(cat, analysis.OptionsFromConfig(config.Default()), 2).Handler([]string{"*"})
}

func do(t *testing.T, h http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func upload(t *testing.T, h http.Handler) analysis.Summary {
	score, err := os.ReadFile(scorePath)
	require.NoError(t, err)
	w := do(t, h, http.MethodPost, "/analyses?source=ly_ngua_o", score)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var s analysis.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &s))
	return s
}

func TestUploadAndList(t *testing.T) {
	h := newTestServer(t)
	s := upload(t, h)
	assert := assert.New(t)
	assert.Equal("ly_ngua_o", s.Source)
	assert.Equal(5, s.TotalNotes)

	w := do(t, h, http.MethodGet, "/analyses", nil)
	assert.Equal(http.StatusOK, w.Code)
	var entries []model.CatalogEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(s.ID, entries[0].ID)

	w = do(t, h, http.MethodGet, "/analyses/"+s.ID, nil)
	assert.Equal(http.StatusOK, w.Code)
}

func TestQueryEndpoint(t *testing.T) {
	h := newTestServer(t)
	s := upload(t, h)

	body, _ := json.Marshal(model.QueryRequestBody{Kind: model.PitchKind, N: 1, MinCount: 2})
	w := do(t, h, http.MethodPost, "/analyses/"+s.ID+"/query", body)
	require.Equal(t, http.StatusOK, w.Code)

	var res []model.PatternResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Len(t, res, 1)
	assert.Equal(t, []string{"E5"}, res[0].Gram)
	assert.Equal(t, 2, res[0].Count)
	assert.Equal(t, []int{0, 3}, res[0].Positions)
}

func TestSectionsAndVariationsEndpoints(t *testing.T) {
	h := newTestServer(t)
	s := upload(t, h)

	w := do(t, h, http.MethodPost, "/analyses/"+s.ID+"/sections", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "["))

	body, _ := json.Marshal(model.VariationsRequestBody{Pattern: []string{"E5", "G5"}, Similarity: 0.3})
	w = do(t, h, http.MethodPost, "/analyses/"+s.ID+"/variations", body)
	assert.Equal(t, http.StatusOK, w.Code)
	var res []model.Variation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.NotEmpty(t, res)
}

func TestSyllablesAndOrnaments(t *testing.T) {
	h := newTestServer(t)
	s := upload(t, h)

	w := do(t, h, http.MethodGet, "/analyses/"+s.ID+"/syllables", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var syllables []model.Syllable
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &syllables))
	assert.Len(t, syllables, 3)

	w = do(t, h, http.MethodGet, "/analyses/"+s.ID+"/ornaments", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var report map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.EqualValues(t, 1, report["total_grace_clusters"])
}

func TestErrorResponses(t *testing.T) {
	h := newTestServer(t)
	s := upload(t, h)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"unknown id", http.MethodGet, "/analyses/nope", "", http.StatusNotFound},
		{"unknown id query", http.MethodPost, "/analyses/nope/query", `{"n":2}`, http.StatusNotFound},
		{"bad json", http.MethodPost, "/analyses/" + s.ID + "/query", `{"n":`, http.StatusBadRequest},
		{"bad kind", http.MethodPost, "/analyses/" + s.ID + "/query", `{"kind":"timbre"}`, http.StatusBadRequest},
		{"missing pattern", http.MethodPost, "/analyses/" + s.ID + "/variations", `{}`, http.StatusBadRequest},
		{"not a score", http.MethodPost, "/analyses", `<score-timewise/>`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, tt.method, tt.path, []byte(tt.body))
			assert.Equal(t, tt.status, w.Code)
			var e model.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
			assert.NotEmpty(t, e.Error)
		})
	}
}

func TestCORS(t *testing.T) {
	h := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/analyses", nil)
	req.Header.Set("Origin", "http://example.com")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
