package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/quill"
	"github.com/aretw0/quill/pkg/diag"
	"github.com/aretw0/quill/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	metrics := observability.NewMetrics()
	eng, err := quill.New(quill.WithSink(diag.NewRecorder()), quill.WithMetrics(metrics))
	require.NoError(t, err)
	return NewHandler(eng, WithMetrics(metrics.Handler()))
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := do(t, newTestHandler(t), "GET", "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestTokenize(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, "POST", "/tokenize", `{"line": "give \"diamond sword\" qty:3"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"tokens":["give","diamond sword","qty:3"]}`, w.Body.String())

	w = do(t, h, "POST", "/tokenize", `{"line": ""}`)
	assert.JSONEq(t, `{"tokens":[]}`, w.Body.String())

	w = do(t, h, "POST", "/tokenize", `{}`)
	assert.JSONEq(t, `{"tokens":null}`, w.Body.String(), "absent line passes through")

	w = do(t, h, "POST", "/tokenize", `{"line": 3}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, "POST", "/tokenize", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClassify(t *testing.T) {
	w := do(t, newTestHandler(t), "POST", "/classify", `{"values": ["12", "x:1.5e+3", "nope"]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp ClassifyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 3)
	assert.True(t, resp.Results[0].Integer)
	assert.True(t, resp.Results[1].Decimal)
	assert.False(t, resp.Results[1].Integer)
	assert.Equal(t, "x", resp.Results[1].Prefix)
	assert.False(t, resp.Results[2].Decimal)
}

func TestDescribe(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, "POST", "/describe", `{"kind": "item", "id": "i1", "fields": {"material": "stone", "lore": ["a;b", "c"]}}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp DescribeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "item@i1", resp.Results[0].Identity)
	assert.Equal(t, "[material=stone;lore=a\u2011b|c]", resp.Results[0].Description)

	w = do(t, h, "POST", "/describe", `[{"kind": "entity", "id": "e1"}, {"kind": "item", "id": "i2"}]`)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "[type=unknown]", resp.Results[0].Description)

	w = do(t, h, "POST", "/describe", `{"id": "missing-kind"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestHandler(t)
	do(t, h, "POST", "/tokenize", `{"line": "a b c"}`)

	w := do(t, h, "GET", "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "quill_tokenize_tokens_count 1")
}

func TestCORSPreflight(t *testing.T) {
	w := do(t, newTestHandler(t), "OPTIONS", "/tokenize", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
