package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/agenthands/mirage/internal/eval"
	"github.com/agenthands/mirage/internal/record"
)

func seededServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := record.NewStore(t.TempDir())

	base := []record.QueryRecord{
		{Model: "gpt-4o", Prompt: "baseline", Filename: "a.jpg", Foldername: "person", Object: "dog", Flag: 0, GPTRawAnswer: "no"},
		{Model: "gpt-4o", Prompt: "baseline", Filename: "b.jpg", Foldername: "car", Object: "cat", Flag: 0, GPTRawAnswer: "yes"},
	}
	variant := []record.QueryRecord{
		{Model: "gpt-4o", Prompt: "misleading1", Filename: "a.jpg", Foldername: "person", Object: "dog", Flag: 0, GPTRawAnswer: "yes"},
		{Model: "gpt-4o", Prompt: "misleading1", Filename: "b.jpg", Foldername: "car", Object: "cat", Flag: 0, GPTRawAnswer: "no"},
	}
	_, err := store.Save("gpt-4o", "baseline", base)
	require.NoError(t, err)
	_, err = store.Save("gpt-4o", "misleading1", variant)
	require.NoError(t, err)

	return NewServer(store, zaptest.NewLogger(t))
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	s.SetupRouter().ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	w := get(t, seededServer(t), "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOverallMetricsEndpoint(t *testing.T) {
	w := get(t, seededServer(t), "/api/v1/metrics/overall")
	require.Equal(t, http.StatusOK, w.Code)

	var rows []eval.RateRow
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "baseline", rows[0].Prompt)
	assert.Equal(t, 2, rows[0].Total)
	assert.Equal(t, 1, rows[0].FalsePositives)
}

func TestObjectMetricsEndpoint(t *testing.T) {
	w := get(t, seededServer(t), "/api/v1/metrics/objects")
	require.Equal(t, http.StatusOK, w.Code)

	var rows []eval.RateRow
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	assert.Len(t, rows, 4)
}

func TestFolderMetricsEndpoint(t *testing.T) {
	w := get(t, seededServer(t), "/api/v1/metrics/folders")
	require.Equal(t, http.StatusOK, w.Code)

	var rows []eval.RateRow
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	assert.Len(t, rows, 4)
	for _, row := range rows {
		assert.NotEmpty(t, row.Foldername)
	}
}

func TestCasesEndpoint(t *testing.T) {
	w := get(t, seededServer(t), "/api/v1/cases?model=gpt-4o&variant=misleading1")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Induced   []eval.Transition `json:"induced"`
		Corrected []eval.Transition `json:"corrected"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Induced, 1)
	assert.Equal(t, "a.jpg", body.Induced[0].Filename)
	require.Len(t, body.Corrected, 1)
	assert.Equal(t, "b.jpg", body.Corrected[0].Filename)
}

func TestCasesEndpointRequiresParams(t *testing.T) {
	w := get(t, seededServer(t), "/api/v1/cases")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCasesEndpointUnknownVariant(t *testing.T) {
	w := get(t, seededServer(t), "/api/v1/cases?model=gpt-4o&variant=mitigate1")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
