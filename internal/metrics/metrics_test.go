package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSearch(t *testing.T) {
	t.Parallel()

	m := New()
	m.RecordSearch("mcp", StatusOK, 3*time.Millisecond, 4)
	m.RecordSearch("mcp", StatusOK, time.Millisecond, 2)
	m.RecordSearch("http", StatusInvalid, time.Millisecond, 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SearchRequestsTotal.WithLabelValues("mcp", StatusOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchRequestsTotal.WithLabelValues("http", StatusInvalid)))
	assert.Equal(t, 2, testutil.CollectAndCount(m.SearchDuration))
}

func TestRecordLoad(t *testing.T) {
	t.Parallel()

	m := New()
	m.RecordLoad(12, 2)

	assert.Equal(t, 12.0, testutil.ToFloat64(m.DocumentsIndexed))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.DocumentLoadErrorsTotal))
}

func TestInstancesAreIndependent(t *testing.T) {
	t.Parallel()

	a, b := New(), New()
	a.RecordLoad(5, 0)

	assert.Equal(t, 5.0, testutil.ToFloat64(a.DocumentsIndexed))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.DocumentsIndexed))
}

func TestHandler(t *testing.T) {
	t.Parallel()

	m := New()
	m.RecordSearch("rpc", StatusOK, time.Millisecond, 1)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `lightmcp_search_requests_total{route="rpc",status="ok"} 1`)
	assert.Contains(t, string(body), "lightmcp_documents_indexed")
}
