package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/inclusive-studai/internal/domain/entity"
)

var courses = []entity.Course{
	{ID: "c1", Name: "Ingeniería de Sistemas", Code: "IS-101", Materials: []entity.Material{
		{ID: "m1", Title: "Introducción a la IA.pdf", Type: entity.MaterialPDF},
		{ID: "m2", Title: "Clase Grabada 01", Type: entity.MaterialAudio},
	}},
	{ID: "c2", Name: "Accesibilidad Digital", Code: "AD-202", Materials: []entity.Material{
		{ID: "m3", Title: "Pautas WCAG 2.1", Type: entity.MaterialText},
	}},
}

func TestMemory_Search(t *testing.T) {
	idx := NewMemory()
	require.NoError(t, idx.Index(context.Background(), courses))

	hits, err := idx.Search(context.Background(), "wcag", 0)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "m3", hits[0].Material.ID)
	assert.Equal(t, "AD-202", hits[0].CourseCode)

	// course fields match every material of the course
	hits, _ = idx.Search(context.Background(), "is-101", 0)
	assert.Len(t, hits, 2)

	hits, _ = idx.Search(context.Background(), "  ", 0)
	assert.Empty(t, hits)

	hits, _ = idx.Search(context.Background(), "a", 1)
	assert.Len(t, hits, 1)
}

func TestMemory_IndexReplaces(t *testing.T) {
	idx := NewMemory()
	require.NoError(t, idx.Index(context.Background(), courses))
	require.NoError(t, idx.Index(context.Background(), courses[:1]))

	hits, _ := idx.Search(context.Background(), "wcag", 0)
	assert.Empty(t, hits)
}

type fakeES struct {
	mu       sync.Mutex
	indexed  []string
	lastBody map[string]any
}

func (f *fakeES) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")
	f.mu.Lock()
	defer f.mu.Unlock()
	switch {
	case strings.HasSuffix(r.URL.Path, "/_search"):
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &f.lastBody)
		_, _ = w.Write([]byte(`{"hits":{"hits":[{"_source":{"course_id":"c2","course_name":"Accesibilidad Digital","course_code":"AD-202","material_id":"m3","title":"Pautas WCAG 2.1","type":"text"}}]}}`))
	case strings.Contains(r.URL.Path, "/_doc/"):
		f.indexed = append(f.indexed, r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{}`))
	}
}

func newFakeES(t *testing.T) (*fakeES, *elasticsearch.Client) {
	t.Helper()
	f := &fakeES{}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return f, es
}

func TestElastic_IndexOneDocumentPerMaterial(t *testing.T) {
	f, es := newFakeES(t)
	idx := NewElastic(es, "materials", nil)

	require.NoError(t, idx.Index(context.Background(), courses))

	require.Len(t, f.indexed, 3)
	assert.Equal(t, "/materials/_doc/c1:m1", f.indexed[0])
	assert.Equal(t, "/materials/_doc/c2:m3", f.indexed[2])
}

func TestElastic_Search(t *testing.T) {
	f, es := newFakeES(t)
	idx := NewElastic(es, "materials", nil)

	hits, err := idx.Search(context.Background(), "wcag", 500)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, entity.Material{ID: "m3", Title: "Pautas WCAG 2.1", Type: entity.MaterialText}, hits[0].Material)
	assert.Equal(t, "c2", hits[0].CourseID)
	assert.EqualValues(t, 10, f.lastBody["size"])
}
