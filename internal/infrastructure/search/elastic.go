package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/inclusive-studai/internal/domain/entity"
	"github.com/oksasatya/inclusive-studai/internal/domain/repository"
)

// Elastic stores one document per material in index.
type Elastic struct {
	es     *elasticsearch.Client
	index  string
	logger *logrus.Logger
}

func NewElastic(es *elasticsearch.Client, index string, logger *logrus.Logger) *Elastic {
	return &Elastic{es: es, index: index, logger: logger}
}

type materialDoc struct {
	CourseID   string              `json:"course_id"`
	CourseName string              `json:"course_name"`
	CourseCode string              `json:"course_code"`
	MaterialID string              `json:"material_id"`
	Title      string              `json:"title"`
	Type       entity.MaterialType `json:"type"`
}

func (d materialDoc) hit() repository.MaterialHit {
	return repository.MaterialHit{
		CourseID:   d.CourseID,
		CourseName: d.CourseName,
		CourseCode: d.CourseCode,
		Material:   entity.Material{ID: d.MaterialID, Title: d.Title, Type: d.Type},
	}
}

// Index upserts every material of courses. The last request waits for a
// refresh so the documents are searchable on return.
func (e *Elastic) Index(ctx context.Context, courses []entity.Course) error {
	hits := flatten(courses)
	for i, h := range hits {
		doc := materialDoc{
			CourseID:   h.CourseID,
			CourseName: h.CourseName,
			CourseCode: h.CourseCode,
			MaterialID: h.Material.ID,
			Title:      h.Material.Title,
			Type:       h.Material.Type,
		}
		b, _ := json.Marshal(doc)
		refresh := "false"
		if i == len(hits)-1 {
			refresh = "wait_for"
		}
		req := esapi.IndexRequest{
			Index:      e.index,
			DocumentID: h.CourseID + ":" + h.Material.ID,
			Body:       bytes.NewReader(b),
			Refresh:    refresh,
		}
		if err := e.do(ctx, req, h.Material.ID); err != nil {
			return err
		}
	}
	return nil
}

func (e *Elastic) do(ctx context.Context, req esapi.IndexRequest, materialID string) error {
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, e.es)
	if err != nil {
		return fmt.Errorf("index material %s: %w", materialID, err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		if e.logger != nil {
			e.logger.WithField("status", res.Status()).WithField("material_id", materialID).Warn("es index response error")
		}
		return fmt.Errorf("index material %s: %s", materialID, res.Status())
	}
	return nil
}

// Search performs a multi_match on the material title and course fields.
func (e *Elastic) Search(ctx context.Context, q string, size int) ([]repository.MaterialHit, error) {
	out := []repository.MaterialHit{}
	if q == "" {
		return out, nil
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "course_name", "course_code"},
			},
		},
		"size": clampSize(size),
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := e.es.Search(e.es.Search.WithContext(c), e.es.Search.WithIndex(e.index), e.es.Search.WithBody(bytes.NewReader(b)))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("search materials: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source materialDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source.hit())
	}
	return out, nil
}

var _ repository.MaterialIndex = (*Elastic)(nil)
