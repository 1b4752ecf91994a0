// Package search provides course material indexes for free-text lookup.
package search

import (
	"context"
	"strings"
	"sync"

	"github.com/oksasatya/inclusive-studai/internal/domain/entity"
	"github.com/oksasatya/inclusive-studai/internal/domain/repository"
)

const (
	defaultSize = 10
	maxSize     = 50
)

func clampSize(size int) int {
	if size <= 0 || size > maxSize {
		return defaultSize
	}
	return size
}

// Memory matches case-insensitive substrings of the material title,
// course name and course code. Results keep course and material order.
type Memory struct {
	mu   sync.RWMutex
	hits []repository.MaterialHit
}

func NewMemory() *Memory { return &Memory{} }

// Index replaces the indexed materials with those of courses.
func (m *Memory) Index(_ context.Context, courses []entity.Course) error {
	hits := flatten(courses)
	m.mu.Lock()
	m.hits = hits
	m.mu.Unlock()
	return nil
}

func (m *Memory) Search(_ context.Context, query string, size int) ([]repository.MaterialHit, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	size = clampSize(size)
	out := []repository.MaterialHit{}
	if q == "" {
		return out, nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, h := range m.hits {
		if len(out) == size {
			break
		}
		if strings.Contains(strings.ToLower(h.Material.Title), q) ||
			strings.Contains(strings.ToLower(h.CourseName), q) ||
			strings.Contains(strings.ToLower(h.CourseCode), q) {
			out = append(out, h)
		}
	}
	return out, nil
}

func flatten(courses []entity.Course) []repository.MaterialHit {
	var hits []repository.MaterialHit
	for _, c := range courses {
		for _, mat := range c.Materials {
			hits = append(hits, repository.MaterialHit{
				CourseID:   c.ID,
				CourseName: c.Name,
				CourseCode: c.Code,
				Material:   mat,
			})
		}
	}
	return hits
}

var _ repository.MaterialIndex = (*Memory)(nil)
