package repository

import (
	"context"

	"github.com/oksasatya/inclusive-studai/internal/domain/entity"
)

// MaterialHit is a course material matched by a search.
type MaterialHit struct {
	CourseID   string          `json:"courseId"`
	CourseName string          `json:"courseName"`
	CourseCode string          `json:"courseCode"`
	Material   entity.Material `json:"material"`
}

// MaterialIndex indexes course materials for free-text search.
type MaterialIndex interface {
	Index(ctx context.Context, courses []entity.Course) error
	Search(ctx context.Context, query string, size int) ([]MaterialHit, error)
}
