package repository

import (
	"context"

	"github.com/oksasatya/inclusive-studai/internal/domain/entity"
)

// Store defines the operations over the dashboard collections.
// Lookups report absence with a false second value instead of an error.
type Store interface {
	GetUserByEmail(email string) (entity.User, bool)
	GetUserByID(id string) (entity.User, bool)
	GetAppointments(userID string) []entity.Appointment
	GetCourses(userID string) []entity.Course
	GetMetrics() []entity.Metric
	UpdateUserPreferences(ctx context.Context, userID string, patch entity.PreferencesPatch) (entity.User, bool)
	UpdateUserConsents(ctx context.Context, userID string, patch entity.ConsentsPatch) (entity.User, bool)
	AddAppointment(ctx context.Context, a entity.Appointment)
}
