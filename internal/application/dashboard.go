package application

import (
	"github.com/oksasatya/inclusive-studai/internal/domain/entity"
)

type StudentDashboard struct {
	Appointments []entity.Appointment `json:"appointments"`
	Courses      []entity.Course      `json:"courses"`
}

type AdminDashboard struct {
	Metrics []entity.Metric `json:"metrics"`
}

// GetStudentDashboardData returns every appointment and course; neither is filtered by userID.
func (s *Service) GetStudentDashboardData(userID string) StudentDashboard {
	return StudentDashboard{
		Appointments: s.Store.GetAppointments(userID),
		Courses:      s.Store.GetCourses(userID),
	}
}

func (s *Service) GetAdminDashboardData() AdminDashboard {
	return AdminDashboard{Metrics: s.Store.GetMetrics()}
}

func (s *Service) GetAppointments(userID string) []entity.Appointment {
	return s.Store.GetAppointments(userID)
}

func (s *Service) GetProfile(userID string) (entity.User, error) {
	u, ok := s.Store.GetUserByID(userID)
	if !ok {
		return entity.User{}, ErrUserNotFound
	}
	return u, nil
}
