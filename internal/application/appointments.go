package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/inclusive-studai/internal/domain/entity"
	"github.com/oksasatya/inclusive-studai/pkg/events"
)

// NewAppointment is what a student fills in when requesting an appointment.
type NewAppointment struct {
	Title string
	Date  string
	Type  entity.AppointmentType
}

// AddAppointment records a pending appointment. The requester is not stored
// on the record; it is only used to address the notification.
func (s *Service) AddAppointment(ctx context.Context, userID string, in NewAppointment) entity.Appointment {
	a := entity.Appointment{
		ID:     s.IDs.Next(),
		Title:  in.Title,
		Date:   in.Date,
		Status: entity.StatusPending,
		Type:   in.Type,
	}
	s.Store.AddAppointment(ctx, a)

	data := map[string]any{
		"id":    a.ID,
		"title": a.Title,
		"date":  a.Date,
		"type":  string(a.Type),
	}
	if u, ok := s.Store.GetUserByID(userID); ok {
		data["name"] = u.Name
		data["email"] = u.Email
	}
	s.Bus.Publish(ctx, events.Event{Type: events.AppointmentRequested, UserID: userID, Data: data})
	s.Logger.WithFields(logrus.Fields{"user_id": userID, "appointment_id": a.ID}).Info("appointment requested")
	return a
}
