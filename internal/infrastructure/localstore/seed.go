package localstore

import "github.com/oksasatya/inclusive-studai/internal/domain/entity"

// DefaultSnapshot returns a fresh copy of the seed data used when no
// usable snapshot has been persisted.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		Users: []entity.User{
			{
				ID:          "u1",
				Name:        "Juan Pérez",
				Email:       "juan@estudiante.edu",
				Role:        entity.RoleStudent,
				Preferences: entity.Preferences{HighContrast: false, FontSize: entity.FontSizeNormal, VoiceSpeed: 1.0},
				Consents:    entity.Consents{DataCollection: true, VoiceRecording: false},
			},
			{
				ID:          "a1",
				Name:        "Admin Sistema",
				Email:       "admin@edu.pe",
				Role:        entity.RoleAdmin,
				Preferences: entity.Preferences{HighContrast: false, FontSize: entity.FontSizeNormal, VoiceSpeed: 1.0},
				Consents:    entity.Consents{DataCollection: true, VoiceRecording: true},
			},
		},
		Appointments: []entity.Appointment{
			{ID: "1", Title: "Tutoría de Matemáticas", Date: "2025-05-10 10:00", Status: entity.StatusConfirmed, Type: entity.AppointmentAcademic},
			{ID: "2", Title: "Revisión Médica", Date: "2025-05-12 14:00", Status: entity.StatusPending, Type: entity.AppointmentMedical},
		},
		Courses: []entity.Course{
			{
				ID: "c1", Name: "Ingeniería de Sistemas", Code: "IS-101",
				Materials: []entity.Material{
					{ID: "m1", Title: "Introducción a la IA.pdf", Type: entity.MaterialPDF},
					{ID: "m2", Title: "Clase Grabada - Semana 1", Type: entity.MaterialAudio},
				},
			},
			{
				ID: "c2", Name: "Accesibilidad Digital", Code: "AD-202",
				Materials: []entity.Material{
					{ID: "m3", Title: "Guía WCAG 2.1", Type: entity.MaterialText},
				},
			},
		},
		Metrics: []entity.Metric{
			{Label: "Usuarios Activos", Value: 1250, Change: 12},
			{Label: "Documentos Procesados (OCR)", Value: 8500, Change: 5},
			{Label: "Satisfacción (NPS)", Value: 92, Change: 2},
		},
	}
}
