package entity

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
)

type AppointmentType string

const (
	AppointmentAcademic AppointmentType = "academic"
	AppointmentMedical  AppointmentType = "medical"
	AppointmentOther    AppointmentType = "other"
)

// Appointment is an entry of the student's schedule.
// Date is kept as entered ("2025-05-10 10:00"); it is not parsed.
type Appointment struct {
	ID     string            `json:"id"`
	Title  string            `json:"title"`
	Date   string            `json:"date"`
	Status AppointmentStatus `json:"status"`
	Type   AppointmentType   `json:"type"`
}
