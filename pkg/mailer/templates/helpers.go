package templates

import "time"

// Option pattern
type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		if t.IsZero() {
			return
		}
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02/01/2006 15:04")
	}
}

func WithAppointment(id, title, date, typ string) Option {
	return func(d *EmailData) {
		d.AppointmentID = id
		d.AppointmentTitle = title
		d.AppointmentDate = date
		d.AppointmentType = typ
	}
}

// NewAppointmentRequestedData builds the data for the confirmation sent after a student requests an appointment.
func NewAppointmentRequestedData(appName, name, email string, opts ...Option) map[string]any {
	d := EmailData{Name: name, Email: email, AppName: appName}
	for _, opt := range opts {
		opt(&d)
	}
	return ToMap(d)
}
