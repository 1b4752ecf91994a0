package mailer

import (
	"fmt"

	"github.com/oksasatya/inclusive-studai/pkg/events"
	mailtpl "github.com/oksasatya/inclusive-studai/pkg/mailer/templates"
)

// EmailJob is a rendered-on-demand email. Html is optional; Text is recommended as fallback.
// You can also use a template by specifying Template and Data.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "appointment_requested"
	Data     map[string]any `json:"data,omitempty"`
}

// JobFromEvent maps an event to the email it should trigger.
// ok is false for event types that send nothing.
func JobFromEvent(e events.Event, appName string) (job EmailJob, ok bool, err error) {
	if e.Type != events.AppointmentRequested {
		return EmailJob{}, false, nil
	}
	to := str(e.Data["email"])
	if to == "" {
		return EmailJob{}, false, fmt.Errorf("event %s: missing recipient", e.Type)
	}
	d := mailtpl.NewAppointmentRequestedData(appName, str(e.Data["name"]), to,
		mailtpl.WithAppointment(str(e.Data["id"]), str(e.Data["title"]), str(e.Data["date"]), str(e.Data["type"])),
		mailtpl.WithTime(e.OccurredAt),
	)
	return EmailJob{To: to, Template: mailtpl.AppointmentRequested, Data: d}, true, nil
}

// Render fills Subject, Text and HTML from Template when one is set.
func (j *EmailJob) Render() error {
	if j.Template == "" {
		return nil
	}
	s, t, h, err := mailtpl.Render(j.Template, j.Data)
	if err != nil {
		return err
	}
	j.Subject, j.Text, j.HTML = s, t, h
	return nil
}

func str(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
