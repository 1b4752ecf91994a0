package entity

type MaterialType string

const (
	MaterialPDF   MaterialType = "pdf"
	MaterialAudio MaterialType = "audio"
	MaterialText  MaterialType = "text"
)

type Material struct {
	ID    string       `json:"id"`
	Title string       `json:"title"`
	Type  MaterialType `json:"type"`
}

// Course is read-only; materials keep their original order.
type Course struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Code      string     `json:"code"`
	Materials []Material `json:"materials"`
}

// Metric is an admin-facing KPI.
type Metric struct {
	Label  string  `json:"label"`
	Value  float64 `json:"value"`
	Change float64 `json:"change"`
}
