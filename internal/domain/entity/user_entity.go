package entity

// Role represents what a user may see in the dashboard.
// It is fixed when the user is created; no code path changes it.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// FontSize is the text scale chosen by the user.
type FontSize string

const (
	FontSizeNormal FontSize = "normal"
	FontSizeLarge  FontSize = "large"
	FontSizeXL     FontSize = "xl"
)

// Voice speed bounds accepted by the reader.
const (
	MinVoiceSpeed = 0.5
	MaxVoiceSpeed = 2.0
)

// Preferences holds the accessibility settings of a user.
type Preferences struct {
	HighContrast bool     `json:"highContrast"`
	FontSize     FontSize `json:"fontSize"`
	VoiceSpeed   float64  `json:"voiceSpeed"`
}

// Consents records what the user agreed to share.
type Consents struct {
	DataCollection bool `json:"dataCollection"`
	VoiceRecording bool `json:"voiceRecording"`
}

// User is the aggregate root of the accessibility profile.
//
// ID and Email are unique across the user collection.
type User struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Role        Role        `json:"role"`
	Preferences Preferences `json:"preferences"`
	Consents    Consents    `json:"consents"`
}

// PreferencesPatch is a partial update; nil fields are left untouched.
type PreferencesPatch struct {
	HighContrast *bool     `json:"highContrast,omitempty"`
	FontSize     *FontSize `json:"fontSize,omitempty"`
	VoiceSpeed   *float64  `json:"voiceSpeed,omitempty"`
}

// Apply merges the set fields of p onto prefs and returns the result.
func (p PreferencesPatch) Apply(prefs Preferences) Preferences {
	if p.HighContrast != nil {
		prefs.HighContrast = *p.HighContrast
	}
	if p.FontSize != nil {
		prefs.FontSize = *p.FontSize
	}
	if p.VoiceSpeed != nil {
		prefs.VoiceSpeed = *p.VoiceSpeed
	}
	return prefs
}

// IsEmpty reports whether the patch carries no field.
func (p PreferencesPatch) IsEmpty() bool {
	return p.HighContrast == nil && p.FontSize == nil && p.VoiceSpeed == nil
}

// ConsentsPatch is a partial update of Consents.
type ConsentsPatch struct {
	DataCollection *bool `json:"dataCollection,omitempty"`
	VoiceRecording *bool `json:"voiceRecording,omitempty"`
}

func (p ConsentsPatch) Apply(c Consents) Consents {
	if p.DataCollection != nil {
		c.DataCollection = *p.DataCollection
	}
	if p.VoiceRecording != nil {
		c.VoiceRecording = *p.VoiceRecording
	}
	return c
}

func (p ConsentsPatch) IsEmpty() bool {
	return p.DataCollection == nil && p.VoiceRecording == nil
}

// ValidFontSize reports whether f is one of the supported scales.
func ValidFontSize(f FontSize) bool {
	switch f {
	case FontSizeNormal, FontSizeLarge, FontSizeXL:
		return true
	}
	return false
}
