// Package presentation derives display settings from user preferences.
package presentation

import (
	"context"
	"strings"
	"sync"

	"github.com/oksasatya/inclusive-studai/internal/domain/entity"
	"github.com/oksasatya/inclusive-studai/pkg/events"
)

// HighContrastClasses are applied to the document root while high contrast is on.
const HighContrastClasses = "grayscale contrast-125"

var fontClasses = map[entity.FontSize]string{
	entity.FontSizeNormal: "text-base",
	entity.FontSizeLarge:  "text-lg",
	entity.FontSizeXL:     "text-xl",
}

// Display is what a client needs to render a user's session.
type Display struct {
	RootClass string  `json:"rootClass"`
	FontClass string  `json:"fontClass"`
	VoiceRate float64 `json:"voiceRate"`
	Lang      string  `json:"lang"`
}

// FontClass maps a font size to its text class; unknown sizes render as normal.
func FontClass(f entity.FontSize) string {
	if c, ok := fontClasses[f]; ok {
		return c
	}
	return fontClasses[entity.FontSizeNormal]
}

func RootClass(highContrast bool) string {
	if highContrast {
		return HighContrastClasses
	}
	return ""
}

func For(p entity.Preferences) Display {
	return Display{
		RootClass: RootClass(p.HighContrast),
		FontClass: FontClass(p.FontSize),
		VoiceRate: p.VoiceSpeed,
		Lang:      "es-ES",
	}
}

// ContrastListener keeps the last contrast state published for each user.
// It stands in for toggling the classes on the document root.
type ContrastListener struct {
	mu    sync.RWMutex
	state map[string]bool
}

func NewContrastListener() *ContrastListener {
	return &ContrastListener{state: map[string]bool{}}
}

// Attach subscribes the listener to b.
func (l *ContrastListener) Attach(b *events.Bus) {
	b.Subscribe(l.handle)
}

func (l *ContrastListener) handle(_ context.Context, e events.Event) {
	if e.Type != events.PreferencesUpdated || e.UserID == "" {
		return
	}
	on, ok := e.Data["highContrast"].(bool)
	if !ok {
		return
	}
	l.mu.Lock()
	l.state[e.UserID] = on
	l.mu.Unlock()
}

// Applied reports the root classes last applied for userID and whether any
// update was seen for that user.
func (l *ContrastListener) Applied(userID string) (string, bool) {
	l.mu.RLock()
	on, ok := l.state[userID]
	l.mu.RUnlock()
	return RootClass(on), ok
}

// HasClass reports whether classes, a space separated list, contains class.
func HasClass(classes, class string) bool {
	for _, c := range strings.Fields(classes) {
		if c == class {
			return true
		}
	}
	return false
}
