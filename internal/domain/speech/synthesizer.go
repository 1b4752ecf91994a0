// Package speech describes the text-to-speech capability the reader relies on.
// The engine itself is provided by the host; this package only fixes the contract.
package speech

import "context"

// DefaultLang is the language the reader speaks in.
const DefaultLang = "es-ES"

// Utterance is a single piece of text to be spoken.
type Utterance struct {
	Text string  `json:"text"`
	Lang string  `json:"lang"`
	Rate float64 `json:"rate"`
}

// Synthesizer speaks utterances. The returned channel is closed once the
// utterance has finished playing.
type Synthesizer interface {
	Speak(ctx context.Context, u Utterance) (<-chan struct{}, error)
}
