// Package emotion normalizes labels produced by external mood detectors.
//
// Classifying faces or text is done elsewhere; this package only turns the
// detector's output into one of the labels the recommender understands.
package emotion

import "strings"

// Known labels.
const (
	Happy    = "happy"
	Sad      = "sad"
	Angry    = "angry"
	Surprise = "surprise"
	Fear     = "fear"
	Neutral  = "neutral"
)

// Labels lists the closed label set in display order.
var Labels = []string{Happy, Sad, Angry, Surprise, Fear, Neutral}

// Polarity thresholds for bucketing free-text sentiment.
const (
	PositiveThreshold = 0.1
	NegativeThreshold = -0.1
)

var emoji = map[string]string{
	Happy:    "😊",
	Sad:      "😢",
	Angry:    "😠",
	Surprise: "😲",
	Fear:     "😨",
	Neutral:  "😐",
}

// Normalize lowercases and trims a detector label.
func Normalize(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// Known reports whether label belongs to the closed set.
func Known(label string) bool {
	_, ok := emoji[Normalize(label)]
	return ok
}

// Emoji returns a display glyph for label, neutral for unknown labels.
func Emoji(label string) string {
	if e, ok := emoji[Normalize(label)]; ok {
		return e
	}
	return emoji[Neutral]
}

// FromPolarity buckets a sentiment polarity in [-1, 1].
func FromPolarity(p float64) string {
	switch {
	case p > PositiveThreshold:
		return Happy
	case p < NegativeThreshold:
		return Sad
	default:
		return Neutral
	}
}
