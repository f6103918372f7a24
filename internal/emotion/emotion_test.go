package emotion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromPolarity(t *testing.T) {
	cases := []struct {
		p    float64
		want string
	}{
		{0.8, Happy},
		{0.11, Happy},
		{0.1, Neutral},
		{0, Neutral},
		{-0.1, Neutral},
		{-0.11, Sad},
		{-1, Sad},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FromPolarity(c.p), "polarity %v", c.p)
	}
}

func TestKnownAndNormalize(t *testing.T) {
	assert.True(t, Known(" Happy "))
	assert.False(t, Known("disgust"))
	assert.Equal(t, "fear", Normalize("FEAR\n"))
	assert.Len(t, Labels, 6)
	for _, l := range Labels {
		assert.True(t, Known(l))
	}
}

func TestEmoji(t *testing.T) {
	assert.Equal(t, "😢", Emoji("sad"))
	assert.Equal(t, "😐", Emoji("disgust"))
}
