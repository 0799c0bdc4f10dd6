package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"clipcast/internal/api"
)

func TestRenderWaveformColumnCount(t *testing.T) {
	samples := make([]float64, 100)
	for i := range samples {
		samples[i] = 0.5
	}
	window := api.Analysis{StartTime: 30, EndTime: 60}

	line := renderWaveform(samples, window, nil, 40)
	assert.Equal(t, 40, len([]rune(stripANSI(line))))

	// More columns than samples collapses to one column per sample.
	line = renderWaveform(samples[:20], window, nil, 40)
	assert.Equal(t, 20, len([]rune(stripANSI(line))))

	assert.Empty(t, renderWaveform(nil, window, nil, 40))
	assert.Empty(t, renderWaveform(samples, window, nil, 0))
}

// stripANSI drops the escape sequences lipgloss wraps around each glyph.
func stripANSI(s string) string {
	var out []rune
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			out = append(out, r)
		}
	}
	return string(out)
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "0:00", formatClock(0))
	assert.Equal(t, "0:30", formatClock(30))
	assert.Equal(t, "1:05", formatClock(65))
	assert.Equal(t, "2:00", formatClock(119.7))
}

func TestDownloadPathSlugs(t *testing.T) {
	assert.Equal(t, "my-episode_short.mp4", downloadPath("My Episode"))
	assert.Equal(t, "ep-12-finale_short.mp4", downloadPath("Ep. 12 — Finale!"))
	assert.Equal(t, "clip_short.mp4", downloadPath("???"))
}
