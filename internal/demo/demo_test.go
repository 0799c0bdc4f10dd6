package demo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaveformBounds(t *testing.T) {
	samples := Waveform()
	require.Len(t, samples, WaveformSamples)
	for i, v := range samples {
		assert.GreaterOrEqual(t, v, 0.1, "sample %d below floor", i)
		assert.LessOrEqual(t, v, 1.0, "sample %d above ceiling", i)
	}
}

func TestResultShape(t *testing.T) {
	result := Result("My Episode")

	assert.True(t, IsSessionID(result.SessionID))
	assert.Equal(t, "My Episode", result.Title)
	assert.Equal(t, result.Analysis.EndTime-result.Analysis.StartTime, result.Analysis.Duration)
	assert.Len(t, result.Waveform, WaveformSamples)
	assert.NotEmpty(t, result.Beats)
	assert.NotEmpty(t, result.Analysis.Reason)
}

func TestSessionIDsAreUnique(t *testing.T) {
	a := NewSessionID()
	b := NewSessionID()
	assert.NotEqual(t, a, b)
	assert.True(t, IsSessionID(a))
	assert.False(t, IsSessionID("sess-1"))
}

func TestAdjustedKeepsWindow(t *testing.T) {
	result := Adjusted("demo-x", 15, 45)
	assert.Equal(t, "demo-x", result.SessionID)
	assert.Equal(t, 15.0, result.Analysis.StartTime)
	assert.Equal(t, 45.0, result.Analysis.EndTime)
	assert.Equal(t, 30.0, result.Analysis.Duration)
	assert.Len(t, result.Waveform, WaveformSamples)
}
