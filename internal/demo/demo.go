// Package demo synthesizes analysis results locally when the processing
// backend is unreachable, so the clip-selection flow stays usable offline.
package demo

import (
	"errors"
	"math"
	"math/rand"
	"strings"

	"github.com/google/uuid"

	"clipcast/internal/api"
)

// WaveformSamples matches the sample count the backend returns for real
// uploads, so the preview renders identically in both modes.
const WaveformSamples = 100

// Demo sessions always select the same window.
const (
	clipStart = 30.0
	clipEnd   = 60.0
)

// ErrGenerate is returned for preview rendering, which cannot happen offline.
var ErrGenerate = errors.New("video generation needs the processing backend; deploy the backend and try again")

// NewSessionID returns a recognizably fake session identifier. Demo sessions
// never reach the backend, including the cleanup endpoint.
func NewSessionID() string {
	return "demo-" + uuid.NewString()
}

// IsSessionID reports whether id names a locally synthesized session.
func IsSessionID(id string) bool {
	return strings.HasPrefix(id, "demo-")
}

// Waveform produces a plausible loudness envelope: a slow sinusoid with
// per-sample jitter, clamped to [0.1, 1.0].
func Waveform() []float64 {
	samples := make([]float64, WaveformSamples)
	for i := range samples {
		base := 0.5 + 0.35*math.Sin(float64(i)/8.0)
		v := base + (rand.Float64()-0.5)*0.2
		samples[i] = math.Min(1.0, math.Max(0.1, v))
	}
	return samples
}

// Beats spaces synthetic beat markers evenly across the demo clip window.
func Beats() []float64 {
	beats := make([]float64, 0, 15)
	for t := clipStart; t < clipEnd; t += 2.0 {
		beats = append(beats, t)
	}
	return beats
}

// Result fabricates the analysis the backend would return for an upload.
func Result(title string) *api.UploadResult {
	return &api.UploadResult{
		SessionID: NewSessionID(),
		Title:     title,
		Analysis: api.Analysis{
			StartTime: clipStart,
			EndTime:   clipEnd,
			Duration:  clipEnd - clipStart,
			Score:     0.92,
			Reason:    "Demo selection: high-energy segment with steady beats",
		},
		Waveform: Waveform(),
		Beats:    Beats(),
	}
}

// Adjusted fabricates the response of a clip-window adjustment.
func Adjusted(sessionID string, start, end float64) *api.AdjustResult {
	return &api.AdjustResult{
		SessionID: sessionID,
		Analysis: api.Analysis{
			StartTime: start,
			EndTime:   end,
			Duration:  end - start,
			Reason:    "Manual selection",
		},
		Waveform: Waveform(),
		Beats:    Beats(),
	}
}
