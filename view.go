package main

import (
	"fmt"
	"strings"

	"clipcast/internal/api"
	"clipcast/internal/config"
)

const defaultWidth = 72

var waveGlyphs = []rune(" ▁▂▃▄▅▆▇█")

func (m model) View() string {
	if m.quitting {
		return styleOutput(m.statuses)
	}

	var b strings.Builder
	if len(m.statuses) > 0 {
		b.WriteString(styleOutput(m.statuses))
	}

	if m.demoMode {
		b.WriteString(WarnStyle.Render("◆ Demo mode: the backend is unreachable, publishing is disabled.") + "\n")
	}
	if m.errorMsg != "" {
		b.WriteString(ErrorStyle.Render("✗ "+m.errorMsg) + DimTextStyle.Render("  (any key to dismiss)") + "\n")
	}

	if m.busy {
		b.WriteString(fmt.Sprintf("%s%s\n", m.spinner.View(), m.busyMsg))
		return b.String()
	}

	switch m.step {
	case stepInput:
		b.WriteString(m.inputView())
	case stepPreview:
		b.WriteString(m.previewView())
	case stepPublish:
		b.WriteString(m.publishView())
	case stepDone:
		b.WriteString(m.doneView())
	}
	return b.String()
}

func (m model) inputView() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("What are we clipping?") + "\n\n")

	b.WriteString(m.fieldLabel("YouTube URL", zoneURL) + "\n")
	b.WriteString(ItemStyle.Render(m.urlInput.View()) + "\n\n")

	b.WriteString(m.fieldLabel("Title", zoneTitle) + "\n")
	b.WriteString(ItemStyle.Render(m.titleInput.View()) + "\n\n")

	b.WriteString(m.fieldLabel(fmt.Sprintf("Clip length: %ds", m.duration), zoneDuration))
	if m.focus == zoneDuration {
		b.WriteString(DimTextStyle.Render(fmt.Sprintf("  ←/→ to adjust (%d to %d)",
			config.MinClipSeconds, config.MaxClipSeconds)))
	}
	b.WriteString("\n\n")

	b.WriteString(m.fieldLabel("Audio file", zonePicker))
	if m.file != "" {
		b.WriteString(TextStyle.Render("  " + m.file))
		if m.focus == zonePicker {
			b.WriteString(DimTextStyle.Render("  (x to clear)"))
		}
	}
	b.WriteString("\n")
	if m.focus == zonePicker {
		b.WriteString(m.picker.View() + "\n")
	}

	b.WriteString("\n" + DimTextStyle.Render("tab next field · enter submit · esc reset · ctrl+c quit"))
	return b.String()
}

func (m model) fieldLabel(label string, z zone) string {
	if m.focus == z {
		return SelectedItemStyle.Render("> " + label)
	}
	return ItemStyle.Render(label)
}

func (m model) previewView() string {
	s := m.session
	if s == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(s.title) + "\n\n")

	a := s.analysis
	b.WriteString(ItemStyle.Render(fmt.Sprintf("Clip %s to %s (%.0fs)",
		formatClock(a.StartTime), formatClock(a.EndTime), a.Duration)))
	if a.Score > 0 {
		b.WriteString(DimTextStyle.Render(fmt.Sprintf("  score %.2f", a.Score)))
	}
	b.WriteString("\n")
	if a.Reason != "" {
		b.WriteString(LabelStyle.Render(a.Reason) + "\n")
	}
	if s.fromURL {
		b.WriteString(LabelStyle.Render("source length "+formatClock(s.sourceDur)) + "\n")
	}

	if len(s.waveform) > 0 {
		b.WriteString("\n" + ItemStyle.Render(m.waveformLine()) + "\n")
		if len(s.beats) > 0 {
			b.WriteString(LabelStyle.Render(fmt.Sprintf("%d beats tracked", len(s.beats))) + "\n")
		}
	}

	b.WriteString("\n")
	switch {
	case s.videoURL == "":
		b.WriteString(ItemStyle.Render(DimTextStyle.Render("No preview video yet. Press g to render it.")) + "\n")
	case s.stale:
		b.WriteString(ItemStyle.Render(WarnStyle.Render("The window changed since the last render. Press g to re-render.")) + "\n")
	default:
		b.WriteString(ItemStyle.Render(SuccessStyle.Render("✔ preview ready  ")+DimTextStyle.Render(s.videoURL)) + "\n")
	}

	help := "←/→ move · +/- resize · p play · d save · n publish · esc start over · q quit"
	if !s.fromURL {
		help = "g render · " + help
	}
	b.WriteString("\n" + DimTextStyle.Render(help))
	return b.String()
}

func (m model) waveformLine() string {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	cols := width - 8
	if cols < 10 {
		cols = 10
	}
	return renderWaveform(m.session.waveform, m.session.analysis, m.session.beats, cols)
}

// renderWaveform draws the amplitude envelope as one row of block glyphs,
// highlighting the columns inside the selected window.
func renderWaveform(samples []float64, window api.Analysis, beats []float64, cols int) string {
	if len(samples) == 0 || cols <= 0 {
		return ""
	}
	if cols > len(samples) {
		cols = len(samples)
	}

	// Column positions map onto the track; the last beat is the best
	// estimate of total length when the window ends before the track does.
	span := window.EndTime
	if n := len(beats); n > 0 && beats[n-1] > span {
		span = beats[n-1]
	}
	if span <= 0 {
		span = 1
	}

	var b strings.Builder
	for c := 0; c < cols; c++ {
		lo := c * len(samples) / cols
		hi := (c + 1) * len(samples) / cols
		if hi <= lo {
			hi = lo + 1
		}
		sum := 0.0
		for _, v := range samples[lo:hi] {
			sum += v
		}
		mean := sum / float64(hi-lo)
		if mean < 0 {
			mean = 0
		}
		if mean > 1 {
			mean = 1
		}
		glyph := string(waveGlyphs[int(mean*float64(len(waveGlyphs)-1)+0.5)])

		t := (float64(c) + 0.5) / float64(cols) * span
		if t >= window.StartTime && t <= window.EndTime {
			b.WriteString(WaveFocusStyle.Render(glyph))
		} else {
			b.WriteString(WaveStyle.Render(glyph))
		}
	}
	return b.String()
}

func (m model) publishView() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Publish to YouTube") + "\n\n")

	switch {
	case m.connected && m.channel != nil:
		line := "Channel: " + m.channel.Title
		if m.channel.SubscriberCount != "" {
			line += " (" + m.channel.SubscriberCount + " subscribers)"
		}
		b.WriteString("  " + SuccessStyle.Render("✔") + " " + TextStyle.Render(line) + "\n")
	case m.awaitingOAuth:
		b.WriteString("  " + m.spinner.View() + TextStyle.Render("Waiting for authorization in the browser...") + "\n")
	default:
		b.WriteString("  " + DimTextStyle.Render("No channel connected. Press c to connect.") + "\n")
	}

	b.WriteString("\n" + ItemStyle.Render("Visibility") + "\n")
	for i, level := range api.PrivacyLevels {
		cursor, checkbox := "  ", "☐"
		style := ItemStyle
		if i == m.privacyIdx {
			cursor, checkbox = "> ", "◼"
			style = SelectedItemStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%s %s", cursor, checkbox, level)) + "\n")
	}

	s := m.session
	b.WriteString("\n")
	switch {
	case m.demoMode:
		b.WriteString("  " + WarnStyle.Render("Publishing is disabled in demo mode.") + "\n")
	case !m.connected:
		b.WriteString("  " + DimTextStyle.Render("Connect a channel to enable publishing.") + "\n")
	case s != nil && (s.videoURL == "" || s.stale):
		b.WriteString("  " + DimTextStyle.Render("Render the preview video to enable publishing (b, then g).") + "\n")
	default:
		b.WriteString("  " + TextStyle.Render("Press enter to publish.") + "\n")
	}

	help := "↑/↓ visibility · c connect · x disconnect · r refresh · b back · enter publish · esc start over · q quit"
	b.WriteString("\n" + DimTextStyle.Render(help))
	return b.String()
}

func (m model) doneView() string {
	s := m.session
	if s == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(SuccessStyle.Render("✔ Published!") + "\n\n")
	b.WriteString(ItemStyle.Render(s.publishedURL) + "\n")
	if s.videoID != "" {
		b.WriteString(LabelStyle.Render("video id "+s.videoID) + "\n")
	}
	if s.privacy != "" {
		b.WriteString(LabelStyle.Render("visibility "+string(s.privacy)) + "\n")
	}
	b.WriteString("\n" + DimTextStyle.Render("o open · d save locally · s start over · q quit"))
	return b.String()
}

func formatClock(seconds float64) string {
	total := int(seconds + 0.5)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func styleOutput(statuses []string) string {
	var styledStatuses []string
	for i, status := range statuses {
		bullet := "├"
		if i == len(statuses)-1 {
			bullet = "└"
		}
		styledStatuses = append(styledStatuses, BulletStyle.Render(bullet)+TextStyle.Render(status))
	}
	return strings.Join(styledStatuses, "\n") + "\n"
}
