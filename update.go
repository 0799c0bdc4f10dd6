package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"clipcast/internal/api"
	"clipcast/internal/config"
	"clipcast/internal/demo"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case statusMsg:
		return m.applyStatus(msg)

	case statusTickMsg:
		return m.applyStatusTick()

	case connectStartedMsg:
		if msg.gen != m.flowGen {
			return m, nil
		}
		m.busy = false
		m.awaitingOAuth = true
		m.pollDeadline = time.Now().Add(connectWindow)
		m.statuses = append(m.statuses, "Authorize clipcast in the browser window that just opened.")
		go openInBrowser(msg.authURL)
		return m, tea.Batch(m.spinner.Tick, pollTickCmd())

	case analyzedMsg:
		return m.applyAnalyzed(msg)

	case shortCreatedMsg:
		return m.applyShortCreated(msg)

	case clipAdjustedMsg:
		return m.applyAdjusted(msg)

	case videoGeneratedMsg:
		return m.applyGenerated(msg)

	case publishedMsg:
		return m.applyPublished(msg)

	case downloadedMsg:
		if msg.gen != m.flowGen {
			return m, nil
		}
		m.busy = false
		m.statuses = append(m.statuses, "Saved "+msg.path)
		return m, nil

	case disconnectedMsg:
		if msg.gen != m.flowGen {
			return m, nil
		}
		m.busy = false
		m.connected = false
		m.channel = nil
		m.statuses = append(m.statuses, "Channel disconnected.")
		return m, nil

	case errorMsg:
		return m.applyError(msg)

	case spinner.TickMsg:
		if m.busy || m.awaitingOAuth {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	// Whatever remains drives the input widgets (cursor blinks, directory
	// reads for the picker).
	if m.step == stepInput {
		return m.updateInputWidgets(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// A visible error banner swallows the next keypress, except the globals.
	if m.errorMsg != "" && key != "ctrl+c" && key != "esc" {
		m.errorMsg = ""
		return m, nil
	}

	switch key {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		return m.startOver()
	}

	if key == "q" && m.step != stepInput {
		m.quitting = true
		return m, tea.Quit
	}

	if m.busy {
		return m, nil
	}

	switch m.step {
	case stepInput:
		return m.handleInputKey(msg)
	case stepPreview:
		return m.handlePreviewKey(msg)
	case stepPublish:
		return m.handlePublishKey(msg)
	case stepDone:
		return m.handleDoneKey(msg)
	}
	return m, nil
}

// startOver returns to a fresh input step from anywhere. The cleanup request
// is fire-and-forget, and bumping flowGen makes any still-in-flight response
// land as a no-op.
func (m model) startOver() (tea.Model, tea.Cmd) {
	var cleanup tea.Cmd
	if m.session != nil && !demo.IsSessionID(m.session.id) {
		cleanup = cleanupCmd(m.api, m.session.id)
	}

	m.flowGen++
	m.session = nil
	m.busy = false
	m.busyMsg = ""
	m.errorMsg = ""
	m.awaitingOAuth = false
	m.step = stepInput
	m.file = ""
	m.duration = m.cfg.ClipSeconds
	m.privacyIdx = privacyIndex(m.cfg.Privacy)
	m.urlInput.SetValue("")
	m.titleInput.SetValue("")
	m.statuses = append(m.statuses, "Started over.")

	var focusCmd tea.Cmd
	m, focusCmd = m.setFocus(zoneURL)
	return m, tea.Batch(cleanup, focusCmd)
}

func (m model) setFocus(z zone) (model, tea.Cmd) {
	m.focus = z
	m.urlInput.Blur()
	m.titleInput.Blur()
	var cmd tea.Cmd
	switch z {
	case zoneURL:
		cmd = m.urlInput.Focus()
	case zoneTitle:
		cmd = m.titleInput.Focus()
	}
	return m, cmd
}

func (m model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		return m.setFocus((m.focus + 1) % zoneCount)
	case "shift+tab":
		return m.setFocus((m.focus + zoneCount - 1) % zoneCount)
	case "enter":
		if m.focus != zonePicker {
			return m.submit()
		}
	case "left":
		if m.focus == zoneDuration {
			if m.duration > config.MinClipSeconds {
				m.duration--
			}
			return m, nil
		}
	case "right":
		if m.focus == zoneDuration {
			if m.duration < config.MaxClipSeconds {
				m.duration++
			}
			return m, nil
		}
	case "x":
		// Clears a picked file without resetting the whole step. Elsewhere
		// the rune types into the focused field as usual.
		if m.focus == zonePicker && m.file != "" {
			m.file = ""
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case zoneURL:
		m.urlInput, cmd = m.urlInput.Update(msg)
	case zoneTitle:
		m.titleInput, cmd = m.titleInput.Update(msg)
	case zonePicker:
		m.picker, cmd = m.picker.Update(msg)
		if ok, path := m.picker.DidSelectFile(msg); ok {
			m.file = path
		}
		if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
			m.errorMsg = filepath.Base(path) + " is not a supported audio file."
		}
	}
	return m, cmd
}

func (m model) updateInputWidgets(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.urlInput, cmd = m.urlInput.Update(msg)
	cmds = append(cmds, cmd)
	m.titleInput, cmd = m.titleInput.Update(msg)
	cmds = append(cmds, cmd)
	m.picker, cmd = m.picker.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit validates the input step locally and issues at most one request.
func (m model) submit() (tea.Model, tea.Cmd) {
	url := strings.TrimSpace(m.urlInput.Value())
	title := strings.TrimSpace(m.titleInput.Value())

	if url != "" && m.file != "" {
		m.errorMsg = "Both a URL and a file are set. Clear one of them first (x on the file field clears it)."
		return m, nil
	}

	switch {
	case url != "":
		if !isVideoURL(url) {
			m.errorMsg = "That doesn't look like a YouTube URL."
			return m, nil
		}
		if m.demoMode {
			m.errorMsg = "Creating a short from a URL needs the processing backend."
			return m, nil
		}
		m.step = stepAnalyzing
		m.busy = true
		m.busyMsg = "Downloading and cutting the source video..."
		m.statuses = append(m.statuses, "Submitted "+url)
		return m, tea.Batch(m.spinner.Tick, createShortCmd(m.api, m.flowGen, api.ShortRequest{
			URL:      url,
			Title:    title,
			Duration: m.duration,
		}))

	case m.file != "":
		if title == "" {
			m.errorMsg = "A title is required for audio uploads."
			return m, nil
		}
		m.step = stepAnalyzing
		m.busy = true
		if m.demoMode {
			m.busyMsg = "Analyzing audio (simulated)..."
			return m, tea.Batch(m.spinner.Tick, demoAnalyzeCmd(m.flowGen, title, m.demoDelay))
		}
		m.busyMsg = "Uploading audio for analysis..."
		m.statuses = append(m.statuses, "Uploading "+filepath.Base(m.file))
		return m, tea.Batch(m.spinner.Tick, uploadAudioCmd(m.api, m.flowGen, m.file, title))

	default:
		m.errorMsg = "Enter a video URL or pick an audio file first."
		return m, nil
	}
}

func (m model) handlePreviewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.session
	if s == nil {
		return m, nil
	}

	switch msg.String() {
	case "g":
		if s.fromURL {
			return m, nil // URL shorts arrive rendered
		}
		if m.demoMode {
			m.errorMsg = demo.ErrGenerate.Error()
			return m, nil
		}
		m.busy = true
		m.busyMsg = "Rendering the preview video..."
		return m, tea.Batch(m.spinner.Tick, generateCmd(m.api, m.flowGen, s.id))

	case "p":
		if s.videoURL != "" {
			go playPreview(m.cfg.Player, s.videoURL)
		}
		return m, nil

	case "d":
		return m.download()

	case "n", "enter":
		m.step = stepPublish
		return m, nil

	case "left":
		return m.adjustWindow(-1, 0)
	case "right":
		return m.adjustWindow(1, 0)
	case "+", "=":
		return m.adjustWindow(0, 1)
	case "-":
		return m.adjustWindow(0, -1)
	}
	return m, nil
}

// adjustWindow nudges the clip by shift steps and grows it by grow steps.
// Audio sessions go through adjust-clip; URL sessions are re-cut server-side
// with an explicit start offset.
func (m model) adjustWindow(shift, grow int) (tea.Model, tea.Cmd) {
	s := m.session

	if s.fromURL {
		start := s.analysis.StartTime + float64(shift)*adjustStep
		length := s.analysis.Duration + float64(grow)*adjustStep
		if start < 0 {
			start = 0
		}
		if length < float64(config.MinClipSeconds) || length > float64(config.MaxClipSeconds) {
			m.errorMsg = fmt.Sprintf("URL clips must stay between %d and %d seconds.",
				config.MinClipSeconds, config.MaxClipSeconds)
			return m, nil
		}
		if s.sourceDur > 0 && start+length > s.sourceDur {
			start = s.sourceDur - length
			if start < 0 {
				start = 0
			}
		}
		if start == s.analysis.StartTime && length == s.analysis.Duration {
			return m, nil
		}
		m.busy = true
		m.busyMsg = "Re-cutting the clip..."
		return m, tea.Batch(m.spinner.Tick, createShortCmd(m.api, m.flowGen, api.ShortRequest{
			URL:       s.sourceURL,
			Title:     s.title,
			Duration:  int(length),
			StartTime: &start,
		}))
	}

	start := s.analysis.StartTime + float64(shift)*adjustStep
	end := s.analysis.EndTime + float64(shift+grow)*adjustStep
	if start < 0 {
		end -= start
		start = 0
	}
	if length := end - start; length < minClipLen || length > maxClipLen {
		m.errorMsg = fmt.Sprintf("Clips must stay between %.0f and %.0f seconds.", minClipLen, maxClipLen)
		return m, nil
	}
	if start == s.analysis.StartTime && end == s.analysis.EndTime {
		return m, nil
	}

	m.busy = true
	m.busyMsg = "Adjusting the clip window..."
	if m.demoMode || demo.IsSessionID(s.id) {
		return m, demoAdjustCmd(m.flowGen, s.id, start, end)
	}
	return m, tea.Batch(m.spinner.Tick, adjustCmd(m.api, m.flowGen, api.AdjustRequest{
		SessionID: s.id,
		StartTime: start,
		EndTime:   end,
	}))
}

func (m model) download() (tea.Model, tea.Cmd) {
	s := m.session
	if s == nil || s.videoURL == "" {
		m.errorMsg = "Render the preview video first (g)."
		return m, nil
	}
	if s.stale {
		m.errorMsg = "The clip window changed. Render the preview again (g)."
		return m, nil
	}
	if m.demoMode || demo.IsSessionID(s.id) {
		m.errorMsg = "Downloads need the processing backend."
		return m, nil
	}
	m.busy = true
	m.busyMsg = "Downloading the short..."
	return m, tea.Batch(m.spinner.Tick, downloadCmd(m.api, m.flowGen, s.id, downloadPath(s.title)))
}

func (m model) handlePublishKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.privacyIdx > 0 {
			m.privacyIdx--
		}
		return m, nil
	case "down", "j":
		if m.privacyIdx < len(api.PrivacyLevels)-1 {
			m.privacyIdx++
		}
		return m, nil
	case "b":
		m.step = stepPreview
		return m, nil
	case "c":
		if m.demoMode {
			m.errorMsg = "Connecting a channel needs the processing backend."
			return m, nil
		}
		if m.connected || m.awaitingOAuth {
			return m, nil
		}
		m.busy = true
		m.busyMsg = "Starting the channel connection..."
		return m, tea.Batch(m.spinner.Tick, connectCmd(m.api, m.flowGen))
	case "x":
		if !m.connected {
			return m, nil
		}
		m.busy = true
		m.busyMsg = "Disconnecting the channel..."
		return m, tea.Batch(m.spinner.Tick, disconnectCmd(m.api, m.flowGen))
	case "r":
		m.statusGen++
		return m, checkStatusCmd(m.api, m.statusGen, false)
	case "enter":
		return m.publish()
	}
	return m, nil
}

// publish is gated on a connected channel and a fresh rendered preview.
func (m model) publish() (tea.Model, tea.Cmd) {
	s := m.session
	if s == nil {
		return m, nil
	}
	if m.demoMode {
		m.errorMsg = "Publishing needs the processing backend."
		return m, nil
	}
	if !m.connected {
		m.errorMsg = "Connect your YouTube channel first (c)."
		return m, nil
	}
	if s.videoURL == "" {
		m.errorMsg = "Render the preview video first (b, then g)."
		return m, nil
	}
	if s.stale {
		m.errorMsg = "The clip window changed. Render the preview again (b, then g)."
		return m, nil
	}
	m.step = stepPublishing
	m.busy = true
	m.busyMsg = "Publishing to YouTube..."
	return m, tea.Batch(m.spinner.Tick, publishCmd(m.api, m.flowGen, s.id, m.currentPrivacy()))
}

func (m model) handleDoneKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.session
	switch msg.String() {
	case "o":
		if s != nil && s.publishedURL != "" {
			go openInBrowser(s.publishedURL)
		}
		return m, nil
	case "d":
		return m.download()
	case "s", "enter":
		return m.startOver()
	}
	return m, nil
}

func (m model) applyStatus(msg statusMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.statusGen {
		return m, nil // a newer probe is in flight; this answer is stale
	}

	if msg.err != nil {
		m.connected = false
		m.channel = nil
		var apiErr *api.Error
		transportDown := !errors.As(msg.err, &apiErr)
		if msg.initial && transportDown {
			m.demoMode = true
			m.statuses = append(m.statuses, "Backend unreachable. Demo mode is on: analysis is simulated, publishing is disabled.")
		} else if msg.initial {
			m.statuses = append(m.statuses, "Backend reachable, but the channel status check failed.")
		}
		m.log.Warn().Err(msg.err).Msg("channel status check failed")
		return m, nil
	}

	m.connected = msg.status.Connected
	if msg.status.Channel != nil {
		m.channel = msg.status.Channel
	} else if !msg.status.Connected {
		m.channel = nil
	}

	if msg.initial {
		if m.connected && m.channel != nil {
			m.statuses = append(m.statuses, "Channel connected: "+m.channel.Title)
		} else {
			m.statuses = append(m.statuses, "Backend reachable. No channel connected yet.")
		}
	}

	if m.awaitingOAuth && m.connected {
		m.awaitingOAuth = false
		name := ""
		if m.channel != nil {
			name = ": " + m.channel.Title
		}
		m.statuses = append(m.statuses, "Channel connected"+name)
	}
	return m, nil
}

func (m model) applyStatusTick() (tea.Model, tea.Cmd) {
	if !m.awaitingOAuth {
		return m, nil
	}
	if time.Now().After(m.pollDeadline) {
		m.awaitingOAuth = false
		m.statuses = append(m.statuses, "The channel is still not connected. Press c to try again.")
		return m, nil
	}
	m.statusGen++
	return m, tea.Batch(checkStatusCmd(m.api, m.statusGen, false), pollTickCmd())
}

func (m model) applyAnalyzed(msg analyzedMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.flowGen {
		// The flow restarted while this was in flight; release the orphan.
		if !msg.demo {
			return m, cleanupCmd(m.api, msg.result.SessionID)
		}
		return m, nil
	}
	m.busy = false
	m.step = stepPreview
	m.session = &session{
		id:       msg.result.SessionID,
		title:    msg.result.Title,
		analysis: msg.result.Analysis,
		waveform: msg.result.Waveform,
		beats:    msg.result.Beats,
	}
	if msg.demo {
		m.statuses = append(m.statuses, "Demo analysis ready.")
	} else {
		m.statuses = append(m.statuses, "Analysis complete.")
	}
	return m, nil
}

func (m model) applyShortCreated(msg shortCreatedMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.flowGen {
		// The flow restarted while the cut was in flight; release the orphan.
		return m, cleanupCmd(m.api, msg.result.SessionID)
	}
	m.busy = false

	// Re-cuts get a fresh session id; release the one it replaces.
	var cleanup tea.Cmd
	if m.session != nil && m.session.id != msg.result.SessionID && !demo.IsSessionID(m.session.id) {
		cleanup = cleanupCmd(m.api, m.session.id)
	}

	r := msg.result
	title := r.ClipInfo.Title
	if title == "" {
		title = r.VideoInfo.Title
	}
	m.session = &session{
		id:        r.SessionID,
		title:     title,
		sourceURL: msg.sourceURL,
		sourceDur: r.VideoInfo.Duration,
		fromURL:   true,
		analysis: api.Analysis{
			StartTime: r.ClipInfo.StartTime,
			EndTime:   r.ClipInfo.StartTime + r.ClipInfo.Duration,
			Duration:  r.ClipInfo.Duration,
		},
		videoURL:    m.api.ResolveURL(r.VideoURL),
		downloadURL: r.DownloadURL,
	}
	if m.step == stepAnalyzing {
		m.statuses = append(m.statuses, "Short created from "+r.VideoInfo.Title+".")
	}
	m.step = stepPreview
	return m, cleanup
}

func (m model) applyAdjusted(msg clipAdjustedMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.flowGen || m.session == nil {
		return m, nil
	}
	m.busy = false
	m.session.analysis = msg.result.Analysis
	if len(msg.result.Waveform) > 0 {
		m.session.waveform = msg.result.Waveform
	}
	if msg.result.Beats != nil {
		m.session.beats = msg.result.Beats
	}
	if m.session.videoURL != "" {
		m.session.stale = true
	}
	return m, nil
}

func (m model) applyGenerated(msg videoGeneratedMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.flowGen || m.session == nil {
		return m, nil
	}
	m.busy = false
	m.session.videoURL = m.api.ResolveURL(msg.result.VideoURL)
	m.session.downloadURL = msg.result.DownloadURL
	m.session.stale = false
	m.statuses = append(m.statuses, "Preview video rendered.")
	return m, nil
}

func (m model) applyPublished(msg publishedMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.flowGen || m.session == nil {
		return m, nil
	}
	m.busy = false
	m.step = stepDone
	m.session.publishedURL = msg.result.URL
	m.session.videoID = msg.result.VideoID
	m.session.privacy = msg.result.Privacy
	m.statuses = append(m.statuses, "Published: "+msg.result.URL)
	return m, nil
}

func (m model) applyError(msg errorMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.flowGen {
		return m, nil
	}
	m.busy = false
	m.errorMsg = userMessage(msg.op, msg.err)
	m.log.Error().Err(msg.err).Str("op", msg.op.String()).Msg("request failed")

	switch msg.op {
	case opAnalyze:
		m.step = stepInput
	case opUpload:
		m.step = stepInput
		if !m.demoMode {
			m.demoMode = true
			m.statuses = append(m.statuses, "Upload failed. Demo mode is on: analysis is simulated, publishing is disabled.")
		}
	case opAdjust, opGenerate:
		m.step = stepPreview
	case opDownload:
		if m.step != stepDone {
			m.step = stepPreview
		}
	case opPublish:
		m.step = stepPublish
	case opConnect:
		m.awaitingOAuth = false
	}
	return m, nil
}
