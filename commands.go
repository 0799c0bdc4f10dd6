package main

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"runtime"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"clipcast/internal/api"
	"clipcast/internal/demo"
)

func checkStatusCmd(b backend, gen int, initial bool) tea.Cmd {
	return func() tea.Msg {
		status, err := b.ChannelStatus(context.Background())
		return statusMsg{gen: gen, status: status, err: err, initial: initial}
	}
}

func pollTickCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(time.Time) tea.Msg {
		return statusTickMsg{}
	})
}

func connectCmd(b backend, gen int) tea.Cmd {
	return func() tea.Msg {
		authURL, err := b.ConnectURL(context.Background())
		if err != nil {
			return errorMsg{gen: gen, op: opConnect, err: err}
		}
		return connectStartedMsg{gen: gen, authURL: authURL}
	}
}

// disconnectCmd is best effort: the cached identity is cleared whether or not
// the backend call went through.
func disconnectCmd(b backend, gen int) tea.Cmd {
	return func() tea.Msg {
		b.Disconnect(context.Background())
		return disconnectedMsg{gen: gen}
	}
}

func createShortCmd(b backend, gen int, r api.ShortRequest) tea.Cmd {
	return func() tea.Msg {
		result, err := b.ShortFromURL(context.Background(), r)
		if err != nil {
			return errorMsg{gen: gen, op: opAnalyze, err: err}
		}
		return shortCreatedMsg{gen: gen, sourceURL: r.URL, result: result}
	}
}

func uploadAudioCmd(b backend, gen int, path, title string) tea.Cmd {
	return func() tea.Msg {
		result, err := b.UploadAudio(context.Background(), path, title)
		if err != nil {
			return errorMsg{gen: gen, op: opUpload, err: err}
		}
		return analyzedMsg{gen: gen, result: result}
	}
}

// demoAnalyzeCmd fabricates an analysis after a delay that stands in for the
// round trip a real upload would take.
func demoAnalyzeCmd(gen int, title string, delay time.Duration) tea.Cmd {
	return func() tea.Msg {
		time.Sleep(delay)
		return analyzedMsg{gen: gen, result: demo.Result(title), demo: true}
	}
}

func demoAdjustCmd(gen int, sessionID string, start, end float64) tea.Cmd {
	return func() tea.Msg {
		return clipAdjustedMsg{gen: gen, result: demo.Adjusted(sessionID, start, end)}
	}
}

func adjustCmd(b backend, gen int, r api.AdjustRequest) tea.Cmd {
	return func() tea.Msg {
		result, err := b.AdjustClip(context.Background(), r)
		if err != nil {
			return errorMsg{gen: gen, op: opAdjust, err: err}
		}
		return clipAdjustedMsg{gen: gen, result: result}
	}
}

func generateCmd(b backend, gen int, sessionID string) tea.Cmd {
	return func() tea.Msg {
		result, err := b.GenerateVideo(context.Background(), sessionID)
		if err != nil {
			return errorMsg{gen: gen, op: opGenerate, err: err}
		}
		return videoGeneratedMsg{gen: gen, result: result}
	}
}

func publishCmd(b backend, gen int, sessionID string, privacy api.Privacy) tea.Cmd {
	return func() tea.Msg {
		result, err := b.Publish(context.Background(), sessionID, privacy)
		if err != nil {
			return errorMsg{gen: gen, op: opPublish, err: err}
		}
		return publishedMsg{gen: gen, result: result}
	}
}

func downloadCmd(b backend, gen int, sessionID, dest string) tea.Cmd {
	return func() tea.Msg {
		if err := b.Download(context.Background(), sessionID, dest); err != nil {
			return errorMsg{gen: gen, op: opDownload, err: err}
		}
		return downloadedMsg{gen: gen, path: dest}
	}
}

// cleanupCmd releases a backend session. Best effort: the outcome is never
// awaited and never changes UI state.
func cleanupCmd(b backend, sessionID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		b.Cleanup(ctx, sessionID)
		return nil
	}
}

// actionFallback is the generic banner shown when the server supplied no
// message of its own.
func actionFallback(o op) string {
	switch o {
	case opAnalyze:
		return "Creating the short failed."
	case opUpload:
		return "The upload failed."
	case opAdjust:
		return "Adjusting the clip failed."
	case opGenerate:
		return "Rendering the preview failed."
	case opDownload:
		return "Saving the short failed."
	case opPublish:
		return "Publishing failed."
	case opConnect:
		return "Starting the channel connection failed."
	}
	return "The request failed."
}

// userMessage keeps server-supplied rejection text verbatim and falls back to
// a banner naming the action that failed.
func userMessage(o op, err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return fmt.Sprintf("%s The backend answered with status %d.", actionFallback(o), apiErr.Status)
	}
	return actionFallback(o) + " Can't reach the backend. Check that it is running."
}

// openInBrowser hands the URL to the platform opener. The outcome is not
// awaited; the browser owns the rest of the handshake.
func openInBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	cmd.Run()
}

func playPreview(player, url string) {
	cmd := exec.Command(player, url)
	cmd.Run()
}

func checkDependency(command string) bool {
	_, err := exec.LookPath(command)
	return err == nil
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

func downloadPath(title string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(title), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "clip"
	}
	return slug + "_short.mp4"
}
