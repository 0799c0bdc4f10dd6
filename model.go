package main

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"clipcast/internal/api"
	"clipcast/internal/config"
)

// step is the workflow position. Errors never change it on their own: they
// surface as a dismissable banner over whichever step issued the failed call.
type step int

const (
	stepInput step = iota
	stepAnalyzing
	stepPreview
	stepPublish
	stepPublishing
	stepDone
)

// zone is a focusable area of the input step, cycled with tab.
type zone int

const (
	zoneURL zone = iota
	zoneTitle
	zoneDuration
	zonePicker
	zoneCount
)

const (
	demoAnalysisDelay = 1500 * time.Millisecond
	pollInterval      = 3 * time.Second
	connectWindow     = 2 * time.Minute

	// The backend rejects adjusted clips outside these bounds.
	minClipLen = 10.0
	maxClipLen = 60.0

	adjustStep = 5.0
)

// audioExtensions is the upload whitelist enforced by the backend.
var audioExtensions = []string{".mp3", ".wav", ".ogg", ".m4a", ".flac", ".aac"}

var videoURLPattern = regexp.MustCompile(`^(https?://)?(www\.)?(youtube\.com/(watch\?v=|shorts/)|youtu\.be/)[\w-]+`)

// backend is the slice of the API client the update loop consumes. Tests
// substitute a recording fake.
type backend interface {
	ChannelStatus(ctx context.Context) (*api.ChannelStatus, error)
	ConnectURL(ctx context.Context) (string, error)
	Disconnect(ctx context.Context) error
	ShortFromURL(ctx context.Context, r api.ShortRequest) (*api.ShortResult, error)
	UploadAudio(ctx context.Context, filePath, title string) (*api.UploadResult, error)
	AdjustClip(ctx context.Context, r api.AdjustRequest) (*api.AdjustResult, error)
	GenerateVideo(ctx context.Context, sessionID string) (*api.GenerateResult, error)
	Publish(ctx context.Context, sessionID string, privacy api.Privacy) (*api.PublishResult, error)
	Download(ctx context.Context, sessionID, dest string) error
	Cleanup(ctx context.Context, sessionID string) error
	ResolveURL(u string) string
}

// session mirrors one in-flight clip attempt on the backend.
type session struct {
	id        string
	title     string
	sourceURL string  // URL path only, reused for re-cuts
	sourceDur float64 // source video length, URL path only
	fromURL   bool

	analysis api.Analysis
	waveform []float64
	beats    []float64

	videoURL     string // playable preview, absolute
	downloadURL  string
	stale        bool // window changed after the last render
	publishedURL string
	videoID      string
	privacy      api.Privacy
}

type model struct {
	cfg config.Config
	api backend
	log zerolog.Logger

	spinner    spinner.Model
	urlInput   textinput.Model
	titleInput textinput.Model
	picker     filepicker.Model

	step  step
	focus zone

	busy    bool
	busyMsg string

	errorMsg string
	statuses []string
	quitting bool

	demoMode  bool
	demoDelay time.Duration

	connected     bool
	channel       *api.Channel
	statusGen     int
	awaitingOAuth bool
	pollDeadline  time.Time

	// flowGen stamps every mutating request; responses from before the last
	// StartOver carry an old stamp and are dropped.
	flowGen int
	session *session

	file       string // picked or positional audio file
	duration   int    // URL-path clip length, 20..40 seconds
	privacyIdx int

	width int
}

func newModel(cfg config.Config, client backend, log zerolog.Logger, input string, demoDelay time.Duration) model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	urlInput := textinput.New()
	urlInput.Placeholder = "https://www.youtube.com/watch?v=..."
	urlInput.CharLimit = 200
	urlInput.Width = 48
	urlInput.Focus()

	titleInput := textinput.New()
	titleInput.Placeholder = "Short title"
	titleInput.CharLimit = 100
	titleInput.Width = 48

	picker := filepicker.New()
	picker.AllowedTypes = slices.Clone(audioExtensions)
	picker.Height = 8
	if home, err := os.UserHomeDir(); err == nil {
		picker.CurrentDirectory = home
	}

	m := model{
		cfg:        cfg,
		api:        client,
		log:        log.With().Str("component", "tui").Logger(),
		spinner:    s,
		urlInput:   urlInput,
		titleInput: titleInput,
		picker:     picker,
		demoDelay:  demoDelay,
		duration:   cfg.ClipSeconds,
		privacyIdx: privacyIndex(cfg.Privacy),
	}

	switch {
	case input == "":
	case isVideoURL(input):
		m.urlInput.SetValue(input)
	default:
		m.file = input
		m.focus = zoneTitle
		m.urlInput.Blur()
		m.titleInput.Focus()
	}

	return m
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		textinput.Blink,
		m.picker.Init(),
		checkStatusCmd(m.api, m.statusGen, true),
	)
}

func (m model) currentPrivacy() api.Privacy {
	return api.PrivacyLevels[m.privacyIdx]
}

func privacyIndex(p string) int {
	for i, level := range api.PrivacyLevels {
		if string(level) == p {
			return i
		}
	}
	return 0
}

func isVideoURL(s string) bool {
	return videoURLPattern.MatchString(strings.TrimSpace(s))
}

func isAudioFile(path string) bool {
	return slices.Contains(audioExtensions, strings.ToLower(filepath.Ext(path)))
}
