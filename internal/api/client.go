package api

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/imroc/req/v3"
	"github.com/rs/zerolog"
)

// DefaultBaseURL is the backend's development address, used when no base URL
// is configured.
const DefaultBaseURL = "http://localhost:5000"

const (
	defaultTimeout      = 60 * time.Second
	defaultMediaTimeout = 5 * time.Minute
)

// Error is a backend rejection. Message carries the server-supplied error
// string when the response body had one, so callers can surface it verbatim.
// Transport failures are never an *Error.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend returned status %d", e.Status)
}

// ClientConfig captures the knobs for the backend client.
type ClientConfig struct {
	BaseURL string
	Token   string
	// Timeout bounds plain JSON calls. MediaTimeout bounds uploads and
	// downloads, which move whole media files.
	Timeout      time.Duration
	MediaTimeout time.Duration
}

// Client talks to the clip-processing backend.
type Client struct {
	base   string
	client *req.Client // JSON calls
	media  *req.Client // uploads and downloads, longer timeout
	log    zerolog.Logger
}

// NewClient builds a backend client. An empty base URL means the development
// default. The token, when set, is sent as a bearer credential on every call.
func NewClient(cfg ClientConfig, log zerolog.Logger) *Client {
	base := strings.TrimSuffix(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MediaTimeout <= 0 {
		cfg.MediaTimeout = defaultMediaTimeout
	}

	client := req.C().
		SetTimeout(cfg.Timeout).
		SetCommonContentType("application/json").
		SetUserAgent("clipcast")

	media := req.C().
		SetTimeout(cfg.MediaTimeout).
		SetUserAgent("clipcast")

	if cfg.Token != "" {
		client.SetCommonBearerAuthToken(cfg.Token)
		media.SetCommonBearerAuthToken(cfg.Token)
	}

	return &Client{
		base:   base,
		client: client,
		media:  media,
		log:    log.With().Str("component", "api-client").Logger(),
	}
}

// BaseURL returns the resolved backend address.
func (c *Client) BaseURL() string { return c.base }

// ResolveURL turns backend-relative media paths (the backend returns preview
// URLs like /api/video/<id>) into absolute URLs. Absolute inputs pass through.
func (c *Client) ResolveURL(u string) string {
	if u == "" || strings.Contains(u, "://") {
		return u
	}
	if !strings.HasPrefix(u, "/") {
		u = "/" + u
	}
	return c.base + u
}

func (c *Client) url(path string) string { return c.base + path }

// decode maps a completed HTTP exchange onto out, converting backend
// rejections into *Error.
func decode(resp *req.Response, out any) error {
	if resp.StatusCode >= 400 {
		return parseError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Bytes(), out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

func parseError(resp *req.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal(resp.Bytes(), &body)
	return &Error{Status: resp.StatusCode, Message: strings.TrimSpace(body.Error)}
}

// Health probes the backend's health endpoint and returns its status string.
func (c *Client) Health(ctx context.Context) (string, error) {
	resp, err := c.client.R().SetContext(ctx).Get(c.url("/api/health"))
	if err != nil {
		return "", fmt.Errorf("health check: %w", err)
	}
	var out struct {
		Status string `json:"status"`
	}
	if err := decode(resp, &out); err != nil {
		return "", fmt.Errorf("health check: %w", err)
	}
	return out.Status, nil
}

// ChannelStatus reads the backend's view of the YouTube connection.
func (c *Client) ChannelStatus(ctx context.Context) (*ChannelStatus, error) {
	resp, err := c.client.R().SetContext(ctx).Get(c.url("/api/youtube/status"))
	if err != nil {
		return nil, fmt.Errorf("channel status: %w", err)
	}
	var out ChannelStatus
	if err := decode(resp, &out); err != nil {
		return nil, fmt.Errorf("channel status: %w", err)
	}
	return &out, nil
}

// ConnectURL asks the backend for the OAuth authorization URL the user's
// browser should visit.
func (c *Client) ConnectURL(ctx context.Context) (string, error) {
	resp, err := c.client.R().SetContext(ctx).Get(c.url("/api/youtube/connect"))
	if err != nil {
		return "", fmt.Errorf("youtube connect: %w", err)
	}
	var out struct {
		AuthURL string `json:"auth_url"`
	}
	if err := decode(resp, &out); err != nil {
		return "", fmt.Errorf("youtube connect: %w", err)
	}
	if strings.TrimSpace(out.AuthURL) == "" {
		return "", fmt.Errorf("youtube connect: backend returned empty auth url")
	}
	return out.AuthURL, nil
}

// Disconnect drops the backend's stored YouTube credentials.
func (c *Client) Disconnect(ctx context.Context) error {
	resp, err := c.client.R().SetContext(ctx).Post(c.url("/api/youtube/disconnect"))
	if err != nil {
		return fmt.Errorf("youtube disconnect: %w", err)
	}
	if err := decode(resp, nil); err != nil {
		return fmt.Errorf("youtube disconnect: %w", err)
	}
	return nil
}

// ShortFromURL downloads a remote video server-side and returns a session
// with the clip already selected and a preview rendered.
func (c *Client) ShortFromURL(ctx context.Context, r ShortRequest) (*ShortResult, error) {
	c.log.Debug().Str("url", r.URL).Int("duration", r.Duration).Msg("creating short from url")
	resp, err := c.client.R().SetContext(ctx).SetBody(r).Post(c.url("/api/youtube-to-short"))
	if err != nil {
		return nil, fmt.Errorf("create short: %w", err)
	}
	var out ShortResult
	if err := decode(resp, &out); err != nil {
		c.log.Error().Err(err).Int("status", resp.StatusCode).Msg("create short rejected")
		return nil, fmt.Errorf("create short: %w", err)
	}
	return &out, nil
}

// UploadAudio sends a local audio file for analysis and returns the session
// with the selected clip window and visualization data.
func (c *Client) UploadAudio(ctx context.Context, filePath, title string) (*UploadResult, error) {
	c.log.Debug().Str("file", filePath).Str("title", title).Msg("uploading audio")
	resp, err := c.media.R().
		SetContext(ctx).
		SetFile("file", filePath).
		SetFormData(map[string]string{"title": title}).
		Post(c.url("/api/upload"))
	if err != nil {
		return nil, fmt.Errorf("upload audio: %w", err)
	}
	var out UploadResult
	if err := decode(resp, &out); err != nil {
		c.log.Error().Err(err).Int("status", resp.StatusCode).Msg("upload rejected")
		return nil, fmt.Errorf("upload audio: %w", err)
	}
	return &out, nil
}

// AdjustClip moves the clip window of an existing session.
func (c *Client) AdjustClip(ctx context.Context, r AdjustRequest) (*AdjustResult, error) {
	resp, err := c.client.R().SetContext(ctx).SetBody(r).Post(c.url("/api/adjust-clip"))
	if err != nil {
		return nil, fmt.Errorf("adjust clip: %w", err)
	}
	var out AdjustResult
	if err := decode(resp, &out); err != nil {
		return nil, fmt.Errorf("adjust clip: %w", err)
	}
	return &out, nil
}

// GenerateVideo renders the preview video for a session.
func (c *Client) GenerateVideo(ctx context.Context, sessionID string) (*GenerateResult, error) {
	c.log.Debug().Str("session", sessionID).Msg("generating preview video")
	body := map[string]string{"session_id": sessionID}
	resp, err := c.client.R().SetContext(ctx).SetBody(body).Post(c.url("/api/generate-video"))
	if err != nil {
		return nil, fmt.Errorf("generate video: %w", err)
	}
	var out GenerateResult
	if err := decode(resp, &out); err != nil {
		return nil, fmt.Errorf("generate video: %w", err)
	}
	return &out, nil
}

// Publish uploads the session's rendered clip to the connected channel.
func (c *Client) Publish(ctx context.Context, sessionID string, privacy Privacy) (*PublishResult, error) {
	c.log.Debug().Str("session", sessionID).Str("privacy", string(privacy)).Msg("publishing")
	body := map[string]string{
		"session_id": sessionID,
		"privacy":    string(privacy),
	}
	resp, err := c.client.R().SetContext(ctx).SetBody(body).Post(c.url("/api/publish"))
	if err != nil {
		return nil, fmt.Errorf("publish: %w", err)
	}
	var out PublishResult
	if err := decode(resp, &out); err != nil {
		c.log.Error().Err(err).Int("status", resp.StatusCode).Msg("publish rejected")
		return nil, fmt.Errorf("publish: %w", err)
	}
	return &out, nil
}

// Download saves the session's rendered clip to dest.
func (c *Client) Download(ctx context.Context, sessionID, dest string) error {
	resp, err := c.media.R().
		SetContext(ctx).
		SetOutputFile(dest).
		Get(c.url("/api/download/" + sessionID))
	if err != nil {
		return fmt.Errorf("download: %w", err)
	}
	if resp.StatusCode >= 400 {
		// The error body streamed into dest; drop the partial file.
		_ = os.Remove(dest)
		return fmt.Errorf("download: %w", &Error{Status: resp.StatusCode})
	}
	return nil
}

// Cleanup releases the backend-side files of an abandoned session.
func (c *Client) Cleanup(ctx context.Context, sessionID string) error {
	resp, err := c.client.R().SetContext(ctx).Delete(c.url("/api/cleanup/" + sessionID))
	if err != nil {
		return fmt.Errorf("cleanup: %w", err)
	}
	if err := decode(resp, nil); err != nil {
		return fmt.Errorf("cleanup: %w", err)
	}
	return nil
}
