package api

// Privacy is the YouTube visibility setting applied at publish time.
type Privacy string

const (
	PrivacyPublic   Privacy = "public"
	PrivacyUnlisted Privacy = "unlisted"
	PrivacyPrivate  Privacy = "private"
)

// PrivacyLevels lists the selectable visibility settings in display order.
var PrivacyLevels = []Privacy{PrivacyPublic, PrivacyUnlisted, PrivacyPrivate}

// Valid reports whether p is one of the backend-accepted privacy values.
func (p Privacy) Valid() bool {
	switch p {
	case PrivacyPublic, PrivacyUnlisted, PrivacyPrivate:
		return true
	}
	return false
}

// Channel is the connected YouTube account as reported by the backend.
type Channel struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Thumbnail       string `json:"thumbnail"`
	SubscriberCount string `json:"subscriber_count"`
}

// ChannelStatus is the response of the status endpoint.
type ChannelStatus struct {
	Connected bool     `json:"connected"`
	Channel   *Channel `json:"channel,omitempty"`
}

// Analysis describes the clip window the backend selected from the source.
type Analysis struct {
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	Duration  float64 `json:"duration"`
	Score     float64 `json:"score"`
	Reason    string  `json:"reason"`
}

// UploadResult is the session created by an audio upload.
type UploadResult struct {
	SessionID string    `json:"session_id"`
	Title     string    `json:"title"`
	Analysis  Analysis  `json:"analysis"`
	Waveform  []float64 `json:"waveform"`
	Beats     []float64 `json:"beats"`
}

// VideoInfo is the source video metadata for the URL path.
type VideoInfo struct {
	Title    string  `json:"title"`
	Duration float64 `json:"duration"`
}

// ClipInfo is the clip window selected from a downloaded video.
type ClipInfo struct {
	StartTime float64 `json:"start_time"`
	Duration  float64 `json:"duration"`
	Title     string  `json:"title"`
}

// ShortRequest asks the backend to turn a video URL into a short clip.
type ShortRequest struct {
	URL       string   `json:"url"`
	Title     string   `json:"title,omitempty"`
	Duration  int      `json:"duration"`
	StartTime *float64 `json:"start_time,omitempty"`
}

// ShortResult is the session created from a video URL, preview already rendered.
type ShortResult struct {
	SessionID   string    `json:"session_id"`
	VideoInfo   VideoInfo `json:"video_info"`
	ClipInfo    ClipInfo  `json:"clip_info"`
	VideoURL    string    `json:"video_url"`
	DownloadURL string    `json:"download_url"`
}

// AdjustRequest moves the clip window of an existing session.
type AdjustRequest struct {
	SessionID string  `json:"session_id"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
}

// AdjustResult carries the recomputed window and visualization data.
type AdjustResult struct {
	SessionID string    `json:"session_id"`
	Analysis  Analysis  `json:"analysis"`
	Waveform  []float64 `json:"waveform"`
	Beats     []float64 `json:"beats"`
}

// GenerateResult is the response of the preview-render endpoint.
type GenerateResult struct {
	SessionID   string `json:"session_id"`
	VideoURL    string `json:"video_url"`
	DownloadURL string `json:"download_url"`
}

// PublishResult is the response of a successful publish.
type PublishResult struct {
	Success bool    `json:"success"`
	VideoID string  `json:"video_id"`
	URL     string  `json:"url"`
	Privacy Privacy `json:"privacy"`
}
