package main

import "clipcast/internal/api"

// op names the backend call a response belongs to, so the update loop can
// route failures back to the step that issued them.
type op int

const (
	opStatus op = iota
	opAnalyze
	opUpload
	opAdjust
	opGenerate
	opDownload
	opPublish
	opConnect
)

func (o op) String() string {
	switch o {
	case opStatus:
		return "status"
	case opAnalyze:
		return "analyze"
	case opUpload:
		return "upload"
	case opAdjust:
		return "adjust"
	case opGenerate:
		return "generate"
	case opDownload:
		return "download"
	case opPublish:
		return "publish"
	case opConnect:
		return "connect"
	}
	return "unknown"
}

// statusMsg carries a channel-status response. gen pairs it with the probe
// that requested it; stale responses are dropped instead of overwriting a
// newer result.
type statusMsg struct {
	gen     int
	status  *api.ChannelStatus
	err     error
	initial bool
}

// statusTickMsg fires while the controller polls for a finished OAuth
// handshake in the user's browser.
type statusTickMsg struct{}

// connectStartedMsg delivers the authorization URL the browser was sent to.
type connectStartedMsg struct {
	gen     int
	authURL string
}

// analyzedMsg is the audio path's result, real or synthesized.
type analyzedMsg struct {
	gen    int
	result *api.UploadResult
	demo   bool
}

// shortCreatedMsg is the URL path's result. sourceURL echoes the submitted
// URL so the window can be re-cut later.
type shortCreatedMsg struct {
	gen       int
	sourceURL string
	result    *api.ShortResult
}

type clipAdjustedMsg struct {
	gen    int
	result *api.AdjustResult
}

type videoGeneratedMsg struct {
	gen    int
	result *api.GenerateResult
}

type publishedMsg struct {
	gen    int
	result *api.PublishResult
}

type downloadedMsg struct {
	gen  int
	path string
}

type disconnectedMsg struct {
	gen int
}

type errorMsg struct {
	gen int
	op  op
	err error
}
