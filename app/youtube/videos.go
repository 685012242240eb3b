package youtube

import (
	"errors"
	"math"

	"github.com/umputun/yt-recent/app/youtube/channel"
	"github.com/umputun/yt-recent/app/youtube/scrape"
	"github.com/umputun/yt-recent/app/youtube/ytdlp"
)

// limits for the number of videos per channel
const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// CodeChannelFetchFailed is the error code of a channel which got no videos at all
const CodeChannelFetchFailed = "YTDLP_CHANNEL_FETCH_FAILED"

// ErrNoEntries returned for a channel with a valid, but empty playlist and nothing scraped
var ErrNoEntries = errors.New("no entries found in playlist data")

// VideoRecord is a single video in the output. Optional fields are nil when unknown.
type VideoRecord struct {
	ID         string  `json:"id"`
	Title      *string `json:"title"`
	URL        string  `json:"url"`
	Duration   *int    `json:"duration"` // seconds
	ViewCount  *int64  `json:"viewCount"`
	UploadDate *string `json:"uploadDate"` // YYYYMMDD
}

// ChannelResult is the outcome for one requested channel
type ChannelResult struct {
	Channel string        `json:"channel"`
	Videos  []VideoRecord `json:"videos"`
	Error   *ChannelError `json:"error,omitempty"`
	Debug   []string      `json:"debug,omitempty"`
}

// ChannelError is set only when the channel produced no videos from any source
type ChannelError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Options for Process
type Options struct {
	Limit int  // videos per channel, clamped to [1, MaxLimit]
	Debug bool // collect diagnostic lines in ChannelResult.Debug
}

// ClampLimit keeps limit in [1, MaxLimit]
func ClampLimit(limit int) int {
	if limit < 1 {
		return 1
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// MapVideo converts extractor's video dump to VideoRecord. Zero duration and views treated as unknown.
func MapVideo(v ytdlp.Video) (VideoRecord, error) {
	if v.ID == "" {
		return VideoRecord{}, errors.New("video without id")
	}
	res := VideoRecord{
		ID:         v.ID,
		Title:      optString(v.Title),
		URL:        channel.WatchURL(v.ID),
		UploadDate: optString(v.UploadDate),
	}
	if v.Duration.Truthy() {
		d := int(math.Round(v.Duration.Value))
		res.Duration = &d
	}
	if v.ViewCount.Truthy() {
		vc := int64(math.Round(v.ViewCount.Value))
		res.ViewCount = &vc
	}
	return res, nil
}

// mapScraped converts scraped video to VideoRecord, upload date is never known on this path
func mapScraped(v scrape.Video) VideoRecord {
	return VideoRecord{
		ID:        v.ID,
		Title:     optString(v.Title),
		URL:       channel.WatchURL(v.ID),
		Duration:  v.Duration,
		ViewCount: v.Views,
	}
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
