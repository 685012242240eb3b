// Package ytdlp runs yt-dlp to get playlist and video metadata as json.
package ytdlp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strconv"
	"strings"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/yt-recent/app/youtube/channel"
)

// defaults for Extractor
const (
	DefaultBinary    = "yt-dlp"
	DefaultTimeout   = 60 * time.Second
	DefaultMaxOutput = 10 * 1024 * 1024
)

// Extractor calls yt-dlp. Zero value is usable: default binary, no timeout, os/exec runner.
type Extractor struct {
	Binary    string
	Timeout   time.Duration // per invocation, 0 disables the timeout
	MaxOutput int           // max bytes captured from stdout and from stderr
	ExtraArgs []string      // added before the generated arguments, i.e. --no-warnings
	Runner    Runner
}

// New makes Extractor with default binary, timeout and output limit
func New() *Extractor {
	return &Extractor{Binary: DefaultBinary, Timeout: DefaultTimeout, MaxOutput: DefaultMaxOutput}
}

// Playlist gets a flat listing of up to limit entries for the listing url
// yt-dlp -J --flat-playlist --playlist-end 50 https://www.youtube.com/@veritasium/videos
func (e *Extractor) Playlist(ctx context.Context, listingURL string, limit int) (Playlist, error) {
	var res Playlist
	if err := e.run(ctx, PlaylistArgs(listingURL, limit), &res); err != nil {
		return Playlist{}, err
	}
	return res, nil
}

// Video gets metadata of a single video without downloading it
// yt-dlp -J --skip-download https://www.youtube.com/watch?v=dQw4w9WgXcQ
func (e *Extractor) Video(ctx context.Context, id string) (Video, error) {
	if id == "" {
		return Video{}, errors.New("empty video id")
	}
	var res Video
	if err := e.run(ctx, VideoArgs(id), &res); err != nil {
		return Video{}, err
	}
	return res, nil
}

// PlaylistArgs returns yt-dlp arguments for a flat playlist dump
func PlaylistArgs(listingURL string, limit int) []string {
	return []string{"-J", "--flat-playlist", "--playlist-end", strconv.Itoa(limit), listingURL}
}

// VideoArgs returns yt-dlp arguments for a single video dump
func VideoArgs(id string) []string {
	return []string{"-J", "--skip-download", channel.WatchURL(id)}
}

// run executes yt-dlp and decodes its stdout to v. All failures returned as *Error.
func (e *Extractor) run(ctx context.Context, args []string, v any) error {
	bin := e.Binary
	if bin == "" {
		bin = DefaultBinary
	}
	maxOut := e.MaxOutput
	if maxOut <= 0 {
		maxOut = DefaultMaxOutput
	}
	var runner Runner = ExecRunner{}
	if e.Runner != nil {
		runner = e.Runner
	}

	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	fullArgs := append(append([]string{}, e.ExtraArgs...), args...)
	stdout, stderr := &capWriter{max: maxOut}, &capWriter{max: maxOut}
	log.Printf("[DEBUG] executing %s %s", bin, strings.Join(fullArgs, " "))
	st := time.Now()
	err := runner.Run(ctx, bin, fullArgs, stdout, stderr)
	switch {
	case err != nil && (errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist)):
		return newError(KindMissingBinary, err, stdout.buf, stderr.buf)
	case err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded):
		return newError(KindTimeout, fmt.Errorf("no result after %v: %w", time.Since(st).Truncate(time.Millisecond), err),
			stdout.buf, stderr.buf)
	case err != nil:
		return newError(KindFailed, err, stdout.buf, stderr.buf)
	case stdout.overflow:
		return newError(KindFailed, fmt.Errorf("stdout exceeds %d bytes", maxOut), stdout.buf, stderr.buf)
	}
	log.Printf("[DEBUG] %s completed in %v, %d bytes", bin, time.Since(st).Truncate(time.Millisecond), len(stdout.buf))

	if err := json.Unmarshal(stdout.buf, v); err != nil {
		return newError(KindMalformedOutput, err, stdout.buf, stderr.buf)
	}
	return nil
}
