package ytdlp

import (
	"fmt"
)

// Kind classifies extractor failures
type Kind string

// enum of extractor failure kinds
const (
	KindMissingBinary   = Kind("YTDLP_MISSING")
	KindFailed          = Kind("YTDLP_FAILED")
	KindTimeout         = Kind("YTDLP_TIMEOUT")
	KindMalformedOutput = Kind("YTDLP_MALFORMED_OUTPUT")
)

// captureLimit is how many characters of stdout/stderr are kept for diagnostics
const captureLimit = 500

// Error is returned by every failed extractor call
type Error struct {
	Kind   Kind
	Err    error
	Stdout string // truncated to captureLimit chars
	Stderr string // truncated to captureLimit chars
}

func (e *Error) Error() string {
	prefix := "yt-dlp failed"
	switch e.Kind {
	case KindMalformedOutput:
		prefix = "JSON parse failed"
	case KindTimeout:
		prefix = "yt-dlp timeout"
	case KindMissingBinary:
		prefix = "yt-dlp missing"
	}
	return fmt.Sprintf("%s: %v\nstdout: %s\nstderr: %s", prefix, e.Err, e.Stdout, e.Stderr)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, err error, stdout, stderr []byte) *Error {
	return &Error{Kind: kind, Err: err, Stdout: truncate(stdout), Stderr: truncate(stderr)}
}

// truncate keeps the first captureLimit characters, never splitting a rune
func truncate(b []byte) string {
	r := []rune(string(b))
	if len(r) > captureLimit {
		r = r[:captureLimit]
	}
	return string(r)
}
