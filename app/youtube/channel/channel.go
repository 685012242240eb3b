// Package channel validates channel identifiers and converts them to youtube listing urls.
package channel

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Root is the base url of the platform
const Root = "https://www.youtube.com"

// ErrInvalidInput returned for any batch rejected before fetching
var ErrInvalidInput = errors.New("invalid input")

var (
	reChannelID = regexp.MustCompile(`^UC[0-9A-Za-z_-]{22}$`)
	reHandle    = regexp.MustCompile(`^@[\w.-]{3,}$`)
	reURL       = regexp.MustCompile(`^https?://(www\.)?youtube\.com/(channel/UC[0-9A-Za-z_-]{22}|@[\w.-]{3,}|c/[A-Za-z0-9_-]+|user/[A-Za-z0-9_-]+)/?$`)

	reURLPath  = regexp.MustCompile(`(?i)^https?://(www\.)?youtube\.com/(.+?)/?$`)
	reSection  = regexp.MustCompile(`(?i)/(videos|shorts|live|streams|playlists)(/|$)`)
	reRootPath = regexp.MustCompile(`(?i)^(channel/UC[0-9A-Za-z_-]{22}|@[\w.-]{3,}|c/[A-Za-z0-9_-]+|user/[A-Za-z0-9_-]+)$`)
)

// Valid checks if identifier is a channel id, a handle or a recognized channel url
func Valid(id string) bool {
	id = strings.TrimSpace(id)
	return reChannelID.MatchString(id) || reHandle.MatchString(id) || reURL.MatchString(id)
}

// Validate checks the whole batch and reports every bad entry at once.
// The returned error wraps ErrInvalidInput.
func Validate(ids []string) error {
	if len(ids) == 0 {
		return fmt.Errorf("%w: provide at least one channel handle or url", ErrInvalidInput)
	}
	errs := new(multierror.Error)
	for i, id := range ids {
		if strings.TrimSpace(id) == "" {
			errs = multierror.Append(errs, fmt.Errorf("item %d is blank", i))
			continue
		}
		if !Valid(id) {
			errs = multierror.Append(errs, fmt.Errorf("invalid channel identifier or url: %s", id))
		}
	}
	if err := errs.ErrorOrNil(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}

// ParseList decodes a json array of identifiers, rejecting anything but a non-empty array of strings
func ParseList(raw json.RawMessage) ([]string, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return nil, fmt.Errorf("%w: channels must be an array", ErrInvalidInput)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: channels must not be empty", ErrInvalidInput)
	}
	res := make([]string, 0, len(items))
	for i, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err != nil {
			return nil, fmt.Errorf("%w: item %d is not a string", ErrInvalidInput, i)
		}
		res = append(res, s)
	}
	return res, nil
}

// VideosURL makes the listing url for a channel identifier.
// Handles and channel roots point to the videos section, section urls are kept as-is.
func VideosURL(id string) string {
	id = strings.TrimSpace(id)
	if strings.HasPrefix(id, "@") {
		return Root + "/" + id + "/videos"
	}
	m := reURLPath.FindStringSubmatch(id)
	if m == nil {
		return id
	}
	path := m[2]
	if reSection.MatchString(path) {
		return id
	}
	if reRootPath.MatchString(path) {
		return strings.TrimSuffix(id, "/") + "/videos"
	}
	return id
}

// WatchURL returns the video page url
func WatchURL(videoID string) string {
	return Root + "/watch?v=" + videoID
}
