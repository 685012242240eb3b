package scrape

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

var (
	reInitialData = regexp.MustCompile(`ytInitialData\s*=\s*`)
	reViews       = regexp.MustCompile(`(?i)([0-9]*\.?[0-9]+)([KMB])?`)
	reVideosTab   = regexp.MustCompile(`(?i)videos`)
)

type initialData struct {
	Contents struct {
		TwoColumnBrowseResultsRenderer struct {
			Tabs []struct {
				TabRenderer *tabRenderer `json:"tabRenderer"`
			} `json:"tabs"`
		} `json:"twoColumnBrowseResultsRenderer"`
	} `json:"contents"`
}

type tabRenderer struct {
	Title   string `json:"title"`
	Content struct {
		RichGridRenderer struct {
			Contents []gridItem `json:"contents"`
		} `json:"richGridRenderer"`
	} `json:"content"`
}

type gridItem struct {
	RichItemRenderer struct {
		Content struct {
			VideoRenderer *videoRenderer `json:"videoRenderer"`
		} `json:"content"`
	} `json:"richItemRenderer"`
	VideoRenderer *videoRenderer `json:"videoRenderer"`
}

type text struct {
	SimpleText string `json:"simpleText"`
	Runs       []struct {
		Text string `json:"text"`
	} `json:"runs"`
}

type videoRenderer struct {
	VideoID           string `json:"videoId"`
	Title             text   `json:"title"`
	LengthText        text   `json:"lengthText"`
	ViewCountText     text   `json:"viewCountText"`
	ThumbnailOverlays []struct {
		TimeStatus *struct {
			Text text `json:"text"`
		} `json:"thumbnailOverlayTimeStatusRenderer"`
	} `json:"thumbnailOverlays"`
}

// parsePage finds initial data blob in the page and extracts up to limit videos.
// Page without the blob is not an error, just no videos.
func parsePage(page []byte, limit int) ([]Video, error) {
	blob := findInitialData(page)
	if blob == nil {
		return []Video{}, nil
	}
	var data initialData
	if err := json.Unmarshal(blob, &data); err != nil {
		return nil, fmt.Errorf("can't unmarshal initial data: %w", err)
	}

	var videosTab *tabRenderer
	for _, t := range data.Contents.TwoColumnBrowseResultsRenderer.Tabs {
		if t.TabRenderer == nil {
			continue
		}
		if len(t.TabRenderer.Content.RichGridRenderer.Contents) > 0 || reVideosTab.MatchString(t.TabRenderer.Title) {
			videosTab = t.TabRenderer
			break
		}
	}
	res := []Video{}
	if videosTab == nil {
		return res, nil
	}

	for _, item := range videosTab.Content.RichGridRenderer.Contents {
		if len(res) >= limit {
			break
		}
		vr := item.RichItemRenderer.Content.VideoRenderer
		if vr == nil {
			vr = item.VideoRenderer
		}
		if vr == nil || vr.VideoID == "" {
			continue
		}
		lengthText := vr.LengthText.SimpleText
		if lengthText == "" {
			for _, o := range vr.ThumbnailOverlays {
				if o.TimeStatus != nil {
					lengthText = o.TimeStatus.Text.SimpleText
					break
				}
			}
		}
		res = append(res, Video{
			ID:       vr.VideoID,
			Title:    cleanTitle(vr.Title.String()),
			Duration: ParseDuration(lengthText),
			Views:    ParseViews(vr.ViewCountText.SimpleText),
		})
	}
	return res, nil
}

// String returns the first run or the simple text
func (t text) String() string {
	if len(t.Runs) > 0 {
		return t.Runs[0].Text
	}
	return t.SimpleText
}

// findInitialData returns json object assigned to ytInitialData, nil if not found
func findInitialData(page []byte) []byte {
	loc := reInitialData.FindIndex(page)
	if loc == nil {
		return nil
	}
	return extractObject(page[loc[1]:])
}

// extractObject cuts a complete json object from the beginning of b, tracking braces outside of strings
func extractObject(b []byte) []byte {
	if len(b) == 0 || b[0] != '{' {
		return nil
	}
	depth := 0
	inStr, escaped := false, false
	for i, c := range b {
		if inStr {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return b[:i+1]
			}
		}
	}
	return nil
}

// ParseDuration converts "h:mm:ss", "mm:ss" or "ss" to seconds. Returns nil for anything else.
func ParseDuration(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return nil
	}
	vals := make([]int, 3)
	offset := 3 - len(parts)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return nil
		}
		vals[offset+i] = n
	}
	res := vals[0]*3600 + vals[1]*60 + vals[2]
	return &res
}

// ParseViews converts strings like "1,234 views" or "1.2K views" to a number. Returns nil if no number found.
func ParseViews(s string) *int64 {
	if s == "" {
		return nil
	}
	s = strings.Join(strings.FieldsFunc(s, func(r rune) bool { return r == ',' || unicode.IsSpace(r) }), "")
	m := reViews.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	num, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	switch strings.ToUpper(m[2]) {
	case "K":
		num *= 1_000
	case "M":
		num *= 1_000_000
	case "B":
		num *= 1_000_000_000
	}
	res := int64(math.Round(num))
	return &res
}

// cleanTitle strips any markup and unescapes html entities
func cleanTitle(s string) string {
	p := bluemonday.StrictPolicy()
	return strings.TrimSpace(html.UnescapeString(p.Sanitize(s)))
}
