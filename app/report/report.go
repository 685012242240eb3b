// Package report renders channel results as human readable text
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/umputun/yt-recent/app/youtube"
)

// Text writes results as plain text, one block per channel
func Text(w io.Writer, results []youtube.ChannelResult) error {
	var sb strings.Builder
	for i, cr := range results {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%s, %s\n", cr.Channel, plural(len(cr.Videos), "video"))
		if cr.Error != nil {
			fmt.Fprintf(&sb, "  error [%s]: %s\n", cr.Error.Code, firstLine(cr.Error.Message))
		}
		for n, v := range cr.Videos {
			fmt.Fprintf(&sb, "  %2d. %s\n", n+1, title(v))
			fmt.Fprintf(&sb, "      %s\n", strings.Join(details(v), " | "))
		}
		for _, d := range cr.Debug {
			fmt.Fprintf(&sb, "  debug: %s\n", firstLine(d))
		}
	}
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func details(v youtube.VideoRecord) []string {
	res := []string{v.URL}
	if v.Duration != nil {
		res = append(res, Duration(*v.Duration))
	}
	if v.ViewCount != nil {
		res = append(res, humanize.Comma(*v.ViewCount)+" views")
	}
	if v.UploadDate != nil {
		res = append(res, UploadDate(*v.UploadDate))
	}
	return res
}

func title(v youtube.VideoRecord) string {
	if v.Title == nil {
		return "(" + v.ID + ")"
	}
	return *v.Title
}

// Duration formats seconds as h:mm:ss or m:ss
func Duration(secs int) string {
	h, m, s := secs/3600, (secs%3600)/60, secs%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// UploadDate formats YYYYMMDD as YYYY-MM-DD, other values returned as is
func UploadDate(d string) string {
	if len(d) != 8 || strings.Trim(d, "0123456789") != "" {
		return d
	}
	return d[:4] + "-" + d[4:6] + "-" + d[6:]
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return humanize.Comma(int64(n)) + " " + word + "s"
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
