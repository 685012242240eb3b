// Package youtube collects recent videos of youtube channels.
// The primary source is yt-dlp, channel page scraping is the fallback when yt-dlp gives nothing.
package youtube

import (
	"context"
	"fmt"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/google/uuid"

	"github.com/umputun/yt-recent/app/youtube/channel"
	"github.com/umputun/yt-recent/app/youtube/queue"
	"github.com/umputun/yt-recent/app/youtube/scrape"
	"github.com/umputun/yt-recent/app/youtube/store"
	"github.com/umputun/yt-recent/app/youtube/ytdlp"
)

//go:generate moq -out mocks/extractor.go -pkg mocks -skip-ensure -fmt goimports . Extractor
//go:generate moq -out mocks/scraper.go -pkg mocks -skip-ensure -fmt goimports . Scraper
//go:generate moq -out mocks/journal.go -pkg mocks -skip-ensure -fmt goimports . Journal

// DefaultConcurrency is the number of per-video yt-dlp calls in flight
const DefaultConcurrency = 5

// Service fetches recent videos for a batch of channels
type Service struct {
	Extractor   Extractor
	Scraper     Scraper
	Journal     Journal // optional
	Concurrency int
}

// Extractor is an interface for yt-dlp calls
type Extractor interface {
	Playlist(ctx context.Context, listingURL string, limit int) (ytdlp.Playlist, error)
	Video(ctx context.Context, id string) (ytdlp.Video, error)
}

// Scraper is an interface for the channel page fallback. Never fails, returns empty list instead.
type Scraper interface {
	Videos(ctx context.Context, identifier string, limit int) []scrape.Video
}

// Journal is an interface for recording the outcome of each channel
type Journal interface {
	Save(st store.ChannelStatus) error
}

type outcome int

const (
	primaryOK outcome = iota
	fallbackOK
	bothFailed
)

// listing is the result of the two-stage listing of a channel
type listing struct {
	outcome outcome
	entries []ytdlp.Entry // primaryOK
	videos  []VideoRecord // fallbackOK
	err     error         // bothFailed
}

// Process returns one result per channel, in the input order. Only invalid input fails the whole call,
// all the other problems are reported per channel or silently skip a single video.
func (s *Service) Process(ctx context.Context, ids []string, opts Options) ([]ChannelResult, error) {
	if err := channel.Validate(ids); err != nil {
		return nil, err
	}
	limit := ClampLimit(opts.Limit)
	runID := uuid.New().String()
	log.Printf("[INFO] run %s, %d channel(s), limit=%d, debug=%v", runID, len(ids), limit, opts.Debug)

	st := time.Now()
	res := make([]ChannelResult, 0, len(ids))
	for _, id := range ids {
		cr, src := s.processChannel(ctx, id, limit, opts.Debug)
		if cr.Error != nil {
			log.Printf("[WARN] channel %s failed, %s", id, cr.Error.Message)
		} else {
			log.Printf("[INFO] channel %s, %d video(s) from %s", id, len(cr.Videos), src)
		}
		s.journal(runID, cr, src)
		res = append(res, cr)
	}
	log.Printf("[DEBUG] run %s completed in %v", runID, time.Since(st))
	return res, nil
}

// processChannel never fails, any problem including panic ends up in ChannelResult.Error
func (s *Service) processChannel(ctx context.Context, id string, limit int, debug bool) (res ChannelResult, src store.Source) {
	res = ChannelResult{Channel: id, Videos: []VideoRecord{}}
	dbg := func(format string, args ...any) {
		if debug {
			res.Debug = append(res.Debug, fmt.Sprintf(format, args...))
		}
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[WARN] processing of %s panicked, %v", id, r)
			res.Error = &ChannelError{Message: fmt.Sprintf("channel processing panicked: %v", r), Code: CodeChannelFetchFailed}
			src = store.SourceNone
		}
	}()

	listingURL := channel.VideosURL(id)
	dbg("playlist url=%s limit=%d", listingURL, limit)

	lst := s.list(ctx, id, listingURL, limit, dbg)
	switch lst.outcome {
	case fallbackOK:
		res.Videos = lst.videos
		return res, store.SourceScrape
	case bothFailed:
		res.Error = &ChannelError{Message: lst.err.Error(), Code: CodeChannelFetchFailed}
		return res, store.SourceNone
	}

	res.Videos = s.fetchVideos(ctx, lst.entries, limit, dbg)
	return res, store.SourceYtDlp
}

// list gets playlist entries from yt-dlp, falling back to scraping if yt-dlp failed or had no entries
func (s *Service) list(ctx context.Context, id, listingURL string, limit int, dbg func(string, ...any)) listing {
	pl, err := s.Extractor.Playlist(ctx, listingURL, limit)
	if err == nil && len(pl.Entries) > 0 {
		dbg("playlist entries=%d", len(pl.Entries))
		return listing{outcome: primaryOK, entries: pl.Entries}
	}

	if err != nil {
		log.Printf("[DEBUG] playlist for %s failed, %v", id, err)
		dbg("yt-dlp playlist error: %v", err)
	} else {
		dbg("yt-dlp playlist has no entries")
		err = ErrNoEntries
	}

	scraped := s.Scraper.Videos(ctx, id, limit)
	videos := make([]VideoRecord, 0, len(scraped))
	for _, v := range scraped {
		if len(videos) >= limit {
			break
		}
		if v.ID == "" {
			continue
		}
		videos = append(videos, mapScraped(v))
	}
	dbg("scrape fallback videos=%d", len(videos))
	if len(videos) == 0 {
		return listing{outcome: bothFailed, err: err}
	}
	return listing{outcome: fallbackOK, videos: videos}
}

// fetchVideos gets metadata for up to limit entries concurrently. Failed videos are skipped,
// the rest keep the playlist order.
func (s *Service) fetchVideos(ctx context.Context, entries []ytdlp.Entry, limit int, dbg func(string, ...any)) []VideoRecord {
	if len(entries) > limit {
		entries = entries[:limit]
	}

	q := queue.New[VideoRecord](s.concurrency())
	defer q.Wait()
	log.Printf("[DEBUG] fetching %d videos, concurrency=%d", len(entries), q.Size())
	futures := make([]*queue.Future[VideoRecord], len(entries))
	for i, entry := range entries {
		futures[i] = q.Submit(ctx, func(ctx context.Context) (VideoRecord, error) {
			v, err := s.Extractor.Video(ctx, entry.ID)
			if err != nil {
				return VideoRecord{}, err
			}
			return MapVideo(v)
		})
	}

	res := make([]VideoRecord, 0, len(entries))
	for i, f := range futures {
		rec, err := f.Wait()
		if err != nil {
			log.Printf("[DEBUG] failed to fetch video %s, %v", entries[i].ID, err)
			dbg("Failed to fetch video %s: %v", entries[i].ID, err)
			continue
		}
		res = append(res, rec)
	}
	return res
}

func (s *Service) journal(runID string, cr ChannelResult, src store.Source) {
	if s.Journal == nil {
		return
	}
	st := store.ChannelStatus{Channel: cr.Channel, RunID: runID, TS: time.Now(), Source: src, Videos: len(cr.Videos)}
	if cr.Error != nil {
		st.Error, st.Code = cr.Error.Message, cr.Error.Code
	}
	if err := s.Journal.Save(st); err != nil {
		log.Printf("[WARN] can't save journal record for %s, %v", cr.Channel, err)
	}
}

func (s *Service) concurrency() int {
	if s.Concurrency < 1 {
		return DefaultConcurrency
	}
	return s.Concurrency
}
