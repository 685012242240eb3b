// Package api provides rest-like server
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/didip/tollbooth/v7"
	"github.com/didip/tollbooth_chi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-pkgz/lcw/v2"
	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"

	"github.com/umputun/yt-recent/app/youtube"
	"github.com/umputun/yt-recent/app/youtube/channel"
	"github.com/umputun/yt-recent/app/youtube/store"
)

//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher
//go:generate moq -out mocks/status_store.go -pkg mocks -skip-ensure -fmt goimports . StatusStore

const maxBodySize = 64 * 1024

// Server provides HTTP API
type Server struct {
	Version   string
	Channels  []string      // used when request has no channels
	Limit     int           // used when request has no limit
	CacheTTL  time.Duration // 0 disables caching of responses
	RateLimit float64       // requests per second per ip, 0 or negative disables the limiter
	Fetcher   Fetcher
	Journal   StatusStore // optional

	httpServer *http.Server
	cache      lcw.LoadingCache[[]youtube.ChannelResult]
}

// Fetcher gets recent videos for a batch of channels
type Fetcher interface {
	Process(ctx context.Context, ids []string, opts youtube.Options) ([]youtube.ChannelResult, error)
}

// StatusStore provides the journal of the last fetch per channel
type StatusStore interface {
	List() ([]store.ChannelStatus, error)
	Get(channel string) (store.ChannelStatus, error)
}

type videosRequest struct {
	Channels []string
	Limit    int
	Debug    bool
}

// Run starts http server for API with all routes and blocks until ctx is done
func (s *Server) Run(ctx context.Context, port int) {
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      5 * time.Minute, // a batch may take a while
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] http server shutdown error, %s", err)
		}
	}()

	log.Printf("[INFO] starting http server on :%d", port)
	err := s.httpServer.ListenAndServe()
	log.Printf("[WARN] http server terminated, %s", err)
}

func (s *Server) routes() http.Handler {
	s.cache = s.makeCache()

	router := chi.NewRouter()
	router.Use(middleware.RealIP, rest.Recoverer(log.Default()))
	router.Use(middleware.Throttle(100), middleware.Timeout(5*time.Minute))
	router.Use(rest.AppInfo("yt-recent", "umputun", s.Version), rest.Ping)
	if s.RateLimit > 0 {
		router.Use(tollbooth_chi.LimitHandler(tollbooth.NewLimiter(s.RateLimit, nil)))
	}

	router.Route("/api/v1", func(r chi.Router) {
		l := logger.New(logger.Log(log.Default()), logger.Prefix("[INFO]"))
		r.Use(l.Handler)
		r.Get("/videos", s.getVideosCtrl)
		r.Post("/videos", s.postVideosCtrl)
		r.Get("/status", s.getStatusCtrl)
		r.Get("/status/{channel}", s.getChannelStatusCtrl)
	})
	return router
}

func (s *Server) makeCache() lcw.LoadingCache[[]youtube.ChannelResult] {
	if s.CacheTTL <= 0 {
		return lcw.NewNopCache[[]youtube.ChannelResult]()
	}
	o := lcw.NewOpts[[]youtube.ChannelResult]()
	cache, err := lcw.NewExpirableCache(o.TTL(s.CacheTTL), o.MaxKeys(1000))
	if err != nil {
		log.Printf("[WARN] failed to make response cache, caching disabled, %v", err)
		return lcw.NewNopCache[[]youtube.ChannelResult]()
	}
	return cache
}

// GET /api/v1/videos?channel=@veritasium&channel=@kurzgesagt&limit=10&debug=true
func (s *Server) getVideosCtrl(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := videosRequest{Channels: q["channel"], Limit: s.limit()}

	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, err, "limit must be a number")
			return
		}
		req.Limit = limit
	}
	if v := q.Get("debug"); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, err, "debug must be a boolean")
			return
		}
		req.Debug = debug
	}
	s.sendVideos(w, r, req)
}

// POST /api/v1/videos - {"channels": ["@veritasium"], "limit": 10, "debug": false}
func (s *Server) postVideosCtrl(w http.ResponseWriter, r *http.Request) {
	body := struct {
		Channels json.RawMessage `json:"channels"`
		Limit    *int            `json:"limit"`
		Debug    bool            `json:"debug"`
	}{}
	if err := render.DecodeJSON(http.MaxBytesReader(w, r.Body, maxBodySize), &body); err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, err, "failed to decode request")
		return
	}

	req := videosRequest{Limit: s.limit(), Debug: body.Debug}
	if body.Limit != nil {
		req.Limit = *body.Limit
	}
	if len(body.Channels) > 0 && string(body.Channels) != "null" {
		ids, err := channel.ParseList(body.Channels)
		if err != nil {
			rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, err, err.Error())
			return
		}
		req.Channels = ids
	}
	s.sendVideos(w, r, req)
}

func (s *Server) sendVideos(w http.ResponseWriter, r *http.Request, req videosRequest) {
	if len(req.Channels) == 0 {
		req.Channels = s.Channels
	}
	key := fmt.Sprintf("%s|%d|%v", strings.Join(req.Channels, ","), youtube.ClampLimit(req.Limit), req.Debug)
	res, err := s.cache.Get(key, func() ([]youtube.ChannelResult, error) {
		return s.Fetcher.Process(r.Context(), req.Channels, youtube.Options{Limit: req.Limit, Debug: req.Debug})
	})
	if err != nil {
		if errors.Is(err, channel.ErrInvalidInput) {
			rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, err, err.Error())
			return
		}
		rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, err, "failed to fetch videos")
		return
	}
	render.JSON(w, r, res)
}

// GET /api/v1/status - returns the last fetch outcome per channel
func (s *Server) getStatusCtrl(w http.ResponseWriter, r *http.Request) {
	if s.Journal == nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusNotFound, errors.New("no journal"), "journal is not enabled")
		return
	}
	res, err := s.Journal.List()
	if err != nil {
		if res == nil {
			rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, err, "failed to read journal")
			return
		}
		log.Printf("[WARN] some journal records skipped, %v", err)
	}
	render.JSON(w, r, res)
}

// GET /api/v1/status/{channel} - returns the last fetch outcome of a single channel, url-escaped
func (s *Server) getChannelStatusCtrl(w http.ResponseWriter, r *http.Request) {
	if s.Journal == nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusNotFound, errors.New("no journal"), "journal is not enabled")
		return
	}
	ch, err := url.PathUnescape(chi.URLParam(r, "channel"))
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, err, "bad channel")
		return
	}
	st, err := s.Journal.Get(ch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			rest.SendErrorJSON(w, r, log.Default(), http.StatusNotFound, err, "channel not found")
			return
		}
		rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, err, "failed to read journal")
		return
	}
	render.JSON(w, r, st)
}

func (s *Server) limit() int {
	if s.Limit <= 0 {
		return youtube.DefaultLimit
	}
	return s.Limit
}
