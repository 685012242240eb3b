package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	log "github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/yt-recent/app/api"
	"github.com/umputun/yt-recent/app/config"
	"github.com/umputun/yt-recent/app/report"
	"github.com/umputun/yt-recent/app/youtube"
	"github.com/umputun/yt-recent/app/youtube/scrape"
	"github.com/umputun/yt-recent/app/youtube/store"
	"github.com/umputun/yt-recent/app/youtube/ytdlp"
)

type options struct {
	Conf     string   `short:"f" long:"conf" env:"YTR_CONF" description:"config file (yml)"`
	Channels []string `short:"c" long:"channel" env:"YTR_CHANNELS" env-delim:"," description:"channel id, handle or url, overrides config"`
	Limit    int      `short:"l" long:"limit" env:"YTR_LIMIT" description:"videos per channel, overrides config"`
	Verbose  bool     `short:"v" long:"verbose" description:"add debug lines to results"`
	Format   string   `long:"format" env:"YTR_FORMAT" choice:"json" choice:"text" default:"json" description:"output format"`
	DB       string   `long:"db" env:"YTR_DB" description:"journal db file, overrides config"`

	Server struct {
		Enabled bool `long:"enabled" env:"ENABLED" description:"run http server instead of one-shot fetch"`
		Port    int  `long:"port" env:"PORT" description:"http server port, overrides config"`
	} `group:"server" namespace:"server" env-namespace:"YTR_SERVER"`

	Dbg bool `long:"dbg" env:"DEBUG" description:"debug mode"`
}

var revision = "local"

func main() {
	fmt.Fprintf(os.Stderr, "yt-recent %s\n", revision)
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(1)
	}
	setupLog(opts.Dbg)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, opts, os.Stdout); err != nil {
		log.Printf("[ERROR] %v", err)
		cancel()
		os.Exit(1)
	}
}

// run fetches videos once and prints them to out, or runs http server until ctx is done
func run(ctx context.Context, opts options, out io.Writer) error {
	conf, err := loadConfig(opts)
	if err != nil {
		return err
	}

	extractor := ytdlp.New()
	extractor.Binary, extractor.Timeout = conf.YtDlp.Binary, conf.YtDlp.Timeout
	extractor.MaxOutput, extractor.ExtraArgs = conf.YtDlp.MaxOutput, conf.YtDlp.ExtraArgs

	scraper := scrape.New(nil)
	scraper.Timeout, scraper.MaxRedirects = conf.Scraper.Timeout, conf.Scraper.MaxRedirects
	if conf.Scraper.UserAgent != "" {
		scraper.UserAgent = conf.Scraper.UserAgent
	}

	svc := &youtube.Service{Extractor: extractor, Scraper: scraper, Concurrency: conf.Concurrency}

	var journal *store.BoltDB
	if conf.DB != "" {
		if journal, err = store.New(conf.DB); err != nil {
			return fmt.Errorf("can't open journal: %w", err)
		}
		defer journal.Close() // nolint
		svc.Journal = journal
	}

	if opts.Server.Enabled {
		runServer(ctx, conf, svc, journal)
		return nil
	}

	results, err := svc.Process(ctx, conf.Channels, youtube.Options{Limit: conf.Limit, Debug: opts.Verbose})
	if err != nil {
		return fmt.Errorf("can't process channels: %w", err)
	}
	return printResults(out, results, opts.Format)
}

func runServer(ctx context.Context, conf *config.Conf, svc *youtube.Service, journal *store.BoltDB) {
	upd := &ytdlp.Updater{Command: conf.YtDlp.UpdateCmd, Interval: conf.YtDlp.UpdateInterval}
	go upd.Run(ctx)

	srv := api.Server{
		Version:   revision,
		Channels:  conf.Channels,
		Limit:     conf.Limit,
		CacheTTL:  conf.Server.CacheTTL,
		RateLimit: conf.Server.RateLimit,
		Fetcher:   svc,
	}
	if journal != nil {
		srv.Journal = journal
	}
	srv.Run(ctx, conf.Server.Port)
}

// loadConfig reads config file if set and applies command line overrides
func loadConfig(opts options) (*config.Conf, error) {
	conf := config.Default()
	if opts.Conf != "" {
		var err error
		if conf, err = config.Load(opts.Conf); err != nil {
			return nil, fmt.Errorf("can't load config %s: %w", opts.Conf, err)
		}
	}
	if len(opts.Channels) > 0 {
		conf.Channels = opts.Channels
	}
	if opts.Limit > 0 {
		conf.Limit = opts.Limit
	}
	if opts.DB != "" {
		conf.DB = opts.DB
	}
	if opts.Server.Port > 0 {
		conf.Server.Port = opts.Server.Port
	}
	return conf, nil
}

func printResults(out io.Writer, results []youtube.ChannelResult, format string) error {
	if format == "text" {
		return report.Text(out, results)
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("can't marshal results: %w", err)
	}
	if _, err = fmt.Fprintf(out, "%s\n", data); err != nil {
		return fmt.Errorf("can't write results: %w", err)
	}
	return nil
}

func setupLog(dbg bool) {
	if dbg {
		log.Setup(log.Debug, log.CallerFile, log.Msec, log.LevelBraces, log.Out(os.Stderr))
		return
	}
	log.Setup(log.Msec, log.LevelBraces, log.Out(os.Stderr)) // stdout is for results
}
