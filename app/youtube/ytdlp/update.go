package ytdlp

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater"
)

// Updater periodically runs a shell command updating yt-dlp binary, i.e. "yt-dlp --update"
type Updater struct {
	Command  string
	Interval time.Duration
	Repeats  int           // attempts per update, default 3
	Delay    time.Duration // delay between attempts, default 1s
}

// Run blocks and executes the update command every Interval until ctx is done
func (u *Updater) Run(ctx context.Context) {
	if u.Command == "" || u.Interval <= 0 {
		return
	}
	log.Printf("[INFO] yt-dlp update every %v with %q", u.Interval, u.Command)
	tick := time.NewTicker(u.Interval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			if err := u.Update(ctx); err != nil {
				log.Printf("[WARN] %v", err)
			}
		}
	}
}

// Update executes the update command once, retrying on failure
func (u *Updater) Update(ctx context.Context) error {
	repeats, delay := u.Repeats, u.Delay
	if repeats <= 0 {
		repeats = 3
	}
	if delay <= 0 {
		delay = time.Second
	}
	log.Printf("[INFO] executing yt-dlp update command %s", u.Command)
	rp := repeater.NewDefault(repeats, delay)
	err := rp.Do(ctx, func() error {
		cmd := exec.CommandContext(ctx, "sh", "-c", u.Command) // nolint
		cmd.Stdout = log.ToWriter(log.Default(), "DEBUG")
		cmd.Stderr = log.ToWriter(log.Default(), "INFO")
		return cmd.Run()
	})
	if err != nil {
		return fmt.Errorf("failed to execute yt-dlp update command %s: %w", u.Command, err)
	}
	return nil
}
