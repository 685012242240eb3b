package ytdlp

import (
	"context"
	"io"
	"os/exec"
	"time"
)

// Runner executes an external command, streaming its output to the given writers
type Runner interface {
	Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error
}

// ExecRunner implements Runner with os/exec
type ExecRunner struct{}

// Run executes command and waits for completion. The process is killed when ctx is done.
func (ExecRunner) Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...) // nolint
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.WaitDelay = time.Second // don't hang on pipes held open by orphaned children
	return cmd.Run()
}

// capWriter keeps up to max bytes and remembers if more were written
type capWriter struct {
	buf      []byte
	max      int
	overflow bool
}

func (w *capWriter) Write(p []byte) (int, error) {
	if room := w.max - len(w.buf); room > 0 {
		if len(p) > room {
			w.buf = append(w.buf, p[:room]...)
			w.overflow = true
			return len(p), nil
		}
		w.buf = append(w.buf, p...)
		return len(p), nil
	}
	if len(p) > 0 {
		w.overflow = true
	}
	return len(p), nil
}
