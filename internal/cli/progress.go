// Package cli provides progress output helpers for commands that read files.
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"
)

var (
	progressOut io.Writer = os.Stderr
	progressTTY           = func() bool { return term.IsTerminal(int(os.Stderr.Fd())) }
)

type progressStep struct {
	started time.Time
}

// startProgress prints label on stderr and returns a step to finish, or nil
// when progress output is disabled. Methods on a nil step are no-ops.
func startProgress(label string) *progressStep {
	if !progressEnabled() {
		return nil
	}
	fmt.Fprintf(progressOut, "%s... ", label)
	return &progressStep{started: time.Now()}
}

func (p *progressStep) Done() {
	if p == nil {
		return
	}
	fmt.Fprintf(progressOut, "done (%s)\n", formatDuration(time.Since(p.started)))
}

func (p *progressStep) Fail(err error) {
	if p == nil {
		return
	}
	if err != nil {
		fmt.Fprintf(progressOut, "failed: %v\n", err)
		return
	}
	fmt.Fprintln(progressOut, "failed")
}

func progressEnabled() bool {
	if IsJSONOutput() {
		return false
	}
	if _, ok := os.LookupEnv("THEMETOGGLE_NO_PROGRESS"); ok {
		return false
	}
	if _, ok := os.LookupEnv("NO_PROGRESS"); ok {
		return false
	}
	return progressTTY()
}

func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return d.String()
	}
	if d < time.Second {
		return d.Round(10 * time.Millisecond).String()
	}
	return d.Round(100 * time.Millisecond).String()
}
