// Package console is the terminal face of the CLI: a zap logger and an event
// sink that renders progress inline on a TTY.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/anjor/textsplit/internal/util/stream"
	"go.uber.org/zap"
)

const refreshInterval = 100 * time.Millisecond

// Sink receives log lines and progress percentages from a running job.
// On a TTY progress is redrawn in place, elsewhere it is logged at debug
// level in 10% steps.
type Sink struct {
	log      *zap.SugaredLogger
	w        io.Writer
	isTTY    bool
	progress bool

	lastLen   int
	lastPct   float64
	lastStep  int
	lastFlush time.Time

	mu sync.Mutex
}

// NewSink writes inline progress to w when it is a terminal and showProgress
// is set. Log lines always go to log.
func NewSink(log *zap.SugaredLogger, w io.Writer, showProgress bool) *Sink {
	s := &Sink{
		log:      log,
		w:        w,
		progress: showProgress,
		lastStep: -1,
	}
	if f, isFh := w.(*os.File); isFh && os.Getenv("CI") == "" {
		s.isTTY = stream.IsTTY(f)
	}
	return s
}

func (s *Sink) OnLog(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clearLine()
	s.log.Info(msg)
}

func (s *Sink) OnProgress(pct float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if pct < s.lastPct {
		return
	}
	s.lastPct = pct

	if !s.progress {
		return
	}

	if !s.isTTY {
		if step := int(pct) / 10; step > s.lastStep {
			s.lastStep = step
			s.log.Debugf("progress %.0f%%", pct)
		}
		return
	}

	now := time.Now()
	if pct < 100 && now.Sub(s.lastFlush) < refreshInterval {
		return
	}
	s.lastFlush = now
	s.printInline(fmt.Sprintf("[split] %5.1f%%", pct))
}

// Finish terminates an inline progress line, if one is showing
func (s *Sink) Finish() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastLen > 0 {
		io.WriteString(s.w, "\n") //nolint:errcheck
		s.lastLen = 0
	}
}

func (s *Sink) clearLine() {
	if s.lastLen > 0 {
		io.WriteString(s.w, "\r"+strings.Repeat(" ", s.lastLen)+"\r") //nolint:errcheck
		s.lastLen = 0
	}
}

func (s *Sink) printInline(line string) {
	pad := 0
	if s.lastLen > len(line) {
		pad = s.lastLen - len(line)
	}
	if _, err := io.WriteString(s.w, "\r"+line+strings.Repeat(" ", pad)); err != nil {
		s.progress = false
		return
	}
	s.lastLen = len(line)
}
