package textsplit

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/anjor/textsplit/internal/console"
	tspartitioner "github.com/anjor/textsplit/internal/partitioner"
	"github.com/anjor/textsplit/internal/partitioner/chars"
	"github.com/anjor/textsplit/internal/partitioner/lines"
	"github.com/anjor/textsplit/internal/partitioner/parts"
	"github.com/anjor/textsplit/internal/partitioner/regex"
	"github.com/anjor/textsplit/internal/util/argparser"
	"github.com/pborman/getopt/v2"
	"go.uber.org/zap"
)

var availablePartitioners = map[string]tspartitioner.Initializer{
	"chars": chars.NewPartitioner,
	"lines": lines.NewPartitioner,
	"parts": parts.NewPartitioner,
	"regex": regex.NewPartitioner,
}

// TextSplit is a CLI-configured split job together with its output streams
type TextSplit struct {
	cfg      config
	compiled *compiled
	summary  *Summary
	argv     []string
	expanded []string
	logger   *zap.SugaredLogger

	stderr io.Writer
	stdout io.Writer
}

func New() *TextSplit {
	return &TextSplit{
		cfg:    defaultConfig(),
		stderr: os.Stderr,
		stdout: os.Stdout,
	}
}

// NewFromArgv parses argv and exits the process on --help (0) or on any
// argument error (2).
func NewFromArgv(argv []string) *TextSplit {
	ts, errs := NewWithWriters(argv, os.Stderr, os.Stdout)
	if len(errs) > 0 {
		os.Exit(2)
	}
	if ts == nil {
		os.Exit(0)
	}
	return ts
}

// NewWithWriters parses argv, sending usage, errors and emitter output to
// the supplied writers. When help was requested it is printed and a nil
// *TextSplit is returned. Argument errors are printed and returned, all at
// once.
func NewWithWriters(argv []string, stderr, stdout io.Writer) (ts *TextSplit, argParseErrs []error) {

	ts = New()
	ts.stderr, ts.stdout = stderr, stdout
	ts.argv = getInitialArgs(argv)

	cfg := &ts.cfg
	cfg.initArgvParser()

	// accumulator for multiple errors, to present to the user all at once
	argParseErrs = argparser.Parse(argv, cfg.optSet)

	if cfg.Help || cfg.HelpAll {
		cfg.printUsage(stderr)
		return nil, nil
	}

	// going through the job when the command line itself is broken is too confusing
	if len(argParseErrs) == 0 {

		argParseErrs = append(argParseErrs, ts.setupEmitters()...)

		var err error
		if ts.logger, err = console.NewLogger(stderr, cfg.LogLevel); err != nil {
			argParseErrs = append(argParseErrs, argErr("%s", err))
		}

		c, jobErrs := cfg.job().compile()
		if _, known := availablePartitioners[cfg.mode]; known && c.modeFailed {
			cfg.erroredPartitioners = append(cfg.erroredPartitioners, cfg.mode)
		}
		argParseErrs = append(argParseErrs, jobErrs...)
		ts.compiled = c
	}

	if len(argParseErrs) > 0 {
		ts.logArgParseErrors(argParseErrs)
		return nil, argParseErrs
	}

	// Opts check out - take a snapshot of what we ended up with
	cfg.optSet.VisitAll(func(o getopt.Option) {
		switch o.LongName() {
		case "help", "help-all":
			// do nothing for these
		default:
			ts.expanded = append(ts.expanded, fmt.Sprintf(`--%s=%s`,
				o.LongName(),
				o.Value().String(),
			))
		}
	})
	sort.Strings(ts.expanded)

	return ts, nil
}

// Logger is the CLI logger, configured from --log-level
func (ts *TextSplit) Logger() *zap.SugaredLogger {
	if ts.logger == nil {
		ts.logger = zap.NewNop().Sugar()
	}
	return ts.logger
}

// ShowProgress reports whether progress display was left enabled
func (ts *TextSplit) ShowProgress() bool { return !ts.cfg.NoProgress }

// Process runs the configured job. sink may be nil. Every part written is
// reported on the parts-jsonl emitter as it happens.
func (ts *TextSplit) Process(sink EventSink) error {

	if ts.compiled == nil {
		return argErr("no job configured")
	}

	var onPart func(PartStats) error
	if out := ts.cfg.emitters[emPartsJsonl]; out != nil {
		onPart = func(ps PartStats) error {
			jsonl, err := partJsonl(ps)
			if err != nil {
				return err
			}
			if _, err := out.Write(jsonl); err != nil {
				return fmt.Errorf("emitting '%s' failed: %w", emPartsJsonl, err)
			}
			return nil
		}
	}

	smr, err := ts.compiled.execute(sink, onPart)
	if err != nil {
		return err
	}

	smr.SysStats.ArgvInitial = ts.argv
	smr.SysStats.ArgvExpanded = ts.expanded
	ts.summary = smr
	return nil
}

// Summary of the last successful Process() call, nil before that
func (ts *TextSplit) Summary() *Summary { return ts.summary }
