package textsplit

import (
	"fmt"
	"io"
	"log"
	"sort"
	"strings"

	"github.com/anjor/textsplit/internal/digest"
	"github.com/anjor/textsplit/internal/util/text"
	"github.com/pborman/getopt/v2"
	"github.com/pborman/options"
)

func (cfg *config) printUsage(out io.Writer) {
	cfg.optSet.PrintUsage(out)
	if cfg.HelpAll || len(cfg.erroredPartitioners) > 0 {
		printPluginUsage(out, cfg.erroredPartitioners)
	} else {
		fmt.Fprint(out, "\nTry --help-all for more info\n\n")
	}
}

func printPluginUsage(out io.Writer, listPartitioners []string) {

	// if nothing was requested explicitly - list everything
	if len(listPartitioners) == 0 {
		for name, initializer := range availablePartitioners {
			if initializer != nil {
				listPartitioners = append(listPartitioners, name)
			}
		}
	}

	fmt.Fprint(out, "\n")
	sort.Strings(listPartitioners)
	for _, name := range listPartitioners {
		fmt.Fprintf(
			out,
			"[M]ode '%s'\n",
			name,
		)
		_, _, h := availablePartitioners[name](nil)
		if len(h) == 0 {
			fmt.Fprint(out, "  -- no helptext available --\n\n")
		} else {
			for _, l := range h {
				fmt.Fprintln(out, l.Error())
			}
			fmt.Fprint(out, "\n")
		}
	}
}

func (cfg *config) initArgvParser() {
	// The default documented way of using pborman/options is to muck with globals
	// Operate over objects instead, allowing us to re-parse argv multiple times
	o := getopt.New()
	if err := options.RegisterSet("", cfg, o); err != nil {
		log.Fatalf("option set registration failed: %s", err)
	}
	cfg.optSet = o

	// program does not take freeform args
	// need to override this for sensible help render
	o.SetParameters("")

	// Several options have the help-text assembled programmatically
	o.FlagLong(&cfg.mode, "mode", 'm',
		"Splitting strategy, one of: "+text.AvailableMapKeys(availablePartitioners)+". Default:",
		"name",
	)
	o.FlagLong(&cfg.digestName, "digest", 0,
		"Per-part content digest reported by the emitters, one of: "+text.AvailableMapKeys(digest.AvailableHashers)+". Default:",
		"algname",
	)
	o.FlagLong(&cfg.emittersStdErr, "emit-stderr", 0, fmt.Sprintf(
		"One or more emitters to activate on stdERR. Available emitters are %s. Default: ",
		text.AvailableMapKeys(cfg.emitters),
	), "comma,sep,emitters")
	o.FlagLong(&cfg.emittersStdOut, "emit-stdout", 0,
		"One or more emitters to activate on stdOUT. Available emitters same as above. Default: ",
		"comma,sep,emitters",
	)
}

func (ts *TextSplit) setupEmitters() (argErrs []error) {

	cfg := &ts.cfg

	for _, spec := range []struct {
		flag  string
		names []string
		dest  io.Writer
	}{
		{"--emit-stderr", cfg.emittersStdErr, ts.stderr},
		{"--emit-stdout", cfg.emittersStdOut, ts.stdout},
	} {
		active := make(map[string]bool, len(spec.names))
		for _, s := range spec.names {
			active[s] = true
			if val, exists := cfg.emitters[s]; !exists {
				argErrs = append(argErrs, argErr(
					"invalid emitter '%s' specified for %s. Available emitters are: %s",
					s,
					spec.flag,
					text.AvailableMapKeys(cfg.emitters),
				))
			} else if s == emNone {
				continue
			} else if val != nil {
				argErrs = append(argErrs, argErr("emitter '%s' specified more than once", s))
			} else {
				cfg.emitters[s] = spec.dest
			}
		}

		for _, exclusiveEmitter := range []string{
			emNone,
			emStatsText,
		} {
			if active[exclusiveEmitter] && len(active) > 1 {
				argErrs = append(argErrs, argErr(
					"when specified, emitter '%s' must be the sole argument to %s",
					exclusiveEmitter,
					spec.flag,
				))
			}
		}
	}

	return
}

// job translates the parsed flags into the library-level job description
func (cfg *config) job() Job {
	return Job{
		Input:            cfg.Input,
		Output:           cfg.Output,
		Mode:             cfg.mode,
		Size:             cfg.Size,
		Pattern:          cfg.Regex,
		IncludeDelimiter: cfg.IncludeDelimiter,
		InEncoding:       cfg.InEnc,
		OutEncoding:      cfg.OutEnc,
		Naming:           cfg.Naming,
		Digest:           cfg.digestName,
		DigestMultibase:  cfg.DigestMultibase,
		DetectSample:     cfg.DetectSample,
		NoDecompress:     cfg.NoDecompress,
	}
}

func getInitialArgs(argv []string) []string {
	if len(argv) < 2 {
		return nil
	}
	return append([]string{}, argv[1:]...)
}

func (ts *TextSplit) logArgParseErrors(argErrs []error) {
	if len(argErrs) == 0 {
		return
	}

	ts.cfg.printUsage(ts.stderr)

	msgs := make([]string, len(argErrs))
	for i, e := range argErrs {
		msgs[i] = strings.TrimSpace(e.Error())
	}
	sort.Strings(msgs)
	fmt.Fprintf(ts.stderr, "Fatal error parsing arguments:\n\t%s\n", strings.Join(msgs, "\n\t"))
}
