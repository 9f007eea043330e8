package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/anjor/textsplit"
	"github.com/anjor/textsplit/internal/console"
	"github.com/joho/godotenv"
)

func main() {

	// a .env next to the invocation may preset the TEXTSPLIT_* defaults,
	// variables already in the environment win
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Failed to load .env: %s", err)
	}

	// Parse CLI and initialize everything
	// On error it will exit on its own
	ts := textsplit.NewFromArgv(os.Args)
	os.Exit(run(ts))
}

func run(ts *textsplit.TextSplit) int {

	logger := ts.Logger()
	defer logger.Sync() //nolint:errcheck

	sink := console.NewSink(logger, os.Stderr, ts.ShowProgress())
	processErr := ts.Process(sink)
	sink.Finish()

	if processErr != nil {
		logger.Errorw("split failed", "code", textsplit.Classify(processErr), "error", processErr.Error())
		fmt.Fprintf(os.Stderr, "textsplit: %s\n", processErr)
		if textsplit.Classify(processErr) == textsplit.CodeArgument {
			return 2
		}
		return 1
	}

	if err := ts.OutputSummary(); err != nil {
		fmt.Fprintf(os.Stderr, "textsplit: %s\n", err)
		return 1
	}

	smr := ts.Summary()
	fmt.Fprintf(os.Stderr, "Done: %d part(s) written to %s\n", len(smr.Parts), filepath.Clean(smr.Output))
	return 0
}
