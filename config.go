package textsplit

import (
	"os"

	"github.com/anjor/textsplit/internal/constants"
	"github.com/pborman/getopt/v2"
)

type config struct {
	optSet *getopt.Set

	// where to output
	emitters emissionTargets

	//
	// Bulk of CLI options definition starts here, the rest further down in initArgvParser()
	//

	Help    bool `getopt:"-h --help         Display basic help"`
	HelpAll bool `getopt:"--help-all        Display full help including the options of every splitting mode"`

	Input  string `getopt:"-i --input=path   Source text file, gzip/zstd/xz compressed input is unpacked on the fly (required)"`
	Output string `getopt:"-o --output=dir   Destination directory, created if absent (required)"`
	Size   int    `getopt:"-s --size=int     Characters, lines or parts per chunk depending on --mode. Unused in regex mode. Default:"`

	InEnc  string `getopt:"--in-enc=codec    Input encoding name, or 'auto' to detect it. Default:"`
	OutEnc string `getopt:"--out-enc=codec   Output encoding name, 'same-as-input' or 'system-default'. Default:"`

	Regex            string `getopt:"--regex=pattern       Delimiter pattern, required in regex mode"`
	IncludeDelimiter bool   `getopt:"--include-delimiter   Start every regex-mode part with the delimiter that opened it"`

	Naming          string `getopt:"--naming=scheme          Output file naming, 'stem' (<input-stem>_part<N><ext>) or 'plain' (part<N>.txt). Default:"`
	DigestMultibase string `getopt:"--digest-multibase=name  Rendering of part digests, one of 'base32', 'base36'. Default:"`
	DetectSample    int    `getopt:"--detect-sample=bytes    Amount of input sniffed for encoding detection [64:1048576]. Default:"`
	NoDecompress    bool   `getopt:"--no-decompress          Treat compressed input as plain bytes"`
	NoProgress      bool   `getopt:"--no-progress            Do not display progress"`
	LogLevel        string `getopt:"--log-level=level        One of debug, info, warn, error. Default:"`

	mode       string // Mode: option/helptext in initArgvParser()
	digestName string // Digest: option/helptext in initArgvParser()

	emittersStdErr []string // Emitter spec: option/helptext in initArgvParser()
	emittersStdOut []string // Emitter spec: option/helptext in initArgvParser()

	// no-option-attached, instantiation error accumulator
	erroredPartitioners []string
}

// envDefault lets a TEXTSPLIT_* variable (possibly from .env) replace a
// built-in default. Flags still take precedence.
func envDefault(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func defaultConfig() config {
	return config{
		Size:            1000,
		mode:            "chars",
		InEnc:           envDefault("TEXTSPLIT_IN_ENC", "auto"),
		OutEnc:          envDefault("TEXTSPLIT_OUT_ENC", "utf-8"),
		Naming:          "stem",
		digestName:      envDefault("TEXTSPLIT_DIGEST", "sha2-256"),
		DigestMultibase: "base36",
		DetectSample:    constants.DefaultDetectSample,
		LogLevel:        envDefault("TEXTSPLIT_LOG_LEVEL", "info"),
		emittersStdErr:  []string{emStatsText},
		emittersStdOut:  []string{emNone},
		emitters: emissionTargets{
			emNone:       nil,
			emStatsText:  nil,
			emStatsJsonl: nil,
			emPartsJsonl: nil,
		},
	}
}
