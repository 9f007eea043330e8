package lines

import (
	"fmt"

	tspartitioner "github.com/anjor/textsplit/internal/partitioner"
	"github.com/anjor/textsplit/internal/util/argparser"
	"github.com/pborman/getopt/v2"
	"github.com/pborman/options"
)

func NewPartitioner(
	args []string,
) (
	_ tspartitioner.Partitioner,
	_ tspartitioner.InstanceConstants,
	initErrs []error,
) {

	p := linesPartitioner{}

	optSet := getopt.New()
	if err := options.RegisterSet("", &p.config, optSet); err != nil {
		initErrs = []error{fmt.Errorf("option set registration failed: %s", err)}
		return
	}

	// on nil-args the "error" is the help text to be incorporated into
	// the larger help display
	if args == nil {
		initErrs = argparser.SubHelp(
			"Splits the text into parts of exactly max-lines lines (the last part may\n"+
				"have fewer). A line is never split across parts.",
			optSet,
		)
		return
	}

	if initErrs = argparser.Parse(args, optSet); len(initErrs) > 0 {
		return
	}

	return &p, tspartitioner.InstanceConstants{NeedsTotals: true}, nil
}
