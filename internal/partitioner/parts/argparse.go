package parts

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

	p := partsPartitioner{}

	optSet := getopt.New()
	if err := options.RegisterSet("", &p.config, optSet); err != nil {
		initErrs = []error{fmt.Errorf("option set registration failed: %s", err)}
		return
	}

	// on nil-args the "error" is the help text to be incorporated into
	// the larger help display
	if args == nil {
		initErrs = argparser.SubHelp(
			"Splits the text into the requested amount of parts. Every part but the last\n"+
				"holds ceil(total/parts) characters regardless of line boundaries, the last\n"+
				"part receives the remainder. Never emits empty parts, thus inputs shorter\n"+
				"than the requested amount of characters produce fewer parts.",
			optSet,
		)
		return
	}

	if initErrs = argparser.Parse(args, optSet); len(initErrs) > 0 {
		return
	}

	return &p, tspartitioner.InstanceConstants{NeedsTotals: true}, nil
}
