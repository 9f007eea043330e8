package regex

import (
	"fmt"

	"github.com/anjor/textsplit/internal/constants"
	tspartitioner "github.com/anjor/textsplit/internal/partitioner"
	"github.com/anjor/textsplit/internal/util/argparser"
	"github.com/dlclark/regexp2"
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

	p := regexPartitioner{}

	optSet := getopt.New()
	if err := options.RegisterSet("", &p.config, optSet); err != nil {
		initErrs = []error{fmt.Errorf("option set registration failed: %s", err)}
		return
	}

	// on nil-args the "error" is the help text to be incorporated into
	// the larger help display
	if args == nil {
		initErrs = argparser.SubHelp(
			"Starts a new part at every match of a delimiter pattern. Matching is done\n"+
				"line by line, a delimiter spanning a line boundary is not recognized.\n"+
				"Patterns use Perl/.NET syntax (lookarounds and backreferences allowed).\n"+
				"Parts that would be empty (adjacent delimiters) are skipped.",
			optSet,
		)
		return
	}

	if initErrs = argparser.Parse(args, optSet); len(initErrs) > 0 {
		return
	}

	if p.Pattern == "" {
		return nil, tspartitioner.InstanceConstants{}, []error{
			fmt.Errorf("%w: a delimiter pattern must be specified", tspartitioner.ErrInvalidArgument),
		}
	}

	re, err := regexp2.Compile(p.Pattern, regexp2.None)
	if err != nil {
		return nil, tspartitioner.InstanceConstants{}, []error{
			&tspartitioner.PatternError{Pattern: p.Pattern, Err: err},
		}
	}
	re.MatchTimeout = constants.RegexMatchTimeout
	p.re = re

	return &p, tspartitioner.InstanceConstants{}, nil
}
