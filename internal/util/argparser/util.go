// Package argparser carries the getopt plumbing shared by the root CLI and
// every partitioner: range-checked parsing and the indented plugin help.
package argparser

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/anjor/textsplit/internal/constants"
	"github.com/pborman/getopt/v2"
)

const (
	descIndent = "  "
	optIndent  = "              "
)

// SubHelp renders a partitioner description and its option set in the
// indented form used by --help-all. It travels as a slice of errors, the
// same channel initialization failures use.
func SubHelp(description string, optSet *getopt.Set) []error {

	sh := []error{errors.New(indentLines(description, descIndent))}
	if optSet == nil {
		return sh
	}

	var b bytes.Buffer
	optSet.PrintOptions(&b)

	var opts strings.Builder
	for i, line := range strings.Split(strings.TrimRight(b.String(), "\n"), "\n") {
		if i > 0 {
			opts.WriteByte('\n')
		}
		trimmed := strings.TrimLeft(line, " ")
		switch {
		case strings.HasPrefix(trimmed, "--"):
			// option names are shown bare, the mode passes them itself
			opts.WriteString(line[:len(line)-len(trimmed)] + "  " + trimmed[2:])
		case trimmed == "":
			opts.WriteString(line)
		default:
			// wrapped help text continuing the previous option
			opts.WriteString(optIndent + trimmed)
		}
	}

	return append(sh,
		errors.New(descIndent+"------------\n   SubOptions"),
		errors.New(opts.String()),
	)
}

func indentLines(s, indent string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		if lines[i] != "" {
			lines[i] = indent + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}

// valueRange is the `[min:max]` or `[min:]` parameter name an option may
// carry. MaxSize stands for constants.MaxSizeArg.
type valueRange struct {
	min, max int64
}

// parseRange returns ok=false for parameter names that are not ranges
func parseRange(param string) (r valueRange, ok bool, err error) {

	inner, isRange := strings.CutPrefix(param, "[")
	if !isRange || !strings.HasSuffix(inner, "]") {
		return r, false, nil
	}
	inner = strings.TrimSuffix(inner, "]")

	lo, hi, found := strings.Cut(inner, ":")
	if !found {
		return r, true, fmt.Errorf("range '%s' is not of the form '[min:max]'", param)
	}

	bound := func(s string, dflt int64) (int64, error) {
		switch s {
		case "":
			return dflt, nil
		case "MaxSize":
			return constants.MaxSizeArg, nil
		}
		return strconv.ParseInt(s, 10, 64)
	}

	if r.min, err = bound(lo, -1<<63); err == nil {
		r.max, err = bound(hi, 1<<63-1)
	}
	if err != nil {
		return r, true, fmt.Errorf("range '%s' is not of the form '[min:max]': %w", param, err)
	}
	return r, true, nil
}

// getopt keeps the parameter name unexported
func paramName(o getopt.Option) string {
	v := reflect.ValueOf(o)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return ""
	}
	f := v.Elem().FieldByName("name")
	if !f.IsValid() || f.Kind() != reflect.String {
		return ""
	}
	return f.String()
}

// Parse runs getopt over args (args[0] being the program or partitioner
// name), rejects free-form leftovers, and then checks every option whose
// parameter name is a range. Ranged options are mandatory.
func Parse(args []string, optSet *getopt.Set) (argErrs []error) {

	if err := optSet.Getopt(args, nil); err != nil {
		argErrs = append(argErrs, err)
	}
	if rest := optSet.Args(); len(rest) > 0 {
		argErrs = append(argErrs, fmt.Errorf("unexpected free-form parameter(s): %s...", rest[0]))
	}

	// range complaints on top of a broken command line only confuse
	if len(argErrs) > 0 {
		return argErrs
	}

	optSet.VisitAll(func(o getopt.Option) {
		r, isRange, err := parseRange(paramName(o))
		switch {
		case !isRange:
			return
		case err != nil:
			argErrs = append(argErrs, err)
			return
		case !o.Seen():
			argErrs = append(argErrs, fmt.Errorf("a value for %s must be specified", o.LongName()))
			return
		}

		v, err := strconv.ParseInt(o.Value().String(), 10, 64)
		if err != nil {
			argErrs = append(argErrs, fmt.Errorf("value supplied for %s is not an integer: %w", o.LongName(), err))
			return
		}
		if v < r.min || v > r.max {
			argErrs = append(argErrs, fmt.Errorf(
				"value '%d' supplied for %s out of range [%d:%d]",
				v, o.LongName(), r.min, r.max,
			))
		}
	})

	return argErrs
}
