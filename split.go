package textsplit

import (
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/anjor/textsplit/internal/chunkwriter"
	"github.com/anjor/textsplit/internal/codec"
	"github.com/anjor/textsplit/internal/constants"
	"github.com/anjor/textsplit/internal/digest"
	tspartitioner "github.com/anjor/textsplit/internal/partitioner"
	"github.com/anjor/textsplit/internal/textstream"
	"github.com/anjor/textsplit/internal/util/stream"
	"github.com/anjor/textsplit/internal/util/text"
	"github.com/google/uuid"
)

// Job holds the parameters of a single split. Zero values select the
// documented defaults, except Size which has none: outside regex mode it
// must be positive.
type Job struct {
	Input  string
	Output string

	// chars (default), lines, parts or regex
	Mode string

	// Characters, lines or parts per Mode, zero or less is rejected.
	// Unused in regex mode.
	Size int

	// regex mode only
	Pattern          string
	IncludeDelimiter bool

	// codec name or "auto" (default)
	InEncoding string
	// codec name, "same-as-input" or "system-default". Default utf-8.
	OutEncoding string

	// "stem" (default): <stem>_part<N><ext>, "plain": part<N>.txt
	Naming string

	// one of digest.AvailableHashers, default none
	Digest          string
	DigestMultibase string

	// bytes sniffed for encoding detection, default 10000
	DetectSample int

	// read gzip/zstd/xz compressed input as-is
	NoDecompress bool
}

func (j Job) withDefaults() Job {
	if j.Mode == "" {
		j.Mode = "chars"
	}
	if j.InEncoding == "" {
		j.InEncoding = codec.Auto
	}
	if j.OutEncoding == "" {
		j.OutEncoding = "utf-8"
	}
	if j.Naming == "" {
		j.Naming = chunkwriter.NamingStem
	}
	if j.Digest == "" {
		j.Digest = "none"
	}
	if j.DigestMultibase == "" {
		j.DigestMultibase = "base36"
	}
	if j.DetectSample == 0 {
		j.DetectSample = constants.DefaultDetectSample
	}
	return j
}

type partitionerUnit struct {
	_         constants.Incomparabe
	name      string
	instance  tspartitioner.Partitioner
	constants tspartitioner.InstanceConstants
}

// compiled is a fully validated job, nothing on disk has been touched yet
type compiled struct {
	job         Job
	partitioner partitionerUnit
	digester    *digest.Digester

	// the mode itself rejected its parameters
	modeFailed bool
}

func argErr(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// compile validates everything that can be checked without I/O and
// accumulates all problems found
func (j Job) compile() (c *compiled, errs []error) {

	j = j.withDefaults()
	c = &compiled{job: j}

	if strings.TrimSpace(j.Input) == "" {
		errs = append(errs, argErr("an input file must be specified"))
	}
	if strings.TrimSpace(j.Output) == "" {
		errs = append(errs, argErr("an output directory must be specified"))
	}

	if j.DetectSample < 64 || j.DetectSample > constants.MaxDetectSample {
		errs = append(errs, argErr(
			"detection sample size %s out of range [64:%s]",
			text.Commify(j.DetectSample),
			text.Commify(constants.MaxDetectSample),
		))
	}

	if !strings.EqualFold(j.InEncoding, codec.Auto) {
		if _, err := codec.Lookup(j.InEncoding); err != nil {
			errs = append(errs, argErr("input encoding: %s", err))
		}
	}
	switch {
	case strings.EqualFold(j.OutEncoding, codec.SameAsInput), strings.EqualFold(j.OutEncoding, codec.SystemDefault):
	default:
		if _, err := codec.Lookup(j.OutEncoding); err != nil {
			errs = append(errs, argErr("output encoding: %s", err))
		}
	}

	if _, exists := chunkwriter.AvailableNamings[j.Naming]; !exists {
		errs = append(errs, argErr(
			"naming scheme '%s' is not valid. Available schemes are %s",
			j.Naming,
			text.AvailableMapKeys(chunkwriter.AvailableNamings),
		))
	}

	var err error
	if c.digester, err = digest.New(j.Digest, j.DigestMultibase); err != nil {
		errs = append(errs, argErr("%s", err))
	}

	var pErrs []error
	c.partitioner, pErrs = setupPartitioner(j)
	c.modeFailed = len(pErrs) > 0
	errs = append(errs, pErrs...)

	return c, errs
}

// partitionerArgs renders the flat job parameters into the sub-option form
// every partitioner plugin parses
func partitionerArgs(j Job) []string {
	switch j.Mode {
	case "regex":
		args := []string{j.Mode, "--pattern=" + j.Pattern}
		if j.IncludeDelimiter {
			args = append(args, "--include-delimiter")
		}
		return args
	case "chars":
		return []string{j.Mode, "--max-chars=" + strconv.Itoa(j.Size)}
	case "lines":
		return []string{j.Mode, "--max-lines=" + strconv.Itoa(j.Size)}
	case "parts":
		return []string{j.Mode, "--parts=" + strconv.Itoa(j.Size)}
	}
	return []string{j.Mode}
}

func setupPartitioner(j Job) (pu partitionerUnit, errs []error) {

	init, exists := availablePartitioners[j.Mode]
	if !exists || init == nil {
		return pu, []error{argErr(
			"mode '%s' not found. Available modes are: %s",
			j.Mode,
			text.AvailableMapKeys(availablePartitioners),
		)}
	}

	instance, pConstants, initErrors := init(partitionerArgs(j))
	for _, e := range initErrors {
		if errors.Is(e, ErrInvalidArgument) {
			errs = append(errs, fmt.Errorf("initialization of mode '%s' failed: %w", j.Mode, e))
		} else {
			errs = append(errs, argErr("initialization of mode '%s' failed: %s", j.Mode, e))
		}
	}
	if len(errs) > 0 {
		return pu, errs
	}

	return partitionerUnit{
		name:      j.Mode,
		instance:  instance,
		constants: pConstants,
	}, nil
}

// Run executes a single split job. sink may be nil. Every argument problem
// is reported before the filesystem is touched, a missing input is reported
// before the output directory is created.
func Run(job Job, sink EventSink) (*Summary, error) {
	c, errs := job.compile()
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return c.execute(sink, nil)
}

func (c *compiled) execute(sink EventSink, onPart func(PartStats) error) (*Summary, error) {

	if sink == nil {
		sink = nopSink{}
	}
	j := c.job

	smr := newSummary()
	smr.JobID = uuid.New().String()
	smr.Input = j.Input
	smr.Output = j.Output
	smr.Mode = c.partitioner.name
	smr.Digest = c.digester.Name()

	var recordRusage func(*sysStats)
	if measureRusage != nil {
		recordRusage = measureRusage()
	}
	t0 := time.Now()
	defer func() {
		if recordRusage != nil {
			recordRusage(&smr.SysStats)
		}
		smr.SysStats.ElapsedNsecs = time.Since(t0).Nanoseconds()
	}()

	if _, err := stream.Stat(j.Input); err != nil {
		return nil, err
	}

	// sampling pass
	var sample []byte
	if strings.EqualFold(j.InEncoding, codec.Auto) {
		if err := c.readPass(func(in *stream.Input) (err error) {
			sample, err = codec.ReadSample(in, j.DetectSample)
			return err
		}); err != nil {
			return nil, err
		}
	}

	inCodec, outCodec, err := codec.Resolve(j.InEncoding, j.OutEncoding, sample)
	if err != nil {
		return nil, argErr("%s", err)
	}
	smr.InputCodec = inCodec.Name
	smr.OutputCodec = outCodec.Name
	sink.OnLog(fmt.Sprintf("input decoded as %s, parts encoded as %s", inCodec, outCodec))

	// counting pass
	var totals tspartitioner.Totals
	if c.partitioner.constants.NeedsTotals {
		if err := c.readPass(func(in *stream.Input) (err error) {
			totals, err = textstream.Count(inCodec.NewReader(in))
			return err
		}); err != nil {
			return nil, err
		}
	}
	expected := c.partitioner.instance.ExpectedParts(totals)

	in, err := stream.OpenInput(j.Input, !j.NoDecompress)
	if err != nil {
		return nil, err
	}
	defer in.Close() //nolint:errcheck

	smr.InputBytes = in.Size
	smr.Compression = in.Compression
	if in.Compression != "" {
		sink.OnLog(fmt.Sprintf("reading %s-compressed input", in.Compression))
	}

	w, err := chunkwriter.New(&chunkwriter.Options{
		OutputDir: j.Output,
		Naming:    j.Naming,
		Stem:      in.Stem,
		Ext:       in.Ext,
		Codec:     outCodec,
		Digester:  c.digester,
	})
	if err != nil {
		return nil, argErr("%s", err)
	}
	if err := w.Prepare(); err != nil {
		return nil, fmt.Errorf("creating output directory '%s' failed: %w", j.Output, err)
	}

	progress := progressTracker{sink: sink}
	var partNo int

	err = c.partitioner.instance.Split(
		textstream.NewReader(inCodec.NewReader(in)),
		totals,
		func(chunk tspartitioner.Chunk) error {

			if constants.PerformSanityChecks && chunk.Text == "" {
				log.Panicf("partitioner '%s' emitted an empty chunk after part %d", c.partitioner.name, partNo)
			}

			partNo++
			res, werr := w.Write(partNo, chunk.Text)
			if werr != nil {
				sink.OnLog(werr.Error())
				return werr
			}

			ps := PartStats{
				Event:  "part",
				Part:   partNo,
				Path:   res.Path,
				Chars:  chunk.Chars,
				Lines:  chunk.Lines,
				Bytes:  res.Bytes,
				Digest: res.Digest,
			}
			smr.Parts = append(smr.Parts, ps)
			smr.Chars += int64(chunk.Chars)
			smr.Lines += int64(chunk.Lines)
			smr.BytesOut += res.Bytes

			sink.OnLog(fmt.Sprintf("wrote part %d: %s (%s chars)", partNo, filepath.Base(res.Path), text.Commify(chunk.Chars)))

			if expected > 0 {
				progress.report(float64(partNo) / float64(expected) * 100)
			} else if in.Size > 0 {
				progress.report(float64(in.Consumed()) / float64(in.Size) * 100)
			}

			if onPart != nil {
				return onPart(ps)
			}
			return nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("split of '%s' aborted after %d parts: %w", j.Input, len(smr.Parts), err)
	}

	progress.report(100)
	return smr, nil
}

// readPass runs one complete, independently opened pass over the input
func (c *compiled) readPass(pass func(*stream.Input) error) error {
	in, err := stream.OpenInput(c.job.Input, !c.job.NoDecompress)
	if err != nil {
		return err
	}
	defer in.Close() //nolint:errcheck

	if err := pass(in); err != nil && err != io.EOF {
		return fmt.Errorf("reading '%s' failed: %w", c.job.Input, err)
	}
	return nil
}
