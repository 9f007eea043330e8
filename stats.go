package textsplit

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"

	"github.com/anjor/textsplit/internal/util/text"
	"github.com/klauspost/cpuid/v2"
)

const (
	emNone       = "none"
	emStatsText  = "stats-text"
	emStatsJsonl = "stats-jsonl"
	emPartsJsonl = "parts-jsonl"
)

type emissionTargets map[string]io.Writer

// PartStats describes one written part
type PartStats struct {
	Event  string `json:"event"`
	Part   int    `json:"part"`
	Path   string `json:"path"`
	Chars  int    `json:"chars"`
	Lines  int    `json:"lines"`
	Bytes  int64  `json:"bytes"`
	Digest string `json:"digest,omitempty"`
}

// Summary is the outcome of a completed job
type Summary struct {
	Event       string      `json:"event"`
	JobID       string      `json:"job_id"`
	Input       string      `json:"input"`
	Output      string      `json:"output"`
	Mode        string      `json:"mode"`
	Compression string      `json:"compression,omitempty"`
	InputCodec  string      `json:"input_codec"`
	OutputCodec string      `json:"output_codec"`
	Digest      string      `json:"digest"`
	InputBytes  int64       `json:"input_bytes"`
	Chars       int64       `json:"chars"`
	Lines       int64       `json:"lines"`
	BytesOut    int64       `json:"bytes_written"`
	Parts       []PartStats `json:"parts"`
	SysStats    sysStats    `json:"sys"`
}

type sysStats struct {
	ElapsedNsecs int64 `json:"elapsedNanoseconds"`

	CpuUserNsecs int64 `json:"cpuUserNanoseconds"`
	CpuSysNsecs  int64 `json:"cpuSystemNanoseconds"`
	MaxRssBytes  int64 `json:"maxMemoryUsed"`
	MinFlt       int64 `json:"cacheMinorFaults"`
	MajFlt       int64 `json:"cacheMajorFaults"`
	BioRead      int64 `json:"blockIoReads,omitempty"`
	BioWrite     int64 `json:"blockIoWrites,omitempty"`
	Sigs         int64 `json:"signalsReceived,omitempty"`
	CtxSwYield   int64 `json:"contextSwitchYields"`
	CtxSwForced  int64 `json:"contextSwitchForced"`

	GoMaxProcs int    `json:"goMaxProcs"`
	OS         string `json:"os"`
	Cores      int    `json:"cores"`
	Threads    int    `json:"threads"`
	CPU        string `json:"cpu"`

	ArgvExpanded []string `json:"argvExpanded,omitempty"`
	ArgvInitial  []string `json:"argvInitial,omitempty"`
}

func newSummary() *Summary {
	return &Summary{
		Event: "summary",
		Parts: []PartStats{},
		SysStats: sysStats{
			GoMaxProcs: runtime.GOMAXPROCS(-1),
			OS:         runtime.GOOS,
			Cores:      cpuid.CPU.PhysicalCores,
			Threads:    cpuid.CPU.LogicalCores,
			CPU:        cpuid.CPU.BrandName,
		},
	}
}

// measureRusage starts a resource usage measurement and returns the func
// recording it into a sysStats. Nil where rusage is not available.
var measureRusage func() func(*sysStats)

func partJsonl(ps PartStats) ([]byte, error) {
	b, err := json.Marshal(ps)
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// OutputSummary writes the summary of the last Process() call to the
// configured stats emitters.
func (ts *TextSplit) OutputSummary() error {

	smr := ts.summary
	if smr == nil {
		return nil
	}

	if out := ts.cfg.emitters[emStatsJsonl]; out != nil {
		jsonl, err := json.Marshal(smr)
		if err != nil {
			return fmt.Errorf("encoding '%s' failed: %w", emStatsJsonl, err)
		}
		if _, err := fmt.Fprintf(out, "%s\n", jsonl); err != nil {
			return fmt.Errorf("emitting '%s' failed: %w", emStatsJsonl, err)
		}
	}

	out := ts.cfg.emitters[emStatsText]
	if out == nil {
		return nil
	}

	if _, err := io.WriteString(out, formatStatsText(smr)); err != nil {
		return fmt.Errorf("emitting '%s' failed: %w", emStatsText, err)
	}
	return nil
}

func formatStatsText(smr *Summary) string {

	comp := ""
	if smr.Compression != "" {
		comp = " " + smr.Compression + "-compressed"
	}

	s := fmt.Sprintf(
		"\nSplit%s '%s' (%s bytes, %s) in %s mode into %s parts (%s) under '%s'\n"+
			"%14s characters in %s lines\n"+
			"%14s bytes written\n",
		comp,
		smr.Input,
		text.Commify64(smr.InputBytes),
		smr.InputCodec,
		smr.Mode,
		text.Commify(len(smr.Parts)),
		smr.OutputCodec,
		smr.Output,
		text.Commify64(smr.Chars),
		text.Commify64(smr.Lines),
		text.Commify64(smr.BytesOut),
	)

	sys := smr.SysStats
	if sys.CPU != "" {
		s += fmt.Sprintf("\nRan on %d-core/%d-thread %s\n", sys.Cores, sys.Threads, sys.CPU)
	}

	s += fmt.Sprintf("Processing took %0.2f seconds", float64(sys.ElapsedNsecs)/1_000_000_000)
	if sys.ElapsedNsecs > 0 && sys.CpuUserNsecs+sys.CpuSysNsecs > 0 {
		s += fmt.Sprintf(
			" using %0.2f vCPU and %0.2f MiB peak memory",
			float64(sys.CpuUserNsecs+sys.CpuSysNsecs)/float64(sys.ElapsedNsecs),
			float64(sys.MaxRssBytes)/(1024*1024),
		)
	}
	s += "\n"

	return s + fmt.Sprintf("Job %s\n\n", smr.JobID)
}
