package textsplit

// EventSink receives the textual log lines and the progress of a running
// job. Progress is a percentage in [0,100], non-decreasing within a job.
// Calls are made synchronously from the splitting loop.
type EventSink interface {
	OnLog(msg string)
	OnProgress(percent float64)
}

type nopSink struct{}

func (nopSink) OnLog(string)       {}
func (nopSink) OnProgress(float64) {}

// progressTracker clamps and de-duplicates progress before it hits a sink
type progressTracker struct {
	sink EventSink
	last float64
	sent bool
}

func (p *progressTracker) report(pct float64) {
	if pct > 100 {
		pct = 100
	} else if pct < 0 {
		pct = 0
	}
	if p.sent && pct <= p.last {
		return
	}
	p.last, p.sent = pct, true
	p.sink.OnProgress(pct)
}
