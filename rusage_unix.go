//go:build !windows

package textsplit

import (
	"runtime"

	"golang.org/x/sys/unix"
)

type rusageSnapshot struct {
	user, sys                  int64
	minFlt, majFlt             int64
	inBlock, outBlock, signals int64
	volSwitches, involSwitches int64
	maxRss                     int64
}

func takeRusage() (s rusageSnapshot) {
	var ru unix.Rusage
	if unix.Getrusage(unix.RUSAGE_SELF, &ru) != nil {
		return
	}

	s = rusageSnapshot{
		user:          unix.TimevalToNsec(ru.Utime),
		sys:           unix.TimevalToNsec(ru.Stime),
		minFlt:        int64(ru.Minflt),
		majFlt:        int64(ru.Majflt),
		inBlock:       int64(ru.Inblock),
		outBlock:      int64(ru.Oublock),
		signals:       int64(ru.Nsignals),
		volSwitches:   int64(ru.Nvcsw),
		involSwitches: int64(ru.Nivcsw),
		maxRss:        int64(ru.Maxrss),
	}

	// darwin reports bytes, everyone else KiB
	if runtime.GOOS != "darwin" {
		s.maxRss *= 1024
	}
	return
}

func init() {
	measureRusage = func() func(*sysStats) {
		before := takeRusage()
		return func(st *sysStats) {
			after := takeRusage()
			st.CpuUserNsecs = after.user - before.user
			st.CpuSysNsecs = after.sys - before.sys
			st.MinFlt = after.minFlt - before.minFlt
			st.MajFlt = after.majFlt - before.majFlt
			st.BioRead = after.inBlock - before.inBlock
			st.BioWrite = after.outBlock - before.outBlock
			st.Sigs = after.signals - before.signals
			st.CtxSwYield = after.volSwitches - before.volSwitches
			st.CtxSwForced = after.involSwitches - before.involSwitches
			// a high-water mark of the whole process, not a delta
			st.MaxRssBytes = after.maxRss
		}
	}
}
