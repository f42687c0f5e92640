package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tklauser/go-sysconf"
)

func (bp *interp) resetStatistics() {

	bp.s = runStats{}
}

//
// Initialize the clock
//

func (bp *interp) initClock() {

	bp.s.elapsed = time.Now()

	if utime, stime, err := getCPUInfo(); err == nil {
		bp.s.utime, bp.s.stime = utime, stime
	}
}

func (bp *interp) printStatistics() {

	if !bp.printStats {
		return
	}

	bp.resetPrint(false)

	elapsed := time.Since(bp.s.elapsed)

	if utime, stime, err := getCPUInfo(); err == nil {
		fmt.Fprintf(bp.out, "CPU Usage: elapsed = %s / user = %s / system = %s\n",
			formatCPUTime(int64(elapsed.Seconds())),
			formatCPUTime(utime-bp.s.utime), formatCPUTime(stime-bp.s.stime))
	} else {
		fmt.Fprintf(bp.out, "CPU Usage: elapsed = %s\n",
			formatCPUTime(int64(elapsed.Seconds())))
	}

	fmt.Fprintf(bp.out, "%d %s executed\n", bp.s.numStatements,
		pluralize("statement", bp.s.numStatements))
}

func formatCPUTime(t int64) string {

	var h, m int64

	if t >= 3600 {
		h = t / 3600
		t = t % 3600
	}

	if t >= 60 {
		m = t / 60
		t = t % 60
	}

	return fmt.Sprintf("%02d:%02d:%02d", h, m, t)
}

//
// User and system CPU seconds for this process, from /proc.  Not
// every system has /proc, so the caller copes with an error
//

func getCPUInfo() (int64, int64, error) {

	clktck, err := sysconf.Sysconf(sysconf.SC_CLK_TCK)
	if err != nil {
		return 0, 0, err
	}

	contents, err := os.ReadFile("/proc/self/stat")
	if err != nil {
		return 0, 0, err
	}

	//
	// The command name (field 2) may contain blanks, so count
	// fields from the closing paren
	//

	stat := string(contents)
	if i := strings.LastIndexByte(stat, ')'); i >= 0 {
		stat = stat[i+1:]
	}

	fields := strings.Fields(stat)
	if len(fields) < 13 {
		return 0, 0, fmt.Errorf("short /proc/self/stat")
	}

	utime, err := strconv.ParseInt(fields[11], 10, 64)
	if err != nil {
		return 0, 0, err
	}

	stime, err := strconv.ParseInt(fields[12], 10, 64)
	if err != nil {
		return 0, 0, err
	}

	return utime / clktck, stime / clktck, nil
}
