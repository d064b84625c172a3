// Package poll implements the busy-wait primitives the controllers use while
// waiting on hardware status flags. Waits are bounded by an iteration count,
// not wall-clock time; the real latency depends on the calibration of the
// per-iteration delay.
package poll

// Policy bounds a status poll.
type Policy struct {
	Budget uint32              // polls allowed after the first failed probe
	Delay  uint32              // cycles spun between polls
	Spin   func(cycles uint32) // nil means SpinCycles
}

// Default is the firmware policy: 10000 polls, 10 delay cycles each.
func Default() Policy {
	return Policy{Budget: 10_000, Delay: 10, Spin: SpinCycles}
}

func (p Policy) spin() {
	if p.Spin != nil {
		p.Spin(p.Delay)
		return
	}
	SpinCycles(p.Delay)
}

// Until probes ready until it reports true or the budget runs out. Each failed
// probe consumes one unit of budget and is followed by a delay. It reports
// whether ready was observed. Budget probes fail before Until gives up, so
// ready is evaluated Budget+1 times in the worst case.
func (p Policy) Until(ready func() bool) bool {
	n := p.Budget
	for !ready() {
		if n == 0 {
			return false
		}
		n--
		p.spin()
	}
	return true
}

// Forever probes done until it reports true. There is no timeout: a device
// that never finishes hangs the caller.
func (p Policy) Forever(done func() bool) {
	for !done() {
		p.spin()
	}
}

var sink uint32

// SpinCycles burns roughly one loop iteration per cycle.
//
//go:noinline
func SpinCycles(cycles uint32) {
	for i := uint32(0); i < cycles; i++ {
		sink++
	}
}

// Millis converts a delay in milliseconds to spin cycles at clockHz.
func Millis(clockHz, ms uint32) uint32 { return clockHz / 1000 * ms }

// Micros converts a delay in microseconds to spin cycles at clockHz.
func Micros(clockHz, us uint32) uint32 { return clockHz / 1_000_000 * us }
