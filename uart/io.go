package uart

import "picosoc-go/errcode"

// send waits for tx-ready within the poll budget and writes c. It reports
// false, having written nothing, when the budget runs out.
func (p *Port) send(c byte) bool {
	if !p.policy.Until(p.TxReady) {
		return false
	}
	p.bus.Write32(p.m.Data, uint32(c))
	return true
}

// PutC transmits one byte. A '\n' is followed by a '\r' sent through the
// same bounded wait; the status of that second byte is dropped, so PutC
// reports only on c itself.
func (p *Port) PutC(c byte) error {
	if !p.initialized {
		return errcode.InvalidParams
	}
	if !p.send(c) {
		return errcode.Timeout
	}
	if c == '\n' {
		_ = p.send('\r')
	}
	return nil
}

func (p *Port) putAll(b []byte) error {
	for _, c := range b {
		if err := p.PutC(c); err != nil {
			return err
		}
	}
	return nil
}

// PutS transmits s byte by byte and stops at the first failure. Bytes sent
// before the failure stay sent.
func (p *Port) PutS(s string) error {
	for i := 0; i < len(s); i++ {
		if err := p.PutC(s[i]); err != nil {
			return err
		}
	}
	return nil
}

// Write transmits b byte by byte and stops at the first failure; n counts the
// bytes accepted before it. An empty b is rejected with InvalidParams.
func (p *Port) Write(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, errcode.InvalidParams
	}
	for i, c := range b {
		if err := p.PutC(c); err != nil {
			return i, err
		}
	}
	return len(b), nil
}

// GetC waits for rx-ready within the poll budget and returns the received
// byte.
func (p *Port) GetC() (byte, error) {
	if !p.initialized {
		return 0, errcode.InvalidParams
	}
	if !p.policy.Until(p.RxReady) {
		return 0, errcode.Timeout
	}
	return byte(p.bus.Read32(p.m.Data)), nil
}

// Read fills b byte by byte and stops at the first failure; b[:n] holds the
// bytes received before it. An empty b is rejected with InvalidParams.
func (p *Port) Read(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, errcode.InvalidParams
	}
	for i := range b {
		c, err := p.GetC()
		if err != nil {
			return i, err
		}
		b[i] = c
	}
	return len(b), nil
}

// Available probes rx-ready once. It never waits.
func (p *Port) Available() bool { return p.RxReady() }

// Buffered reports 1 when a received byte is waiting, else 0. The hardware
// holds at most one.
func (p *Port) Buffered() int {
	if p.Available() {
		return 1
	}
	return 0
}

// Flush waits until the transmitter is no longer busy. The wait has no bound:
// a transmitter that never drains hangs the caller.
func (p *Port) Flush() error {
	if !p.initialized {
		return errcode.InvalidParams
	}
	p.policy.Forever(func() bool { return !p.TxBusy() })
	return nil
}

// PutCFast spins on tx-ready without a bound or state checks, then writes c.
func (p *Port) PutCFast(c byte) {
	for !p.TxReady() {
	}
	p.bus.Write32(p.m.Data, uint32(c))
}

// GetCFast spins on rx-ready without a bound or state checks, then reads.
func (p *Port) GetCFast() byte {
	for !p.RxReady() {
	}
	return byte(p.bus.Read32(p.m.Data))
}
