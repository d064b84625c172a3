package uart

import (
	"picosoc-go/x/conv"
	"picosoc-go/x/fmtx"
)

// PrintfScratch is the size of Printf's render buffer, terminator included.
const PrintfScratch = 256

// Printf renders format into a fixed scratch buffer and transmits it. Output
// longer than PrintfScratch-1 bytes is truncated rather than overrunning the
// buffer. It returns the rendered length and the transmit status; bytes sent
// before a failure stay sent.
func (p *Port) Printf(format string, args ...any) (int, error) {
	var buf [PrintfScratch]byte
	n := fmtx.Snprintf(buf[:], format, args...)
	return n, p.putAll(buf[:n])
}

// PrintHex dumps data as upper-case hex pairs separated by spaces, sixteen
// to a line.
func (p *Port) PrintHex(data []byte) error {
	var cell [3]byte
	for i, b := range data {
		conv.Hex(cell[:2], uint64(b), 2)
		cell[2] = ' '
		if err := p.putAll(cell[:]); err != nil {
			return err
		}
		if (i+1)%16 == 0 {
			if err := p.PutC('\n'); err != nil {
				return err
			}
		}
	}
	if len(data)%16 != 0 {
		return p.PutC('\n')
	}
	return nil
}

// PrintHex32 prints v as 0x followed by eight hex digits.
func (p *Port) PrintHex32(v uint32) error {
	var buf [10]byte
	buf[0], buf[1] = '0', 'x'
	conv.U32Hex(buf[2:], v)
	return p.putAll(buf[:])
}

// PrintDec prints v in decimal.
func (p *Port) PrintDec(v uint32) error {
	_, err := p.Printf("%u", v)
	return err
}

// PrintBin prints the low bits of v, most significant first. bits above 32
// are clamped.
func (p *Port) PrintBin(v uint32, bits int) error {
	var buf [32]byte
	if bits > len(buf) {
		bits = len(buf)
	}
	if bits <= 0 {
		return nil
	}
	return p.putAll(conv.Bin(buf[:], uint64(v), bits))
}
