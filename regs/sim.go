package regs

import "sync"

// Sim is an in-process register file. Unmapped addresses behave like plain
// RAM; ranges registered with MapIO route accesses through device hooks so a
// behavioural model can sit behind a peripheral's registers.
//
// Storage is in 32-bit little-endian words; 8/16-bit accesses address the
// containing word. Sim is safe for concurrent use. Hooks run with the Sim
// lock held and must not call back into the Sim.
type Sim struct {
	mu       sync.Mutex
	words    map[Addr]uint32
	regions  []ioRegion
	reads    map[Addr]int
	writes   map[Addr]int
	barriers int
	record   bool
	log      []Access
}

// ReadHook returns the value a load observes. stored is the last value
// written to the word.
type ReadHook func(a Addr, stored uint32) uint32

// WriteHook observes a store before it reaches the word.
type WriteHook func(a Addr, v uint32)

// Access is one recorded store.
type Access struct {
	Addr  Addr
	Value uint32
}

type ioRegion struct {
	start, end Addr
	onRead     ReadHook
	onWrite    WriteHook
}

func NewSim() *Sim {
	return &Sim{
		words:  make(map[Addr]uint32),
		reads:  make(map[Addr]int),
		writes: make(map[Addr]int),
	}
}

// MapIO routes word accesses in [start, end] through the given hooks. Either
// hook may be nil. Later mappings take precedence over earlier ones.
func (s *Sim) MapIO(start, end Addr, onRead ReadHook, onWrite WriteHook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.regions = append([]ioRegion{{start: start, end: end, onRead: onRead, onWrite: onWrite}}, s.regions...)
}

func (s *Sim) region(a Addr) *ioRegion {
	for i := range s.regions {
		if a >= s.regions[i].start && a <= s.regions[i].end {
			return &s.regions[i]
		}
	}
	return nil
}

func (s *Sim) load(a Addr) uint32 {
	a &^= 3
	s.reads[a]++
	v := s.words[a]
	if r := s.region(a); r != nil && r.onRead != nil {
		v = r.onRead(a, v)
	}
	return v
}

func (s *Sim) store(a Addr, v uint32) {
	a &^= 3
	s.writes[a]++
	if s.record {
		s.log = append(s.log, Access{Addr: a, Value: v})
	}
	if r := s.region(a); r != nil && r.onWrite != nil {
		r.onWrite(a, v)
	}
	s.words[a] = v
}

func (s *Sim) Read32(a Addr) uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(a)
}

func (s *Sim) Write32(a Addr, v uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store(a, v)
}

func (s *Sim) Read16(a Addr) uint16 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return uint16(s.load(a) >> (8 * (a & 2)))
}

func (s *Sim) Write16(a Addr, v uint16) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sh := uint(8 * (a & 2))
	s.store(a, Insert(s.words[a&^3], uint32(v), sh, 16))
}

func (s *Sim) Read8(a Addr) uint8 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return uint8(s.load(a) >> (8 * (a & 3)))
}

func (s *Sim) Write8(a Addr, v uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sh := uint(8 * (a & 3))
	s.store(a, Insert(s.words[a&^3], uint32(v), sh, 8))
}

func (s *Sim) Barrier() {
	s.mu.Lock()
	s.barriers++
	s.mu.Unlock()
}

// Peek returns the stored word without running hooks or counting a read.
func (s *Sim) Peek(a Addr) uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.words[a&^3]
}

// Poke stores a word without running hooks or counting a write. Models use it
// to update status bits the hardware owns.
func (s *Sim) Poke(a Addr, v uint32) {
	s.mu.Lock()
	s.words[a&^3] = v
	s.mu.Unlock()
}

// Reads returns how many loads touched the word containing a.
func (s *Sim) Reads(a Addr) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads[a&^3]
}

// Writes returns how many stores touched the word containing a.
func (s *Sim) Writes(a Addr) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes[a&^3]
}

// Barriers returns the number of Barrier calls.
func (s *Sim) Barriers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.barriers
}

// Record turns the store log on or off. Turning it on clears the log.
func (s *Sim) Record(on bool) {
	s.mu.Lock()
	s.record = on
	if on {
		s.log = s.log[:0]
	}
	s.mu.Unlock()
}

// Log returns a copy of the stores recorded since Record(true).
func (s *Sim) Log() []Access {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Access(nil), s.log...)
}

// ResetCounters zeroes the access counters and the store log.
func (s *Sim) ResetCounters() {
	s.mu.Lock()
	clear(s.reads)
	clear(s.writes)
	s.barriers = 0
	s.log = s.log[:0]
	s.mu.Unlock()
}
