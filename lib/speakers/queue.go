package speakers

import "sync"

// SpeakerQueue accumulates samples in memory so they can be drained in
// bulk, used by the wave recorder and by the tests.
type SpeakerQueue struct {
	sampleRate int

	lock    sync.Mutex
	samples []float64
}

func (s *SpeakerQueue) Init() {
	s.sampleRate = 44100
	s.samples = make([]float64, 0, s.sampleRate)
}
func (s *SpeakerQueue) Reset() {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.samples = s.samples[:0]
}
func (s *SpeakerQueue) Play() {}
func (s *SpeakerQueue) Stop() {}

func (s *SpeakerQueue) Sample(sample float64) bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.samples = append(s.samples, sample)
	return true
}

// Drain returns everything queued since the last drain.
func (s *SpeakerQueue) Drain() []float64 {
	s.lock.Lock()
	defer s.lock.Unlock()
	out := make([]float64, len(s.samples))
	copy(out, s.samples)
	s.samples = s.samples[:0]
	return out
}

func (s *SpeakerQueue) SampleRate() int {
	return s.sampleRate
}
func (s *SpeakerQueue) BufferReady() bool {
	return true
}
