package speakers

// SpeakerNil swallows every sample, for running without audio.
type SpeakerNil struct {
	sampleRate int
}

func (s *SpeakerNil) Init() {
	s.sampleRate = 44100
}
func (s *SpeakerNil) Reset() {}
func (s *SpeakerNil) Play()  {}
func (s *SpeakerNil) Stop()  {}

func (s *SpeakerNil) Sample(float64) bool {
	return true
}
func (s *SpeakerNil) SampleRate() int {
	return s.sampleRate
}
func (s *SpeakerNil) BufferReady() bool {
	return true
}
