package speakers

import (
	"github.com/hajimehoshi/oto"
)

// SpeakerOto converts the mono stream to interleaved 16bit stereo for
// the oto player.
type SpeakerOto struct {
	sampleRate  int
	speakerSize int
	buffer      *CircularBuffer

	samples [][2]float64
	buf     []byte
	context *oto.Context
	player  *oto.Player
}

func (s *SpeakerOto) Init() {
	s.sampleRate = 44100
	s.buffer = NewCircularBuffer(s.sampleRate / 10)
	s.speakerSize = s.sampleRate / 100

	numBytes := s.speakerSize * 4
	s.samples = make([][2]float64, s.speakerSize)
	s.buf = make([]byte, numBytes)

	context, err := oto.NewContext(s.sampleRate, 2, 2, numBytes)
	chk(err)
	s.context = context
}

func (s *SpeakerOto) Play() {
	s.player = s.context.NewPlayer()
}
func (s *SpeakerOto) Reset() {}
func (s *SpeakerOto) Stop() {
	_ = s.player.Close()
	_ = s.context.Close()
	s.player = nil
}
func (s *SpeakerOto) BufferReady() bool {
	return s.buffer.Available() > int(float64(s.speakerSize)*1.5)
}

func (s *SpeakerOto) Sample(sample float64) bool {
	if s.buffer.Write(sample, false) != nil {
		// dropping the oldest sample beats growing the latency
		_, _ = s.buffer.Read()
		return false
	}

	if s.buffer.Available() > 2048 && s.player != nil {
		s.buffer.ReadInto2(s.samples)
		go s.update()
	}

	return true
}

func (s *SpeakerOto) update() {
	for i := range s.samples {
		for c := range s.samples[i] {
			val := s.samples[i][c]
			if val < -1 {
				val = -1
			}
			if val > +1 {
				val = +1
			}
			valInt16 := int16(val * (1<<15 - 1))
			s.buf[i*4+c*2+0] = byte(valInt16)
			s.buf[i*4+c*2+1] = byte(valInt16 >> 8)
		}
	}

	_, _ = s.player.Write(s.buf)
}

func (s *SpeakerOto) SampleRate() int {
	return s.sampleRate
}
