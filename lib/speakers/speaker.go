package speakers

import "fmt"

// AudioLib selects the audio backend by name.
type AudioLib string

const (
	Nil       = "nil"
	Beep      = "beep"
	PortAudio = "portaudio"
	Oto       = "oto"
	Queue     = "queue"
)

// AudioSpeaker consumes the mixer output one mono sample at a time.
// Sample returns false when the backend cannot keep up and the sample
// was dropped.
type AudioSpeaker interface {
	Init()
	Reset()
	Stop()
	Play()
	Sample(float64) bool
	SampleRate() int
	BufferReady() bool
}

// GetAudioLib resolves a backend name, for wiring up cli flags.
func GetAudioLib(name string) (AudioLib, error) {
	switch AudioLib(name) {
	case Nil, Beep, PortAudio, Oto, Queue:
		return AudioLib(name), nil
	default:
		return Nil, fmt.Errorf("unknown audio library %q", name)
	}
}

func NewSpeaker(lib AudioLib) AudioSpeaker {
	var speaker AudioSpeaker
	switch lib {
	case Nil:
		speaker = new(SpeakerNil)
	case Beep:
		speaker = new(SpeakerBeep)
	case PortAudio:
		speaker = new(SpeakerPort)
	case Oto:
		speaker = new(SpeakerOto)
	case Queue:
		speaker = new(SpeakerQueue)
	default:
		panic("unknown audio library: " + string(lib))
	}
	speaker.Init()
	return speaker
}
