package speakers

import (
	"testing"
)

func TestCircularBufferFillAndDrain(t *testing.T) {
	c := NewCircularBuffer(5)

	// one slot is kept free
	for i := 0; i < 4; i++ {
		if err := c.Write(float64(i), false); err != nil {
			t.Fatalf("write %d: %v", i, err)
		}
	}
	if err := c.Write(99, false); err == nil {
		t.Fatal("write into a full buffer did not fail")
	}
	if got := c.Available(); got != 4 {
		t.Errorf("available = %d", got)
	}

	for i := 0; i < 4; i++ {
		v, err := c.Read()
		if err != nil {
			t.Fatalf("read %d: %v", i, err)
		}
		if v != float64(i) {
			t.Errorf("read %d = %v", i, v)
		}
	}
	if _, err := c.Read(); err == nil {
		t.Fatal("read from an empty buffer did not fail")
	}
}

func TestCircularBufferWrapsAround(t *testing.T) {
	c := NewCircularBuffer(4)

	// push the indices past the wrap point a few times over
	for round := 0; round < 10; round++ {
		for i := 0; i < 3; i++ {
			if err := c.Write(float64(round*3+i), false); err != nil {
				t.Fatalf("round %d write %d: %v", round, i, err)
			}
		}
		for i := 0; i < 3; i++ {
			v, err := c.Read()
			if err != nil {
				t.Fatalf("round %d read %d: %v", round, i, err)
			}
			if v != float64(round*3+i) {
				t.Errorf("round %d read %d = %v", round, i, v)
			}
		}
	}
}

func TestCircularBufferReadIntoAllOrNothing(t *testing.T) {
	c := NewCircularBuffer(8)
	for i := 0; i < 4; i++ {
		if err := c.Write(float64(i), false); err != nil {
			t.Fatal(err)
		}
	}

	tooBig := make([]float32, 5)
	if got := c.ReadInto(tooBig); got != 0 {
		t.Errorf("short read returned %d", got)
	}
	if got := c.Available(); got != 4 {
		t.Errorf("failed read consumed samples, available = %d", got)
	}

	exact := make([]float32, 4)
	if got := c.ReadInto(exact); got != 4 {
		t.Fatalf("read returned %d", got)
	}
	for i, v := range exact {
		if v != float32(i) {
			t.Errorf("sample %d = %v", i, v)
		}
	}

	for i := 0; i < 2; i++ {
		if err := c.Write(0.25, false); err != nil {
			t.Fatal(err)
		}
	}
	stereo := make([][2]float64, 2)
	if got := c.ReadInto2(stereo); got != 2 {
		t.Fatalf("stereo read returned %d", got)
	}
	for i, frame := range stereo {
		if frame[0] != 0.25 || frame[1] != frame[0] {
			t.Errorf("frame %d = %v", i, frame)
		}
	}
}

func TestSpeakerQueueDrain(t *testing.T) {
	q := SpeakerQueue{}
	q.Init()

	for i := 0; i < 100; i++ {
		if !q.Sample(float64(i) / 100) {
			t.Fatalf("sample %d dropped", i)
		}
	}

	got := q.Drain()
	if len(got) != 100 {
		t.Fatalf("drained %d samples", len(got))
	}
	if got[50] != 0.5 {
		t.Errorf("sample 50 = %v", got[50])
	}
	if left := q.Drain(); len(left) != 0 {
		t.Errorf("second drain returned %d samples", len(left))
	}
}

func TestGetAudioLib(t *testing.T) {
	for _, name := range []string{"nil", "beep", "portaudio", "oto", "queue"} {
		lib, err := GetAudioLib(name)
		if err != nil {
			t.Errorf("%v: %v", name, err)
		}
		if string(lib) != name {
			t.Errorf("%v resolved to %v", name, lib)
		}
	}
	if _, err := GetAudioLib("pulseaudio"); err == nil {
		t.Error("unknown backend accepted")
	}
}
