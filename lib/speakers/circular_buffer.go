package speakers

import (
	"fmt"
	"sync"
)

// CircularBuffer is the single producer, single consumer sample queue
// between the mixer and an audio backend. One slot is kept free so a
// full buffer can be told apart from an empty one.
type CircularBuffer struct {
	buffer []float64

	head int // next index to write to
	tail int // next index to read from
	size int

	lock sync.Mutex
	wait *sync.Cond
}

func NewCircularBuffer(size int) *CircularBuffer {
	if size < 2 {
		panic("circular buffer needs at least 2 slots")
	}
	c := &CircularBuffer{}
	c.reset(size)
	return c
}

func (c *CircularBuffer) Write(value float64, wait bool) error {
	c.wait.L.Lock()
	defer c.wait.L.Unlock()

	if c.isFull() {
		if !wait {
			return fmt.Errorf("buffer is full")
		}
		c.wait.Wait()
	}

	c.buffer[c.head] = value
	c.head = c.next(c.head)
	c.wait.Signal()

	return nil
}

func (c *CircularBuffer) Read() (float64, error) {
	c.wait.L.Lock()
	defer c.wait.L.Unlock()

	if c.isEmpty() {
		return 0, fmt.Errorf("buffer is empty")
	}

	value := c.buffer[c.tail]
	c.tail = c.next(c.tail)
	c.wait.Signal()

	return value, nil
}

// ReadInto fills a mono float32 slice, all or nothing.
func (c *CircularBuffer) ReadInto(slice []float32) int {
	c.wait.L.Lock()
	defer c.wait.L.Unlock()

	if len(slice) > c.available() {
		return 0
	}

	for i := 0; i < len(slice); i++ {
		slice[i] = float32(c.buffer[c.tail])
		c.tail = c.next(c.tail)
	}

	c.wait.Signal()
	return len(slice)
}

// ReadInto2 fills a stereo slice with the mono stream duplicated onto
// both channels.
func (c *CircularBuffer) ReadInto2(slice [][2]float64) int {
	c.wait.L.Lock()
	defer c.wait.L.Unlock()

	if len(slice) > c.available() {
		return 0
	}

	for i := 0; i < len(slice); i++ {
		slice[i][0] = c.buffer[c.tail]
		slice[i][1] = c.buffer[c.tail]
		c.tail = c.next(c.tail)
	}

	c.wait.Signal()
	return len(slice)
}

func (c *CircularBuffer) Available() int {
	c.wait.L.Lock()
	defer c.wait.L.Unlock()

	return c.available()
}

func (c *CircularBuffer) available() int {
	if c.head >= c.tail {
		return c.head - c.tail
	}
	return c.head + c.size - c.tail
}

func (c *CircularBuffer) isEmpty() bool {
	return c.head == c.tail
}
func (c *CircularBuffer) isFull() bool {
	return c.next(c.head) == c.tail
}
func (c *CircularBuffer) next(index int) int {
	if (index + 1) >= c.size {
		return 0
	}
	return index + 1
}

func (c *CircularBuffer) reset(size int) {
	c.head = 0
	c.tail = 0
	c.size = size
	c.buffer = make([]float64, size)
	c.wait = sync.NewCond(&c.lock)
}
