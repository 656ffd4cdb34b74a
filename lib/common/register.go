package common

import "fmt"

// Register is an 8bit hardware register. Reads and writes can be hooked
// so that memory mapped registers keep their side effects (latch
// updates, flag clears) next to the register itself.
type Register struct {
	Val uint8

	name string

	onWrite func()
	onRead  func() uint8
}

func (r Register) String() string {
	return fmt.Sprintf("%s: 0x%02x", r.name, r.Val)
}
func (r *Register) Init(name string, val uint8) {
	r.Val = val
	r.name = name
	r.onWrite = nil
	r.onRead = nil
}
func (r *Register) InitHooked(name string, val uint8, onWrite func(), onRead func() uint8) {
	r.Init(name, val)
	r.onWrite = onWrite
	r.onRead = onRead
}

func (r *Register) Set(mask uint8) {
	r.Val |= mask
}
func (r *Register) Clr(mask uint8) {
	r.Val &= ^mask
}

func (r *Register) Write(val uint8) {
	r.Val = val

	if r.onWrite != nil {
		r.onWrite()
	}
}
func (r *Register) Read() uint8 {
	if r.onRead != nil {
		return r.onRead()
	}
	return r.Val
}

type Register16 struct {
	Val uint16

	name string
}

func (r Register16) String() string {
	return fmt.Sprintf("%s: 0x%04x", r.name, r.Val)
}
func (r *Register16) Init(name string, val uint16) {
	r.Val = val
	r.name = name
}
func (r *Register16) Write(val uint16) {
	r.Val = val
}
func (r *Register16) Read() uint16 {
	return r.Val
}
