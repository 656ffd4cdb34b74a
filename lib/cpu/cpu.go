package cpu

import (
	"fmt"
	"log"

	"github.com/famicore/famicore/lib/common"
)

// Context is the instruction currently being executed: decoded opcode,
// raw operand bytes, the address the opcode was fetched from and
// whether the effective address crossed a page.
type Context struct {
	op  uint8
	ins *Instruction
	opr uint32
	pgX bool
	pc  uint16
}

// Cpu is an instruction stepped 6502. Each Tick runs one instruction
// (plus any interrupt sequence taken before it) and reports how many
// cycles that took so the clock can run the other components in step.
type Cpu struct {
	common.BusExtInt

	eval [256]func()

	curr Context

	Rg Registers

	clk int

	verbose bool
	strict  bool

	// NMI is edge latched, the IRQ lines are levels owned by the
	// raising device
	pendingNMI bool
	interrupts uint8

	err error
}

func (c *Cpu) Init(busInt common.BusExtInt, verbose bool, strict bool) {
	c.verbose = verbose
	c.strict = strict

	c.Rg.Init()
	c.setupIns()

	c.BusExtInt = busInt
}

func (c *Cpu) Reset() {
	c.Rg.Init()
	c.pendingNMI = false
	c.interrupts = 0
	c.err = nil
	c.curr = Context{}
	c.Rg.Pc.Write(c.Read16(0xFFFC))
}

// Err reports the sticky failure raised when a jam opcode is fetched in
// strict mode. The cpu keeps stepping, the console decides what to do.
func (c *Cpu) Err() error {
	return c.err
}

// Clock returns the cycle count since power-on.
func (c *Cpu) Clock() int {
	return c.clk
}

// common.InterruptLines
func (c *Cpu) Raise(flags uint8) {
	if flags&common.IntNMI != 0 {
		c.pendingNMI = true
	}
	c.interrupts |= flags & common.IntIrqAny
}

func (c *Cpu) Clear(flags uint8) {
	if flags&common.IntNMI != 0 {
		c.pendingNMI = false
	}
	c.interrupts &= ^(flags & common.IntIrqAny)
}

// Tick samples the interrupt inputs and then runs one instruction,
// returning the number of cpu cycles consumed. NMI wins over IRQ and
// IRQ is masked by the I flag; the lines are only looked at here, at
// the instruction boundary.
func (c *Cpu) Tick() int {
	clk := c.clk

	if c.pendingNMI {
		c.pendingNMI = false
		c.interrupt(0xFFFA)
	} else if c.interrupts&common.IntIrqAny != 0 && c.Rg.Ps.bit[I] == 0 {
		c.interrupt(0xFFFE)
	}

	c.exec()
	return c.clk - clk
}

// the hardware interrupt sequence: 7 cycles, pushes PC and P with the
// B flag clear, sets I and jumps through the vector
func (c *Cpu) interrupt(vector uint16) {
	c._push16(c.Rg.Pc.Read())
	c._push8((c.Rg.Ps.Read() | BE) & ^uint8(BB))
	c.Rg.Ps.Set(BI, BI)
	c.Rg.Pc.Write(c.Read16(vector))
	c.clk += 7
}

func (c *Cpu) exec() {
	c.curr.pc = c.Rg.Pc.Val
	c.curr.pgX = false
	c.curr.opr = c.fetch()
	c.curr.op = uint8(c.curr.opr)
	c.curr.ins = &OpTable[c.curr.op]

	if c.verbose {
		c.trace()
	}

	// the PC moves past the instruction before it evaluates, so jumps
	// and branches just overwrite it
	c.Rg.Pc.Val += uint16(c.curr.ins.Size)

	c.eval[c.curr.op]()

	c.clk += int(c.curr.ins.Cycles)
	if c.curr.pgX {
		c.clk += int(c.curr.ins.PageCycles)
	}
}

func (c *Cpu) fetch() uint32 {
	op01 := c.Read16(c.Rg.Pc.Val)
	op2 := c.Read8(c.Rg.Pc.Val + 2)
	return uint32(op01) | uint32(op2)<<16
}

func (c *Cpu) trace() {
	ins := c.curr.ins
	bytes := ""
	for i := uint8(0); i < ins.Size; i++ {
		bytes += fmt.Sprintf("%02X ", uint8(c.curr.opr>>(8*i)))
	}
	mark := " "
	if !ins.Legal {
		mark = "*"
	}
	log.Printf("%04X  %-9s%s%s %-27s A:%02X X:%02X Y:%02X P:%02X SP:%02X CYC:%d\n",
		c.curr.pc, bytes, mark, ins.Name, c.operandString(ins),
		c.Rg.Ac.Read(), c.Rg.X.Read(), c.Rg.Y.Read(), c.Rg.Ps.Read(), c.Rg.Sp.Read(), c.clk)
}

func (c *Cpu) operandString(ins *Instruction) string {
	op1 := uint8(c.curr.opr >> 8)
	op12 := uint16(c.curr.opr >> 8)
	switch ins.Mode {
	case ModeImplied:
		return ""
	case ModeAccumulator:
		return "A"
	case ModeImmediate:
		return fmt.Sprintf("#$%02X", op1)
	case ModeZeroPage:
		return fmt.Sprintf("$%02X", op1)
	case ModeIndexedZeroPageX:
		return fmt.Sprintf("$%02X,X", op1)
	case ModeIndexedZeroPageY:
		return fmt.Sprintf("$%02X,Y", op1)
	case ModeAbsolute:
		return fmt.Sprintf("$%04X", op12)
	case ModeIndexedAbsoluteX:
		return fmt.Sprintf("$%04X,X", op12)
	case ModeIndexedAbsoluteY:
		return fmt.Sprintf("$%04X,Y", op12)
	case ModeIndexedIndirectX:
		return fmt.Sprintf("($%02X,X)", op1)
	case ModeIndirectIndexedY:
		return fmt.Sprintf("($%02X),Y", op1)
	case ModeIndirect:
		return fmt.Sprintf("($%04X)", op12)
	case ModeRelative:
		return fmt.Sprintf("$%04X", c.curr.pc+uint16(ins.Size)+uint16(int8(op1)))
	default:
		log.Panicf("invalid address mode: %d", ins.Mode)
		return ""
	}
}

func pageCrossed(a, b uint16) bool {
	return a&0xFF00 != b&0xFF00
}

// zero page pointers wrap within the page, so the high byte of a
// pointer at $FF comes from $00
func (c *Cpu) read16ZpWrap(ptr uint8) uint16 {
	lo := uint16(c.Read8(uint16(ptr)))
	hi := uint16(c.Read8(uint16(ptr + 1)))
	return lo | hi<<8
}

func (c *Cpu) getOperandAddr(ins *Instruction) uint16 {
	op1 := uint8(c.curr.opr >> 8)
	op12 := uint16(c.curr.opr >> 8)
	switch ins.Mode {
	case ModeImmediate:
		return c.curr.pc + 1
	case ModeZeroPage:
		return uint16(op1)
	case ModeIndexedZeroPageX:
		return uint16(op1 + c.Rg.X.Read())
	case ModeIndexedZeroPageY:
		return uint16(op1 + c.Rg.Y.Read())
	case ModeAbsolute:
		return op12
	case ModeIndexedAbsoluteX:
		addr := op12 + uint16(c.Rg.X.Read())
		c.curr.pgX = pageCrossed(op12, addr)
		return addr
	case ModeIndexedAbsoluteY:
		addr := op12 + uint16(c.Rg.Y.Read())
		c.curr.pgX = pageCrossed(op12, addr)
		return addr
	case ModeIndexedIndirectX:
		return c.read16ZpWrap(op1 + c.Rg.X.Read())
	case ModeIndirectIndexedY:
		base := c.read16ZpWrap(op1)
		addr := base + uint16(c.Rg.Y.Read())
		c.curr.pgX = pageCrossed(base, addr)
		return addr
	case ModeIndirect:
		// the 6502 does not carry into the high byte when the pointer
		// sits at $xxFF, so the second byte comes from $xx00
		if op1 == 0xFF {
			lo := uint16(c.Read8(op12))
			hi := uint16(c.Read8(op12 & 0xFF00))
			return lo | hi<<8
		}
		return c.Read16(op12)
	case ModeRelative:
		return c.curr.pc + uint16(ins.Size) + uint16(int8(op1))
	default:
		log.Panicf("invalid address mode: %d", ins.Mode)
		return 0
	}
}
