package cpu

import (
	"fmt"

	"github.com/famicore/famicore/lib/common"
)

// Move commands:

func (c *Cpu) sta() {
	c.Write8(c.getOperandAddr(c.curr.ins), c.Rg.Ac.Read())
}
func (c *Cpu) stx() {
	c.Write8(c.getOperandAddr(c.curr.ins), c.Rg.X.Read())
}
func (c *Cpu) sty() {
	c.Write8(c.getOperandAddr(c.curr.ins), c.Rg.Y.Read())
}

func (c *Cpu) lda() {
	c.Rg.Ac.Write(c.Read8(c.getOperandAddr(c.curr.ins)))
	c.Rg.Ps.Set(BZ|BN, int8(c.Rg.Ac.Read()))
}
func (c *Cpu) ldx() {
	c.Rg.X.Write(c.Read8(c.getOperandAddr(c.curr.ins)))
	c.Rg.Ps.Set(BZ|BN, int8(c.Rg.X.Read()))
}
func (c *Cpu) ldy() {
	c.Rg.Y.Write(c.Read8(c.getOperandAddr(c.curr.ins)))
	c.Rg.Ps.Set(BZ|BN, int8(c.Rg.Y.Read()))
}

func (c *Cpu) tax() {
	c.Rg.X.Write(c.Rg.Ac.Read())
	c.Rg.Ps.Set(BZ|BN, int8(c.Rg.X.Read()))
}
func (c *Cpu) tay() {
	c.Rg.Y.Write(c.Rg.Ac.Read())
	c.Rg.Ps.Set(BZ|BN, int8(c.Rg.Y.Read()))
}
func (c *Cpu) txa() {
	c.Rg.Ac.Write(c.Rg.X.Read())
	c.Rg.Ps.Set(BZ|BN, int8(c.Rg.Ac.Read()))
}
func (c *Cpu) tya() {
	c.Rg.Ac.Write(c.Rg.Y.Read())
	c.Rg.Ps.Set(BZ|BN, int8(c.Rg.Ac.Read()))
}

func (c *Cpu) txs() {
	c.Rg.Sp.Write(c.Rg.X.Read())
}
func (c *Cpu) tsx() {
	c.Rg.X.Write(c.Rg.Sp.Read())
	c.Rg.Ps.Set(BZ|BN, int8(c.Rg.X.Read()))
}

func (c *Cpu) _push8(val uint8) {
	sp := c.Rg.Sp.Read()
	c.Write8(uint16(sp)|0x100, val)
	c.Rg.Sp.Write(sp - 1)
}
func (c *Cpu) _push16(val uint16) {
	c._push8(uint8(val >> 8))
	c._push8(uint8(val & 0xFF))
}
func (c *Cpu) _pull8() uint8 {
	sp := c.Rg.Sp.Read() + 1
	c.Rg.Sp.Write(sp)
	return c.Read8(uint16(sp) | 0x100)
}
func (c *Cpu) _pull16() uint16 {
	return uint16(c._pull8()) | uint16(c._pull8())<<8
}

func (c *Cpu) pha() {
	c._push8(c.Rg.Ac.Read())
}

// the B flag only exists on the stack: PHP and BRK push it set
func (c *Cpu) php() {
	c._push8(c.Rg.Ps.Read() | BB | BE)
}

func (c *Cpu) pla() {
	c.Rg.Ac.Write(c._pull8())
	c.Rg.Ps.Set(BZ|BN, int8(c.Rg.Ac.Read()))
}
func (c *Cpu) plp() {
	c.Rg.Ps.Write((c._pull8() | BE) & ^uint8(BB))
}

// Jump/Flag commands:

func (c *Cpu) bit() {
	value := c.Read8(c.getOperandAddr(c.curr.ins))
	c.Rg.Ps.Set(BZ, int8(value&c.Rg.Ac.Read()))
	c.Rg.Ps.Set(BN|BV, int8(value))
}

func (c *Cpu) clc() {
	c.Rg.Ps.Set(BC, 0)
}
func (c *Cpu) sec() {
	c.Rg.Ps.Set(BC, BC)
}
func (c *Cpu) cld() {
	c.Rg.Ps.Set(BD, 0)
}
func (c *Cpu) sed() {
	c.Rg.Ps.Set(BD, BD)
}
func (c *Cpu) clv() {
	c.Rg.Ps.Set(BV, 0)
}
func (c *Cpu) cli() {
	c.Rg.Ps.Set(BI, 0)
}
func (c *Cpu) sei() {
	c.Rg.Ps.Set(BI, BI)
}

// a taken branch costs one extra cycle, two if it lands on a new page
func (c *Cpu) addBranchCycles(addr uint16) {
	c.clk++
	next := c.curr.pc + uint16(c.curr.ins.Size)
	if pageCrossed(next, addr) {
		c.clk++
	}
}

func (c *Cpu) _branch(flag uint8, test uint8) {
	if (c.Rg.Ps.Read() & flag) == test {
		addr := c.getOperandAddr(c.curr.ins)
		c.addBranchCycles(addr)
		c.Rg.Pc.Write(addr)
	}
}

func (c *Cpu) bpl() { c._branch(BN, 0) }
func (c *Cpu) bmi() { c._branch(BN, BN) }
func (c *Cpu) bvc() { c._branch(BV, 0) }
func (c *Cpu) bvs() { c._branch(BV, BV) }
func (c *Cpu) bcc() { c._branch(BC, 0) }
func (c *Cpu) bcs() { c._branch(BC, BC) }
func (c *Cpu) bne() { c._branch(BZ, 0) }
func (c *Cpu) beq() { c._branch(BZ, BZ) }

func (c *Cpu) jmp() {
	c.Rg.Pc.Write(c.getOperandAddr(c.curr.ins))
}

func (c *Cpu) jsr() {
	// the return address pushed is the last byte of this instruction
	c._push16(c.curr.pc + 2)
	c.Rg.Pc.Write(c.getOperandAddr(c.curr.ins))
}
func (c *Cpu) rts() {
	c.Rg.Pc.Write(c._pull16() + 1)
}

func (c *Cpu) brk() {
	// BRK skips its padding byte, so the pushed PC is opcode+2
	c._push16(c.Rg.Pc.Read() + 1)
	c._push8(c.Rg.Ps.Read() | BB | BE)
	c.Rg.Ps.Set(BI, BI)
	c.Rg.Pc.Write(c.Read16(0xFFFE))
}

func (c *Cpu) rti() {
	c.plp()
	c.Rg.Pc.Write(c._pull16())
}

// the operand carrying NOP variants still perform the read
func (c *Cpu) nop() {
	switch c.curr.ins.Mode {
	case ModeImplied, ModeAccumulator:
	default:
		c.Read8(c.getOperandAddr(c.curr.ins))
	}
}

// Logical and arithmetic commands:

func (c *Cpu) ora() {
	c.Rg.Ac.Write(c.Rg.Ac.Read() | c.Read8(c.getOperandAddr(c.curr.ins)))
	c.Rg.Ps.Set(BZ|BN, int8(c.Rg.Ac.Read()))
}
func (c *Cpu) and() {
	c.Rg.Ac.Write(c.Rg.Ac.Read() & c.Read8(c.getOperandAddr(c.curr.ins)))
	c.Rg.Ps.Set(BZ|BN, int8(c.Rg.Ac.Read()))
}
func (c *Cpu) eor() {
	c.Rg.Ac.Write(c.Rg.Ac.Read() ^ c.Read8(c.getOperandAddr(c.curr.ins)))
	c.Rg.Ps.Set(BZ|BN, int8(c.Rg.Ac.Read()))
}

func (c *Cpu) _add(opr uint8) {
	ac := c.Rg.Ac.Read()
	result := uint16(ac) + uint16(opr) + uint16(c.Rg.Ps.bit[C])
	if result > 0xFF {
		c.Rg.Ps.Set(BC, BC)
	} else {
		c.Rg.Ps.Set(BC, 0)
	}

	// signed overflow: addend signs equal and result sign differs
	// eg: 127 + 3 = 130 ( -126 )
	if ((ac^opr)&0x80) == 0 && ((uint16(ac)^result)&0x80) != 0 {
		c.Rg.Ps.Set(BV, BV)
	} else {
		c.Rg.Ps.Set(BV, 0)
	}
	c.Rg.Ac.Write(uint8(result))
	c.Rg.Ps.Set(BZ|BN, int8(c.Rg.Ac.Read()))
	// decimal mode does not exist on the 2A03
}

func (c *Cpu) adc() {
	c._add(c.Read8(c.getOperandAddr(c.curr.ins)))
}
func (c *Cpu) sbc() {
	c._add(c.Read8(c.getOperandAddr(c.curr.ins)) ^ 0xFF)
}

func (c *Cpu) _cmp(op1 uint8, op2 uint8) {
	if op1 >= op2 {
		c.Rg.Ps.Set(BC, BC)
	} else {
		c.Rg.Ps.Set(BC, 0)
	}
	c.Rg.Ps.Set(BZ|BN, int8(op1-op2))
}

func (c *Cpu) cmp() {
	c._cmp(c.Rg.Ac.Read(), c.Read8(c.getOperandAddr(c.curr.ins)))
}
func (c *Cpu) cpx() {
	c._cmp(c.Rg.X.Read(), c.Read8(c.getOperandAddr(c.curr.ins)))
}
func (c *Cpu) cpy() {
	c._cmp(c.Rg.Y.Read(), c.Read8(c.getOperandAddr(c.curr.ins)))
}

func (c *Cpu) dec() {
	addr := c.getOperandAddr(c.curr.ins)
	v := c.Read8(addr) - 1
	c.Write8(addr, v)
	c.Rg.Ps.Set(BZ|BN, int8(v))
}
func (c *Cpu) dex() {
	v := c.Rg.X.Read() - 1
	c.Rg.X.Write(v)
	c.Rg.Ps.Set(BZ|BN, int8(v))
}
func (c *Cpu) dey() {
	v := c.Rg.Y.Read() - 1
	c.Rg.Y.Write(v)
	c.Rg.Ps.Set(BZ|BN, int8(v))
}

func (c *Cpu) inc() {
	addr := c.getOperandAddr(c.curr.ins)
	v := c.Read8(addr) + 1
	c.Write8(addr, v)
	c.Rg.Ps.Set(BZ|BN, int8(v))
}
func (c *Cpu) inx() {
	v := c.Rg.X.Read() + 1
	c.Rg.X.Write(v)
	c.Rg.Ps.Set(BZ|BN, int8(v))
}
func (c *Cpu) iny() {
	v := c.Rg.Y.Read() + 1
	c.Rg.Y.Write(v)
	c.Rg.Ps.Set(BZ|BN, int8(v))
}

// _rmw runs op either on the accumulator or on memory, per the
// addressing mode of the current instruction
func (c *Cpu) _rmw(op func(uint8) uint8) {
	if c.curr.ins.Mode == ModeAccumulator {
		c.Rg.Ac.Write(op(c.Rg.Ac.Read()))
		return
	}
	addr := c.getOperandAddr(c.curr.ins)
	c.Write8(addr, op(c.Read8(addr)))
}

func (c *Cpu) _asl(v uint8) uint8 {
	c.Rg.Ps.Set(BC, int8(v>>7)&BC)
	v <<= 1
	c.Rg.Ps.Set(BZ|BN, int8(v))
	return v
}
func (c *Cpu) _rol(v uint8) uint8 {
	fC := c.Rg.Ps.bit[C]
	c.Rg.Ps.Set(BC, int8(v>>7)&BC)
	v = (v << 1) | fC
	c.Rg.Ps.Set(BZ|BN, int8(v))
	return v
}
func (c *Cpu) _lsr(v uint8) uint8 {
	c.Rg.Ps.Set(BC, int8(v)&BC)
	v >>= 1
	c.Rg.Ps.Set(BZ|BN, int8(v))
	return v
}
func (c *Cpu) _ror(v uint8) uint8 {
	fC := c.Rg.Ps.bit[C]
	c.Rg.Ps.Set(BC, int8(v)&BC)
	v = (v >> 1) | (fC << 7)
	c.Rg.Ps.Set(BZ|BN, int8(v))
	return v
}

func (c *Cpu) asl() { c._rmw(c._asl) }
func (c *Cpu) rol() { c._rmw(c._rol) }
func (c *Cpu) lsr() { c._rmw(c._lsr) }
func (c *Cpu) ror() { c._rmw(c._ror) }

// Unofficial opcodes. Most combine a read-modify-write with an ALU
// operation on the result; games (and nestest) rely on them.

func (c *Cpu) slo() {
	addr := c.getOperandAddr(c.curr.ins)
	v := c._asl(c.Read8(addr))
	c.Write8(addr, v)
	c.Rg.Ac.Write(c.Rg.Ac.Read() | v)
	c.Rg.Ps.Set(BZ|BN, int8(c.Rg.Ac.Read()))
}
func (c *Cpu) rla() {
	addr := c.getOperandAddr(c.curr.ins)
	v := c._rol(c.Read8(addr))
	c.Write8(addr, v)
	c.Rg.Ac.Write(c.Rg.Ac.Read() & v)
	c.Rg.Ps.Set(BZ|BN, int8(c.Rg.Ac.Read()))
}
func (c *Cpu) sre() {
	addr := c.getOperandAddr(c.curr.ins)
	v := c._lsr(c.Read8(addr))
	c.Write8(addr, v)
	c.Rg.Ac.Write(c.Rg.Ac.Read() ^ v)
	c.Rg.Ps.Set(BZ|BN, int8(c.Rg.Ac.Read()))
}
func (c *Cpu) rra() {
	addr := c.getOperandAddr(c.curr.ins)
	v := c._ror(c.Read8(addr))
	c.Write8(addr, v)
	c._add(v)
}
func (c *Cpu) dcp() {
	addr := c.getOperandAddr(c.curr.ins)
	v := c.Read8(addr) - 1
	c.Write8(addr, v)
	c._cmp(c.Rg.Ac.Read(), v)
}
func (c *Cpu) isb() {
	addr := c.getOperandAddr(c.curr.ins)
	v := c.Read8(addr) + 1
	c.Write8(addr, v)
	c._add(v ^ 0xFF)
}

func (c *Cpu) lax() {
	v := c.Read8(c.getOperandAddr(c.curr.ins))
	c.Rg.Ac.Write(v)
	c.Rg.X.Write(v)
	c.Rg.Ps.Set(BZ|BN, int8(v))
}
func (c *Cpu) sax() {
	c.Write8(c.getOperandAddr(c.curr.ins), c.Rg.Ac.Read()&c.Rg.X.Read())
}

func (c *Cpu) anc() {
	c.Rg.Ac.Write(c.Rg.Ac.Read() & c.Read8(c.getOperandAddr(c.curr.ins)))
	c.Rg.Ps.Set(BZ|BN, int8(c.Rg.Ac.Read()))
	c.Rg.Ps.bit[C] = c.Rg.Ps.bit[N]
}
func (c *Cpu) alr() {
	v := c.Rg.Ac.Read() & c.Read8(c.getOperandAddr(c.curr.ins))
	c.Rg.Ac.Write(c._lsr(v))
}
func (c *Cpu) arr() {
	v := c.Rg.Ac.Read() & c.Read8(c.getOperandAddr(c.curr.ins))
	v = (v >> 1) | (c.Rg.Ps.bit[C] << 7)
	c.Rg.Ac.Write(v)
	c.Rg.Ps.Set(BZ|BN, int8(v))
	c.Rg.Ps.bit[C] = (v >> 6) & 1
	c.Rg.Ps.bit[V] = ((v >> 6) ^ (v >> 5)) & 1
}
func (c *Cpu) axs() {
	opr := c.Read8(c.getOperandAddr(c.curr.ins))
	t := c.Rg.Ac.Read() & c.Rg.X.Read()
	if t >= opr {
		c.Rg.Ps.Set(BC, BC)
	} else {
		c.Rg.Ps.Set(BC, 0)
	}
	c.Rg.X.Write(t - opr)
	c.Rg.Ps.Set(BZ|BN, int8(c.Rg.X.Read()))
}
func (c *Cpu) xaa() {
	c.Rg.Ac.Write(c.Rg.X.Read() & c.Read8(c.getOperandAddr(c.curr.ins)))
	c.Rg.Ps.Set(BZ|BN, int8(c.Rg.Ac.Read()))
}

// the "high byte and" stores; unstable on silicon, emulated in their
// most common form
func (c *Cpu) ahx() {
	addr := c.getOperandAddr(c.curr.ins)
	c.Write8(addr, c.Rg.Ac.Read()&c.Rg.X.Read()&(uint8(addr>>8)+1))
}
func (c *Cpu) shy() {
	addr := c.getOperandAddr(c.curr.ins)
	c.Write8(addr, c.Rg.Y.Read()&(uint8(addr>>8)+1))
}
func (c *Cpu) shx() {
	addr := c.getOperandAddr(c.curr.ins)
	c.Write8(addr, c.Rg.X.Read()&(uint8(addr>>8)+1))
}
func (c *Cpu) tas() {
	addr := c.getOperandAddr(c.curr.ins)
	c.Rg.Sp.Write(c.Rg.Ac.Read() & c.Rg.X.Read())
	c.Write8(addr, c.Rg.Sp.Read()&(uint8(addr>>8)+1))
}
func (c *Cpu) las() {
	v := c.Read8(c.getOperandAddr(c.curr.ins)) & c.Rg.Sp.Read()
	c.Rg.Ac.Write(v)
	c.Rg.X.Write(v)
	c.Rg.Sp.Write(v)
	c.Rg.Ps.Set(BZ|BN, int8(v))
}

// kil jams a real 6502. In strict mode the error is latched for the
// console to pick up, otherwise it degrades to a nop.
func (c *Cpu) kil() {
	if c.strict && c.err == nil {
		c.err = fmt.Errorf("%w: opcode 0x%02x at 0x%04x",
			common.ErrUnimplementedOpcode, c.curr.op, c.curr.pc)
	}
}
