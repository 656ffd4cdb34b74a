// Package disasm decodes 6502 machine code into assembler listings,
// mainly for trace output and debugging rom images.
package disasm

import (
	"fmt"
	"io"
	"strings"

	"github.com/famicore/famicore/lib/cpu"
)

// Op is one decoded instruction.
type Op struct {
	Addr    uint16
	Bytes   []uint8
	Name    string
	Operand string
	Illegal bool
}

func (op Op) String() string {
	raw := make([]string, len(op.Bytes))
	for i, b := range op.Bytes {
		raw[i] = fmt.Sprintf("%02X", b)
	}
	line := fmt.Sprintf("%04X  %-8s  %s", op.Addr, strings.Join(raw, " "), op.Name)
	if op.Operand != "" {
		line += " " + op.Operand
	}
	if op.Illegal {
		line += " ;*"
	}
	return line
}

// Decode reads one instruction starting at addr. Truncated operands
// decode as far as the bytes go.
func Decode(code []uint8, addr uint16) Op {
	offset := int(addr)
	opcode := code[offset]
	ins := &cpu.OpTable[opcode]

	op := Op{
		Addr:    addr,
		Name:    ins.Name,
		Illegal: !ins.Legal,
	}

	size := int(ins.Size)
	if left := len(code) - offset; size > left {
		size = left
	}
	op.Bytes = code[offset : offset+size]

	if size < int(ins.Size) {
		op.Operand = "???"
		return op
	}

	var operand uint16
	switch size {
	case 2:
		operand = uint16(code[offset+1])
	case 3:
		operand = uint16(code[offset+1]) | uint16(code[offset+2])<<8
	}

	switch ins.Mode {
	case cpu.ModeImplied:
	case cpu.ModeAccumulator:
		op.Operand = "A"
	case cpu.ModeImmediate:
		op.Operand = fmt.Sprintf("#$%02X", operand)
	case cpu.ModeZeroPage:
		op.Operand = fmt.Sprintf("$%02X", operand)
	case cpu.ModeIndexedZeroPageX:
		op.Operand = fmt.Sprintf("$%02X,X", operand)
	case cpu.ModeIndexedZeroPageY:
		op.Operand = fmt.Sprintf("$%02X,Y", operand)
	case cpu.ModeAbsolute:
		op.Operand = fmt.Sprintf("$%04X", operand)
	case cpu.ModeIndexedAbsoluteX:
		op.Operand = fmt.Sprintf("$%04X,X", operand)
	case cpu.ModeIndexedAbsoluteY:
		op.Operand = fmt.Sprintf("$%04X,Y", operand)
	case cpu.ModeIndirect:
		op.Operand = fmt.Sprintf("($%04X)", operand)
	case cpu.ModeIndexedIndirectX:
		op.Operand = fmt.Sprintf("($%02X,X)", operand)
	case cpu.ModeIndirectIndexedY:
		op.Operand = fmt.Sprintf("($%02X),Y", operand)
	case cpu.ModeRelative:
		// branch targets print resolved, that is what you look up
		target := addr + 2 + uint16(int8(operand))
		op.Operand = fmt.Sprintf("$%04X", target)
	}

	return op
}

// Disassemble decodes [start, end) and writes one listing line per
// instruction.
func Disassemble(writer io.Writer, code []uint8, start, end uint16) error {
	for addr := start; addr < end; {
		op := Decode(code, addr)
		if _, err := fmt.Fprintln(writer, op); err != nil {
			return err
		}
		if len(op.Bytes) == 0 {
			break
		}
		addr += uint16(len(op.Bytes))
	}
	return nil
}
