package disasm

import (
	"strings"
	"testing"
)

func TestDecodeModes(t *testing.T) {
	tests := []struct {
		code []uint8
		addr uint16
		want string
	}{
		{[]uint8{0xEA}, 0, "0000  EA        NOP"},
		{[]uint8{0xA9, 0x42}, 0, "0000  A9 42     LDA #$42"},
		{[]uint8{0xA5, 0x10}, 0, "0000  A5 10     LDA $10"},
		{[]uint8{0xB5, 0x10}, 0, "0000  B5 10     LDA $10,X"},
		{[]uint8{0xB6, 0x10}, 0, "0000  B6 10     LDX $10,Y"},
		{[]uint8{0xAD, 0x34, 0x12}, 0, "0000  AD 34 12  LDA $1234"},
		{[]uint8{0xBD, 0x34, 0x12}, 0, "0000  BD 34 12  LDA $1234,X"},
		{[]uint8{0xB9, 0x34, 0x12}, 0, "0000  B9 34 12  LDA $1234,Y"},
		{[]uint8{0x6C, 0x34, 0x12}, 0, "0000  6C 34 12  JMP ($1234)"},
		{[]uint8{0xA1, 0x10}, 0, "0000  A1 10     LDA ($10,X)"},
		{[]uint8{0xB1, 0x10}, 0, "0000  B1 10     LDA ($10),Y"},
		{[]uint8{0x0A}, 0, "0000  0A        ASL A"},
	}
	for _, tt := range tests {
		if got := Decode(tt.code, tt.addr).String(); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
}

func TestDecodeBranchTarget(t *testing.T) {
	// BNE -5 at $0605 resolves back to $0602
	code := make([]uint8, 0x610)
	code[0x605] = 0xD0
	code[0x606] = 0xFB

	op := Decode(code, 0x605)
	if op.Operand != "$0602" {
		t.Errorf("branch operand = %q, want $0602", op.Operand)
	}
}

func TestDecodeIllegalMarked(t *testing.T) {
	op := Decode([]uint8{0x03, 0x10}, 0) // SLO ($10,X)
	if !op.Illegal {
		t.Error("SLO not marked illegal")
	}
	if !strings.HasSuffix(op.String(), ";*") {
		t.Errorf("listing %q missing the illegal marker", op.String())
	}
}

func TestDecodeTruncatedOperand(t *testing.T) {
	op := Decode([]uint8{0xAD, 0x34}, 0) // LDA abs missing its high byte
	if op.Operand != "???" {
		t.Errorf("operand = %q, want ???", op.Operand)
	}
	if len(op.Bytes) != 2 {
		t.Errorf("consumed %d bytes", len(op.Bytes))
	}
}

func TestDisassembleRange(t *testing.T) {
	// LDA #$01 / STA $0200 / JMP $0600
	code := []uint8{0xA9, 0x01, 0x8D, 0x00, 0x02, 0x4C, 0x00, 0x06}

	var out strings.Builder
	if err := Disassemble(&out, code, 0, uint16(len(code))); err != nil {
		t.Fatalf("disassemble: %v", err)
	}

	want := []string{
		"0000  A9 01     LDA #$01",
		"0002  8D 00 02  STA $0200",
		"0005  4C 00 06  JMP $0600",
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != len(want) {
		t.Fatalf("got %d lines:\n%s", len(lines), out.String())
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %q, want %q", i, lines[i], w)
		}
	}
}
