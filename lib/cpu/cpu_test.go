package cpu

import (
	"errors"
	"testing"

	"github.com/famicore/famicore/lib/common"
)

// flat 64K bus, more than enough to exercise the cpu on its own
type testBus struct {
	ram [0x10000]uint8
}

func (b *testBus) Read8(addr uint16) uint8 {
	return b.ram[addr]
}
func (b *testBus) Write8(addr uint16, val uint8) {
	b.ram[addr] = val
}
func (b *testBus) Read16(addr uint16) uint16 {
	return uint16(b.Read8(addr)) | uint16(b.Read8(addr+1))<<8
}
func (b *testBus) Write16(addr uint16, val uint16) {
	b.Write8(addr, uint8(val&0xFF))
	b.Write8(addr+1, uint8(val>>8))
}

func newTestCpu(code []uint8) (*Cpu, *testBus) {
	bus := &testBus{}
	copy(bus.ram[0x8000:], code)
	bus.Write16(0xFFFC, 0x8000)

	cpu := &Cpu{}
	cpu.Init(bus, false, false)
	cpu.Reset()
	return cpu, bus
}

func TestPowerOnState(t *testing.T) {
	cpu, _ := newTestCpu(nil)
	if sp := cpu.Rg.Sp.Read(); sp != 0xFD {
		t.Errorf("power-on SP = 0x%02x, want 0xFD", sp)
	}
	if ps := cpu.Rg.Ps.Read(); ps != 0x24 {
		t.Errorf("power-on P = 0x%02x, want 0x24", ps)
	}
	if pc := cpu.Rg.Pc.Read(); pc != 0x8000 {
		t.Errorf("reset vector not followed, PC = 0x%04x", pc)
	}
}

func TestAdcFlags(t *testing.T) {
	tests := []struct {
		name       string
		a, m       uint8
		carryIn    bool
		want       uint8
		wantC      bool
		wantV      bool
	}{
		{"simple", 0x10, 0x20, false, 0x30, false, false},
		{"carry out", 0xFF, 0x01, false, 0x00, true, false},
		{"carry in", 0x10, 0x20, true, 0x31, false, false},
		{"signed overflow", 0x7F, 0x01, false, 0x80, false, true},
		{"signed underflow", 0x80, 0x80, false, 0x00, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code := []uint8{0xA9, tt.a, 0x69, tt.m} // LDA #a; ADC #m
			if tt.carryIn {
				code = append([]uint8{0x38}, code...) // SEC
			}
			cpu, _ := newTestCpu(code)
			if tt.carryIn {
				cpu.Tick()
			}
			cpu.Tick()
			cpu.Tick()
			if ac := cpu.Rg.Ac.Read(); ac != tt.want {
				t.Errorf("A = 0x%02x, want 0x%02x", ac, tt.want)
			}
			if c := cpu.Rg.Ps.bit[C] == 1; c != tt.wantC {
				t.Errorf("C = %v, want %v", c, tt.wantC)
			}
			if v := cpu.Rg.Ps.bit[V] == 1; v != tt.wantV {
				t.Errorf("V = %v, want %v", v, tt.wantV)
			}
		})
	}
}

func TestSbcBorrow(t *testing.T) {
	// SEC; LDA #$50; SBC #$10
	cpu, _ := newTestCpu([]uint8{0x38, 0xA9, 0x50, 0xE9, 0x10})
	cpu.Tick()
	cpu.Tick()
	cpu.Tick()
	if ac := cpu.Rg.Ac.Read(); ac != 0x40 {
		t.Errorf("A = 0x%02x, want 0x40", ac)
	}
	if cpu.Rg.Ps.bit[C] != 1 {
		t.Error("C should stay set when no borrow happens")
	}
}

func TestPageCrossCycle(t *testing.T) {
	// LDX #$01; LDA $80FF,X crosses into $8100
	cpu, _ := newTestCpu([]uint8{0xA2, 0x01, 0xBD, 0xFF, 0x80})
	cpu.Tick()
	if ticks := cpu.Tick(); ticks != 5 {
		t.Errorf("page crossing LDA abs,X took %d cycles, want 5", ticks)
	}

	// same read without the cross
	cpu, _ = newTestCpu([]uint8{0xA2, 0x01, 0xBD, 0x00, 0x80})
	cpu.Tick()
	if ticks := cpu.Tick(); ticks != 4 {
		t.Errorf("LDA abs,X took %d cycles, want 4", ticks)
	}
}

func TestStoreNeverAddsPageCycle(t *testing.T) {
	// LDX #$01; STA $80FF,X
	cpu, _ := newTestCpu([]uint8{0xA2, 0x01, 0x9D, 0xFF, 0x80})
	cpu.Tick()
	if ticks := cpu.Tick(); ticks != 5 {
		t.Errorf("STA abs,X took %d cycles, want 5", ticks)
	}
}

func TestBranchCycles(t *testing.T) {
	// BNE not taken: 2 cycles
	cpu, _ := newTestCpu([]uint8{0xA9, 0x00, 0xD0, 0x10})
	cpu.Tick()
	if ticks := cpu.Tick(); ticks != 2 {
		t.Errorf("untaken branch took %d cycles, want 2", ticks)
	}

	// BNE taken, same page: 3 cycles
	cpu, _ = newTestCpu([]uint8{0xA9, 0x01, 0xD0, 0x10})
	cpu.Tick()
	if ticks := cpu.Tick(); ticks != 3 {
		t.Errorf("taken branch took %d cycles, want 3", ticks)
	}
	if pc := cpu.Rg.Pc.Read(); pc != 0x8014 {
		t.Errorf("branch target PC = 0x%04x, want 0x8014", pc)
	}

	// BNE taken across a page: 4 cycles
	cpu, _ = newTestCpu([]uint8{0xA9, 0x01, 0xD0, 0x80})
	cpu.Tick()
	if ticks := cpu.Tick(); ticks != 4 {
		t.Errorf("page crossing branch took %d cycles, want 4", ticks)
	}
}

func TestIndirectJmpPageBug(t *testing.T) {
	// JMP ($10FF): low byte from $10FF, high byte from $1000 not $1100
	cpu, bus := newTestCpu([]uint8{0x6C, 0xFF, 0x10})
	bus.ram[0x10FF] = 0x34
	bus.ram[0x1100] = 0xAA
	bus.ram[0x1000] = 0x12
	cpu.Tick()
	if pc := cpu.Rg.Pc.Read(); pc != 0x1234 {
		t.Errorf("JMP ($10FF) landed at 0x%04x, want 0x1234", pc)
	}
}

func TestZeroPagePointerWrap(t *testing.T) {
	// LDA ($FF),Y with Y=0: pointer high byte comes from $00
	cpu, bus := newTestCpu([]uint8{0xA0, 0x00, 0xB1, 0xFF})
	bus.ram[0x00FF] = 0x00
	bus.ram[0x0000] = 0x04
	bus.ram[0x0400] = 0x5A
	cpu.Tick()
	cpu.Tick()
	if ac := cpu.Rg.Ac.Read(); ac != 0x5A {
		t.Errorf("A = 0x%02x, want 0x5A", ac)
	}
}

func TestBrkRtiRoundTrip(t *testing.T) {
	cpu, bus := newTestCpu([]uint8{0x38, 0x00}) // SEC; BRK
	bus.Write16(0xFFFE, 0x9000)
	bus.ram[0x9000] = 0x40 // RTI
	cpu.Tick()
	cpu.Tick()
	if pc := cpu.Rg.Pc.Read(); pc != 0x9000 {
		t.Fatalf("BRK vectored to 0x%04x, want 0x9000", pc)
	}
	if cpu.Rg.Ps.bit[I] != 1 {
		t.Error("BRK should set the I flag")
	}
	cpu.Tick()
	// BRK pushes the address of its padding byte + 1
	if pc := cpu.Rg.Pc.Read(); pc != 0x8003 {
		t.Errorf("RTI returned to 0x%04x, want 0x8003", pc)
	}
	if cpu.Rg.Ps.bit[C] != 1 {
		t.Error("RTI should restore the pushed carry")
	}
}

func TestNmiTakesPriorityAndEdgeClears(t *testing.T) {
	cpu, bus := newTestCpu([]uint8{0xEA, 0xEA, 0xEA}) // NOPs
	bus.Write16(0xFFFA, 0xA000)
	bus.Write16(0xFFFE, 0xB000)
	bus.ram[0xA000] = 0xEA
	cpu.Raise(common.IntNMI | common.IntIrqApu)

	ticks := cpu.Tick()
	if pc := cpu.Rg.Pc.Read(); pc != 0xA001 {
		t.Fatalf("NMI not taken, PC = 0x%04x", pc)
	}
	if ticks != 7+2 {
		t.Errorf("interrupt + NOP took %d cycles, want 9", ticks)
	}

	// NMI is an edge, it must not retrigger; the APU IRQ line is still
	// up but masked since the interrupt sequence set I
	cpu.Tick()
	if pc := cpu.Rg.Pc.Read(); pc == 0xA001 {
		t.Error("NMI retriggered")
	}
}

func TestIrqMaskedByInterruptDisable(t *testing.T) {
	cpu, bus := newTestCpu([]uint8{0x58, 0xEA, 0xEA}) // CLI; NOP; NOP
	bus.Write16(0xFFFE, 0xB000)
	bus.ram[0xB000] = 0xEA
	cpu.Raise(common.IntIrqApu)

	// I is set at power-on so the first instruction runs unbothered
	cpu.Tick()
	if pc := cpu.Rg.Pc.Read(); pc != 0x8001 {
		t.Fatalf("IRQ taken while masked, PC = 0x%04x", pc)
	}

	// after CLI the level line is still asserted and must fire
	cpu.Tick()
	if pc := cpu.Rg.Pc.Read(); pc != 0xB001 {
		t.Errorf("IRQ not taken after CLI, PC = 0x%04x", pc)
	}

	cpu.Clear(common.IntIrqApu)
	if cpu.interrupts != 0 {
		t.Error("Clear should drop the line")
	}
}

func TestStrictModeJamLatchesError(t *testing.T) {
	bus := &testBus{}
	bus.ram[0x8000] = 0x02 // KIL
	bus.Write16(0xFFFC, 0x8000)
	cpu := &Cpu{}
	cpu.Init(bus, false, true)
	cpu.Reset()

	cpu.Tick()
	if err := cpu.Err(); !errors.Is(err, common.ErrUnimplementedOpcode) {
		t.Fatalf("Err() = %v, want ErrUnimplementedOpcode", err)
	}

	// lax mode keeps running
	cpu.strict = false
	cpu.err = nil
	cpu.Tick()
	if err := cpu.Err(); err != nil {
		t.Errorf("non-strict jam raised %v", err)
	}
}

func TestIllegalLaxAndSax(t *testing.T) {
	// LDA #$F0; LDX #$0F; SAX $10; LAX $10
	cpu, bus := newTestCpu([]uint8{0xA9, 0xF0, 0xA2, 0x0F, 0x87, 0x10, 0xA7, 0x10})
	cpu.Tick()
	cpu.Tick()
	cpu.Tick()
	if v := bus.ram[0x10]; v != 0x00 {
		t.Errorf("SAX stored 0x%02x, want 0x00", v)
	}
	cpu.Tick()
	if cpu.Rg.Ac.Read() != 0x00 || cpu.Rg.X.Read() != 0x00 {
		t.Error("LAX should load A and X together")
	}
	if cpu.Rg.Ps.bit[Z] != 1 {
		t.Error("LAX of zero should set Z")
	}
}

func TestIllegalDcpCompares(t *testing.T) {
	// LDA #$40; DCP $10 with $10 holding $41 leaves $40 and compares equal
	cpu, bus := newTestCpu([]uint8{0xA9, 0x40, 0xC7, 0x10})
	bus.ram[0x10] = 0x41
	cpu.Tick()
	cpu.Tick()
	if v := bus.ram[0x10]; v != 0x40 {
		t.Errorf("DCP left 0x%02x, want 0x40", v)
	}
	if cpu.Rg.Ps.bit[Z] != 1 || cpu.Rg.Ps.bit[C] != 1 {
		t.Error("DCP equal compare should set Z and C")
	}
}

func TestOpTableComplete(t *testing.T) {
	for op, ins := range OpTable {
		if ins.Mode == ModeInvalid {
			t.Errorf("opcode 0x%02x has no addressing mode", op)
		}
		if ins.Size == 0 || ins.Cycles == 0 {
			t.Errorf("opcode 0x%02x has no size or cycles", op)
		}
		if ins.Name == "" {
			t.Errorf("opcode 0x%02x has no name", op)
		}
	}
}
