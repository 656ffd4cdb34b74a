package console

import (
	"github.com/famicore/famicore/lib/common"
)

// CpuState is a copy of the cpu registers at an instruction boundary.
type CpuState struct {
	A, X, Y uint8
	Sp      uint8
	Ps      uint8
	Pc      uint16

	Cycles int
	Jammed bool
}

type PpuState struct {
	ScanLine int
	Dot      int
	Frames   uint
	VBlank   bool
}

type ApuState struct {
	// the $4015 view: channel length bits plus the two IRQ flags
	Status uint8
}

type MapperState struct {
	Id        uint8
	Mirroring common.NameTableMirroring
}

// Snapshot is a read only copy of the machine state for debugging
// hosts; taking one never perturbs the emulation.
type Snapshot struct {
	Cpu    CpuState
	Ppu    PpuState
	Apu    ApuState
	Mapper MapperState
}

func (n *Console) Snapshot() Snapshot {
	scanLine, dot := n.ppu.Dot()
	return Snapshot{
		Cpu: CpuState{
			A:      n.cpu.Rg.Ac.Read(),
			X:      n.cpu.Rg.X.Read(),
			Y:      n.cpu.Rg.Y.Read(),
			Sp:     n.cpu.Rg.Sp.Read(),
			Ps:     n.cpu.Rg.Ps.Read(),
			Pc:     n.cpu.Rg.Pc.Read(),
			Cycles: n.cpu.Clock(),
			Jammed: n.cpu.Err() != nil,
		},
		Ppu: PpuState{
			ScanLine: scanLine,
			Dot:      dot,
			Frames:   n.screen.Framebuffer.Frames,
			VBlank:   n.ppu.VBlank(),
		},
		Apu: ApuState{
			Status: n.apu.Status(),
		},
		Mapper: MapperState{
			Id:        n.cart.MapperId(),
			Mirroring: n.cart.Mirroring(),
		},
	}
}
