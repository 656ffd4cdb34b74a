package common

import "log"

type NameTableMirroring uint8

const (
	HorizontalMirroring NameTableMirroring = iota
	VerticalMirroring
	SingleScreenLowMirroring
	SingleScreenHighMirroring
	// cartridge supplies the extra 2K so all four tables are distinct
	QuadScreenMirroring
)

// NameTables owns the console's 2K of CIRAM plus the optional cartridge
// extension, and resolves the mirroring configuration the mapper selects.
type NameTables struct {
	vRam Ram

	Mirroring NameTableMirroring
}

func (n *NameTables) Init(defaultMirror NameTableMirroring) {
	// double size so quad screen boards fit without resizing
	n.vRam.Init(0x800 * 2)
	n.Mirroring = defaultMirror
}

func (n *NameTables) Read8(addr uint16) uint8 {
	return n.vRam.Read8(n.decode(addr))
}
func (n *NameTables) Write8(addr uint16, val uint8) {
	n.vRam.Write8(n.decode(addr), val)
}

func (n *NameTables) decode(addr uint16) uint16 {
	addr = (addr - 0x2000) % 0x1000
	table := addr / 0x400
	addr = addr % 0x400

	switch n.Mirroring {
	case HorizontalMirroring:
		// $2000 pairs with $2400, $2800 with $2C00
		table = table / 2
	case VerticalMirroring:
		// $2000 pairs with $2800, $2400 with $2C00
		table = table % 2
	case SingleScreenLowMirroring:
		table = 0
	case SingleScreenHighMirroring:
		table = 1
	case QuadScreenMirroring:
		// leave as is, all four tables are backed
	default:
		log.Panicf("invalid nametable mirroring %v", n.Mirroring)
	}
	return table*0x400 + addr
}
