package mappers

import (
	"fmt"

	"github.com/famicore/famicore/lib/common"
)

// "NES" followed by the MS-DOS EOF
var inesMagic = [4]byte{'N', 'E', 'S', 0x1A}

type inesFormat int

const (
	inesInvalid inesFormat = iota
	inesArchaic
	ines1
	ines2
)

// inesHeader is the 16 byte header shared by every iNES revision; the
// revisions only disagree on what bytes 7 and up mean.
type inesHeader struct {
	Magic      [4]byte
	PrgRomSize uint8 // in 16K units
	ChrRomSize uint8 // in 8K units, 0 means the board has CHR RAM
	Flags6     uint8 // low mapper nibble, mirroring, battery, trainer
	Flags7     uint8 // high mapper nibble, format signature
	Flags8     uint8 // PRG RAM size in 8K units
	Flags9     uint8
	Flags10    uint8
	Padding    [5]uint8
}

type romConfig struct {
	mapper  uint8
	mirror  common.NameTableMirroring
	battery bool
	trainer bool

	prgRomSize int
	chrRomSize int
	prgRamSize int
}

func (h *inesHeader) version() (inesFormat, error) {
	if h.Magic != inesMagic {
		return inesInvalid, fmt.Errorf("%w: bad magic %q", common.ErrMalformedImage, h.Magic[:])
	}

	switch h.Flags7 & 0x0C {
	case 0x08:
		return ines2, nil
	case 0x00:
		if h.Flags9 == 0 && h.Flags10 == 0 && h.Padding == [5]uint8{} {
			return ines1, nil
		}
	}
	// dirty bytes past flags 7 mean an archaic dump, where only the
	// first 7 bytes can be trusted
	return inesArchaic, nil
}

func (h *inesHeader) config() (romConfig, error) {
	version, err := h.version()
	if err != nil {
		return romConfig{}, err
	}

	cfg := romConfig{
		mapper:     h.Flags6 >> 4,
		battery:    (h.Flags6 & 0x02) != 0,
		trainer:    (h.Flags6 & 0x04) != 0,
		prgRomSize: int(h.PrgRomSize) * 16384,
		chrRomSize: int(h.ChrRomSize) * 8192,
		prgRamSize: 8192,
	}

	switch {
	case (h.Flags6 & 0x08) != 0:
		cfg.mirror = common.QuadScreenMirroring
	case (h.Flags6 & 0x01) != 0:
		cfg.mirror = common.VerticalMirroring
	default:
		cfg.mirror = common.HorizontalMirroring
	}

	if version != inesArchaic {
		cfg.mapper |= h.Flags7 & 0xF0
		if h.Flags8 != 0 {
			cfg.prgRamSize = int(h.Flags8) * 8192
		}
	}

	if cfg.prgRomSize == 0 {
		return romConfig{}, fmt.Errorf("%w: no PRG ROM", common.ErrMalformedImage)
	}

	return cfg, nil
}
