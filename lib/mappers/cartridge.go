package mappers

import (
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/famicore/famicore/lib/common"
)

var CartEndianness = binary.LittleEndian

// Mapper is the cartridge board: it decodes every CPU access above
// $4020 and every PPU access below $2000, and boards with a scanline
// counter watch the PPU A12 line.
type Mapper interface {
	common.BusInt
	Init()
	OnA12Rising()
}

type Cartridge struct {
	config romConfig
	cart   string

	interrupts common.InterruptLines

	prgRom *common.Rom
	prgRam *common.Ram
	chr    *common.Rom
	Tables common.NameTables

	Mapper Mapper
}

// test carts: writable rom, no file behind it
func (c *Cartridge) defaultInit() error {
	c.prgRom.Init(16384*2, true)
	c.chr.Init(8192, true)
	c.prgRam.Init(8192)

	c.config.mirror = common.HorizontalMirroring
	c.Tables.Init(c.config.mirror)

	c.Mapper = &MapperNROM{cart: c}
	c.Mapper.Init()
	return nil
}

func (c *Cartridge) Init(cartPath string, interrupts common.InterruptLines) error {
	c.cart = cartPath
	c.interrupts = interrupts

	c.prgRom = new(common.Rom)
	c.prgRam = new(common.Ram)
	c.chr = new(common.Rom)

	if c.cart == "" {
		return c.defaultInit()
	}

	file, err := os.Open(c.cart)
	if err != nil {
		return err
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Printf("error closing %v: %v", c.cart, err)
		}
	}()

	return c.InitFromReader(file)
}

// InitFromReader parses an iNES image: header, optional 512 byte
// trainer, PRG ROM and then CHR ROM.
func (c *Cartridge) InitFromReader(reader io.Reader) error {
	header := inesHeader{}
	if err := binary.Read(reader, CartEndianness, &header); err != nil {
		return fmt.Errorf("%w: short header: %v", common.ErrMalformedImage, err)
	}

	config, err := header.config()
	if err != nil {
		return err
	}
	c.config = config

	if c.config.trainer {
		trainer := make([]byte, 512)
		if _, err := io.ReadFull(reader, trainer); err != nil {
			return fmt.Errorf("%w: short trainer: %v", common.ErrMalformedImage, err)
		}
	}

	c.prgRom.Init(c.config.prgRomSize, false)
	if _, err := c.prgRom.LoadFrom(reader); err != nil {
		return fmt.Errorf("%w: short PRG ROM: %v", common.ErrMalformedImage, err)
	}

	c.prgRam.Init(c.config.prgRamSize)
	if c.config.battery {
		c.loadBatteryRam()
	}

	if c.config.chrRomSize == 0 {
		// CHR RAM board
		c.chr.Init(8192, true)
	} else {
		c.chr.Init(c.config.chrRomSize, false)
		if _, err := c.chr.LoadFrom(reader); err != nil {
			return fmt.Errorf("%w: short CHR ROM: %v", common.ErrMalformedImage, err)
		}
	}

	c.Mapper, err = c.newCartMapper(c.config.mapper)
	if err != nil {
		return err
	}
	c.Mapper.Init()
	c.Tables.Init(c.config.mirror)
	return nil
}

func (c *Cartridge) newCartMapper(mapper uint8) (Mapper, error) {
	switch mapper {
	case 0:
		return &MapperNROM{cart: c}, nil
	case 1:
		return &MapperMMC1{cart: c}, nil
	case 4:
		return &MapperMMC3{cart: c}, nil
	default:
		return nil, fmt.Errorf("%w: mapper %v", common.ErrUnsupportedMapper, mapper)
	}
}

func (c *Cartridge) Reset() error {
	return c.Init(c.cart, c.interrupts)
}

func (c *Cartridge) Stop() {
	if c.config.battery {
		c.saveBatteryRam()
	}
}

func (c *Cartridge) SetMirroring(mirroring common.NameTableMirroring) {
	c.Tables.Mirroring = mirroring
}

func (c *Cartridge) MapperId() uint8 {
	return c.config.mapper
}

func (c *Cartridge) Mirroring() common.NameTableMirroring {
	return c.Tables.Mirroring
}

// WriteRom16 pokes code straight into the PRG ROM, only valid on the
// writable default cart. The address is a CPU address, translated the
// same way the NROM read path does it.
func (c *Cartridge) WriteRom16(addr uint16, val uint16) {
	c.prgRom.Write16((addr-0x8000)%uint16(c.prgRom.Size()), val)
}

func (c *Cartridge) batterySaveFile() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Printf("no user config dir, battery save disabled: %v", err)
		return ""
	}
	_, romName := filepath.Split(c.cart)
	return filepath.Join(configDir, "famicore", romName+".sav")
}

func (c *Cartridge) loadBatteryRam() {
	save := c.batterySaveFile()
	if save == "" {
		return
	}
	file, err := os.Open(save)
	if err != nil {
		// first run, nothing saved yet
		return
	}
	defer file.Close()
	if _, err := c.prgRam.LoadFrom(file); err != nil {
		log.Printf("error loading battery ram from %v: %v", save, err)
	}
}

func (c *Cartridge) saveBatteryRam() {
	save := c.batterySaveFile()
	if save == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(save), 0700); err != nil {
		log.Printf("error creating save folder: %v", err)
		return
	}
	file, err := os.Create(save)
	if err != nil {
		log.Printf("error creating battery save %v: %v", save, err)
		return
	}
	defer file.Close()
	if _, err := c.prgRam.SaveTo(file); err != nil {
		log.Printf("error writing battery save %v: %v", save, err)
	}
}
