package common

// Dma is the OAM DMA engine behind $4014. A write starts a 256 byte
// copy from CPU memory into OAMDATA; the CPU is stalled for the
// duration (513 cycles, 514 when the write lands on an odd cycle).
type Dma struct {
	BusInt

	clock uint

	nBytes uint16

	byteRd  uint8
	cpuAddr uint16
	ppuAddr uint16

	delay bool
}

func (d *Dma) Init(busInt BusInt) {
	d.BusInt = busInt
	d.nBytes = 0
	d.delay = true
}
func (d *Dma) Reset() {
	d.Init(d.BusInt)
}

func (d *Dma) Active() bool {
	return d.nBytes > 0
}

func (d *Dma) Ticks(nTicks int) {
	for i := 0; i < nTicks; i++ {
		d.clock++
		d.exec()
	}
}

func (d *Dma) exec() {
	if d.nBytes == 0 {
		d.delay = true
		return
	}

	// the transfer proper starts on the next even clock cycle
	if d.delay {
		if d.clock%2 == 1 {
			d.delay = false
		}
		return
	}

	if d.clock%2 == 0 {
		d.byteRd = d.BusInt.Read8(d.cpuAddr)
		d.cpuAddr++
	} else {
		d.BusInt.Write8(d.ppuAddr, d.byteRd)
		d.nBytes--
	}
}

func (d *Dma) setupTransfer(cpuAddr uint16) {
	d.cpuAddr = cpuAddr
	d.ppuAddr = 0x2004 // OAMDATA
	d.nBytes = 256
}

// BusInt
func (d *Dma) Read8(addr uint16) uint8 {
	return 0
}

func (d *Dma) Write8(addr uint16, val uint8) {
	if addr == 0x4014 {
		d.setupTransfer(uint16(val) << 8)
	}
}
