package common

// Interrupt source flags. NMI is edge latched, the IRQ flags are level
// lines which stay asserted until their owner clears them; the CPU ORs
// the three IRQ lines together and samples between instructions.
const (
	IntNMI uint8 = 1 << iota
	IntIrqApu
	IntIrqDmc
	IntIrqMapper

	IntIrqAny = IntIrqApu | IntIrqDmc | IntIrqMapper
)

// InterruptLines is how the PPU, APU and mappers pull on the CPU
// interrupt inputs without holding a CPU reference.
type InterruptLines interface {
	Raise(flags uint8)
	Clear(flags uint8)
}
