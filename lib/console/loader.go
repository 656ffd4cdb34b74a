package console

import (
	"fmt"
	"strings"
)

// LoadEasyCode pokes an assembled hex dump into memory, one line per
// 16 bytes in the "ADDR: XX XX .." format assemblers print. The first
// line's address becomes the reset vector.
func (n *Console) LoadEasyCode(code string) error {
	first := true
	for _, line := range strings.Split(code, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var addr uint16
		bytes := make([]uint, 16)
		got, err := fmt.Sscanf(line,
			"%X: %X %X %X %X %X %X %X %X %X %X %X %X %X %X %X %X",
			&addr,
			&bytes[0], &bytes[1], &bytes[2], &bytes[3],
			&bytes[4], &bytes[5], &bytes[6], &bytes[7],
			&bytes[8], &bytes[9], &bytes[10], &bytes[11],
			&bytes[12], &bytes[13], &bytes[14], &bytes[15])
		if got < 2 && err != nil {
			return fmt.Errorf("bad hex dump line %q: %v", line, err)
		}

		if first {
			n.cart.WriteRom16(0xFFFC, addr)
			first = false
		}

		for i := 0; i < got-1; i++ {
			n.cpu.Write8(addr+uint16(i), uint8(bytes[i]))
		}
	}
	return nil
}
