package common

import "errors"

// Errors surfaced to the host. Cartridge loading errors are returned
// before the clock ever runs; the remaining two indicate conditions that
// abort a run since continuing would silently desynchronize timing.
var (
	// ErrUnsupportedMapper: the image names a mapper this core does not
	// implement. Never silently fall back to a different mapper.
	ErrUnsupportedMapper = errors.New("unsupported mapper")

	// ErrMalformedImage: bad magic number, truncated ROM data or an
	// otherwise inconsistent cartridge header.
	ErrMalformedImage = errors.New("malformed cartridge image")

	// ErrUnimplementedOpcode: a jam opcode was fetched while the CPU is
	// in strict mode.
	ErrUnimplementedOpcode = errors.New("unimplemented opcode")

	// ErrBusUnmapped: an address resolved to no handler. The route
	// tables are total, so this is an internal defect, not a game bug.
	ErrBusUnmapped = errors.New("bus address unmapped")
)
