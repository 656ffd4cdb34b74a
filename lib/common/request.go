package common

// OpRequest is an operation the frontend asks of the running console.
// Requests are latched and serviced at a step boundary, never in the
// middle of an instruction.
type OpRequest int

const (
	ResetRequest OpRequest = iota
	StopRequest
)
