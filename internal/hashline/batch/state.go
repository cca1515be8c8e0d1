// Package batch decodes a JSON edit batch off the wire and drives it
// through the text or JSON engine, tracking the batch-level state machine
// a caller (CLI or MCP server) can inspect after Apply returns.
package batch

// State is one stage of a batch's life, mirroring the agent-visible
// contract: PARSING -> VALIDATING -> (REJECTED | READY) -> APPLYING -> DONE.
type State int

const (
	StateParsing State = iota
	StateValidating
	StateRejected
	StateReady
	StateApplying
	StateDone
)

func (s State) String() string {
	switch s {
	case StateParsing:
		return "PARSING"
	case StateValidating:
		return "VALIDATING"
	case StateRejected:
		return "REJECTED"
	case StateReady:
		return "READY"
	case StateApplying:
		return "APPLYING"
	case StateDone:
		return "DONE"
	default:
		return "UNKNOWN"
	}
}
