package probe

// State is the phase of the probe sequence. Transitions are strictly
// sequential; Done is terminal.
type State int

const (
	StateIdle State = iota
	StateIdentifying
	StateEnumeratingFormats
	StateEnumeratingResolutions
	StateEnumeratingControls
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateIdentifying:
		return "identifying"
	case StateEnumeratingFormats:
		return "enumerating formats"
	case StateEnumeratingResolutions:
		return "enumerating resolutions"
	case StateEnumeratingControls:
		return "enumerating controls"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}
