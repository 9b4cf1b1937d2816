package controller

// State is the occupancy of a machine. It is not tracked by Controller yet.
type State uint8

const (
	Free State = iota
	InUse
)

func (s State) String() string {
	switch s {
	case Free:
		return "free"
	case InUse:
		return "in-use"
	default:
		return "unknown"
	}
}
