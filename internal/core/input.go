package core

// Action represents a semantic player action, abstracted from physical key
// presses and mouse clicks.
type Action int

const (
	ActionNone     Action = iota
	ActionUp              // Up arrow, k - move the cell cursor up
	ActionDown            // Down arrow, j - move the cell cursor down
	ActionLeft            // Left arrow, h - move the cell cursor left
	ActionRight           // Right arrow, l - move the cell cursor right
	ActionPlace           // Enter, Space - place a mark under the cursor
	ActionCell            // 1-9 or mouse click - place a mark on a given cell
	ActionStart           // Enter, S - leave the start menu
	ActionContinue        // C - next round, scores kept
	ActionReset           // R - zero the scores and start over
	ActionHistory         // Tab - toggle the round history panel
	ActionHelp            // ? - toggle full help
	ActionQuit            // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionPlace:
		return "Place"
	case ActionCell:
		return "Cell"
	case ActionStart:
		return "Start"
	case ActionContinue:
		return "Continue"
	case ActionReset:
		return "Reset"
	case ActionHistory:
		return "History"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Input is one translated user intent. Cell is set only for ActionCell.
type Input struct {
	Action Action
	Cell   int
}

// NoInput is returned for keys and clicks that map to nothing.
var NoInput = Input{Action: ActionNone, Cell: -1}

// CellInput builds an ActionCell input for the given board index.
func CellInput(cell int) Input {
	return Input{Action: ActionCell, Cell: cell}
}
