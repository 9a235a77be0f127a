package interact

// State is the mode the machine is in.
type State int

const (
	NoGraphOpen State = iota
	NoSelection
	NodeSelected
	ModalPrompt
	ShuttingDown
)

func (s State) String() string {
	switch s {
	case NoGraphOpen:
		return "NO GRAPH"
	case NoSelection:
		return "GRAPH"
	case NodeSelected:
		return "EDIT"
	case ModalPrompt:
		return "PROMPT"
	case ShuttingDown:
		return "EXIT"
	}
	return "UNKNOWN"
}

// Labels of the fixed menus.
const (
	optResume       = "Resume"
	optBackToGraphs = "Return to graphs"
	optSaveAndExit  = "Save and exit"
	optNewGraph     = "New graph"
	optExit         = "Exit"
	optRename       = "Rename"
	optDelete       = "Delete"
	optCancel       = "Cancel"
)
