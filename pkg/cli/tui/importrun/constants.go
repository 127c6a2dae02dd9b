package importrun

// Step constants for the import run state machine
const (
	StepInput = iota
	StepDiscovering
	StepRunning
)

// DefaultWidth is the default terminal width fallback
const DefaultWidth = 80

// VisibleItems is how many work items the run view shows at once
const VisibleItems = 10
