package managedevices

// Step constants for the manage devices state machine
const (
	StepListDevices = iota
	StepActionMenu
	StepViewDetails
	StepDeleteConfirm
	StepDone
)

// DefaultWidth is the default terminal width fallback
const DefaultWidth = 80
