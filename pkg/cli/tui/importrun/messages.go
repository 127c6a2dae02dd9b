package importrun

import "devicehub-go/pkg/importer"

// StartedMsg is emitted when link discovery has finished, successfully or not
type StartedMsg struct {
	ListingURL string
	Err        error
}

// SnapshotMsg carries the latest run snapshot from the importer
type SnapshotMsg struct {
	Snapshot importer.Snapshot
}

// UpdatesClosedMsg is emitted once the importer has been closed
type UpdatesClosedMsg struct{}
