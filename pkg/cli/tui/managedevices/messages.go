package managedevices

import "devicehub-go/pkg/models"

// DevicesLoadedMsg is emitted when devices have been fetched
type DevicesLoadedMsg struct {
	Devices []models.Device
	Err     error
}

// DeleteErrorMsg is emitted when device deletion fails
type DeleteErrorMsg struct {
	Err error
}

// DeleteSuccessMsg is emitted when device deletion succeeds
type DeleteSuccessMsg struct {
	Name string
}
