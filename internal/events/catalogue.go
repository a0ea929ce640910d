package events

import "time"

// Topics used by the navigation service.
const (
	// TopicNavigationCommands carries device-gateway commands into the
	// navigation engine.
	TopicNavigationCommands = "navigation.commands"
	// TopicNavigationEvents carries lifecycle and instruction events to the
	// TTS and display consumers.
	TopicNavigationEvents = "navigation.events"
)

// Command event types consumed from TopicNavigationCommands.
const (
	NavigationStartRequested = "navigation.start.requested"
	LocationFixReported      = "navigation.location.reported"
	NavigationStopRequested  = "navigation.stop.requested"
)

// StartNavigationCommand asks the engine to begin a new journey.
type StartNavigationCommand struct {
	Destination string    `json:"destination"`
	RequestedAt time.Time `json:"requested_at"`
}

// LocationFixCommand reports one GPS fix from the device.
type LocationFixCommand struct {
	Latitude   float64   `json:"lat"`
	Longitude  float64   `json:"lon"`
	ReportedAt time.Time `json:"reported_at"`
}

// StopNavigationCommand asks the engine to end the current journey.
type StopNavigationCommand struct {
	Reason      string    `json:"reason,omitempty"`
	RequestedAt time.Time `json:"requested_at"`
}
