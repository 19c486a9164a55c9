package models

// LogRecord is one operational log entry for a device.
type LogRecord struct {
	Timestamp float64 `json:"timestamp"`
	EventCode int     `json:"event_code"`
	Source    string  `json:"source,omitempty"`
	Address   string  `json:"address,omitempty"`
}
