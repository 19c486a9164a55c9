package models

// Device represents a single tracked unit registered on the platform.
type Device struct {
	ID            int64          `json:"id"`
	Name          string         `json:"name"`
	DeviceTypeID  int64          `json:"device_type_id"`
	Configuration map[string]any `json:"configuration,omitempty"`
}
