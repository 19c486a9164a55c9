package models

// Setting is one entry of the device configuration shadow: the value the
// platform last read from the device plus any pending write.
type Setting struct {
	Name    string         `json:"name"`
	Current map[string]any `json:"current,omitempty"`
	Pending map[string]any `json:"pending,omitempty"`
}
