package models

// Connection is one TCP session between a device and the gateway.
type Connection struct {
	ID          int64   `json:"id"`
	Ident       string  `json:"ident,omitempty"`
	Source      string  `json:"source,omitempty"`
	Transport   string  `json:"transport,omitempty"`
	Established float64 `json:"established"`
}
