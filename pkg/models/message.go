package models

// Message is one historical record from a device. The field set varies per
// device type, so the record stays a generic mapping; the platform guarantees
// a "timestamp" key on every message.
type Message map[string]any

// Timestamp returns the message's unix timestamp, or 0 if absent.
// Flespi timestamps may carry a fractional part.
func (m Message) Timestamp() float64 {
	ts, _ := m["timestamp"].(float64)
	return ts
}

// Packet is one raw protocol packet as logged by the channel.
type Packet map[string]any
