package models

// TelemetryValue is the last known value of one monitored field, updated by
// the platform on each inbound message.
type TelemetryValue struct {
	Timestamp float64 `json:"ts"`
	Value     any     `json:"value"`
}

// DeviceTelemetry is the per-device entry of the telemetry listing.
type DeviceTelemetry struct {
	ID        int64                     `json:"id"`
	Telemetry map[string]TelemetryValue `json:"telemetry"`
}
