package client

import (
	"context"

	"github.com/vlavrik/flespi-gateway/pkg/models"
)

// GetTelemetry returns the device's last known value per telemetry field.
// The listing is device-scoped, so only the first (and in practice only)
// entry is unwrapped; a device with no telemetry yields an empty map.
func (c *Client) GetTelemetry(ctx context.Context) (map[string]models.TelemetryValue, error) {
	var entries []models.DeviceTelemetry
	if err := c.get(ctx, c.devicePath("telemetry/all"), nil, &entries); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return map[string]models.TelemetryValue{}, nil
	}
	return entries[0].Telemetry, nil
}
