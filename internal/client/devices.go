package client

import (
	"context"
	"fmt"

	"github.com/vlavrik/flespi-gateway/pkg/models"
)

// GetDevices lists devices. With all=true it returns every device visible to
// the token, ignoring the bound device identifier; otherwise it resolves
// just the device this client is bound to.
func (c *Client) GetDevices(ctx context.Context, all bool) ([]models.Device, error) {
	path := fmt.Sprintf("/devices/%d", c.DeviceID)
	if all {
		path = "/devices/all"
	}
	var devices []models.Device
	if err := c.get(ctx, path, nil, &devices); err != nil {
		return nil, err
	}
	return devices, nil
}
