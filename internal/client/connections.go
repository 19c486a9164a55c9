package client

import (
	"context"

	"github.com/vlavrik/flespi-gateway/pkg/models"
)

// GetConnections returns the device's TCP session history.
func (c *Client) GetConnections(ctx context.Context) ([]models.Connection, error) {
	var conns []models.Connection
	if err := c.get(ctx, c.devicePath("connections/all"), nil, &conns); err != nil {
		return nil, err
	}
	return conns, nil
}
