package client

import (
	"context"
	"fmt"

	"github.com/vlavrik/flespi-gateway/pkg/models"
)

// GetSettings returns the device's configuration shadow. Only all=true is
// supported; selecting a named subset is a reserved extension point and
// fails fast rather than silently returning nothing.
func (c *Client) GetSettings(ctx context.Context, all bool) ([]models.Setting, error) {
	if !all {
		return nil, fmt.Errorf("flespi: selecting a settings subset is %w", ErrNotImplemented)
	}
	var settings []models.Setting
	if err := c.get(ctx, c.devicePath("settings/all"), nil, &settings); err != nil {
		return nil, err
	}
	return settings, nil
}
