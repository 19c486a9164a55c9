package client

import (
	"context"

	"github.com/vlavrik/flespi-gateway/pkg/models"
)

// GetMessages returns the device's historical records matching filter; a nil
// filter returns everything retained. Ordering is the gateway's contract:
// ascending by timestamp for a single-device query (unless Filter.Reverse),
// unordered across devices. The client never reorders.
func (c *Client) GetMessages(ctx context.Context, filter *Filter) ([]models.Message, error) {
	var messages []models.Message
	if err := c.get(ctx, c.devicePath("messages"), filter, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// GetLogs returns the device's operational log entries matching filter.
func (c *Client) GetLogs(ctx context.Context, filter *Filter) ([]models.LogRecord, error) {
	var logs []models.LogRecord
	if err := c.get(ctx, c.devicePath("logs"), filter, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// GetPackets returns the raw protocol packets logged for the device.
func (c *Client) GetPackets(ctx context.Context, filter *Filter) ([]models.Packet, error) {
	var packets []models.Packet
	if err := c.get(ctx, c.devicePath("packets"), filter, &packets); err != nil {
		return nil, err
	}
	return packets, nil
}
