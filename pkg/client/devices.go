package client

import (
	"context"

	"github.com/siemlab/console/internal/domain/device"
)

// DeviceService handles device inventory operations
type DeviceService struct {
	client *Client
}

// ListDevicesResponse is the device collection envelope
type ListDevicesResponse struct {
	Devices []device.Device `json:"devices"`
	Total   int             `json:"total"`
}

// List retrieves the device inventory
func (s *DeviceService) List(ctx context.Context) ([]device.Device, error) {
	var resp ListDevicesResponse
	if err := s.client.doRequest(ctx, "GET", "/api/v1/defender/devices", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Devices, nil
}
