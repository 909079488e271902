package client

import (
	"context"

	"github.com/siemlab/console/internal/domain/alert"
	"github.com/siemlab/console/internal/domain/device"
	"github.com/siemlab/console/internal/domain/incident"
	apperrors "github.com/siemlab/console/internal/pkg/errors"
)

// Fetcher wraps the collection listings with failure degradation: a
// transport or decode error is returned alongside an empty, non-nil
// slice so downstream view code never has to branch on a nil
// collection. Callers that need to distinguish "empty" from "failed"
// check the returned error; loading state is tracked by the caller.
type Fetcher struct {
	client *Client
}

// NewFetcher creates a degrading fetcher over an API client
func NewFetcher(c *Client) *Fetcher {
	return &Fetcher{client: c}
}

// FetchAlerts retrieves the alert collection, degrading failure to an
// empty collection.
func (f *Fetcher) FetchAlerts(ctx context.Context) ([]alert.Alert, error) {
	alerts, err := f.client.Alerts().List(ctx)
	if err != nil {
		return []alert.Alert{}, apperrors.TransportError("failed to fetch alerts", err)
	}
	if alerts == nil {
		alerts = []alert.Alert{}
	}
	return alerts, nil
}

// FetchIncidents retrieves the incident collection, degrading failure to
// an empty collection.
func (f *Fetcher) FetchIncidents(ctx context.Context) ([]incident.Incident, error) {
	incidents, err := f.client.Incidents().List(ctx)
	if err != nil {
		return []incident.Incident{}, apperrors.TransportError("failed to fetch incidents", err)
	}
	if incidents == nil {
		incidents = []incident.Incident{}
	}
	return incidents, nil
}

// FetchDevices retrieves the device inventory, degrading failure to an
// empty collection.
func (f *Fetcher) FetchDevices(ctx context.Context) ([]device.Device, error) {
	devices, err := f.client.Devices().List(ctx)
	if err != nil {
		return []device.Device{}, apperrors.TransportError("failed to fetch devices", err)
	}
	if devices == nil {
		devices = []device.Device{}
	}
	return devices, nil
}
