// Package view holds the refreshable snapshot of backend collections and
// the derived incident views. The store is the single source the
// presentation surfaces read from; every refresh replaces the snapshot
// wholesale and recomputes the correlation views.
package view

import (
	"context"
	"sync"
	"time"

	"github.com/siemlab/console/internal/correlation"
	"github.com/siemlab/console/internal/domain/alert"
	"github.com/siemlab/console/internal/domain/device"
	"github.com/siemlab/console/internal/domain/incident"
	"github.com/siemlab/console/internal/pkg/logger"
	"github.com/siemlab/console/internal/pkg/metrics"
)

// Fetcher is the degrading collection source the store refreshes from.
// *client.Fetcher satisfies it.
type Fetcher interface {
	FetchAlerts(ctx context.Context) ([]alert.Alert, error)
	FetchIncidents(ctx context.Context) ([]incident.Incident, error)
	FetchDevices(ctx context.Context) ([]device.Device, error)
}

// Store is a concurrency-safe snapshot of the backend collections
type Store struct {
	mu      sync.RWMutex
	fetcher Fetcher
	log     *logger.Logger

	alerts    []alert.Alert
	incidents []incident.Incident
	devices   []device.Device
	views     []correlation.IncidentView

	refreshing  bool
	lastRefresh time.Time
	warnings    []string
}

// NewStore creates an empty snapshot store over a fetcher
func NewStore(fetcher Fetcher, log *logger.Logger) *Store {
	return &Store{
		fetcher:   fetcher,
		log:       log,
		alerts:    []alert.Alert{},
		incidents: []incident.Incident{},
		devices:   []device.Device{},
		views:     []correlation.IncidentView{},
	}
}

// Refresh fetches all collections and rebuilds the derived views. The
// alert and incident fetches run concurrently; the join result does not
// depend on which one lands first. A failed fetch degrades that
// collection to empty and is reported as a warning, never as an error.
func (s *Store) Refresh(ctx context.Context) {
	s.mu.Lock()
	if s.refreshing {
		s.mu.Unlock()
		return
	}
	s.refreshing = true
	s.mu.Unlock()

	var (
		wg        sync.WaitGroup
		alerts    []alert.Alert
		incidents []incident.Incident
		devices   []device.Device
		warnings  []string
		warnMu    sync.Mutex
	)

	warn := func(err error) {
		warnMu.Lock()
		warnings = append(warnings, err.Error())
		warnMu.Unlock()
		s.log.WithError(err).Warn("collection fetch degraded to empty")
	}

	wg.Add(3)
	go func() {
		defer wg.Done()
		start := time.Now()
		var err error
		alerts, err = s.fetcher.FetchAlerts(ctx)
		metrics.RecordFetch("alerts", outcome(err), time.Since(start))
		if err != nil {
			warn(err)
		}
	}()
	go func() {
		defer wg.Done()
		start := time.Now()
		var err error
		incidents, err = s.fetcher.FetchIncidents(ctx)
		metrics.RecordFetch("incidents", outcome(err), time.Since(start))
		if err != nil {
			warn(err)
		}
	}()
	go func() {
		defer wg.Done()
		start := time.Now()
		var err error
		devices, err = s.fetcher.FetchDevices(ctx)
		metrics.RecordFetch("devices", outcome(err), time.Since(start))
		if err != nil {
			warn(err)
		}
	}()
	wg.Wait()

	views := correlation.BuildViews(incidents, alerts)

	s.mu.Lock()
	s.alerts = alerts
	s.incidents = incidents
	s.devices = devices
	s.views = views
	s.warnings = warnings
	s.lastRefresh = time.Now()
	s.refreshing = false
	s.mu.Unlock()

	s.log.WithFields(map[string]interface{}{
		"alerts":    len(alerts),
		"incidents": len(incidents),
		"devices":   len(devices),
		"warnings":  len(warnings),
	}).Debug("snapshot refreshed")
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// Alerts returns the current alert snapshot
func (s *Store) Alerts() []alert.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.alerts
}

// Incidents returns the current incident snapshot
func (s *Store) Incidents() []incident.Incident {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.incidents
}

// Devices returns the current device snapshot
func (s *Store) Devices() []device.Device {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.devices
}

// Views returns the derived incident views
func (s *Store) Views() []correlation.IncidentView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.views
}

// View returns the derived view for one incident
func (s *Store) View(incidentID string) (correlation.IncidentView, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, v := range s.views {
		if v.Incident.ID == incidentID {
			return v, true
		}
	}
	return correlation.IncidentView{}, false
}

// Refreshing reports whether a refresh is in flight
func (s *Store) Refreshing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshing
}

// LastRefresh returns the completion time of the last refresh
func (s *Store) LastRefresh() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRefresh
}

// Warnings returns the degradation warnings from the last refresh
func (s *Store) Warnings() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.warnings
}
