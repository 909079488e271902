// Package worker runs the background refresh loop that keeps the
// snapshot store current.
package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/siemlab/console/internal/pkg/logger"
	"github.com/siemlab/console/internal/view"
	"github.com/siemlab/console/internal/workflow"
)

// Refresher periodically refreshes the snapshot store and feeds the
// resulting incident collection into the workflow controller.
type Refresher struct {
	cron       *cron.Cron
	store      *view.Store
	controller *workflow.Controller
	log        *logger.Logger
	timeout    time.Duration
}

// NewRefresher schedules store refreshes on a cron expression such as
// "@every 30s".
func NewRefresher(schedule string, store *view.Store, controller *workflow.Controller, log *logger.Logger) (*Refresher, error) {
	r := &Refresher{
		cron:       cron.New(),
		store:      store,
		controller: controller,
		log:        log,
		timeout:    30 * time.Second,
	}
	if _, err := r.cron.AddFunc(schedule, r.run); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Refresher) run() {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	r.store.Refresh(ctx)
	r.controller.Load(r.store.Incidents())
}

// Start begins the refresh schedule after one immediate refresh
func (r *Refresher) Start() {
	r.run()
	r.cron.Start()
	r.log.Info("background refresh started")
}

// Stop halts the schedule, waiting for a running refresh to finish
func (r *Refresher) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	r.log.Info("background refresh stopped")
}
