// Package workflow drives incident status and assignment changes. The
// backend is authoritative: a local snapshot is only ever replaced by the
// object the server returns, never by the optimistic request.
package workflow

import (
	"context"
	"sync"

	"github.com/siemlab/console/internal/domain/incident"
	"github.com/siemlab/console/internal/pkg/errors"
	"github.com/siemlab/console/internal/pkg/logger"
	"github.com/siemlab/console/internal/pkg/metrics"
	"github.com/siemlab/console/pkg/client"
)

// Updater is the backend mutation surface the controller needs.
// *client.IncidentService satisfies it.
type Updater interface {
	Update(ctx context.Context, id string, req client.UpdateIncidentRequest) (*incident.Incident, error)
}

type entry struct {
	snapshot   incident.Incident
	busy       bool
	draft      string // staged assignment edit, applied on next update
	hasDraft   bool
	appliedGen uint64 // generation of the last acknowledgment applied
}

// Controller tracks per-incident workflow state: the authoritative
// snapshot, an in-flight guard, and any staged assignment edit.
type Controller struct {
	mu      sync.Mutex
	updater Updater
	log     *logger.Logger
	entries map[string]*entry
	nextGen uint64
}

// NewController creates a workflow controller over a backend updater
func NewController(updater Updater, log *logger.Logger) *Controller {
	return &Controller{
		updater: updater,
		log:     log,
		entries: make(map[string]*entry),
	}
}

// Load replaces the tracked snapshots with a fresh incident collection.
// Busy flags and staged edits for incidents still present are preserved;
// entries for incidents no longer in the collection are dropped unless an
// update is in flight for them.
func (c *Controller) Load(incidents []incident.Incident) {
	c.mu.Lock()
	defer c.mu.Unlock()

	seen := make(map[string]bool, len(incidents))
	for _, inc := range incidents {
		seen[inc.ID] = true
		if e, ok := c.entries[inc.ID]; ok {
			e.snapshot = inc
			continue
		}
		c.entries[inc.ID] = &entry{snapshot: inc}
	}
	for id, e := range c.entries {
		if !seen[id] && !e.busy {
			delete(c.entries, id)
		}
	}
}

// Get returns the current snapshot for an incident
func (c *Controller) Get(id string) (incident.Incident, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[id]
	if !ok {
		return incident.Incident{}, false
	}
	return e.snapshot, true
}

// Snapshots returns all tracked incidents
func (c *Controller) Snapshots() []incident.Incident {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]incident.Incident, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e.snapshot)
	}
	return out
}

// Busy reports whether an update is in flight for the incident
func (c *Controller) Busy(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[id]
	return ok && e.busy
}

// StageAssignment stages an assignment edit for an incident. The edit is
// sent with the next status update and cleared only once the server
// acknowledges it.
func (c *Controller) StageAssignment(id, assignee string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[id]
	if !ok {
		return errors.NotFound("incident")
	}
	e.draft = assignee
	e.hasDraft = true
	return nil
}

// UpdateStatus requests a status change for an incident. Any status to
// any status is allowed. While a request is in flight further updates for
// the same incident are rejected with a conflict; on failure the prior
// snapshot is kept and the guard is lifted so the operation can be
// retried.
func (c *Controller) UpdateStatus(ctx context.Context, id, status string) (*incident.Incident, error) {
	if !incident.ValidStatus(status) {
		metrics.RecordIncidentUpdate(status, "rejected")
		return nil, errors.ValidationError("unknown incident status", map[string]string{"status": status})
	}

	c.mu.Lock()
	e, ok := c.entries[id]
	if !ok {
		c.mu.Unlock()
		metrics.RecordIncidentUpdate(status, "rejected")
		return nil, errors.NotFound("incident")
	}
	if e.busy {
		c.mu.Unlock()
		metrics.RecordIncidentUpdate(status, "conflict")
		return nil, errors.Conflict("an update for this incident is already in flight")
	}
	e.busy = true
	c.nextGen++
	gen := c.nextGen

	assignee := e.snapshot.AssignedTo
	if e.hasDraft {
		assignee = e.draft
	}
	req := client.UpdateIncidentRequest{Status: status, AssignedTo: assignee}
	c.mu.Unlock()

	updated, err := c.updater.Update(ctx, id, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	e.busy = false

	if err != nil {
		c.log.WithError(err).Error("incident update failed, keeping previous snapshot")
		metrics.RecordIncidentUpdate(status, "error")
		return nil, errors.BackendError("incident update was not accepted", err)
	}

	if !c.applyLocked(e, gen, *updated) {
		// A newer acknowledgment already landed; this one is stale.
		metrics.RecordIncidentUpdate(status, "stale")
		snap := e.snapshot
		return &snap, nil
	}
	metrics.RecordIncidentUpdate(status, "success")
	snap := e.snapshot
	return &snap, nil
}

// applyLocked installs a server acknowledgment if it is not older than
// the last one applied. Returns false for a stale acknowledgment, which
// must leave both the snapshot and the staged edit untouched.
func (c *Controller) applyLocked(e *entry, gen uint64, inc incident.Incident) bool {
	if gen <= e.appliedGen {
		return false
	}
	e.appliedGen = gen
	e.snapshot = inc
	e.hasDraft = false
	e.draft = ""
	return true
}
