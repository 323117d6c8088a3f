// Package wizard owns the add-service flow's state machine: the current step
// index, the listing aggregate, gated forward transitions, draft persistence,
// and the auto-save task. It knows nothing about rendering; the TUI drives it
// and reads snapshots back.
package wizard

import (
	"context"
	"sync"
	"time"

	"github.com/khidmahq/khidma/internal/listing"
	"github.com/khidmahq/khidma/internal/logger"
)

// DraftStore is the persistence collaborator. The drafts bucket store in
// internal/draft satisfies it; tests substitute an in-memory fake.
type DraftStore interface {
	Save(ctx context.Context, p listing.Projection) bool
	Load(ctx context.Context) (listing.Projection, bool)
	Clear(ctx context.Context)
}

// PublishFunc is the external publish collaborator. It receives a snapshot of
// the listing and returns the location of the published result.
type PublishFunc func(l *listing.Listing) (string, error)

// PublishResult is the structured outcome of a publish attempt.
// Ready is false when a consent is missing: nothing happened, the draft is
// untouched. When Ready is true and Err is set, the collaborator failed and
// the draft was kept for retry.
type PublishResult struct {
	Ready    bool
	Location string
	Err      error
}

// Controller sequences the five wizard steps over one listing aggregate.
//
// All mutations go through whole-slice setters; panels never touch shared
// state. Methods are safe to call concurrently: the auto-save task reads the
// aggregate while the UI loop edits it.
type Controller struct {
	mu      sync.Mutex
	store   DraftStore
	publish PublishFunc

	step              int
	l                 *listing.Listing
	restored          bool
	lastSaved         time.Time
	termsAgreed       bool
	originalityAgreed bool
}

// NewController creates a controller at step 1 with an empty aggregate.
func NewController(store DraftStore, publish PublishFunc) *Controller {
	return &Controller{
		store:   store,
		publish: publish,
		step:    listing.MinStep,
		l:       listing.New(),
	}
}

// Initialize restores the saved draft, if any. Binary handles come back nil
// while previews are kept (the hydration contract); a missing or corrupt
// draft simply leaves the fresh empty aggregate in place. Never fails.
func (c *Controller) Initialize(ctx context.Context) {
	p, ok := c.store.Load(ctx)
	if !ok {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.l = p.Hydrate()
	c.restored = true
	logger.Info("Resumed listing draft: %q", c.l.Basic.Title)
}

// Step returns the current 1-based step index.
func (c *Controller) Step() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

// Restored reports whether Initialize rehydrated a saved draft.
func (c *Controller) Restored() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.restored
}

// Snapshot returns a deep copy of the aggregate for rendering.
func (c *Controller) Snapshot() *listing.Listing {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.l.Clone()
}

// SetBasicInfo replaces the step-1 slice wholesale.
func (c *Controller) SetBasicInfo(b listing.BasicInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.l.Basic = b
}

// SetDescription replaces the step-2 slice wholesale.
func (c *Controller) SetDescription(d listing.Description) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.l.Description = d
}

// SetPricing replaces the step-3 slice wholesale.
func (c *Controller) SetPricing(p listing.Pricing) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.l.Pricing = p
}

// SetPortfolio replaces the step-4 slice wholesale.
func (c *Controller) SetPortfolio(p listing.Portfolio) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.l.Portfolio = p
}

// SetConsents records the review-step consent checkboxes. They are checked
// by Publish and never serialized into the draft.
func (c *Controller) SetConsents(terms, originality bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.termsAgreed = terms
	c.originalityAgreed = originality
}

// Consents returns the current consent booleans.
func (c *Controller) Consents() (terms, originality bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.termsAgreed, c.originalityAgreed
}

// StepValid reports whether the given step's slice passes its gate.
func (c *Controller) StepValid(step int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return listing.StepValid(step, c.l)
}

// CurrentStepValid reports whether the active step passes its gate.
func (c *Controller) CurrentStepValid() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return listing.StepValid(c.step, c.l)
}

// Advance moves forward one step if the current step's gate passes.
// At the final step, or when the gate fails, it is a silent no-op: the UI is
// expected to have disabled the action, but the controller re-checks anyway.
// Returns true if the step changed.
func (c *Controller) Advance() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.step >= listing.MaxStep {
		return false
	}
	if !listing.StepValid(c.step, c.l) {
		logger.Debug("Advance ignored: step %d not valid", c.step)
		return false
	}
	c.step++
	return true
}

// Retreat moves back one step, floored at step 1. Always allowed.
func (c *Controller) Retreat() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.step > listing.MinStep {
		c.step--
	}
}

// SaveDraft projects the aggregate and persists it. Idempotent: an unchanged
// aggregate stores identical bytes. The store lock is not held during the
// write, so saves never block Advance/Retreat or slice updates. Returns true
// and updates the last-saved stamp only when the store accepted the write.
func (c *Controller) SaveDraft(ctx context.Context) bool {
	c.mu.Lock()
	p := listing.Project(c.l)
	c.mu.Unlock()

	if !c.store.Save(ctx, p) {
		return false
	}

	c.mu.Lock()
	c.lastSaved = time.Now()
	c.mu.Unlock()
	return true
}

// LastSaved returns when a draft was last successfully persisted, or the
// zero time if it never was.
func (c *Controller) LastSaved() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastSaved
}

// Publish runs the publish collaborator and clears the draft on success.
// Both consents are a hard precondition: without them nothing happens and
// the result reports not-ready. A collaborator failure keeps the draft so
// the user can retry.
func (c *Controller) Publish(ctx context.Context) PublishResult {
	c.mu.Lock()
	if !c.termsAgreed || !c.originalityAgreed {
		c.mu.Unlock()
		logger.Debug("Publish refused: consents missing")
		return PublishResult{Ready: false}
	}
	snapshot := c.l.Clone()
	c.mu.Unlock()

	location, err := c.publish(snapshot)
	if err != nil {
		logger.Error("Publish failed: %v", err)
		return PublishResult{Ready: true, Err: err}
	}

	c.store.Clear(ctx)
	logger.Info("Listing published to %s", location)
	return PublishResult{Ready: true, Location: location}
}
