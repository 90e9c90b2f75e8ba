// Package downtime owns the failover state of the sidecar: whether the
// primary bot is believed up, suspected down, or confirmed down.
package downtime

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/strbit/downtime/internal/lib/logger/sl"
)

type Status string

const (
	StatusUp          Status = "UP"
	StatusPendingDown Status = "PENDING_DOWN"
	StatusDown        Status = "DOWN"
)

// Alert is the one-per-outage on-call page.
type Alert struct {
	ChatID       int64
	DashboardURL string
	Body         string
}

// Alerter delivers an on-call alert. Implemented by the bot transport.
type Alerter interface {
	SendAlert(a Alert) error
}

// Activator switches the failover responder on and off.
type Activator interface {
	Activate()
	Deactivate()
}

type Config struct {
	Forced       bool
	Delay        time.Duration
	OnCallChatID int64
	DashboardURL string
}

// Controller serializes every state mutation behind one mutex: a delayed
// grace-timer callback and an up-report arriving over HTTP are independent
// goroutines and must never observe a torn status.
type Controller struct {
	log      *slog.Logger
	alerter  Alerter
	failover Activator
	cfg      Config

	mu           sync.Mutex
	status       Status
	pendingSince time.Time
	forced       bool
	timer        *time.Timer
}

func New(log *slog.Logger, cfg Config, alerter Alerter, failover Activator) *Controller {
	c := &Controller{
		log:      log,
		alerter:  alerter,
		failover: failover,
		cfg:      cfg,
		status:   StatusUp,
	}

	if cfg.Forced {
		c.status = StatusDown
		c.forced = true
		c.failover.Activate()

		log.Warn("forced downtime enabled, responding with downtime notice until an up report arrives")
	}

	return c
}

// ReportDown marks the primary as suspected down. The first report arms a
// single grace timer; repeat reports while PENDING_DOWN or DOWN never reset
// it. Forced downtime takes no further reports.
func (c *Controller) ReportDown() {
	c.mu.Lock()

	if c.forced {
		c.mu.Unlock()
		c.log.Debug("down report ignored, downtime is forced")

		return
	}

	if c.status != StatusUp {
		status := c.status
		c.mu.Unlock()
		c.log.Debug("down report ignored, already reported", slog.String("status", string(status)))

		return
	}

	c.status = StatusPendingDown
	c.pendingSince = time.Now()
	c.timer = time.AfterFunc(c.cfg.Delay, c.confirmDown)
	c.mu.Unlock()

	c.log.Warn("primary reported down, grace period started",
		slog.Duration("delay", c.cfg.Delay))
}

// ReportUp unconditionally clears any pending or confirmed downtime,
// including forced downtime, and cancels an outstanding grace timer.
func (c *Controller) ReportUp() {
	c.mu.Lock()

	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}

	wasDown := c.status == StatusDown
	c.status = StatusUp
	c.pendingSince = time.Time{}
	c.forced = false

	// Flipped inside the critical section so the responder's intercept
	// flag never disagrees with the status a concurrent timer observes.
	if wasDown {
		c.failover.Deactivate()
	}
	c.mu.Unlock()

	if wasDown {
		c.log.Info("primary reported up, failover deactivated")

		return
	}

	c.log.Info("primary reported up")
}

// confirmDown runs when the grace timer fires. The status re-check under the
// lock is the cancellation point: an up report that won the race has already
// reset status to UP and the transition is skipped.
func (c *Controller) confirmDown() {
	c.mu.Lock()

	if c.status != StatusPendingDown {
		c.mu.Unlock()
		c.log.Debug("grace timer fired after recovery, nothing to do")

		return
	}

	c.status = StatusDown
	c.timer = nil
	since := c.pendingSince
	c.failover.Activate()
	c.mu.Unlock()

	c.log.Error("downtime confirmed, failover activated",
		slog.Time("pending_since", since))

	// Fire-and-forget so a hanging transport can only delay this one
	// alert, never a state transition.
	alert := Alert{
		ChatID:       c.cfg.OnCallChatID,
		DashboardURL: c.cfg.DashboardURL,
		Body: fmt.Sprintf(
			"⚠️ *Bot is down*\n\nNo heartbeat since %s, grace period of %s elapsed.\nUsers are now receiving the downtime notice.",
			since.Format(time.RFC3339), c.cfg.Delay,
		),
	}

	go func() {
		if err := c.alerter.SendAlert(alert); err != nil {
			c.log.Error("failed to send on-call alert", sl.Err(err))
		}
	}()
}

// IsActive reports whether the failover responder should intercept traffic.
// True only once downtime is confirmed; during the grace period the primary
// is still assumed live.
func (c *Controller) IsActive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.status == StatusDown
}

// State is a point-in-time copy of the controller state.
type State struct {
	Status       Status
	PendingSince time.Time
	Forced       bool
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return State{
		Status:       c.status,
		PendingSince: c.pendingSince,
		Forced:       c.forced,
	}
}
