package audit

import (
	"context"
	"log/slog"

	"islandloaf/internal/util"
)

const (
	EventLogin          = "auth.login"
	EventRegister       = "auth.register"
	EventLogout         = "auth.logout"
	EventAuthorize      = "auth.authorize"
	EventAdminAuthorize = "admin.authorize"
	EventCategoryGate   = "booking.category_gate"
	EventOwnership      = "resource.ownership"
	EventStorageSwitch  = "admin.storage_switch"

	OutcomeSuccess     = "success"
	OutcomeFail        = "fail"
	OutcomeDenied      = "denied"
	OutcomeRateLimited = "rate_limited"
)

// Event is one security-relevant decision.
type Event struct {
	Name    string
	Outcome string
	// Subject keys the alert counter: a user id, username or client ip.
	Subject string
	Attrs   []any
}

// Recorder logs security events and feeds them to an optional Alerter.
// The zero value and a nil *Recorder only log.
type Recorder struct {
	alerter *Alerter
}

func NewRecorder(alerter *Alerter) *Recorder {
	return &Recorder{alerter: alerter}
}

// Record writes a "security_event" line and, when a rule trips, a
// "security_alert" line. Alerter failures are logged, never returned.
func (r *Recorder) Record(ctx context.Context, ev Event) {
	logger := util.LoggerFromContext(ctx)
	attrs := append([]any{
		"event", ev.Name,
		"outcome", ev.Outcome,
		"subject", ev.Subject,
	}, ev.Attrs...)
	level := slog.LevelWarn
	if ev.Outcome == OutcomeSuccess {
		level = slog.LevelInfo
	}
	logger.Log(ctx, level, "security_event", attrs...)

	if r == nil || r.alerter == nil {
		return
	}
	res, err := r.alerter.Observe(ctx, ev.Name, ev.Outcome, ev.Subject)
	if err != nil {
		logger.Warn("security alert counter failed", "event", ev.Name, "err", err)
		return
	}
	if res.Triggered {
		logger.Error("security_alert",
			"event", ev.Name,
			"outcome", ev.Outcome,
			"subject", ev.Subject,
			"count", res.Count,
			"threshold", res.Threshold,
			"window", res.Window.String(),
		)
	}
}
