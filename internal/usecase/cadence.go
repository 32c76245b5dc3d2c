package usecase

import (
	"time"

	"github.com/krenoo/slotwatch/internal/domain"
)

// CadencePolicy decides how long an alert must wait between checks. Pure;
// re-evaluated on every tick so a boost bought mid-cycle takes effect on
// the alert's next evaluation.
type CadencePolicy struct {
	BoostInterval time.Duration
}

func (p CadencePolicy) EffectiveInterval(alert domain.Alert, now time.Time) time.Duration {
	if alert.Boosted(now) {
		return p.BoostInterval
	}
	return time.Duration(alert.CheckIntervalMinutes) * time.Minute
}

func (p CadencePolicy) IsDue(alert domain.Alert, now time.Time) bool {
	if alert.LastCheckedAt == nil {
		return true
	}
	return now.Sub(*alert.LastCheckedAt) >= p.EffectiveInterval(alert, now)
}
