package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/krenoo/slotwatch/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSchedulerProcessesDueAlerts(t *testing.T) {
	club := testClub()
	due := testAlert(club.ID)
	notDue := testAlert(club.ID)
	checked := time.Now().UTC()
	notDue.LastCheckedAt = &checked

	alerts := newFakeAlertRepo(due, notDue)
	ledger := newFakeLedger()
	provider := &fakeProvider{slots: []domain.Slot{testSlot("Court A", "18:30", due.TargetDate)}}
	processor := newProcessor(alerts, newFakeClubRepo(club), ledger, provider, &fakeNotifier{result: true})
	reclaimer := NewReclaimer(alerts, ledger, 7, zap.NewNop())

	scheduler := NewScheduler(alerts, processor, reclaimer, CadencePolicy{BoostInterval: 30 * time.Second}, SchedulerConfig{
		TickInterval:      5 * time.Millisecond,
		BoostTickInterval: time.Millisecond,
		AlertThrottle:     0,
		Backoff:           time.Millisecond,
		ReclaimEveryTicks: 100,
	}, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	require.NoError(t, scheduler.Run(ctx))

	assert.NotNil(t, due.LastCheckedAt)
	assert.True(t, due.BaselineDone)
	// The recently checked alert was skipped with no side effect.
	assert.Equal(t, checked, *notDue.LastCheckedAt)
	assert.False(t, notDue.BaselineDone)
}

func TestSchedulerSurvivesSweepFailure(t *testing.T) {
	club := testClub()
	alert := testAlert(club.ID)

	alerts := newFakeAlertRepo(alert)
	alerts.failListActiveOnce = true
	ledger := newFakeLedger()
	processor := newProcessor(alerts, newFakeClubRepo(club), ledger, &fakeProvider{}, &fakeNotifier{})
	reclaimer := NewReclaimer(alerts, ledger, 7, zap.NewNop())

	core, logs := observer.New(zapcore.ErrorLevel)
	scheduler := NewScheduler(alerts, processor, reclaimer, CadencePolicy{BoostInterval: 30 * time.Second}, SchedulerConfig{
		TickInterval:      2 * time.Millisecond,
		BoostTickInterval: time.Millisecond,
		Backoff:           time.Millisecond,
		ReclaimEveryTicks: 100,
	}, zap.New(core))

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	require.NoError(t, scheduler.Run(ctx))

	// The first sweep failed; the loop logged, backed off, and a later
	// tick processed the alert.
	assert.GreaterOrEqual(t, logs.FilterMessage("tick failed, backing off").Len(), 1)
	assert.True(t, alert.BaselineDone)
	assert.NotNil(t, alert.LastCheckedAt)
}

func TestSchedulerSurvivesPanicInSweep(t *testing.T) {
	club := testClub()
	alert := testAlert(club.ID)

	alerts := newFakeAlertRepo(alert)
	ledger := newFakeLedger()
	provider := &fakeProvider{panicOnce: true, slots: []domain.Slot{testSlot("Court A", "18:30", alert.TargetDate)}}
	processor := newProcessor(alerts, newFakeClubRepo(club), ledger, provider, &fakeNotifier{result: true})
	reclaimer := NewReclaimer(alerts, ledger, 7, zap.NewNop())

	core, logs := observer.New(zapcore.ErrorLevel)
	scheduler := NewScheduler(alerts, processor, reclaimer, CadencePolicy{BoostInterval: 30 * time.Second}, SchedulerConfig{
		TickInterval:      2 * time.Millisecond,
		BoostTickInterval: time.Millisecond,
		Backoff:           time.Millisecond,
		ReclaimEveryTicks: 100,
	}, zap.New(core))

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	require.NoError(t, scheduler.Run(ctx))

	// The panic surfaced as a tick failure, not a crash. The panicking
	// cycle never reached the state write, so the alert stayed due and a
	// later tick completed it.
	assert.GreaterOrEqual(t, logs.FilterMessage("tick failed, backing off").Len(), 1)
	assert.GreaterOrEqual(t, provider.calls, 2)
	assert.True(t, alert.BaselineDone)
	assert.Len(t, ledger.rows, 1)
}

func TestRunTickSleepReflectsBoost(t *testing.T) {
	club := testClub()
	checked := time.Now().UTC()

	plain := testAlert(club.ID)
	plain.LastCheckedAt = &checked

	boosted := testAlert(club.ID)
	boosted.LastCheckedAt = &checked
	futureExpiry := time.Now().Add(time.Hour)
	boosted.BoostActive = true
	boosted.BoostExpiresAt = &futureExpiry

	spent := testAlert(club.ID)
	spent.LastCheckedAt = &checked
	pastExpiry := time.Now().Add(-time.Minute)
	spent.BoostActive = true
	spent.BoostExpiresAt = &pastExpiry

	cfg := SchedulerConfig{
		TickInterval:      60 * time.Second,
		BoostTickInterval: 10 * time.Second,
		Backoff:           time.Second,
		ReclaimEveryTicks: 100,
	}
	newScheduler := func(alerts *fakeAlertRepo) *Scheduler {
		ledger := newFakeLedger()
		processor := newProcessor(alerts, newFakeClubRepo(club), ledger, &fakeProvider{}, &fakeNotifier{})
		return NewScheduler(alerts, processor, NewReclaimer(alerts, ledger, 7, zap.NewNop()), CadencePolicy{BoostInterval: 30 * time.Second}, cfg, zap.NewNop())
	}

	sleep, err := newScheduler(newFakeAlertRepo(plain)).runTick(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, cfg.TickInterval, sleep)

	sleep, err = newScheduler(newFakeAlertRepo(plain, boosted)).runTick(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, cfg.BoostTickInterval, sleep)

	// A boost that has expired by timestamp no longer shortens the tick,
	// even before its flags are swept.
	sleep, err = newScheduler(newFakeAlertRepo(plain, spent)).runTick(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, cfg.TickInterval, sleep)
}

func TestSchedulerExpiresBoostsInline(t *testing.T) {
	club := testClub()
	spentExpiry := time.Now().Add(-time.Minute)
	alert := testAlert(club.ID)
	alert.BaselineDone = true
	checked := time.Now().UTC()
	alert.LastCheckedAt = &checked
	alert.BoostActive = true
	alert.BoostExpiresAt = &spentExpiry

	alerts := newFakeAlertRepo(alert)
	ledger := newFakeLedger()
	processor := newProcessor(alerts, newFakeClubRepo(club), ledger, &fakeProvider{}, &fakeNotifier{})
	reclaimer := NewReclaimer(alerts, ledger, 7, zap.NewNop())

	scheduler := NewScheduler(alerts, processor, reclaimer, CadencePolicy{BoostInterval: 30 * time.Second}, SchedulerConfig{
		TickInterval:      5 * time.Millisecond,
		BoostTickInterval: time.Millisecond,
		Backoff:           time.Millisecond,
		ReclaimEveryTicks: 100,
	}, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	require.NoError(t, scheduler.Run(ctx))

	assert.False(t, alert.BoostActive)
	assert.Nil(t, alert.BoostExpiresAt)
}
