package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/krenoo/slotwatch/internal/domain"
)

type fakeAlertRepo struct {
	alerts             map[uuid.UUID]*domain.Alert
	failListActiveOnce bool
}

func newFakeAlertRepo(alerts ...*domain.Alert) *fakeAlertRepo {
	repo := &fakeAlertRepo{alerts: make(map[uuid.UUID]*domain.Alert)}
	for _, alert := range alerts {
		repo.alerts[alert.ID] = alert
	}
	return repo
}

func (r *fakeAlertRepo) ListActive(ctx context.Context, asOf time.Time) ([]domain.Alert, error) {
	if r.failListActiveOnce {
		r.failListActiveOnce = false
		return nil, errors.New("connection reset by peer")
	}
	var out []domain.Alert
	for _, alert := range r.alerts {
		if alert.Active && !alert.TargetDate.Before(startOfDay(asOf)) {
			out = append(out, *alert)
		}
	}
	return out, nil
}

func (r *fakeAlertRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Alert, error) {
	alert, ok := r.alerts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *alert
	return &copied, nil
}

func (r *fakeAlertRepo) MarkChecked(ctx context.Context, id uuid.UUID, at time.Time) error {
	alert, ok := r.alerts[id]
	if !ok {
		return domain.ErrNotFound
	}
	alert.LastCheckedAt = &at
	return nil
}

func (r *fakeAlertRepo) EstablishBaseline(ctx context.Context, id uuid.UUID) error {
	alert, ok := r.alerts[id]
	if !ok {
		return domain.ErrNotFound
	}
	alert.BaselineDone = true
	return nil
}

func (r *fakeAlertRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	alert, ok := r.alerts[id]
	if !ok {
		return domain.ErrNotFound
	}
	alert.Active = false
	alert.BoostActive = false
	alert.BoostExpiresAt = nil
	return nil
}

func (r *fakeAlertRepo) ExpireBoosts(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	for _, alert := range r.alerts {
		if alert.BoostActive && alert.BoostExpiresAt != nil && !alert.BoostExpiresAt.After(now) {
			alert.BoostActive = false
			alert.BoostExpiresAt = nil
			count++
		}
	}
	return count, nil
}

func (r *fakeAlertRepo) DeactivateExpired(ctx context.Context, before time.Time) (int64, error) {
	var count int64
	for _, alert := range r.alerts {
		if alert.Active && alert.TargetDate.Before(startOfDay(before)) {
			alert.Active = false
			alert.BoostActive = false
			alert.BoostExpiresAt = nil
			count++
		}
	}
	return count, nil
}

type slotKey struct {
	alertID      uuid.UUID
	playgroundID uuid.UUID
	date         string
	startTime    string
}

type fakeLedger struct {
	rows      map[uuid.UUID]*domain.DetectedSlot
	keys      map[slotKey]uuid.UUID
	existsErr error
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		rows: make(map[uuid.UUID]*domain.DetectedSlot),
		keys: make(map[slotKey]uuid.UUID),
	}
}

func ledgerKey(alertID, playgroundID uuid.UUID, date time.Time, startTime string) slotKey {
	return slotKey{
		alertID:      alertID,
		playgroundID: playgroundID,
		date:         date.Format("2006-01-02"),
		startTime:    startTime,
	}
}

func (l *fakeLedger) Exists(ctx context.Context, alertID, playgroundID uuid.UUID, date time.Time, startTime string) (bool, error) {
	if l.existsErr != nil {
		return false, l.existsErr
	}
	_, ok := l.keys[ledgerKey(alertID, playgroundID, date, startTime)]
	return ok, nil
}

func (l *fakeLedger) Insert(ctx context.Context, slot *domain.DetectedSlot) error {
	key := ledgerKey(slot.AlertID, slot.PlaygroundID, slot.Date, slot.StartTime)
	if _, ok := l.keys[key]; ok {
		return domain.ErrDuplicateSlot
	}
	slot.ID = uuid.New()
	copied := *slot
	l.rows[slot.ID] = &copied
	l.keys[key] = slot.ID
	return nil
}

func (l *fakeLedger) MarkNotified(ctx context.Context, id uuid.UUID, channel domain.NotificationChannel, at time.Time) error {
	row, ok := l.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	switch channel {
	case domain.ChannelEmail:
		row.EmailSent = true
		row.EmailSentAt = &at
	case domain.ChannelPush:
		row.PushSent = true
		row.PushSentAt = &at
	}
	return nil
}

func (l *fakeLedger) DeleteOlderThan(ctx context.Context, date time.Time) (int64, error) {
	var count int64
	for id, row := range l.rows {
		if row.Date.Before(date) {
			delete(l.keys, ledgerKey(row.AlertID, row.PlaygroundID, row.Date, row.StartTime))
			delete(l.rows, id)
			count++
		}
	}
	return count, nil
}

type fakeClubRepo struct {
	clubs map[uuid.UUID]domain.Club
}

func newFakeClubRepo(clubs ...domain.Club) *fakeClubRepo {
	repo := &fakeClubRepo{clubs: make(map[uuid.UUID]domain.Club)}
	for _, club := range clubs {
		repo.clubs[club.ID] = club
	}
	return repo
}

func (r *fakeClubRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Club, error) {
	club, ok := r.clubs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &club, nil
}

type fakeTokenRepo struct {
	tokens []domain.PushToken
	err    error
}

func (r *fakeTokenRepo) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]domain.PushToken, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []domain.PushToken
	for _, token := range r.tokens {
		if token.UserID == userID && token.Active {
			out = append(out, token)
		}
	}
	return out, nil
}

type fakeProvider struct {
	slots     []domain.Slot
	err       error
	panicOnce bool
	calls     int
}

func (p *fakeProvider) FetchSlots(ctx context.Context, q domain.LocationQuery) ([]domain.Slot, error) {
	p.calls++
	if p.panicOnce {
		p.panicOnce = false
		panic("planning payload out of range")
	}
	if p.err != nil {
		return nil, p.err
	}
	return p.slots, nil
}

type fakeNotifier struct {
	notified []domain.DetectedSlot
	result   bool
}

func (n *fakeNotifier) Notify(ctx context.Context, alert domain.Alert, club domain.Club, detected domain.DetectedSlot) bool {
	n.notified = append(n.notified, detected)
	return n.result
}

type fakeIdentity struct {
	contact *domain.Contact
	err     error
}

func (f *fakeIdentity) Resolve(ctx context.Context, userID uuid.UUID) (*domain.Contact, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.contact, nil
}

type fakeEmail struct {
	err   error
	sends int
}

func (f *fakeEmail) SendSlotEmail(ctx context.Context, to, name string, n domain.SlotNotification) error {
	f.sends++
	return f.err
}

type fakePush struct {
	failTokens map[string]bool
	sends      []string
}

func (f *fakePush) SendSlotPush(ctx context.Context, token string, n domain.SlotNotification) error {
	f.sends = append(f.sends, token)
	if f.failTokens[token] {
		return errors.New("push rejected")
	}
	return nil
}
