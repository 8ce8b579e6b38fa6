package update_visit

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
	interestedRepo "github.com/m04kA/SMC-VisitScheduler/internal/infra/storage/interested"
	propertyRepo "github.com/m04kA/SMC-VisitScheduler/internal/infra/storage/property"
	visitRepo "github.com/m04kA/SMC-VisitScheduler/internal/infra/storage/visit"
	"github.com/m04kA/SMC-VisitScheduler/internal/service/schedule"
	"github.com/m04kA/SMC-VisitScheduler/pkg/logger"
	"github.com/m04kA/SMC-VisitScheduler/pkg/types"
)

type memStore struct {
	visits map[int64]*domain.Visit
}

func slotKey(propertyID int64, date time.Time, slot types.TimeString) string {
	return fmt.Sprintf("%d/%s/%s", propertyID, date.Format(domain.DateFormat), slot)
}

func skip(v *domain.Visit, excludeID *int64) bool {
	return excludeID != nil && v.ID == *excludeID
}

func (m *memStore) GetByID(_ context.Context, id int64) (*domain.Visit, error) {
	v, ok := m.visits[id]
	if !ok {
		return nil, visitRepo.ErrVisitNotFound
	}
	out := *v
	return &out, nil
}

func (m *memStore) Update(_ context.Context, v *domain.Visit) (*domain.Visit, error) {
	for _, other := range m.visits {
		if other.ID != v.ID && slotKey(other.PropertyID, other.Date, other.Slot) == slotKey(v.PropertyID, v.Date, v.Slot) {
			return nil, visitRepo.ErrSlotTaken
		}
	}
	stored := *v
	m.visits[v.ID] = &stored
	out := stored
	return &out, nil
}

func (m *memStore) ExistsInSlot(_ context.Context, propertyID int64, date time.Time, slot types.TimeString, excludeID *int64) (bool, error) {
	for _, v := range m.visits {
		if !skip(v, excludeID) && slotKey(v.PropertyID, v.Date, v.Slot) == slotKey(propertyID, date, slot) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) CountActiveByInterested(_ context.Context, interestedID int64, fromDate time.Time, excludeID *int64) (int, error) {
	n := 0
	for _, v := range m.visits {
		if !skip(v, excludeID) && v.InterestedID == interestedID && v.IsActive() &&
			v.Date.Format(domain.DateFormat) >= fromDate.Format(domain.DateFormat) {
			n++
		}
	}
	return n, nil
}

func (m *memStore) CountActiveByInterestedOnDate(_ context.Context, interestedID int64, date time.Time, excludeID *int64) (int, error) {
	n := 0
	for _, v := range m.visits {
		if !skip(v, excludeID) && v.InterestedID == interestedID && v.IsActive() &&
			v.Date.Format(domain.DateFormat) == date.Format(domain.DateFormat) {
			n++
		}
	}
	return n, nil
}

type noHolidays struct{}

func (noHolidays) IsHoliday(context.Context, time.Time) (bool, error) { return false, nil }

type lockRecorder struct {
	known  map[int64]bool
	locked []int64
}

func (l *lockRecorder) LockByID(_ context.Context, id int64) (*domain.Property, error) {
	if !l.known[id] {
		return nil, propertyRepo.ErrPropertyNotFound
	}
	l.locked = append(l.locked, id)
	return &domain.Property{ID: id}, nil
}

type parties map[int64]bool

func (p parties) GetByID(_ context.Context, id int64) (*domain.InterestedParty, error) {
	if !p[id] {
		return nil, interestedRepo.ErrInterestedNotFound
	}
	return &domain.InterestedParty{ID: id}, nil
}

type allowAll struct{}

func (allowAll) CheckAccess(context.Context, domain.Actor, int64, int64) error { return nil }

type kindRecorder struct{ kinds []string }

func (r *kindRecorder) IncVisitRejected(kind string) { r.kinds = append(r.kinds, kind) }

type passthroughTx struct{}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

// monday 2025-03-03 10:00 UTC
var testNow = time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)

func day(offset int) time.Time {
	return time.Date(2025, 3, 3+offset, 0, 0, 0, 0, time.UTC)
}

type fixture struct {
	store   *memStore
	locks   *lockRecorder
	metrics *kindRecorder
	uc      *UseCase
}

func newFixture(visits ...*domain.Visit) *fixture {
	f := &fixture{
		store:   &memStore{visits: map[int64]*domain.Visit{}},
		locks:   &lockRecorder{known: map[int64]bool{5: true, 6: true, 7: true}},
		metrics: &kindRecorder{},
	}
	for _, v := range visits {
		f.store.visits[v.ID] = v
	}
	validator := schedule.NewValidator(schedule.NewRules(domain.DefaultCalendarConfig()), f.store, noHolidays{})
	f.uc = NewUseCase(f.store, f.locks, parties{8: true, 10: true}, validator, allowAll{}, f.metrics,
		passthroughTx{}, logger.NewWithWriter(io.Discard, "error"))
	f.uc.timeProvider = fixedTime{now: testNow}
	return f
}

func visit(id, propertyID, interestedID int64, date time.Time, slot string, status domain.VisitStatus) *domain.Visit {
	return &domain.Visit{
		ID:           id,
		PropertyID:   propertyID,
		InterestedID: interestedID,
		Date:         date,
		Slot:         types.MustTimeString(slot),
		Status:       status,
	}
}

func request(visitID, propertyID, interestedID int64, date time.Time, slot string) *Request {
	return &Request{
		Actor:        domain.Actor{UserID: 1, Role: domain.RoleAdmin},
		VisitID:      visitID,
		PropertyID:   propertyID,
		InterestedID: interestedID,
		Date:         date,
		Slot:         types.MustTimeString(slot),
	}
}

func TestExecute_Reschedules(t *testing.T) {
	f := newFixture(visit(1, 5, 8, day(1), "10:00", domain.VisitStatusScheduled))

	resp, err := f.uc.Execute(context.Background(), request(1, 5, 8, day(2), "16:00"))

	require.NoError(t, err)
	assert.Equal(t, "2025-03-05", resp.Date)
	assert.Equal(t, "16:00", resp.Slot)
	assert.Equal(t, []int64{5}, f.locks.locked)
}

func TestExecute_KeepingOwnSlotDoesNotConflict(t *testing.T) {
	notes := "llevar llaves"
	f := newFixture(visit(1, 5, 8, day(1), "10:00", domain.VisitStatusConfirmed))
	req := request(1, 5, 8, day(1), "10:00")
	req.Notes = &notes

	resp, err := f.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, &notes, resp.Notes)
	assert.Equal(t, string(domain.VisitStatusConfirmed), resp.Status)
}

func TestExecute_QuotaExcludesSelf(t *testing.T) {
	f := newFixture(
		visit(1, 5, 8, day(1), "10:00", domain.VisitStatusScheduled),
		visit(2, 6, 8, day(2), "10:00", domain.VisitStatusScheduled),
		visit(3, 7, 8, day(3), "10:00", domain.VisitStatusScheduled),
	)

	_, err := f.uc.Execute(context.Background(), request(3, 7, 8, day(4), "11:00"))

	require.NoError(t, err)
}

func TestExecute_MoveIntoTakenSlot(t *testing.T) {
	f := newFixture(
		visit(1, 5, 8, day(1), "10:00", domain.VisitStatusScheduled),
		visit(2, 5, 10, day(1), "11:00", domain.VisitStatusCancelled),
	)

	_, err := f.uc.Execute(context.Background(), request(1, 5, 8, day(1), "11:00"))

	require.ErrorIs(t, err, schedule.ErrSlotTaken)
	assert.Equal(t, []string{schedule.KindSlotTaken}, f.metrics.kinds)
}

func TestExecute_MoveToAnotherPropertyLocksBothInOrder(t *testing.T) {
	f := newFixture(visit(1, 7, 8, day(1), "10:00", domain.VisitStatusScheduled))

	_, err := f.uc.Execute(context.Background(), request(1, 5, 8, day(1), "10:00"))

	require.NoError(t, err)
	assert.Equal(t, []int64{5, 7}, f.locks.locked)
}

func TestExecute_TerminalVisitIsNotEditable(t *testing.T) {
	f := newFixture(visit(1, 5, 8, day(1), "10:00", domain.VisitStatusDone))

	_, err := f.uc.Execute(context.Background(), request(1, 5, 8, day(2), "10:00"))

	require.ErrorIs(t, err, ErrVisitNotEditable)
}

func TestExecute_NotFound(t *testing.T) {
	f := newFixture(visit(1, 5, 8, day(1), "10:00", domain.VisitStatusScheduled))

	_, err := f.uc.Execute(context.Background(), request(99, 5, 8, day(2), "10:00"))
	assert.ErrorIs(t, err, ErrVisitNotFound)

	_, err = f.uc.Execute(context.Background(), request(1, 42, 8, day(2), "10:00"))
	assert.ErrorIs(t, err, ErrPropertyNotFound)

	_, err = f.uc.Execute(context.Background(), request(1, 5, 42, day(2), "10:00"))
	assert.ErrorIs(t, err, ErrInterestedNotFound)
}

func TestLockOrder(t *testing.T) {
	assert.Equal(t, []int64{3}, lockOrder(3, 3))
	assert.Equal(t, []int64{2, 3}, lockOrder(3, 2))
	assert.Equal(t, []int64{2, 3}, lockOrder(2, 3))
}
