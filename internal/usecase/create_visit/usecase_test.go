package create_visit

import (
	"context"
	"errors"
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

// memStore визиты в памяти: и репозиторий, и источник данных валидатора
type memStore struct {
	visits []*domain.Visit
	// racing скрывает занятость от валидатора, как при параллельной вставке
	racing bool
}

func key(propertyID int64, date time.Time, slot types.TimeString) string {
	return fmt.Sprintf("%d/%s/%s", propertyID, date.Format(domain.DateFormat), slot)
}

func (m *memStore) Create(_ context.Context, v *domain.Visit) (*domain.Visit, error) {
	for _, existing := range m.visits {
		if key(existing.PropertyID, existing.Date, existing.Slot) == key(v.PropertyID, v.Date, v.Slot) {
			return nil, visitRepo.ErrSlotTaken
		}
	}
	stored := *v
	stored.ID = int64(len(m.visits) + 1)
	m.visits = append(m.visits, &stored)
	out := stored
	return &out, nil
}

func (m *memStore) ExistsInSlot(_ context.Context, propertyID int64, date time.Time, slot types.TimeString, _ *int64) (bool, error) {
	if m.racing {
		return false, nil
	}
	for _, v := range m.visits {
		if key(v.PropertyID, v.Date, v.Slot) == key(propertyID, date, slot) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) CountActiveByInterested(_ context.Context, interestedID int64, fromDate time.Time, _ *int64) (int, error) {
	n := 0
	for _, v := range m.visits {
		if v.InterestedID == interestedID && v.IsActive() &&
			v.Date.Format(domain.DateFormat) >= fromDate.Format(domain.DateFormat) {
			n++
		}
	}
	return n, nil
}

func (m *memStore) CountActiveByInterestedOnDate(_ context.Context, interestedID int64, date time.Time, _ *int64) (int, error) {
	n := 0
	for _, v := range m.visits {
		if v.InterestedID == interestedID && v.IsActive() &&
			v.Date.Format(domain.DateFormat) == date.Format(domain.DateFormat) {
			n++
		}
	}
	return n, nil
}

type noHolidays struct{}

func (noHolidays) IsHoliday(context.Context, time.Time) (bool, error) { return false, nil }

type properties map[int64]*domain.Property

func (p properties) LockByID(_ context.Context, id int64) (*domain.Property, error) {
	if prop, ok := p[id]; ok {
		return prop, nil
	}
	return nil, propertyRepo.ErrPropertyNotFound
}

type parties map[int64]*domain.InterestedParty

func (p parties) GetByID(_ context.Context, id int64) (*domain.InterestedParty, error) {
	if party, ok := p[id]; ok {
		return party, nil
	}
	return nil, interestedRepo.ErrInterestedNotFound
}

type stubAccess struct{ err error }

func (a stubAccess) CheckAccess(context.Context, domain.Actor, int64, int64) error { return a.err }

type kindRecorder struct{ kinds []string }

func (r *kindRecorder) IncVisitRejected(kind string) { r.kinds = append(r.kinds, kind) }

type passthroughTx struct{ calls int }

func (tx *passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.calls++
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
	metrics *kindRecorder
	tx      *passthroughTx
	uc      *UseCase
}

func newFixture(accessErr error) *fixture {
	f := &fixture{store: &memStore{}, metrics: &kindRecorder{}, tx: &passthroughTx{}}
	validator := schedule.NewValidator(schedule.NewRules(domain.DefaultCalendarConfig()), f.store, noHolidays{})
	f.uc = NewUseCase(
		f.store,
		properties{5: {ID: 5}, 6: {ID: 6}, 7: {ID: 7}, 9: {ID: 9}},
		parties{8: {ID: 8}, 10: {ID: 10}},
		validator,
		stubAccess{err: accessErr},
		f.metrics,
		f.tx,
		logger.NewWithWriter(io.Discard, "error"),
	)
	f.uc.timeProvider = fixedTime{now: testNow}
	return f
}

func request(propertyID, interestedID int64, date time.Time, slot string) *Request {
	return &Request{
		Actor:        domain.Actor{UserID: 1, Role: domain.RoleAdmin},
		PropertyID:   propertyID,
		InterestedID: interestedID,
		Date:         date,
		Slot:         types.MustTimeString(slot),
	}
}

func TestExecute_Creates(t *testing.T) {
	f := newFixture(nil)

	resp, err := f.uc.Execute(context.Background(), request(5, 8, day(1), "10:00"))

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "2025-03-04", resp.Date)
	assert.Equal(t, "10:00", resp.Slot)
	assert.Equal(t, string(domain.VisitStatusScheduled), resp.Status)
	assert.Empty(t, f.metrics.kinds)
}

func TestExecute_SameSlotTwice(t *testing.T) {
	f := newFixture(nil)

	_, err := f.uc.Execute(context.Background(), request(5, 8, day(1), "10:00"))
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), request(5, 10, day(1), "10:00"))

	require.ErrorIs(t, err, schedule.ErrSlotTaken)
	assert.Equal(t, []string{schedule.KindSlotTaken}, f.metrics.kinds)
}

func TestExecute_UniqueIndexBackstop(t *testing.T) {
	f := newFixture(nil)
	_, err := f.uc.Execute(context.Background(), request(5, 8, day(1), "10:00"))
	require.NoError(t, err)

	f.store.racing = true
	_, err = f.uc.Execute(context.Background(), request(5, 10, day(1), "10:00"))

	require.ErrorIs(t, err, schedule.ErrSlotTaken)
	assert.Equal(t, []string{schedule.KindSlotTaken}, f.metrics.kinds)
}

func TestExecute_ClientQuota(t *testing.T) {
	f := newFixture(nil)

	for i, propertyID := range []int64{5, 6, 7} {
		_, err := f.uc.Execute(context.Background(), request(propertyID, 8, day(1+i), "10:00"))
		require.NoError(t, err)
	}

	_, err := f.uc.Execute(context.Background(), request(9, 8, day(8), "10:00"))

	require.ErrorIs(t, err, schedule.ErrClientQuotaExceeded)
	assert.Equal(t, []string{schedule.KindClientQuotaExceeded}, f.metrics.kinds)
}

func TestExecute_CalendarRejection(t *testing.T) {
	f := newFixture(nil)

	// saturday
	_, err := f.uc.Execute(context.Background(), request(5, 8, day(5), "10:00"))

	require.ErrorIs(t, err, schedule.ErrNonBusinessDay)
	assert.Empty(t, f.store.visits)
}

func TestExecute_NotFound(t *testing.T) {
	f := newFixture(nil)

	_, err := f.uc.Execute(context.Background(), request(42, 8, day(1), "10:00"))
	assert.ErrorIs(t, err, ErrPropertyNotFound)

	_, err = f.uc.Execute(context.Background(), request(5, 42, day(1), "10:00"))
	assert.ErrorIs(t, err, ErrInterestedNotFound)

	assert.Empty(t, f.metrics.kinds)
}

func TestExecute_AccessDeniedBeforeTransaction(t *testing.T) {
	denied := errors.New("visits: access denied")
	f := newFixture(denied)

	_, err := f.uc.Execute(context.Background(), request(5, 8, day(1), "10:00"))

	require.ErrorIs(t, err, denied)
	assert.Zero(t, f.tx.calls)
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture(nil)

	for _, req := range []*Request{
		request(0, 8, day(1), "10:00"),
		request(5, 0, day(1), "10:00"),
		request(5, 8, time.Time{}, "10:00"),
		{PropertyID: 5, InterestedID: 8, Date: day(1)},
		{PropertyID: 5, InterestedID: 8, Date: day(1), Slot: "25:00"},
	} {
		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
	assert.Zero(t, f.tx.calls)
}
