package sweep_expired_reservations

import (
	"context"
	"errors"
	"io"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
	propertyRepo "github.com/m04kA/SMC-VisitScheduler/internal/infra/storage/property"
	reservationRepo "github.com/m04kA/SMC-VisitScheduler/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-VisitScheduler/internal/service/reservations"
	"github.com/m04kA/SMC-VisitScheduler/pkg/logger"
	"github.com/m04kA/SMC-VisitScheduler/pkg/ptr"
)

// world резервации, объекты и договоры в памяти
type world struct {
	properties   map[int64]*domain.Property
	reservations map[int64]*domain.Reservation
	vigent       map[int64]bool
	failOn       map[int64]bool
	listCalls    int
}

func (w *world) ListExpired(_ context.Context, now time.Time, after *domain.ExpiryCursor, limit int) ([]*domain.Reservation, error) {
	w.listCalls++
	var out []*domain.Reservation
	for _, r := range w.reservations {
		if !r.Active || r.ExpiresAt == nil || !r.ExpiresAt.Before(now) {
			continue
		}
		if after != nil && !after.Before(r) {
			continue
		}
		copied := *r
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ExpiresAt.Equal(*out[j].ExpiresAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].ExpiresAt.Before(*out[j].ExpiresAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (w *world) Deactivate(_ context.Context, id int64, reason domain.ClosedReason, at time.Time) (bool, error) {
	if w.failOn[id] {
		return false, errors.New("connection reset")
	}
	r := w.reservations[id]
	if r == nil || !r.Active {
		return false, nil
	}
	r.Active = false
	r.ClosedReason = &reason
	r.ClosedAt = &at
	return true, nil
}

func (w *world) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	r, ok := w.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return r, nil
}

func (w *world) ExistsActiveByProperty(_ context.Context, propertyID int64, _ *int64) (bool, error) {
	for _, r := range w.reservations {
		if r.PropertyID == propertyID && r.Active {
			return true, nil
		}
	}
	return false, nil
}

func (w *world) ExistsVigentByProperty(_ context.Context, propertyID int64) (bool, error) {
	return w.vigent[propertyID], nil
}

type properties struct{ w *world }

func (p properties) GetByID(_ context.Context, id int64) (*domain.Property, error) {
	prop, ok := p.w.properties[id]
	if !ok {
		return nil, propertyRepo.ErrPropertyNotFound
	}
	return prop, nil
}

func (p properties) UpdateStatus(_ context.Context, id int64, status domain.PropertyStatus) error {
	p.w.properties[id].Status = status
	return nil
}

type parties struct{}

func (parties) GetByID(_ context.Context, id int64) (*domain.InterestedParty, error) {
	return &domain.InterestedParty{ID: id, FullName: "Ana", UserID: ptr.Ptr(int64(300))}, nil
}

type sentNotification struct {
	userID int64
	title  string
}

type recordingNotifier struct {
	sent []sentNotification
}

func (n *recordingNotifier) Notify(_ context.Context, userID int64, title, _ string, _ domain.NotificationCategory) error {
	n.sent = append(n.sent, sentNotification{userID: userID, title: title})
	return nil
}

type countingMetrics struct {
	released int
	failures int
}

func (m *countingMetrics) AddReservationsReleased(n int) { m.released += n }
func (m *countingMetrics) IncSweepFailure()              { m.failures++ }

type passthroughTx struct{}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var testNow = time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)

func newWorld() *world {
	return &world{
		properties:   map[int64]*domain.Property{},
		reservations: map[int64]*domain.Reservation{},
		vigent:       map[int64]bool{},
		failOn:       map[int64]bool{},
	}
}

func (w *world) reserve(id, propertyID int64, expiresAt time.Time) {
	w.properties[propertyID] = &domain.Property{
		ID: propertyID, OwnerUserID: ptr.Ptr(int64(200)), Title: "Casa", Status: domain.PropertyStatusReserved,
	}
	w.reservations[id] = &domain.Reservation{
		ID: id, PropertyID: propertyID, InterestedID: 8, Active: true, ExpiresAt: ptr.Ptr(expiresAt),
	}
}

type fixture struct {
	uc       *UseCase
	notifier *recordingNotifier
	metrics  *countingMetrics
}

func newFixture(w *world, batchSize int) fixture {
	log := logger.NewWithWriter(io.Discard, "error")
	n := &recordingNotifier{}
	m := &countingMetrics{}
	svc := reservations.NewService(w, w, properties{w}, parties{}, n, time.UTC, log)
	return fixture{
		uc:       NewUseCase(w, svc, svc, m, passthroughTx{}, batchSize, log),
		notifier: n,
		metrics:  m,
	}
}

func TestExecute_ReleasesExpiredReservation(t *testing.T) {
	w := newWorld()
	w.reserve(1, 5, testNow.Add(-time.Hour))
	f := newFixture(w, 10)

	resp, err := f.uc.Execute(context.Background(), &Request{Now: testNow})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Released)
	assert.False(t, w.reservations[1].Active)
	require.NotNil(t, w.reservations[1].ClosedReason)
	assert.Equal(t, domain.ClosedReasonExpired, *w.reservations[1].ClosedReason)
	assert.Equal(t, domain.ReservationStateClosed, w.reservations[1].State(testNow))
	assert.Equal(t, domain.PropertyStatusAvailable, w.properties[5].Status)
	assert.Equal(t, 1, f.metrics.released)

	// владелец и клиент
	require.Len(t, f.notifier.sent, 2)
	assert.Equal(t, int64(200), f.notifier.sent[0].userID)
	assert.Equal(t, int64(300), f.notifier.sent[1].userID)
}

func TestExecute_VigentContractKeepsStatus(t *testing.T) {
	w := newWorld()
	w.reserve(1, 5, testNow.Add(-time.Hour))
	w.vigent[5] = true

	_, err := newFixture(w, 10).uc.Execute(context.Background(), &Request{Now: testNow})

	require.NoError(t, err)
	assert.False(t, w.reservations[1].Active)
	assert.Equal(t, domain.PropertyStatusReserved, w.properties[5].Status)
}

func TestExecute_LeavesUnexpiredAlone(t *testing.T) {
	w := newWorld()
	w.reserve(1, 5, testNow.Add(time.Hour))
	w.reserve(2, 6, testNow)

	resp, err := newFixture(w, 10).uc.Execute(context.Background(), &Request{Now: testNow})

	require.NoError(t, err)
	assert.Equal(t, 0, resp.Released)
	assert.True(t, w.reservations[1].Active)
	assert.True(t, w.reservations[2].Active, "expiry equal to now is not yet expired")
}

func TestExecute_Idempotent(t *testing.T) {
	w := newWorld()
	w.reserve(1, 5, testNow.Add(-time.Hour))
	f := newFixture(w, 10)

	_, err := f.uc.Execute(context.Background(), &Request{Now: testNow})
	require.NoError(t, err)
	sentAfterFirst := len(f.notifier.sent)

	resp, err := f.uc.Execute(context.Background(), &Request{Now: testNow})

	require.NoError(t, err)
	assert.Equal(t, 0, resp.Released)
	assert.Len(t, f.notifier.sent, sentAfterFirst)
	assert.Equal(t, domain.PropertyStatusAvailable, w.properties[5].Status)
}

func TestExecute_FailureDoesNotStopOthers(t *testing.T) {
	w := newWorld()
	w.reserve(1, 5, testNow.Add(-2*time.Hour))
	w.reserve(2, 6, testNow.Add(-time.Hour))
	w.failOn[1] = true
	f := newFixture(w, 10)

	resp, err := f.uc.Execute(context.Background(), &Request{Now: testNow})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Released)
	assert.Equal(t, 1, resp.Failed)
	assert.True(t, w.reservations[1].Active)
	assert.False(t, w.reservations[2].Active)
	assert.Equal(t, 1, f.metrics.failures)
}

func TestExecute_WalksAllBatches(t *testing.T) {
	w := newWorld()
	for id := int64(1); id <= 5; id++ {
		w.reserve(id, 10+id, testNow.Add(-time.Duration(id)*time.Minute))
	}

	resp, err := newFixture(w, 2).uc.Execute(context.Background(), &Request{Now: testNow})

	require.NoError(t, err)
	assert.Equal(t, 5, resp.Released)
	for id := int64(1); id <= 5; id++ {
		assert.False(t, w.reservations[id].Active)
	}
}

func TestExecute_FailingBatchDoesNotHideLaterRows(t *testing.T) {
	w := newWorld()
	w.reserve(1, 5, testNow.Add(-3*time.Hour))
	w.reserve(2, 6, testNow.Add(-2*time.Hour))
	w.reserve(3, 7, testNow.Add(-time.Hour))
	w.failOn[1] = true
	w.failOn[2] = true
	f := newFixture(w, 2)

	resp, err := f.uc.Execute(context.Background(), &Request{Now: testNow})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Released)
	assert.Equal(t, 2, resp.Failed)
	assert.True(t, w.reservations[1].Active)
	assert.True(t, w.reservations[2].Active)
	assert.False(t, w.reservations[3].Active)
	assert.Equal(t, domain.PropertyStatusAvailable, w.properties[7].Status)
	assert.Equal(t, 2, f.metrics.failures)
}

func TestExecute_FailureCountedOncePerRun(t *testing.T) {
	w := newWorld()
	w.reserve(1, 5, testNow.Add(-3*time.Hour))
	w.reserve(2, 6, testNow.Add(-2*time.Hour))
	w.reserve(3, 7, testNow.Add(-time.Hour))
	w.failOn[1] = true
	f := newFixture(w, 2)

	resp, err := f.uc.Execute(context.Background(), &Request{Now: testNow})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Released)
	assert.Equal(t, 1, resp.Failed)
	assert.Equal(t, 1, f.metrics.failures)
	assert.Equal(t, 2, f.metrics.released)
	assert.Equal(t, 2, w.listCalls, "one full batch, then a short one")
}

func TestExecute_SameExpiryPagesByID(t *testing.T) {
	w := newWorld()
	for id := int64(1); id <= 4; id++ {
		w.reserve(id, 10+id, testNow.Add(-time.Hour))
	}
	w.failOn[2] = true

	resp, err := newFixture(w, 2).uc.Execute(context.Background(), &Request{Now: testNow})

	require.NoError(t, err)
	assert.Equal(t, 3, resp.Released)
	assert.Equal(t, 1, resp.Failed)
	assert.True(t, w.reservations[2].Active)
}

func TestExecute_CancelledContext(t *testing.T) {
	w := newWorld()
	w.reserve(1, 5, testNow.Add(-time.Hour))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newFixture(w, 10).uc.Execute(ctx, &Request{Now: testNow})

	require.ErrorIs(t, err, context.Canceled)
	assert.True(t, w.reservations[1].Active)
}
