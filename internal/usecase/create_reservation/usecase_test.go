package create_reservation

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
	interestedRepo "github.com/m04kA/SMC-VisitScheduler/internal/infra/storage/interested"
	propertyRepo "github.com/m04kA/SMC-VisitScheduler/internal/infra/storage/property"
	reservationRepo "github.com/m04kA/SMC-VisitScheduler/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-VisitScheduler/pkg/logger"
	"github.com/m04kA/SMC-VisitScheduler/pkg/ptr"
)

// world объекты, резервации и договоры в памяти
type world struct {
	properties   map[int64]*domain.Property
	reservations []*domain.Reservation
	vigent       map[int64]bool
	// hideActive прячет активные резервации от проверки, как при параллельной вставке
	hideActive bool
}

func newWorld() *world {
	return &world{
		properties: map[int64]*domain.Property{
			5: {ID: 5, OwnerUserID: ptr.Ptr(int64(200)), Title: "Casa", Status: domain.PropertyStatusAvailable},
		},
		vigent: map[int64]bool{},
	}
}

func (w *world) LockByID(_ context.Context, id int64) (*domain.Property, error) {
	p, ok := w.properties[id]
	if !ok {
		return nil, propertyRepo.ErrPropertyNotFound
	}
	return p, nil
}

func (w *world) UpdateStatus(_ context.Context, id int64, status domain.PropertyStatus) error {
	w.properties[id].Status = status
	return nil
}

func (w *world) ExistsActiveByProperty(_ context.Context, propertyID int64, _ *int64) (bool, error) {
	if w.hideActive {
		return false, nil
	}
	return w.hasActive(propertyID), nil
}

func (w *world) hasActive(propertyID int64) bool {
	for _, r := range w.reservations {
		if r.PropertyID == propertyID && r.Active {
			return true
		}
	}
	return false
}

func (w *world) Create(_ context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	if w.hasActive(r.PropertyID) {
		return nil, reservationRepo.ErrActiveExists
	}
	stored := *r
	stored.ID = int64(len(w.reservations) + 1)
	w.reservations = append(w.reservations, &stored)
	out := stored
	return &out, nil
}

func (w *world) ExistsVigentByProperty(_ context.Context, propertyID int64) (bool, error) {
	return w.vigent[propertyID], nil
}

type parties map[int64]bool

func (p parties) GetByID(_ context.Context, id int64) (*domain.InterestedParty, error) {
	if !p[id] {
		return nil, interestedRepo.ErrInterestedNotFound
	}
	return &domain.InterestedParty{ID: id}, nil
}

type announcer struct {
	created []*domain.Reservation
}

func (a *announcer) NotifyCreated(_ context.Context, r *domain.Reservation) {
	a.created = append(a.created, r)
}

type passthroughTx struct{}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

var testNow = time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)

type fixture struct {
	world     *world
	announcer *announcer
	uc        *UseCase
}

func newFixture() *fixture {
	f := &fixture{world: newWorld(), announcer: &announcer{}}
	f.uc = NewUseCase(f.world, f.world, f.world, parties{8: true, 10: true}, f.announcer, passthroughTx{},
		72*time.Hour, logger.NewWithWriter(io.Discard, "error"))
	f.uc.timeProvider = fixedTime{now: testNow}
	return f
}

var admin = domain.Actor{UserID: 1, Role: domain.RoleAdmin}

func request(interestedID int64) *Request {
	return &Request{
		Actor:        admin,
		PropertyID:   5,
		InterestedID: interestedID,
		Deposit:      decimal.RequireFromString("250000.50"),
	}
}

func TestExecute_CreatesWithDefaultExpiry(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), request(8))

	require.NoError(t, err)
	require.NotNil(t, resp.ExpiresAt)
	assert.Equal(t, testNow.Add(72*time.Hour), *resp.ExpiresAt)
	assert.Equal(t, "250000.50", resp.Deposit)
	assert.Equal(t, string(domain.ReservationStateActive), resp.State)
	assert.Equal(t, int64(1), resp.CreatedBy)
	assert.Equal(t, domain.PropertyStatusReserved, f.world.properties[5].Status)
	require.Len(t, f.announcer.created, 1)
	assert.Equal(t, resp.ID, f.announcer.created[0].ID)
}

func TestExecute_SecondActiveReservationConflicts(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Execute(context.Background(), request(8))
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), request(10))

	require.ErrorIs(t, err, ErrReservationConflict)
	assert.Len(t, f.announcer.created, 1)
}

func TestExecute_UniqueIndexBackstop(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Execute(context.Background(), request(8))
	require.NoError(t, err)

	f.world.hideActive = true
	_, err = f.uc.Execute(context.Background(), request(10))

	require.ErrorIs(t, err, ErrReservationConflict)
}

func TestExecute_VigentContractConflicts(t *testing.T) {
	f := newFixture()
	f.world.vigent[5] = true

	_, err := f.uc.Execute(context.Background(), request(8))

	require.ErrorIs(t, err, ErrContractConflict)
	assert.Empty(t, f.world.reservations)
	assert.Equal(t, domain.PropertyStatusAvailable, f.world.properties[5].Status)
	assert.Empty(t, f.announcer.created)
}

func TestExecute_ExpiryMustBeFuture(t *testing.T) {
	f := newFixture()

	for _, expiresAt := range []time.Time{testNow, testNow.Add(-time.Minute)} {
		req := request(8)
		req.ExpiresAt = ptr.Ptr(expiresAt)

		_, err := f.uc.Execute(context.Background(), req)

		require.ErrorIs(t, err, ErrExpiryNotFuture)
	}

	req := request(8)
	req.ExpiresAt = ptr.Ptr(testNow.Add(time.Second))
	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, testNow.Add(time.Second), *resp.ExpiresAt)
}

func TestExecute_MissingExpiryWithoutDefault(t *testing.T) {
	f := newFixture()
	f.uc.defaultTTL = 0

	_, err := f.uc.Execute(context.Background(), request(8))

	require.ErrorIs(t, err, ErrMissingExpiry)
}

func TestExecute_Access(t *testing.T) {
	f := newFixture()

	req := request(8)
	req.Actor = domain.Actor{UserID: 300, Role: domain.RoleClient}
	_, err := f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrAccessDenied)

	req.Actor = domain.Actor{UserID: 200, Role: domain.RoleOwner}
	_, err = f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestExecute_NotFoundAndInvalid(t *testing.T) {
	f := newFixture()

	req := request(8)
	req.PropertyID = 42
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrPropertyNotFound)

	_, err = f.uc.Execute(context.Background(), request(42))
	assert.ErrorIs(t, err, ErrInterestedNotFound)

	req = request(8)
	req.Deposit = decimal.NewFromInt(-1)
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMapExpiryError(t *testing.T) {
	assert.ErrorIs(t, mapExpiryError(domain.ErrMissingExpiry), ErrMissingExpiry)
	assert.ErrorIs(t, mapExpiryError(domain.ErrExpiryNotFuture), ErrExpiryNotFuture)
	assert.ErrorIs(t, mapExpiryError(errors.New("other")), ErrInvalidInput)
}
