package get_available_slots

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-VisitScheduler/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-VisitScheduler/pkg/logger"
	"github.com/m04kA/SMC-VisitScheduler/pkg/types"
)

type stubUseCase struct {
	got *getAvailableSlots.Request
}

func (s *stubUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	s.got = req
	if req.Date.IsZero() {
		return &getAvailableSlots.Response{Slots: domain.DefaultSlotCatalog}, nil
	}
	return &getAvailableSlots.Response{
		PropertyID: req.PropertyID,
		Date:       req.Date,
		Slots:      []types.TimeString{"09:00", "14:00"},
	}, nil
}

func serve(uc *stubUseCase, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/properties/{propertyId}/available-slots",
		NewHandler(uc, logger.NewWithWriter(io.Discard, "error")).Handle)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_ReturnsSlotStrings(t *testing.T) {
	uc := &stubUseCase{}

	rec := serve(uc, "/properties/5/available-slots?date=2025-03-04")

	require.Equal(t, http.StatusOK, rec.Code)
	var slots []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &slots))
	assert.Equal(t, []string{"09:00", "14:00"}, slots)
	assert.Equal(t, int64(5), uc.got.PropertyID)
	assert.Equal(t, time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), uc.got.Date)
}

func TestHandle_BadDateFallsBackToCatalog(t *testing.T) {
	for _, target := range []string{
		"/properties/5/available-slots",
		"/properties/5/available-slots?date=04/03/2025",
	} {
		uc := &stubUseCase{}

		rec := serve(uc, target)

		require.Equal(t, http.StatusOK, rec.Code, target)
		assert.True(t, uc.got.Date.IsZero())
		var slots []string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &slots))
		assert.Len(t, slots, len(domain.DefaultSlotCatalog))
	}
}

func TestHandle_NonNumericProperty(t *testing.T) {
	rec := serve(&stubUseCase{}, "/properties/abc/available-slots?date=2025-03-04")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
