package validate_visit

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VisitScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
	"github.com/m04kA/SMC-VisitScheduler/internal/service/schedule"
	"github.com/m04kA/SMC-VisitScheduler/internal/service/visits"
	"github.com/m04kA/SMC-VisitScheduler/internal/service/visits/models"
	"github.com/m04kA/SMC-VisitScheduler/pkg/logger"
)

type stubService struct {
	result    *models.ValidationResult
	err       error
	candidate schedule.Candidate
	excludeID *int64
	calls     int
}

func (s *stubService) Validate(_ context.Context, c schedule.Candidate, excludeID *int64, _ domain.Actor) (*models.ValidationResult, error) {
	s.calls++
	s.candidate = c
	s.excludeID = excludeID
	return s.result, s.err
}

func post(svc VisitService, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/visits/validate", strings.NewReader(body))
	req = req.WithContext(middleware.WithActor(req.Context(), domain.Actor{UserID: 7, Role: domain.RoleClient}))
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewWithWriter(io.Discard, "error")).Handle(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) ValidateVisitResponse {
	var resp ValidateVisitResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHandle_Valid(t *testing.T) {
	svc := &stubService{result: &models.ValidationResult{Valid: true}}

	rec := post(svc, `{"visitId":3,"propertyId":5,"interestedId":8,"date":"2025-03-04","slot":"10:00"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ValidateVisitResponse{Valid: true}, decode(t, rec))
	require.NotNil(t, svc.excludeID)
	assert.Equal(t, int64(3), *svc.excludeID)
	assert.Equal(t, "10:00", svc.candidate.Slot.String())
}

func TestHandle_RejectionIsNotAnError(t *testing.T) {
	svc := &stubService{result: &models.ValidationResult{Valid: false, Kind: schedule.KindNonBusinessDay}}

	rec := post(svc, `{"propertyId":5,"interestedId":8,"date":"2025-03-08","slot":"10:00"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode(t, rec)
	assert.False(t, resp.Valid)
	assert.Equal(t, schedule.KindNonBusinessDay, resp.Kind)
	assert.NotEmpty(t, resp.Message)
}

func TestHandle_MalformedSlotIsInvalidSlot(t *testing.T) {
	svc := &stubService{}

	rec := post(svc, `{"propertyId":5,"interestedId":8,"date":"2025-03-04","slot":"25:99"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, schedule.KindInvalidSlot, decode(t, rec).Kind)
	assert.Equal(t, 0, svc.calls)
}

func TestHandle_SecondsAreNotTruncated(t *testing.T) {
	svc := &stubService{result: &models.ValidationResult{Valid: true}}

	rec := post(svc, `{"propertyId":5,"interestedId":8,"date":"2025-03-04","slot":"09:00:30"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode(t, rec)
	assert.False(t, resp.Valid)
	assert.Equal(t, schedule.KindInvalidSlot, resp.Kind)
	assert.Equal(t, 0, svc.calls)
}

func TestHandle_AccessDenied(t *testing.T) {
	svc := &stubService{err: visits.ErrAccessDenied}

	rec := post(svc, `{"propertyId":5,"interestedId":8,"date":"2025-03-04","slot":"10:00"}`)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
