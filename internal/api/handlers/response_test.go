package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VisitScheduler/internal/service/schedule"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRespondScheduleError_StatusByKind(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{schedule.ErrSlotTaken, http.StatusConflict, schedule.KindSlotTaken},
		{schedule.ErrClientQuotaExceeded, http.StatusConflict, schedule.KindClientQuotaExceeded},
		{schedule.ErrDailyQuotaExceeded, http.StatusConflict, schedule.KindDailyQuotaExceeded},
		{schedule.ErrOutOfWindow, http.StatusUnprocessableEntity, schedule.KindOutOfWindow},
		{schedule.ErrNonBusinessDay, http.StatusUnprocessableEntity, schedule.KindNonBusinessDay},
		{schedule.ErrHoliday, http.StatusUnprocessableEntity, schedule.KindHoliday},
		{schedule.ErrInvalidSlot, http.StatusUnprocessableEntity, schedule.KindInvalidSlot},
		{fmt.Errorf("wrapped: %w", schedule.ErrPastOrTooSoon), http.StatusUnprocessableEntity, schedule.KindPastOrTooSoon},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			rec := httptest.NewRecorder()

			require.True(t, RespondScheduleError(rec, tc.err))

			assert.Equal(t, tc.status, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, tc.code, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestRespondScheduleError_NotAValidationError(t *testing.T) {
	rec := httptest.NewRecorder()

	assert.False(t, RespondScheduleError(rec, schedule.ErrReadState))
	assert.Equal(t, 0, rec.Body.Len())
}

func TestRespondReservationError(t *testing.T) {
	for code, status := range map[string]int{
		CodeReservationConflict: http.StatusConflict,
		CodeContractConflict:    http.StatusConflict,
		CodeMissingExpiry:       http.StatusUnprocessableEntity,
		CodeExpiryNotFuture:     http.StatusUnprocessableEntity,
		CodeCancelWindowClosed:  http.StatusUnprocessableEntity,
	} {
		rec := httptest.NewRecorder()
		RespondReservationError(rec, code)
		assert.Equal(t, status, rec.Code, code)
		assert.Equal(t, code, decodeError(t, rec).Code)
	}
}

func TestRespondError_CodeFromStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondNotFound(rec, "визит не найден")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, ErrorResponse{Code: CodeNotFound, Message: "визит не найден"}, decodeError(t, rec))
}

func TestDecodeJSON_RejectsUnknownFields(t *testing.T) {
	var dst struct {
		Slot string `json:"slot"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"slot":"10:00","extra":1}`))
	assert.Error(t, DecodeJSON(req, &dst))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"slot":"10:00"}`))
	require.NoError(t, DecodeJSON(req, &dst))
	assert.Equal(t, "10:00", dst.Slot)
}

func TestPathID(t *testing.T) {
	cases := map[string]bool{"17": true, "0": false, "-3": false, "abc": false}

	for raw, valid := range cases {
		req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"visitId": raw})
		id, err := PathID(req, "visitId")
		if valid {
			require.NoError(t, err, raw)
			assert.Equal(t, int64(17), id)
		} else {
			assert.Error(t, err, raw)
		}
	}
}
