package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/goodenergy/platform/internal/model"
	"github.com/goodenergy/platform/internal/service"
)

// fakeManager scripts the capacity manager's answers.
type fakeManager struct {
	reserveResult *service.ReserveResult
	reserveErr    error
	snapshot      model.CapacitySnapshot
	snapshotErr   error
}

func (f *fakeManager) Reserve(ctx context.Context, req service.ReserveRequest) (*service.ReserveResult, error) {
	return f.reserveResult, f.reserveErr
}

func (f *fakeManager) Availability(ctx context.Context) (model.CapacitySnapshot, error) {
	return f.snapshot, f.snapshotErr
}

func doReserve(t *testing.T, m *fakeManager, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/conference/reserve", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := NewConferenceHandler(m).Reserve(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	return body
}

func TestReserveSuccessResponse(t *testing.T) {
	m := &fakeManager{reserveResult: &service.ReserveResult{
		ID:                "res-1",
		RemainingSeats:    14,
		TotalReservations: 1,
	}}
	rec := doReserve(t, m, `{"name":"Ana","email":"a@x.com","country":"Colombia","mode":"virtual"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Errorf("success = %v, want true", body["success"])
	}
	data := body["data"].(map[string]interface{})
	if data["id"] != "res-1" || data["remainingSeats"] != float64(14) || data["totalReservations"] != float64(1) {
		t.Errorf("unexpected data payload: %v", data)
	}
}

func TestReserveErrorStatusCodes(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", &service.ValidationError{Field: "Mode", Message: "Por favor selecciona la modalidad de asistencia"}, http.StatusBadRequest},
		{"capacity exceeded", service.ErrCapacityExceeded, http.StatusConflict},
		{"duplicate email", service.ErrDuplicateEmail, http.StatusConflict},
		{"store failure", errors.New("mysql gone"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doReserve(t, &fakeManager{reserveErr: tc.err},
				`{"name":"Ana","email":"a@x.com","country":"Colombia","mode":"virtual"}`)
			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
			body := decodeBody(t, rec)
			if body["success"] != false {
				t.Errorf("success = %v, want false", body["success"])
			}
			if msg, _ := body["error"].(string); msg == "" {
				t.Error("expected an error message")
			}
		})
	}
}

func TestReserveInternalErrorHidesDetails(t *testing.T) {
	rec := doReserve(t, &fakeManager{reserveErr: errors.New("dial tcp: password leaked")},
		`{"name":"Ana","email":"a@x.com","country":"Colombia","mode":"virtual"}`)
	body := decodeBody(t, rec)
	if msg := body["error"].(string); strings.Contains(msg, "password") {
		t.Errorf("internal details leaked to the client: %q", msg)
	}
}

func TestAvailabilityResponse(t *testing.T) {
	m := &fakeManager{snapshot: model.CapacitySnapshot{
		TotalSeats:     15,
		ReservedSeats:  12,
		RemainingSeats: 3,
		IsFull:         false,
	}}
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/conference/reserve", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := NewConferenceHandler(m).Availability(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	data := body["data"].(map[string]interface{})
	if data["totalSeats"] != float64(15) || data["reservedSeats"] != float64(12) ||
		data["remainingSeats"] != float64(3) || data["isFull"] != false {
		t.Errorf("unexpected snapshot payload: %v", data)
	}
}

func TestAvailabilityStoreError(t *testing.T) {
	m := &fakeManager{snapshotErr: errors.New("mysql gone")}
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/conference/reserve", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := NewConferenceHandler(m).Availability(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}
