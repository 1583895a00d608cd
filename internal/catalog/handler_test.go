package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/serenity-spa/booking-platform/internal/bookings"
	"github.com/serenity-spa/booking-platform/pkg/logging"
)

type fakeRepo struct {
	services   []Service
	therapists []Therapist
	products   []Product
	err        error
}

func (f *fakeRepo) ListServices(context.Context) ([]Service, error)     { return f.services, f.err }
func (f *fakeRepo) ListTherapists(context.Context) ([]Therapist, error) { return f.therapists, f.err }
func (f *fakeRepo) ListProducts(context.Context) ([]Product, error)     { return f.products, f.err }

type fakeAvailability struct {
	booked []string
	err    error
}

func (f *fakeAvailability) Availability(ctx context.Context, therapistID, date string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return bookings.AvailableSlots(f.booked), nil
}

func getData(t *testing.T, h *Handler, url string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	h.GetData(w, req)
	return w
}

func TestGetData_Services(t *testing.T) {
	repo := &fakeRepo{services: []Service{{ID: "svc-1", Name: "Hot Stone Massage", Active: true}}}
	h := NewHandler(repo, &fakeAvailability{}, logging.Default())

	w := getData(t, h, "/get-data?type=services")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Services []Service `json:"services"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Services) != 1 || resp.Services[0].Name != "Hot Stone Massage" {
		t.Errorf("unexpected services: %+v", resp.Services)
	}
}

func TestGetData_TherapistsEmptyIsArray(t *testing.T) {
	h := NewHandler(&fakeRepo{}, &fakeAvailability{}, logging.Default())

	w := getData(t, h, "/get-data?type=therapists")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := w.Body.String(); !json.Valid([]byte(got)) || got == `{"therapists":null}`+"\n" {
		t.Errorf("expected empty array, got %s", got)
	}
}

func TestGetData_Availability(t *testing.T) {
	h := NewHandler(&fakeRepo{}, &fakeAvailability{booked: []string{"14:00"}}, logging.Default())

	w := getData(t, h, "/get-data?type=availability&therapist_id=ther-1&date=2026-09-15")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		AvailableSlots []string `json:"availableSlots"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.AvailableSlots) != 17 {
		t.Fatalf("expected 17 slots, got %d", len(resp.AvailableSlots))
	}
	for _, slot := range resp.AvailableSlots {
		if slot == "14:00" {
			t.Fatalf("booked slot should be absent")
		}
	}

	template := bookings.SlotTemplate()
	expected := make([]string, 0, 17)
	for _, slot := range template {
		if slot != "14:00" {
			expected = append(expected, slot)
		}
	}
	if !reflect.DeepEqual(resp.AvailableSlots, expected) {
		t.Errorf("template order not preserved: %v", resp.AvailableSlots)
	}
}

func TestGetData_AvailabilityMissingParams(t *testing.T) {
	h := NewHandler(&fakeRepo{}, &fakeAvailability{}, logging.Default())

	for _, url := range []string{
		"/get-data?type=availability",
		"/get-data?type=availability&therapist_id=ther-1",
		"/get-data?type=availability&date=2026-09-15",
	} {
		w := getData(t, h, url)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", url, w.Code)
		}
	}
}

func TestGetData_UnknownType(t *testing.T) {
	h := NewHandler(&fakeRepo{}, &fakeAvailability{}, logging.Default())

	w := getData(t, h, "/get-data?type=bogus")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["error"] == "" {
		t.Error("expected error message")
	}
}

func TestGetData_StoreFailure(t *testing.T) {
	h := NewHandler(&fakeRepo{err: errors.New("connection refused")}, &fakeAvailability{}, logging.Default())

	w := getData(t, h, "/get-data?type=products")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}
