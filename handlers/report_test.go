package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ray-remotestate/resto-pos/models"
)

type fakeReports struct {
	start, end time.Time
	limit      int
	top        []models.TopMenuRow
	revenue    []models.DailyRevenueRow
}

func (f *fakeReports) TopMenuItems(start, end time.Time, limit int) ([]models.TopMenuRow, error) {
	f.start, f.end, f.limit = start, end, limit
	return f.top, nil
}

func (f *fakeReports) DailyRevenue(start, end time.Time) ([]models.DailyRevenueRow, error) {
	f.start, f.end = start, end
	return f.revenue, nil
}

func TestReportWindowValidation(t *testing.T) {
	h := &ReportHandler{Reports: &fakeReports{}}

	tests := []struct {
		name  string
		query string
	}{
		{"missing both", ""},
		{"missing end", "?start_date=2026-08-01"},
		{"bad format", "?start_date=01-08-2026&end_date=2026-08-31"},
		{"inverted range", "?start_date=2026-08-31&end_date=2026-08-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/report/top-menu"+tt.query, nil)
			h.TopMenu(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestTopMenuLimit(t *testing.T) {
	fake := &fakeReports{}
	h := &ReportHandler{Reports: fake}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/report/top-menu?start_date=2026-08-01&end_date=2026-08-31", nil)
	h.TopMenu(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if fake.limit != 5 {
		t.Errorf("default limit = %d, want 5", fake.limit)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/report/top-menu?start_date=2026-08-01&end_date=2026-08-31&limit=3", nil)
	h.TopMenu(rec, req)
	if fake.limit != 3 {
		t.Errorf("limit = %d, want 3", fake.limit)
	}

	for _, raw := range []string{"0", "-1", "abc"} {
		rec = httptest.NewRecorder()
		req = httptest.NewRequest(http.MethodGet, "/report/top-menu?start_date=2026-08-01&end_date=2026-08-31&limit="+raw, nil)
		h.TopMenu(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("limit %q: status = %d, want 400", raw, rec.Code)
		}
	}
}

func TestDailyRevenueWindow(t *testing.T) {
	fake := &fakeReports{}
	h := &ReportHandler{Reports: fake}

	// a single-day window is a valid range
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/report/daily-revenue?start_date=2026-08-15&end_date=2026-08-15", nil)
	h.DailyRevenue(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !fake.start.Equal(fake.end) {
		t.Errorf("window = %v .. %v", fake.start, fake.end)
	}
	if fake.start != time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC) {
		t.Errorf("start = %v", fake.start)
	}
}
