package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ray-remotestate/resto-pos/apperrors"
	"github.com/ray-remotestate/resto-pos/models"
	"github.com/ray-remotestate/resto-pos/utils"
)

const defaultTopMenuLimit = 5

type SalesReporter interface {
	TopMenuItems(start, end time.Time, limit int) ([]models.TopMenuRow, error)
	DailyRevenue(start, end time.Time) ([]models.DailyRevenueRow, error)
}

type ReportHandler struct {
	Reports SalesReporter
}

func (h *ReportHandler) TopMenu(w http.ResponseWriter, r *http.Request) {
	start, end, err := reportWindow(r)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	limit := defaultTopMenuLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			utils.RespondError(w, apperrors.Validationf("limit must be a positive integer"))
			return
		}
		limit = n
	}

	report, err := h.Reports.TopMenuItems(start, end, limit)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, "top menu report", report)
}

func (h *ReportHandler) DailyRevenue(w http.ResponseWriter, r *http.Request) {
	start, end, err := reportWindow(r)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	report, err := h.Reports.DailyRevenue(start, end)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, "daily revenue report", report)
}

func reportWindow(r *http.Request) (time.Time, time.Time, error) {
	q := r.URL.Query()

	rawStart := q.Get("start_date")
	rawEnd := q.Get("end_date")
	if rawStart == "" || rawEnd == "" {
		return time.Time{}, time.Time{}, apperrors.Validationf("start_date and end_date are required")
	}

	start, err := utils.ParseDate(rawStart)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.Validationf("start_date must be YYYY-MM-DD")
	}
	end, err := utils.ParseDate(rawEnd)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.Validationf("end_date must be YYYY-MM-DD")
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, apperrors.Validationf("start_date must not be after end_date")
	}

	return start, end, nil
}
