package utils

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ray-remotestate/resto-pos/apperrors"
	"github.com/ray-remotestate/resto-pos/listing"
	"github.com/sirupsen/logrus"
)

type envelope struct {
	Message    string        `json:"message"`
	Data       interface{}   `json:"data,omitempty"`
	Pagination *listing.Meta `json:"pagination,omitempty"`
}

func RespondJSON(w http.ResponseWriter, status int, message string, data interface{}) {
	writeJSON(w, status, envelope{Message: message, Data: data})
}

func RespondList(w http.ResponseWriter, message string, data interface{}, meta listing.Meta) {
	writeJSON(w, http.StatusOK, envelope{Message: message, Data: data, Pagination: &meta})
}

// RespondError funnels every failure through one boundary: the kind picks the
// status, the client only ever sees a message, and store-level causes stay in
// the server log.
func RespondError(w http.ResponseWriter, err error) {
	appErr := apperrors.From(err)

	switch appErr.Kind {
	case apperrors.KindPersistence:
		logrus.WithError(appErr).Error("request failed")
		writeJSON(w, appErr.Status(), envelope{Message: "internal server error"})
	default:
		logrus.WithField("status", appErr.Status()).Warn(appErr.Message)
		writeJSON(w, appErr.Status(), envelope{Message: appErr.Message})
	}
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("failed to encode response")
	}
}

// ParseDate accepts YYYY-MM-DD only.
func ParseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}
