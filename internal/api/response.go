package api

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"microblog/internal/service"
)

type errorResponse struct {
	Result       bool   `json:"result"`
	ErrorType    string `json:"error_type"`
	ErrorMessage string `json:"error_message"`
}

func writeJSON(w http.ResponseWriter, v interface{}, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// ok writes {"result": true} merged with payload.
func (api *API) ok(w http.ResponseWriter, path string, payload map[string]interface{}) {
	response := map[string]interface{}{"result": true}
	for k, v := range payload {
		response[k] = v
	}
	api.metrics.SuccessfulRequests.WithLabelValues(path).Inc()
	writeJSON(w, response, http.StatusOK)
}

// fail turns err into the failure envelope. Domain errors keep their type
// and message; anything else is logged and reported as an internal error.
func (api *API) fail(w http.ResponseWriter, r *http.Request, path string, err error) {
	domainErr := service.AsError(err)

	entry := api.logger.WithFields(logrus.Fields{
		"method":     r.Method,
		"path":       r.URL.Path,
		"error_type": domainErr.Type,
	})
	if domainErr.Kind == service.KindInternal {
		entry.WithError(err).Error("Request failed")
	} else {
		entry.Warn(domainErr.Message)
	}

	api.metrics.BadRequests.WithLabelValues(path, domainErr.Type).Inc()
	writeJSON(w, errorResponse{
		Result:       false,
		ErrorType:    domainErr.Type,
		ErrorMessage: domainErr.Message,
	}, statusFor(domainErr.Kind))
}

func statusFor(kind service.Kind) int {
	switch kind {
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindForbidden:
		return http.StatusForbidden
	case service.KindConflict:
		return http.StatusConflict
	case service.KindBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
