package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/finboard/finboard/pkg/validation"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// DateLayout is the wire format of every calendar date.
const DateLayout = "2006-01-02"

type ErrorResponse struct {
	Error   string   `json:"error"`
	Details string   `json:"details,omitempty"`
	Fields  []string `json:"fields,omitempty"`
}

// WriteJSON encodes body with the given status code.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("failed to encode response: %v", err)
	}
}

// WriteError answers with an ErrorResponse body.
func WriteError(w http.ResponseWriter, status int, message, details string) {
	WriteJSON(w, status, ErrorResponse{Error: message, Details: details})
}

// WriteValidationError answers 422 listing the offending fields.
func WriteValidationError(w http.ResponseWriter, err *validation.ValidationError) {
	WriteJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "Validation failed",
		Details: err.Error(),
		Fields:  err.Fields,
	})
}

// PathId reads a numeric route variable.
func PathId(r *http.Request, name string) (int, error) {
	value := mux.Vars(r)[name]
	id, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number, got %q", name, value)
	}
	return id, nil
}

// ParseDate reads a YYYY-MM-DD date. An empty string yields the zero time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
