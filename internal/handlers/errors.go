package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/cruiseline/cruise-booking-api/internal/models"
	"github.com/cruiseline/cruise-booking-api/internal/resolver"
	"github.com/danielgtaylor/huma/v2"
	"gorm.io/gorm"
)

// APIError is the body of every error response: {"error": "..."}.
type APIError struct {
	Status  int      `json:"-"`
	Message string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func (e *APIError) Error() string  { return e.Message }
func (e *APIError) GetStatus() int { return e.Status }

func init() {
	huma.NewError = newAPIError
}

// newAPIError reports schema validation failures (422 in huma) as 400.
func newAPIError(status int, msg string, errs ...error) huma.StatusError {
	if status == http.StatusUnprocessableEntity {
		status = http.StatusBadRequest
	}

	var details []string
	for _, err := range errs {
		if err != nil {
			details = append(details, err.Error())
		}
	}
	if len(details) > 0 && msg == "validation failed" {
		msg = msg + ": " + strings.Join(details, "; ")
	}

	return &APIError{Status: status, Message: msg, Details: details}
}

func checkID(id, entity string) error {
	if !models.ValidID(id) {
		return huma.Error400BadRequest("Invalid " + strings.ToLower(entity) + " ID")
	}
	return nil
}

// storeError maps an error from a lookup or write to the response error.
// entity names the record addressed by the request, action the failed operation.
func storeError(err error, entity, action string) error {
	var statusErr huma.StatusError
	switch {
	case errors.As(err, &statusErr):
		return statusErr
	case errors.Is(err, gorm.ErrRecordNotFound):
		return huma.Error404NotFound(entity + " not found")
	case errors.Is(err, resolver.ErrUserNotFound):
		return huma.Error404NotFound("User not found")
	case errors.Is(err, resolver.ErrCruiseNotFound):
		return huma.Error404NotFound("Cruise not found")
	}
	log.Printf("Failed to %s %s: %v", action, strings.ToLower(entity), err)
	return huma.Error500InternalServerError("Failed to " + action + " " + strings.ToLower(entity))
}

type IDInput struct {
	ID string `path:"id" doc:"Record id"`
}

type MessageOutput struct {
	Body struct {
		Message string `json:"message"`
	}
}

func message(msg string) *MessageOutput {
	out := &MessageOutput{}
	out.Body.Message = msg
	return out
}

func optionalID(id *string) *string {
	if id == nil || strings.TrimSpace(*id) == "" {
		return nil
	}
	v := strings.TrimSpace(*id)
	return &v
}
