package restapi

import (
	"encoding/json"
	"net/http"

	"github.com/rue-joseph-bens/tramboard/internal/logging"
	"github.com/rue-joseph-bens/tramboard/internal/models"
)

type errorResponse struct {
	Code        int    `json:"code"`
	CurrentTime int64  `json:"currentTime"`
	Text        string `json:"text"`
	Version     int    `json:"version"`
}

func (api *RestAPI) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	logging.LogError(logging.FromContext(r.Context()), "internal server error", err)

	response := errorResponse{
		Code:        http.StatusInternalServerError,
		CurrentTime: models.ResponseCurrentTime(),
		Text:        "internal server error",
		Version:     1,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	if encoderErr := json.NewEncoder(w).Encode(response); encoderErr != nil {
		api.Logger.Error("failed to encode server error response", "error", encoderErr)
	}
}

// validationErrorResponse sends a 400 Bad Request response with field-specific validation errors
func (api *RestAPI) validationErrorResponse(w http.ResponseWriter, r *http.Request, fieldErrors map[string][]string) {
	response := struct {
		FieldErrors map[string][]string `json:"fieldErrors"`
	}{
		FieldErrors: fieldErrors,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		api.Logger.Error("failed to encode validation error response", "error", err)
	}
}
