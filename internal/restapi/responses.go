package restapi

import (
	"encoding/json"
	"net/http"

	"github.com/rue-joseph-bens/tramboard/internal/models"
)

func (api *RestAPI) sendResponse(w http.ResponseWriter, r *http.Request, response models.ResponseModel) {
	setJSONResponseType(&w)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		api.serverErrorResponse(w, r, err)
	}
}

func (api *RestAPI) sendNotFound(w http.ResponseWriter, r *http.Request) {
	setJSONResponseType(&w)
	w.WriteHeader(http.StatusNotFound)

	response := models.NewResponse(http.StatusNotFound, nil, "resource not found")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		api.Logger.Error("failed to encode not found response", "error", err)
	}
}

func setJSONResponseType(w *http.ResponseWriter) {
	(*w).Header().Set("Content-Type", "application/json")
}
