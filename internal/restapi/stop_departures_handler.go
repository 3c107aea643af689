package restapi

import (
	"net/http"

	"github.com/rue-joseph-bens/tramboard/internal/models"
	"github.com/rue-joseph-bens/tramboard/internal/utils"
)

func (api *RestAPI) stopDeparturesHandler(w http.ResponseWriter, r *http.Request) {
	pointID := utils.ExtractIDFromParams(r, "id")

	if err := utils.ValidateID(pointID); err != nil {
		fieldErrors := map[string][]string{
			"id": {err.Error()},
		}
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	stop, ok := api.Config.FindStop(pointID)
	if !ok {
		api.sendNotFound(w, r)
		return
	}

	entry := api.Board.StopDepartures(r.Context(), stop)
	api.sendResponse(w, r, models.NewEntryResponse(entry))
}
