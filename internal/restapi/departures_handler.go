package restapi

import (
	"net/http"

	"github.com/rue-joseph-bens/tramboard/internal/models"
)

func (api *RestAPI) departuresHandler(w http.ResponseWriter, r *http.Request) {
	board := api.Board.Departures(r.Context())
	api.sendResponse(w, r, models.NewListResponse(board))
}
