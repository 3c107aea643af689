package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/rue-joseph-bens/tramboard/internal/restapi"
	"github.com/rue-joseph-bens/tramboard/internal/webui"
)

func routes(api *restapi.RestAPI, webUI *webui.WebUI) http.Handler {
	router := httprouter.New()
	webUI.SetWebUIRoutes(router)
	api.SetRoutes(router)
	return api.WithMiddleware(router)
}
