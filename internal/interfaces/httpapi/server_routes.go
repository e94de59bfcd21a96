package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/seasons", handler.ListSeasons)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/rankings", handler.GetSeasonRankings)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/rankings/weeks/{week}", handler.GetWeekRankings)
}

func registerInternalRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("PUT /v1/internal/matches/{matchID}/result",
		RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.SetMatchResult)))
	mux.Handle("PUT /v1/internal/questions/{questionID}/answer",
		RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.SetCorrectAnswer)))
	mux.Handle("POST /v1/internal/recalculations/seasons/{seasonID}",
		RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RecalculateSeason)))
	mux.Handle("POST /v1/internal/recalculations",
		RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RecalculateAll)))
	mux.Handle("POST /v1/internal/sync/results/seasons/{seasonID}",
		RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.SyncSeasonResults)))
	mux.Handle("POST /v1/internal/jobs/result-sync",
		RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunResultSyncJob)))
}
