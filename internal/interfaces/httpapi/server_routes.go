package httpapi

import "net/http"

func registerRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/health", handler.Health)

	mux.HandleFunc("GET /api/teams", handler.ListTeams)
	mux.HandleFunc("POST /api/teams", handler.ReplaceTeams)
	mux.HandleFunc("GET /api/teams/{teamID}", handler.GetTeam)

	mux.HandleFunc("GET /api/matchdays", handler.ListMatchDays)
	mux.HandleFunc("POST /api/matchdays", handler.ReplaceMatchDays)
	mux.HandleFunc("GET /api/matchdays/{matchDayID}", handler.GetMatchDay)

	mux.HandleFunc("GET /api/sync", handler.GetSync)
	mux.HandleFunc("POST /api/sync", handler.PostSync)

	mux.HandleFunc("GET /api/stats", handler.GetStats)
	mux.HandleFunc("GET /api/backup", handler.GetBackup)
}
