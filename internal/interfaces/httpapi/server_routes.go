package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/events", handler.ListEvents)
	mux.HandleFunc("GET /v1/events/{eventID}", handler.GetEvent)
	mux.HandleFunc("GET /v1/events/{eventID}/teams", handler.ListTeamsByEvent)
	mux.HandleFunc("GET /v1/events/{eventID}/overview", handler.GetEventRegistrationOverview)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}", handler.GetTournament)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/events", handler.ListTournamentEvents)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/teams", handler.ListTeamsByTournament)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/teams/pending", handler.ListTournamentPendingTeams)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/standings", handler.ListTournamentStandings)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerAuthorizedTeamRoutes(mux, handler, verifier)
	registerAuthorizedInvitationRoutes(mux, handler, verifier)
	registerAuthorizedApplicationRoutes(mux, handler, verifier)
	registerAuthorizedRegistrationRoutes(mux, handler, verifier)
}

func registerInternalRoutes(mux *http.ServeMux, handler *Handler, internalToken string) {
	mux.Handle("POST /v1/internal/tournaments/{tournamentID}/matches", RequireInternalToken(internalToken, http.HandlerFunc(handler.RecordMatchResult)))
}

func registerAuthorizedTeamRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/teams", RequireAuth(verifier, http.HandlerFunc(handler.CreateTeam)))
	// The vacancy listing filters out the caller's own teams, so it needs
	// to know who is asking.
	mux.Handle("GET /v1/events/{eventID}/teams/vacancies", RequireAuth(verifier, http.HandlerFunc(handler.ListTeamVacanciesByEvent)))
}

func registerAuthorizedInvitationRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/invitations", RequireAuth(verifier, http.HandlerFunc(handler.ListMyInvitations)))
	mux.Handle("POST /v1/invitations/{invitationID}/respond", RequireAuth(verifier, http.HandlerFunc(handler.RespondInvitation)))
}

func registerAuthorizedApplicationRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/teams/{teamID}/applications", RequireAuth(verifier, http.HandlerFunc(handler.ApplyToTeam)))
	mux.Handle("GET /v1/teams/{teamID}/applications", RequireAuth(verifier, http.HandlerFunc(handler.ListTeamApplications)))
	mux.Handle("POST /v1/applications/{applicationID}/respond", RequireAuth(verifier, http.HandlerFunc(handler.RespondApplication)))
}

func registerAuthorizedRegistrationRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/events/{eventID}/registrations", RequireAuth(verifier, http.HandlerFunc(handler.RegisterIndividual)))
}
