package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/communitylabs/eventhub/internal/domain/event"
	"github.com/communitylabs/eventhub/internal/usecase"
)

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListEvents")
	defer span.End()

	status := event.Status(strings.TrimSpace(r.URL.Query().Get("status")))
	events, err := h.eventService.ListEvents(ctx, status)
	if err != nil {
		h.logger.ErrorContext(ctx, "list events failed", "status", status, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]eventDTO, 0, len(events))
	for _, e := range events {
		items = append(items, eventToDTO(ctx, e))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetEvent")
	defer span.End()

	eventID := r.PathValue("eventID")
	item, err := h.eventService.GetEvent(ctx, eventID)
	if err != nil {
		h.logger.WarnContext(ctx, "get event failed", "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, eventToDTO(ctx, item))
}

func (h *Handler) ListTeamsByEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamsByEvent")
	defer span.End()

	eventID := r.PathValue("eventID")
	teams, err := h.teamService.ListTeamsByEvent(ctx, eventID)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(ctx, t))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListTeamVacanciesByEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamVacanciesByEvent")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	eventID := r.PathValue("eventID")
	vacancies, err := h.rosterService.TeamsNeedingMembers(ctx, eventID, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list team vacancies failed", "user_id", principal.UserID, "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamVacancyDTO, 0, len(vacancies))
	for _, v := range vacancies {
		items = append(items, teamVacancyToDTO(ctx, v))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetEventRegistrationOverview(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetEventRegistrationOverview")
	defer span.End()

	eventID := r.PathValue("eventID")
	overview, err := h.rosterService.EventRegistrationOverview(ctx, eventID)
	if err != nil {
		h.logger.WarnContext(ctx, "event registration overview failed", "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, eventOverviewToDTO(ctx, overview))
}
