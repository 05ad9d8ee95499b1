package httpapi

import (
	"fmt"
	"net/http"

	"github.com/communitylabs/eventhub/internal/usecase"
)

func (h *Handler) RegisterIndividual(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RegisterIndividual")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	eventID := r.PathValue("eventID")
	reg, err := h.registrationSvc.RegisterIndividual(ctx, usecase.RegisterIndividualInput{
		UserID:  principal.UserID,
		EventID: eventID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "individual registration failed", "user_id", principal.UserID, "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, registrationToDTO(ctx, reg))
}
