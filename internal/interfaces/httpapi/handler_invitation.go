package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/communitylabs/eventhub/internal/usecase"
)

func (h *Handler) ListMyInvitations(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyInvitations")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	invitations, err := h.invitationService.ListMyInvitations(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list invitations failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, invitationsToDTOs(ctx, invitations))
}

func (h *Handler) RespondInvitation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RespondInvitation")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req respondInvitationRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}

	invitationID := r.PathValue("invitationID")
	result, err := h.invitationService.Respond(ctx, usecase.RespondInvitationInput{
		UserID:       principal.UserID,
		InvitationID: invitationID,
		Accept:       req.Accept,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "respond invitation failed", "user_id", principal.UserID, "invitation_id", invitationID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, respondInvitationResultDTO{
		Invitation: invitationToDTO(ctx, result.Invitation),
		Registered: result.Registered,
	})
}
