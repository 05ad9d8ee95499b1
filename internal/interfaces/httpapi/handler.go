package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/communitylabs/eventhub/internal/platform/logging"
	"github.com/communitylabs/eventhub/internal/usecase"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	eventService       *usecase.EventService
	teamService        *usecase.TeamService
	invitationService  *usecase.InvitationService
	applicationService *usecase.ApplicationService
	registrationSvc    *usecase.RegistrationService
	rosterService      *usecase.RosterService
	leaderboardService *usecase.LeaderboardService
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	eventService *usecase.EventService,
	teamService *usecase.TeamService,
	invitationService *usecase.InvitationService,
	applicationService *usecase.ApplicationService,
	registrationSvc *usecase.RegistrationService,
	rosterService *usecase.RosterService,
	leaderboardService *usecase.LeaderboardService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		eventService:       eventService,
		teamService:        teamService,
		invitationService:  invitationService,
		applicationService: applicationService,
		registrationSvc:    registrationSvc,
		rosterService:      rosterService,
		leaderboardService: leaderboardService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
