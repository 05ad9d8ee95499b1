package app

import (
	"fmt"
	"net/http"

	"github.com/communitylabs/eventhub/external/notify"
	"github.com/communitylabs/eventhub/internal/config"
	"github.com/communitylabs/eventhub/internal/infrastructure/account/ident"
	notifyinfra "github.com/communitylabs/eventhub/internal/infrastructure/notify"
	"github.com/communitylabs/eventhub/internal/infrastructure/repository/postgres"
	"github.com/communitylabs/eventhub/internal/interfaces/httpapi"
	"github.com/communitylabs/eventhub/internal/platform/cache"
	idgen "github.com/communitylabs/eventhub/internal/platform/id"
	"github.com/communitylabs/eventhub/internal/platform/logging"
	"github.com/communitylabs/eventhub/internal/platform/resilience"
	"github.com/communitylabs/eventhub/internal/usecase"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"
)

// NewHTTPServer wires repositories, services and the HTTP router. The
// returned cleanup releases the database pool and the notification worker
// pool, and must run after the server is shut down.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func(), error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := otelsqlx.Connect("postgres", normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary),
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}

	eventRepo := postgres.NewEventRepository(db)
	tournamentRepo := postgres.NewTournamentRepository(db)
	teamRepo := postgres.NewTeamRepository(db)
	regRepo := postgres.NewRegistrationRepository(db)

	cacheTTL := cfg.CacheTTL
	if !cfg.CacheEnabled {
		// Entries expire immediately, keeping the read path identical.
		cacheTTL = 1
	}
	store := cache.NewStore(cacheTTL)

	idGen := idgen.NewRandomGenerator()

	var notifier usecase.Notifier = usecase.NopNotifier{}
	var dispatcher *notifyinfra.AsyncDispatcher
	if cfg.NotifyWebhookEnabled {
		webhook := notify.NewWebhookClient(notify.WebhookConfig{
			Endpoint:  cfg.NotifyWebhookEndpoint,
			AuthToken: cfg.NotifyWebhookToken,
			Timeout:   cfg.NotifyWebhookTimeout,
			Breaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.NotifyCircuitEnabled,
				FailureThreshold: cfg.NotifyCircuitFailureCount,
			},
		}, logger)
		dispatcher, err = notifyinfra.NewAsyncDispatcher(webhook, cfg.NotifyPoolSize, logger)
		if err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("create notification dispatcher: %w", err)
		}
		notifier = dispatcher
	} else {
		logger.Info("notifications disabled", "reason", "NOTIFY_WEBHOOK_ENABLED=false")
	}

	registrationSvc := usecase.NewRegistrationService(eventRepo, tournamentRepo, teamRepo, regRepo, notifier, idGen)
	teamSvc := usecase.NewTeamService(eventRepo, tournamentRepo, teamRepo, registrationSvc, notifier, idGen)
	invitationSvc := usecase.NewInvitationService(teamRepo, registrationSvc, notifier)
	applicationSvc := usecase.NewApplicationService(teamRepo, registrationSvc, notifier, idGen)
	eventSvc := usecase.NewEventService(eventRepo, store)
	rosterSvc := usecase.NewRosterService(eventRepo, tournamentRepo, teamRepo, regRepo)
	leaderboardSvc := usecase.NewLeaderboardService(tournamentRepo)

	identClient := ident.NewClient(
		&http.Client{Timeout: cfg.IdentTimeout},
		cfg.IdentBaseURL,
		cfg.IdentIntrospectPath,
		cfg.IdentAdminKey,
		resilience.CircuitBreakerConfig{
			Enabled:          cfg.IdentCircuitEnabled,
			FailureThreshold: cfg.IdentCircuitFailureCount,
			OpenTimeout:      cfg.IdentCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.IdentCircuitHalfOpenMaxReq,
		},
		logger,
	)

	handler := httpapi.NewHandler(eventSvc, teamSvc, invitationSvc, applicationSvc, registrationSvc, rosterSvc, leaderboardSvc, logger)
	router := httpapi.NewRouter(handler, identClient, logger, cfg.CORSAllowedOrigins, cfg.InternalToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		_ = db.Close()
		if dispatcher != nil {
			dispatcher.Close()
		}
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	cleanup := func() {
		if dispatcher != nil {
			dispatcher.Close()
		}
		if err := db.Close(); err != nil {
			logger.Error("close database", "error", err)
		}
	}

	return server, cleanup, nil
}
