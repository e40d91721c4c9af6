package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/NarenDawar/ai-governance-hub/internal/application/assessment"
	"github.com/NarenDawar/ai-governance-hub/internal/application/asset"
	"github.com/NarenDawar/ai-governance-hub/internal/application/audit"
	"github.com/NarenDawar/ai-governance-hub/internal/application/auth"
	"github.com/NarenDawar/ai-governance-hub/internal/application/notify"
	"github.com/NarenDawar/ai-governance-hub/internal/application/organization"
	"github.com/NarenDawar/ai-governance-hub/internal/application/ports"
	"github.com/NarenDawar/ai-governance-hub/internal/application/template"
	"github.com/NarenDawar/ai-governance-hub/internal/application/vendor"
	"github.com/NarenDawar/ai-governance-hub/internal/config"
	infraauth "github.com/NarenDawar/ai-governance-hub/internal/infrastructure/auth"
	httprouter "github.com/NarenDawar/ai-governance-hub/internal/infrastructure/http"
	"github.com/NarenDawar/ai-governance-hub/internal/infrastructure/http/handlers"
	"github.com/NarenDawar/ai-governance-hub/internal/infrastructure/http/middleware"
	"github.com/NarenDawar/ai-governance-hub/internal/infrastructure/persistence/postgres"
	"github.com/NarenDawar/ai-governance-hub/internal/infrastructure/queue"
	"github.com/NarenDawar/ai-governance-hub/internal/infrastructure/security"
	"github.com/NarenDawar/ai-governance-hub/internal/infrastructure/webhook"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis ping failed; continuing without redis")
			redisClient.Close()
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	store := postgres.NewStore(pool)
	orgRepo := postgres.NewOrganizationRepository(store)
	userRepo := postgres.NewUserRepository(store)
	assetRepo := postgres.NewAssetRepository(store)
	vendorRepo := postgres.NewVendorRepository(store)
	templateRepo := postgres.NewTemplateRepository(store)
	assessmentRepo := postgres.NewAssessmentRepository(store)
	auditRepo := postgres.NewAuditLogRepository(store)
	notificationRepo := postgres.NewNotificationRepository(store)
	tokenStore := postgres.NewTokenStore(store)
	identityStore := postgres.NewIdentityRepository(store)

	var emitter ports.EventEmitter
	if cfg.Webhook.RiskAlertURL != "" {
		emitter = webhook.NewHTTPEmitter(cfg.Webhook.RiskAlertURL)
	} else {
		emitter = webhook.NewNoopEmitter()
	}

	var taskEnqueuer ports.TaskEnqueuer
	var asynqWorker *queue.Worker
	if redisClient != nil {
		asynqOpt := asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}
		asynqEnq := queue.NewAsynqEnqueuer(asynqOpt, log)
		defer asynqEnq.Close()
		taskEnqueuer = asynqEnq
		asynqWorker = queue.NewWorker(asynqOpt, emitter, log)
		go func() {
			if err := asynqWorker.Run(); err != nil {
				log.Warn().Err(err).Msg("asynq worker stopped")
			}
		}()
	} else {
		taskEnqueuer = queue.NewNoopEnqueuer()
	}

	hasher := security.NewArgon2Hasher(security.Argon2Params{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  16,
		KeyLength:   32,
	})

	privateKey, err := loadOrGenerateKey(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("load JWT private key")
	}
	issuer := infraauth.NewTokenIssuer(privateKey, cfg.JWT.Issuer, cfg.JWT.Audience)

	recorder := audit.NewRecorder(auditRepo, log)
	fanout := notify.NewAdminFanout(userRepo, notificationRepo, log)

	registerUC := auth.NewRegisterUser(userRepo, hasher)
	loginUC := auth.NewLogin(userRepo, hasher, issuer, tokenStore, cfg.JWT.AccessExpiry, cfg.JWT.RefreshExpiry)
	refreshUC := auth.NewRefresh(issuer, tokenStore, cfg.JWT.AccessExpiry, cfg.JWT.RefreshExpiry)
	oauthCallbackUC := auth.NewOAuthCallback(identityStore, userRepo, hasher, issuer, tokenStore, cfg.JWT.AccessExpiry, cfg.JWT.RefreshExpiry)
	handlers.InitOAuthProviders(cfg.OAuth.GoogleClientID, cfg.OAuth.GoogleClientSecret, cfg.OAuth.GoogleCallbackURL, cfg.OAuth.SessionSecret)

	createOrgUC := organization.NewCreateOrganization(orgRepo, userRepo, store)
	joinOrgUC := organization.NewJoinOrganization(orgRepo, userRepo)
	leaveOrgUC := organization.NewLeaveOrganization(userRepo)
	changeRoleUC := organization.NewChangeUserRole(userRepo)

	registerAssetUC := asset.NewRegisterAsset(assetRepo, vendorRepo, recorder)
	updateAssetUC := asset.NewUpdateAsset(assetRepo, vendorRepo, recorder)
	deleteAssetUC := asset.NewDeleteAsset(assetRepo, recorder)
	syncUC := asset.NewSyncDiscovered(assetRepo, asset.MockDiscoverySource{}, recorder)

	createAssessmentUC := assessment.NewCreateFromTemplate(assessmentRepo, assetRepo, templateRepo)
	updateAssessmentUC := assessment.NewUpdateAssessment(assessmentRepo, assetRepo, store, recorder, fanout, taskEnqueuer, log)

	createTemplateUC := template.NewCreateTemplate(templateRepo)
	updateTemplateUC := template.NewUpdateTemplate(templateRepo)
	deleteTemplateUC := template.NewDeleteTemplate(templateRepo)

	createVendorUC := vendor.NewCreateVendor(vendorRepo)
	updateVendorUC := vendor.NewUpdateVendor(vendorRepo)
	deleteVendorUC := vendor.NewDeleteVendor(vendorRepo, assetRepo)

	rateFormatted := ""
	if cfg.RateLimit.Requests > 0 {
		rateFormatted = formatRate(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	}
	ipLimit, err := middleware.NewIPRateLimiter(rateFormatted)
	if err != nil {
		log.Fatal().Err(err).Msg("create IP rate limiter")
	}
	orgLimit, err := middleware.NewOrgRateLimiter(rateFormatted)
	if err != nil {
		log.Fatal().Err(err).Msg("create org rate limiter")
	}
	secureMiddleware := middleware.NewSecure(middleware.SecureOptions(cfg.Server.Dev))
	corsMiddleware := middleware.CORS(strings.Split(cfg.Server.AllowedOrigins, ","))
	authValidator := middleware.NewAuthValidator(issuer, userRepo)

	router := httprouter.NewRouter(httprouter.RouterConfig{
		AuthHandler:          handlers.NewAuthHandler(registerUC, loginUC, refreshUC, log),
		HealthHandler:        handlers.NewHealthHandler(pool, redisClient),
		UsersHandler:         handlers.NewUsersHandler(),
		OrganizationsHandler: handlers.NewOrganizationsHandler(createOrgUC, joinOrgUC, leaveOrgUC, changeRoleUC, orgRepo, userRepo, log),
		AssetsHandler:        handlers.NewAssetsHandler(registerAssetUC, updateAssetUC, deleteAssetUC, syncUC, createAssessmentUC, assetRepo, assessmentRepo, auditRepo, log),
		AssessmentsHandler:   handlers.NewAssessmentsHandler(updateAssessmentUC, assessmentRepo, log),
		TemplatesHandler:     handlers.NewTemplatesHandler(createTemplateUC, updateTemplateUC, deleteTemplateUC, templateRepo, log),
		VendorsHandler:       handlers.NewVendorsHandler(createVendorUC, updateVendorUC, deleteVendorUC, vendorRepo, log),
		NotificationsHandler: handlers.NewNotificationsHandler(notificationRepo, log),
		DashboardHandler:     handlers.NewDashboardHandler(assetRepo, assessmentRepo, log),
		Auth:                 authValidator,
		OAuthBegin:           handlers.OAuthBegin(),
		OAuthCallback:        handlers.OAuthCallback(oauthCallbackUC, cfg.OAuth.RedirectURL),
		Log:                  log,
		CORS:                 corsMiddleware,
		Secure:               secureMiddleware,
		IPRateLimit:          ipLimit,
		OrgRateLimit:         orgLimit,
		Metrics:              true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if asynqWorker != nil {
		asynqWorker.Shutdown()
	}
	log.Info().Msg("server stopped")
}
