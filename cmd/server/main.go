package main

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/indieneer/backend/internal/config"
	"github.com/indieneer/backend/internal/database"
	"github.com/indieneer/backend/internal/handlers"
	"github.com/indieneer/backend/internal/identity"
	"github.com/indieneer/backend/internal/models"
	"github.com/indieneer/backend/internal/repository"
	"github.com/indieneer/backend/internal/services"
	"github.com/indieneer/backend/pkg/logger"
	"github.com/indieneer/backend/pkg/middleware"
)

func main() {
	cfg := config.LoadConfig()
	logger.InitLogger(cfg.IsDevelopment())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.ConnectDB(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to MongoDB")
	}

	if err := database.RunMigrations(ctx, db); err != nil {
		logrus.WithError(err).Fatal("Failed to run migrations")
	}
	if err := database.EnsureIndexes(ctx, db); err != nil {
		logrus.WithError(err).Fatal("Failed to ensure indexes")
	}

	idp := identity.NewClient(cfg)

	jwks, err := middleware.NewJWKS(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to fetch JWKS")
	}
	defer jwks.EndBackground()

	profileRepo := repository.NewProfileRepository(db)
	platformRepo := repository.NewPlatformRepository(db)
	productRepo := repository.NewProductRepository(db)
	tagRepo := repository.NewTagRepository(db)
	affiliateRepo := repository.NewAffiliateRepository(db)
	guessGameRepo := repository.NewGuessGameRepository(db)
	gameGuessRepo := repository.NewGameGuessRepository(db)
	backgroundJobRepo := repository.NewBackgroundJobRepository(db)

	profileService := services.NewProfileService(profileRepo, idp)
	authService := services.NewAuthService(idp)
	platformService := services.NewPlatformService(platformRepo)
	productService := services.NewProductService(productRepo)
	tagService := services.NewTagService(tagRepo)
	affiliateService := services.NewAffiliateService(affiliateRepo)
	guessGameService := services.NewGuessGameService(guessGameRepo, gameGuessRepo)
	gameGuessService := services.NewGameGuessService(gameGuessRepo)
	backgroundJobService := services.NewBackgroundJobService(backgroundJobRepo)

	bootstrapRootUser(ctx, cfg, profileRepo, profileService, idp)

	router := handlers.NewRouter(cfg, jwks, &handlers.Handlers{
		Health:         handlers.NewHealthHandler(),
		Auth:           handlers.NewAuthHandler(authService),
		Profiles:       handlers.NewProfileHandler(profileService),
		Platforms:      handlers.NewPlatformHandler(platformService),
		Products:       handlers.NewProductHandler(productService),
		Tags:           handlers.NewTagHandler(tagService),
		Affiliates:     handlers.NewAffiliateHandler(affiliateService),
		GuessGames:     handlers.NewGuessGameHandler(guessGameService),
		GameGuesses:    handlers.NewGameGuessHandler(gameGuessService),
		BackgroundJobs: handlers.NewBackgroundJobHandler(backgroundJobService),
	})

	addr := ":" + cfg.Port
	logrus.WithFields(logrus.Fields{
		"addr":    addr,
		"env":     cfg.Env,
		"version": config.Version,
	}).Info("Server is running")
	if err := http.ListenAndServe(addr, router); err != nil {
		logrus.WithError(err).Fatal("Server stopped")
	}
}

// bootstrapRootUser provisions the configured root account on first
// startup. Failures are logged, not fatal; the API works without it.
func bootstrapRootUser(ctx context.Context, cfg *config.Config, repo *repository.ProfileRepository, svc *services.ProfileService, idp *identity.Client) {
	if cfg.RootUserEmail == "" || cfg.RootUserPassword == "" {
		return
	}

	existing, err := repo.GetByEmail(ctx, cfg.RootUserEmail)
	if err != nil {
		logrus.WithError(err).Warn("Root user lookup failed")
		return
	}
	if existing != nil {
		return
	}

	profile, err := svc.Create(ctx, models.CreateProfile{
		Email:    cfg.RootUserEmail,
		Password: cfg.RootUserPassword,
		Name:     "Root",
		Nickname: "root",
	})
	if err != nil {
		logrus.WithError(err).Warn("Root user creation failed")
		return
	}

	if err := idp.AddRoles(ctx, profile.IdpID, []string{"Admin"}); err != nil {
		logrus.WithError(err).Warn("Root user role assignment failed")
		return
	}

	logrus.WithField("email", cfg.RootUserEmail).Info("Root user provisioned")
}
