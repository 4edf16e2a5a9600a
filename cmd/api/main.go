package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	aiadapter "github.com/Ganderlu/taskmate/internal/adapter/ai"
	dbadapter "github.com/Ganderlu/taskmate/internal/adapter/db"
	"github.com/Ganderlu/taskmate/internal/adapter/feed"
	httpadapter "github.com/Ganderlu/taskmate/internal/adapter/http"
	"github.com/Ganderlu/taskmate/internal/adapter/http/handlers"
	httpmiddleware "github.com/Ganderlu/taskmate/internal/adapter/http/middleware"
	"github.com/Ganderlu/taskmate/internal/app/service"
	"github.com/Ganderlu/taskmate/internal/config"
	"github.com/Ganderlu/taskmate/pkg/authtoken"
	"github.com/Ganderlu/taskmate/pkg/translator"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)
	defer func() {
		if err := logger.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	translator.InitTranslator(translator.Config{
		TranslationFolder:  "pkg/translator/translation",
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})

	cfg := config.LoadConfig()
	db, err := dbadapter.ConnectDB(cfg)
	if err != nil {
		logger.Fatal("failed to connect to mysql", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("failed to close mysql connection", zap.Error(err))
		}
	}()

	redisClient, err := feed.ConnectRedis(cfg)
	if err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("failed to close redis connection", zap.Error(err))
		}
	}()
	bus := feed.NewRedisBus(redisClient)

	taskRepo := dbadapter.NewTaskRepository(db, bus)
	teamRepo := dbadapter.NewTeamRepository(db, bus)
	memberRepo := dbadapter.NewMemberRepository(db, bus)
	categoryRepo := dbadapter.NewCategoryRepository(db, bus)
	registry := service.NewRegistry(taskRepo, teamRepo, memberRepo, categoryRepo, bus)

	tokens := authtoken.NewManager(cfg.JWTSecret, time.Duration(cfg.JWTTTLHours)*time.Hour)

	extractor, err := aiadapter.NewExtractor(cfg)
	if err != nil {
		logger.Fatal("failed to init ai client", zap.Error(err))
	}
	var draftHandler *handlers.DraftHandler
	if extractor != nil {
		draftHandler = handlers.NewDraftHandler(extractor)
	} else {
		logger.Info("no AI api key configured, task draft endpoint disabled")
	}

	r := gin.New()
	r.Use(gin.Recovery(), httpmiddleware.GinZapMiddleware(logger))
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Fatal("invalid trusted proxies", zap.Error(err))
	}

	httpadapter.RegisterRoutes(r, tokens, httpadapter.Handlers{
		Health:     handlers.NewHealthHandler(db, redisClient),
		Auth:       handlers.NewAuthHandler(tokens),
		Tasks:      handlers.NewTaskHandler(registry),
		Teams:      handlers.NewTeamHandler(registry),
		Categories: handlers.NewCategoryHandler(registry),
		Stats:      handlers.NewStatsHandler(registry),
		Draft:      draftHandler,
	})

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	addr := ":" + port
	logger.Info("starting server", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Fatal("could not start server", zap.Error(err))
	}
}
