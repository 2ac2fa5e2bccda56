package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"drip-backend/config"
	"drip-backend/internal/api/rest"
	"drip-backend/internal/api/telegram"
	"drip-backend/internal/container"
	"drip-backend/internal/domain/port"
	"drip-backend/internal/infrastructure/describer"
	"drip-backend/internal/infrastructure/storage"
	"drip-backend/internal/infrastructure/vision"
	"drip-backend/internal/infrastructure/weather"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rules, err := config.LoadOutfitRules(cfg.OutfitRulesPath)
	if err != nil {
		log.Fatalf("Failed to load outfit rules: %v", err)
	}

	codec := vision.NewCodec(cfg.JPEGQuality)

	// Детектор позы создаётся один раз и передаётся в сервисы
	detector, closeDetector, err := newPoseDetector(ctx, cfg, codec)
	if err != nil {
		log.Fatalf("Failed to create pose detector: %v", err)
	}
	defer closeDetector()

	var weatherProvider port.WeatherProvider = weather.DemoProvider{}
	if cfg.WeatherAPIKey != "" {
		weatherProvider = weather.NewOpenWeatherClient(cfg.WeatherAPIKey, cfg.WeatherBaseURL)
	} else {
		log.Println("WEATHER_API_KEY is not set, using demo weather")
	}

	var outfitDescriber port.OutfitDescriber
	if cfg.GeminiAPIKey != "" {
		outfitDescriber = describer.NewGeminiDescriber(cfg.GeminiAPIKey, cfg.GeminiModel)
	}

	// Хранилище пользователей бота
	var userRepo port.UserRepository = storage.NewMemoryUserRepository()
	if cfg.DatabaseURL != "" {
		db, err := storage.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		pgRepo, err := storage.NewPostgresUserRepository(ctx, db)
		if err != nil {
			log.Fatalf("Failed to prepare user repository: %v", err)
		}
		userRepo = pgRepo
		log.Println("Using PostgreSQL user repository")
	}

	// Собираем сервисы приложения
	appContainer := container.New(container.Deps{
		UserRepo:  userRepo,
		Codec:     codec,
		Detector:  detector,
		Weather:   weatherProvider,
		Describer: outfitDescriber,
		Rules:     rules,
	})

	if cfg.TelegramToken != "" {
		bot, err := telegram.NewBot(cfg.TelegramToken, appContainer)
		if err != nil {
			log.Fatalf("Failed to create bot: %v", err)
		}
		go func() {
			log.Println("Bot is running...")
			if err := bot.Run(ctx); err != nil {
				log.Printf("Bot error: %v", err)
			}
		}()
	}

	handler := rest.NewHandler(appContainer.TryOnService, appContainer.WeatherService, appContainer.OutfitService, cfg.MaxUploadBytes)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           rest.NewRouter(handler, cfg.RequestTimeout),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	log.Printf("Drip backend listening on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server error: %v", err)
	}
}

func newPoseDetector(ctx context.Context, cfg *config.Config, codec port.ImageCodec) (port.PoseDetector, func(), error) {
	switch cfg.PoseBackend {
	case config.PoseBackendGoCV:
		d, err := vision.NewOpenPoseDetector(cfg.PoseModelPath, cfg.PoseConfigPath)
		if err != nil {
			return nil, nil, err
		}
		return d, func() { _ = d.Close() }, nil

	default:
		d := vision.NewRemotePoseDetector(cfg.PoseServiceURL, codec, cfg.RequestTimeout)
		d.MinVisibility = cfg.PoseMinVisible

		checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := d.CheckHealth(checkCtx); err != nil {
			log.Printf("Warning: pose service not available: %v", err)
		}
		return d, func() {}, nil
	}
}
