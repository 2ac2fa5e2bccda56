package container

import (
	app "drip-backend/internal/application"
	"drip-backend/internal/domain/entity"
	"drip-backend/internal/domain/port"
)

type Container struct {
	UserService    *app.UserService
	TryOnService   *app.TryOnService
	SessionService *app.TryOnSessionService
	WeatherService *app.WeatherService
	OutfitService  *app.OutfitService
}

// Deps внешние зависимости, которые собирает main.
type Deps struct {
	UserRepo  port.UserRepository
	Codec     port.ImageCodec
	Detector  port.PoseDetector
	Weather   port.WeatherProvider
	Describer port.OutfitDescriber
	Rules     entity.OutfitRules
}

func New(d Deps) *Container {
	userService := app.NewUserService(d.UserRepo)
	tryOnService := app.NewTryOnService(d.Codec, d.Detector)

	return &Container{
		UserService:    userService,
		TryOnService:   tryOnService,
		SessionService: app.NewTryOnSessionService(userService, tryOnService),
		WeatherService: app.NewWeatherService(d.Weather, d.Rules),
		OutfitService:  app.NewOutfitService(d.Rules, d.Describer),
	}
}
