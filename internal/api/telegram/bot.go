package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	app "drip-backend/internal/application"
	"drip-backend/internal/container"
	"drip-backend/internal/domain/entity"
)

const (
	msgStart = `👋 Привет! Я Drip — бот виртуальной примерки.

📸 Пришлите своё фото в полный рост, затем фото одежды, и я покажу, как она сидит.
📍 Пришлите геопозицию, и я подскажу, что надеть по погоде.

📋 Команды:
/tryon — начать примерку
/help — справка
/cancel — отменить текущую операцию`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ Отправьте /tryon
2️⃣ Пришлите своё фото: стоя, лицом к камере, плечи в кадре
3️⃣ Пришлите фото одежды на однотонном фоне
4️⃣ Получите фото с примеркой

📍 Геопозиция — совет по одежде на сегодня.

📋 Команды:
/tryon — начать примерку
/cancel — отменить операцию`

	msgAwaitingBody     = "📸 Пришлите своё фото в полный рост."
	msgAwaitingClothing = "👕 Отлично! Теперь пришлите фото одежды."
	msgCancelled        = "❌ Операция отменена. Отправьте /tryon для новой примерки."
	msgSendPhoto        = "📸 Отправьте /tryon, чтобы начать примерку."
	msgUnknownCommand   = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing       = "⏳ Примеряю..."
	msgTryOnDone        = "✨ Готово!"
	msgNoBody           = "🙈 Не нашёл человека на фото. Пришлите фото, где видны плечи, и начните заново: /tryon"
	msgProcessingError  = "⚠️ Не удалось обработать изображение. Попробуйте другое фото."
	msgWeatherError     = "⚠️ Не удалось узнать погоду. Попробуйте позже."
)

// botAPI часть клиента Telegram, которой пользуется бот
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetFile(config tgbotapi.FileConfig) (tgbotapi.File, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Bot представляет Telegram-бота
type Bot struct {
	api      botAPI
	token    string
	app      *container.Container
	download func(ctx context.Context, fileID string) ([]byte, error)
}

// NewBot создаёт нового бота
func NewBot(token string, appContainer *container.Container) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	return newBot(api, token, appContainer), nil
}

func newBot(api botAPI, token string, appContainer *container.Container) *Bot {
	b := &Bot{
		api:   api,
		token: token,
		app:   appContainer,
	}
	b.download = b.downloadFile
	return b
}

// Run запускает основной цикл обработки сообщений до отмены ctx
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}

	user, err := b.app.UserService.Get(ctx, msg.From.ID, msg.Chat.ID)
	if err != nil {
		log.Printf("Error getting user: %v", err)
		return
	}

	switch {
	case msg.IsCommand():
		b.handleCommand(ctx, msg)
	case len(msg.Photo) > 0:
		b.handlePhoto(ctx, msg, user)
	case msg.Location != nil:
		b.handleLocation(ctx, msg)
	default:
		b.sendMessage(msg.Chat.ID, msgSendPhoto)
	}
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	userID, chatID := msg.From.ID, msg.Chat.ID

	switch msg.Command() {
	case "start":
		b.cancel(ctx, userID, chatID)
		b.sendMessage(chatID, msgStart)

	case "help":
		b.sendMessage(chatID, msgHelp)

	case "tryon":
		if _, err := b.app.UserService.BeginTryOn(ctx, userID, chatID); err != nil {
			log.Printf("Error saving user: %v", err)
		}
		b.sendMessage(chatID, msgAwaitingBody)

	case "cancel":
		b.cancel(ctx, userID, chatID)
		b.sendMessage(chatID, msgCancelled)

	default:
		b.sendMessage(chatID, msgUnknownCommand)
	}
}

// handlePhoto ведёт пользователя по шагам примерки
func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message, user *entity.User) {
	chatID := msg.Chat.ID

	if user.State != entity.StateAwaitingBodyPhoto && user.State != entity.StateAwaitingClothingPhoto {
		b.sendMessage(chatID, msgSendPhoto)
		return
	}

	// Получаем файл с максимальным разрешением
	photo := msg.Photo[len(msg.Photo)-1]

	imageData, err := b.download(ctx, photo.FileID)
	if err != nil {
		log.Printf("Error downloading photo: %v", err)
		b.sendMessage(chatID, msgProcessingError)
		b.cancel(ctx, user.ID, chatID)
		return
	}

	if user.State == entity.StateAwaitingBodyPhoto {
		if _, err := b.app.SessionService.AcceptBodyPhoto(ctx, user.ID, chatID, imageData); err != nil {
			log.Printf("Error saving body photo: %v", err)
			b.sendMessage(chatID, msgProcessingError)
			return
		}
		b.sendMessage(chatID, msgAwaitingClothing)
		return
	}

	b.sendMessage(chatID, msgProcessing)

	result, err := b.app.SessionService.AcceptClothingPhoto(ctx, user.ID, chatID, imageData)
	switch {
	case errors.Is(err, entity.ErrNoBodyDetected), errors.Is(err, entity.ErrMissingLandmark):
		b.sendMessage(chatID, msgNoBody)
		return
	case errors.Is(err, app.ErrBodyPhotoMissing):
		b.sendMessage(chatID, msgAwaitingBody)
		if _, err := b.app.UserService.BeginTryOn(ctx, user.ID, chatID); err != nil {
			log.Printf("Error saving user: %v", err)
		}
		return
	case err != nil:
		log.Printf("Error trying on: %v", err)
		b.sendMessage(chatID, msgProcessingError)
		return
	}

	out := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "tryon-" + result.ID + ".jpg", Bytes: result.Image})
	out.Caption = msgTryOnDone
	if _, err := b.api.Send(out); err != nil {
		log.Printf("Error sending photo: %v", err)
	}
}

// handleLocation отвечает погодой и советом по одежде
func (b *Bot) handleLocation(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	weather, err := b.app.WeatherService.Analyze(ctx, msg.Location.Latitude, msg.Location.Longitude)
	if err != nil {
		log.Printf("Error getting weather: %v", err)
		b.sendMessage(chatID, msgWeatherError)
		return
	}

	temp, cond := weather.Temperature, weather.Condition
	suggestion := b.app.OutfitService.Suggest(ctx, entity.WeatherInput{Temperature: &temp, Condition: &cond}, "")

	b.sendMessage(chatID, formatWeather(weather, suggestion))
}

func formatWeather(w *entity.Weather, s *entity.OutfitSuggestion) string {
	text := fmt.Sprintf("🌡 %.1f°C, %s", w.Temperature, w.Condition)
	if w.City != "" {
		text += " — " + w.City
	}
	text += "\n👕 " + s.Suggestion
	if s.Details != "" {
		text += "\n\n" + s.Details
	}
	return text
}

func (b *Bot) cancel(ctx context.Context, userID, chatID int64) {
	if _, err := b.app.SessionService.Cancel(ctx, userID, chatID); err != nil {
		log.Printf("Error saving user: %v", err)
	}
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(b.token), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}
