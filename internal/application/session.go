package app

import (
	"context"
	"errors"
	"sync"

	"drip-backend/internal/domain/entity"
)

// ErrBodyPhotoMissing примерка запрошена до фото пользователя.
var ErrBodyPhotoMissing = errors.New("body photo is not found")

// TryOnSessionService ведёт пользователя бота по примерке в два шага.
type TryOnSessionService struct {
	users  *UserService
	tryOn  *TryOnService
	bodies map[int64][]byte
	mu     sync.RWMutex
}

// NewTryOnSessionService создаёт сервис, который помнит фото пользователя между сообщениями.
func NewTryOnSessionService(users *UserService, tryOn *TryOnService) *TryOnSessionService {
	return &TryOnSessionService{
		users:  users,
		tryOn:  tryOn,
		bodies: make(map[int64][]byte),
	}
}

// AcceptBodyPhoto сохраняет фото пользователя и ждёт фото одежды.
func (s *TryOnSessionService) AcceptBodyPhoto(ctx context.Context, userID, chatID int64, photo []byte) (*entity.User, error) {
	s.mu.Lock()
	s.bodies[userID] = photo
	s.mu.Unlock()
	return s.users.SetState(ctx, userID, chatID, entity.StateAwaitingClothingPhoto)
}

// AcceptClothingPhoto примеряет одежду на сохранённое фото.
// Пользователь возвращается в главное меню при любом исходе, фото забывается.
func (s *TryOnSessionService) AcceptClothingPhoto(ctx context.Context, userID, chatID int64, photo []byte) (*entity.TryOnResult, error) {
	s.mu.Lock()
	body, ok := s.bodies[userID]
	delete(s.bodies, userID)
	s.mu.Unlock()

	if _, err := s.users.SetState(ctx, userID, chatID, entity.StateProcessing); err != nil {
		return nil, err
	}
	defer func() {
		_, _ = s.users.SetState(context.WithoutCancel(ctx), userID, chatID, entity.StateMainMenu)
	}()

	if !ok || len(body) == 0 {
		return nil, ErrBodyPhotoMissing
	}

	return s.tryOn.TryOn(ctx, body, photo)
}

// Cancel сбрасывает сессию.
func (s *TryOnSessionService) Cancel(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	s.mu.Lock()
	delete(s.bodies, userID)
	s.mu.Unlock()
	return s.users.Cancel(ctx, userID, chatID)
}
