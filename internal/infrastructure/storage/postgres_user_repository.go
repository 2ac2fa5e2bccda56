package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver

	"drip-backend/internal/domain/entity"
	"drip-backend/internal/domain/port"
)

const schemaBotUsers = `
create table if not exists bot_users (
    user_id    bigint primary key,
    chat_id    bigint not null,
    state      text   not null,
    updated_at timestamptz not null default now()
)`

// PostgresUserRepository хранит состояния пользователей в PostgreSQL
type PostgresUserRepository struct {
	DB *sql.DB
}

// OpenPostgres открывает пул соединений через pgx и проверяет связь.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(time.Hour)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db.Ping: %w", err)
	}
	return db, nil
}

// NewPostgresUserRepository создаёт репозиторий и таблицу, если её нет
func NewPostgresUserRepository(ctx context.Context, db *sql.DB) (*PostgresUserRepository, error) {
	if _, err := db.ExecContext(ctx, schemaBotUsers); err != nil {
		return nil, fmt.Errorf("create bot_users: %w", err)
	}
	return &PostgresUserRepository{DB: db}, nil
}

// Get возвращает пользователя по ID, создаёт нового если не найден
func (r *PostgresUserRepository) Get(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	const q = `select user_id, chat_id, state from bot_users where user_id = $1`

	var (
		u     entity.User
		state string
	)
	err := r.DB.QueryRowContext(ctx, q, userID).Scan(&u.ID, &u.ChatID, &state)
	if errors.Is(err, sql.ErrNoRows) {
		user := entity.NewUser(userID, chatID)
		if err := r.Save(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select user %d: %w", userID, err)
	}

	u.State = entity.UserState(state)
	return &u, nil
}

// Save сохраняет состояние пользователя
func (r *PostgresUserRepository) Save(ctx context.Context, user *entity.User) error {
	const q = `
insert into bot_users (user_id, chat_id, state, updated_at)
values ($1, $2, $3, now())
on conflict (user_id) do update
set chat_id = excluded.chat_id, state = excluded.state, updated_at = now()`

	if _, err := r.DB.ExecContext(ctx, q, user.ID, user.ChatID, string(user.State)); err != nil {
		return fmt.Errorf("save user %d: %w", user.ID, err)
	}
	return nil
}

// UpdateState обновляет состояние пользователя
func (r *PostgresUserRepository) UpdateState(ctx context.Context, userID int64, state entity.UserState) error {
	const q = `update bot_users set state = $2, updated_at = now() where user_id = $1`

	if _, err := r.DB.ExecContext(ctx, q, userID, string(state)); err != nil {
		return fmt.Errorf("update state %d: %w", userID, err)
	}
	return nil
}

var _ port.UserRepository = (*PostgresUserRepository)(nil)
