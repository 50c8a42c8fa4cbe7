package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"ginraidee/food-svc/internal/domain"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) InsertFeedback(ctx context.Context, rec *domain.FeedbackRecord) error {
	return r.DB.QueryRowContext(ctx, `
		INSERT INTO feedback (user_id, food_id, action)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, rec.UserID, rec.FoodID, string(rec.Action)).Scan(&rec.ID, &rec.CreatedAt)
}

func (r *PostgresRepository) InsertSelection(ctx context.Context, rec *domain.SelectionRecord) error {
	return r.DB.QueryRowContext(ctx, `
		INSERT INTO selections (user_id, food_id)
		VALUES ($1, $2)
		RETURNING id, selected_at
	`, rec.UserID, rec.FoodID).Scan(&rec.ID, &rec.SelectedAt)
}

func (r *PostgresRepository) DislikedSince(ctx context.Context, userID string, since time.Time) ([]int, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT DISTINCT food_id FROM feedback
		WHERE user_id = $1 AND action = 'dislike' AND created_at >= $2
	`, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *PostgresRepository) FeedbackCountsSince(ctx context.Context, foodID int, since time.Time) (int, int, error) {
	var likes, dislikes int
	err := r.DB.QueryRowContext(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE action = 'like'),
			COUNT(*) FILTER (WHERE action = 'dislike')
		FROM feedback
		WHERE food_id = $1 AND created_at >= $2
	`, foodID, since).Scan(&likes, &dislikes)
	return likes, dislikes, err
}

func (r *PostgresRepository) GetUser(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, created_at, last_visit, visit_count
		FROM users WHERE id = $1
	`, id).Scan(&u.ID, &u.CreatedAt, &u.LastVisit, &u.VisitCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *PostgresRepository) CreateUser(ctx context.Context, user *domain.User) error {
	return r.DB.QueryRowContext(ctx, `
		INSERT INTO users (id) VALUES ($1)
		RETURNING created_at, last_visit, visit_count
	`, user.ID).Scan(&user.CreatedAt, &user.LastVisit, &user.VisitCount)
}

func (r *PostgresRepository) TouchUser(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE users SET last_visit = NOW(), visit_count = visit_count + 1
		WHERE id = $1
	`, id)
	return err
}

func (r *PostgresRepository) InsertPageView(ctx context.Context, pv *domain.PageView) error {
	return r.DB.QueryRowContext(ctx, `
		INSERT INTO page_views (user_id, page) VALUES ($1, $2)
		RETURNING viewed_at
	`, pv.UserID, pv.Page).Scan(&pv.ViewedAt)
}

func (r *PostgresRepository) ListSelections(ctx context.Context, userID string, limit int) ([]domain.SelectionRecord, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, user_id, food_id, selected_at
		FROM selections
		WHERE user_id = $1
		ORDER BY selected_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.SelectionRecord
	for rows.Next() {
		var s domain.SelectionRecord
		if err := rows.Scan(&s.ID, &s.UserID, &s.FoodID, &s.SelectedAt); err != nil {
			continue
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// EnsureSchema creates the append-only analytics tables. Rows are never
// updated or expired by the application.
func (r *PostgresRepository) EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			last_visit TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			visit_count INTEGER NOT NULL DEFAULT 1
		)`,
		`CREATE TABLE IF NOT EXISTS feedback (
			id BIGSERIAL PRIMARY KEY,
			user_id TEXT NOT NULL,
			food_id INTEGER NOT NULL,
			action TEXT NOT NULL CHECK (action IN ('like', 'dislike')),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS selections (
			id BIGSERIAL PRIMARY KEY,
			user_id TEXT NOT NULL,
			food_id INTEGER NOT NULL,
			selected_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS page_views (
			id BIGSERIAL PRIMARY KEY,
			user_id TEXT NOT NULL,
			page TEXT NOT NULL,
			viewed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		"CREATE INDEX IF NOT EXISTS idx_feedback_user_created ON feedback (user_id, created_at)",
		"CREATE INDEX IF NOT EXISTS idx_feedback_food_created ON feedback (food_id, created_at)",
		"CREATE INDEX IF NOT EXISTS idx_selections_user_selected ON selections (user_id, selected_at)",
	}
	for _, stmt := range statements {
		if _, err := r.DB.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", stmt, err)
		}
	}
	return nil
}
