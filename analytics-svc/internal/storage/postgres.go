package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ginraidee/analytics-svc/internal/domain"
)

// PostgresRepository reads the tables food-svc writes and owns the admins table.
type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) EnsureSchema() error {
	_, err := r.DB.Exec(`
		CREATE TABLE IF NOT EXISTS admins (
			id BIGSERIAL PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure admins table: %w", err)
	}
	return nil
}

func (r *PostgresRepository) AdminByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	var a domain.Admin
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, username, password_hash FROM admins WHERE username = $1", username,
	).Scan(&a.ID, &a.Username, &a.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAdminNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *PostgresRepository) CountAdmins(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM admins").Scan(&n)
	return n, err
}

func (r *PostgresRepository) CreateAdmin(ctx context.Context, username, passwordHash string) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO admins (username, password_hash) VALUES ($1, $2) ON CONFLICT (username) DO NOTHING",
		username, passwordHash)
	return err
}

func (r *PostgresRepository) Dashboard(ctx context.Context) (domain.DashboardStats, error) {
	var s domain.DashboardStats
	counts := []struct {
		dst   *int
		query string
	}{
		{&s.TotalUsers, "SELECT COUNT(*) FROM users"},
		{&s.UsersToday, "SELECT COUNT(*) FROM users WHERE created_at >= CURRENT_DATE"},
		{&s.TotalSelections, "SELECT COUNT(*) FROM selections"},
		{&s.SelectionsToday, "SELECT COUNT(*) FROM selections WHERE selected_at >= CURRENT_DATE"},
		{&s.PageViewsToday, "SELECT COUNT(*) FROM page_views WHERE viewed_at >= CURRENT_DATE"},
	}
	for _, c := range counts {
		if err := r.DB.QueryRowContext(ctx, c.query).Scan(c.dst); err != nil {
			return s, fmt.Errorf("dashboard `%s`: %w", c.query, err)
		}
	}

	var err error
	if s.UsersByDay, err = r.dailyCounts(ctx, "users", "created_at"); err != nil {
		return s, err
	}
	if s.SelectionsByDay, err = r.dailyCounts(ctx, "selections", "selected_at"); err != nil {
		return s, err
	}
	return s, nil
}

// dailyCounts groups the last 7 days of table by the date of column, newest first.
// table and column are never user input.
func (r *PostgresRepository) dailyCounts(ctx context.Context, table, column string) ([]domain.DailyCount, error) {
	rows, err := r.DB.QueryContext(ctx, fmt.Sprintf(`
		SELECT TO_CHAR(%[2]s::date, 'YYYY-MM-DD') AS date, COUNT(*)
		FROM %[1]s
		WHERE %[2]s >= CURRENT_DATE - INTERVAL '7 days'
		GROUP BY 1
		ORDER BY 1 DESC
	`, table, column))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.DailyCount{}
	for rows.Next() {
		var d domain.DailyCount
		if err := rows.Scan(&d.Date, &d.Count); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) PopularFoods(ctx context.Context, days, limit int) ([]domain.FoodCount, error) {
	return r.foodCounts(ctx, `
		SELECT food_id, COUNT(*) AS selection_count
		FROM selections
		WHERE selected_at >= NOW() - make_interval(days => $1)
		GROUP BY food_id
		ORDER BY selection_count DESC
		LIMIT $2
	`, days, limit)
}

func (r *PostgresRepository) SelectionCounts(ctx context.Context) ([]domain.FoodCount, error) {
	return r.foodCounts(ctx, "SELECT food_id, COUNT(*) FROM selections GROUP BY food_id")
}

func (r *PostgresRepository) TopSelectedToday(ctx context.Context, limit int) ([]domain.FoodCount, error) {
	return r.foodCounts(ctx, `
		SELECT food_id, COUNT(*) AS score
		FROM selections
		WHERE selected_at >= CURRENT_DATE
		GROUP BY food_id
		ORDER BY score DESC
		LIMIT $1
	`, limit)
}

func (r *PostgresRepository) TopSelectedAllTime(ctx context.Context, limit int) ([]domain.FoodCount, error) {
	return r.foodCounts(ctx, `
		SELECT food_id, COUNT(*) AS score
		FROM selections
		GROUP BY food_id
		ORDER BY score DESC
		LIMIT $1
	`, limit)
}

func (r *PostgresRepository) FeedbackTotals(ctx context.Context) (int, int, error) {
	var likes, dislikes int
	err := r.DB.QueryRowContext(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE action = 'like'),
			COUNT(*) FILTER (WHERE action = 'dislike')
		FROM feedback
	`).Scan(&likes, &dislikes)
	return likes, dislikes, err
}

func (r *PostgresRepository) TopFeedback(ctx context.Context, action string, limit int) ([]domain.FoodCount, error) {
	return r.foodCounts(ctx, `
		SELECT food_id, COUNT(*) AS score
		FROM feedback
		WHERE action = $1
		GROUP BY food_id
		ORDER BY score DESC
		LIMIT $2
	`, action, limit)
}

func (r *PostgresRepository) foodCounts(ctx context.Context, query string, args ...interface{}) ([]domain.FoodCount, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.FoodCount{}
	for rows.Next() {
		var fc domain.FoodCount
		if err := rows.Scan(&fc.FoodID, &fc.Score); err != nil {
			return nil, err
		}
		out = append(out, fc)
	}
	return out, rows.Err()
}

const userColumns = "id, created_at, last_visit, visit_count"

func (r *PostgresRepository) RecentUsers(ctx context.Context, limit int) ([]domain.User, error) {
	return r.users(ctx, "SELECT "+userColumns+" FROM users ORDER BY last_visit DESC LIMIT $1", limit)
}

func (r *PostgresRepository) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, int, error) {
	users, err := r.users(ctx, "SELECT "+userColumns+" FROM users ORDER BY last_visit DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&total); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *PostgresRepository) users(ctx context.Context, query string, args ...interface{}) ([]domain.User, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.User{}
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.CreatedAt, &u.LastVisit, &u.VisitCount); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetUser(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	err := r.DB.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id).
		Scan(&u.ID, &u.CreatedAt, &u.LastVisit, &u.VisitCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *PostgresRepository) UserSelections(ctx context.Context, id string, limit int) ([]domain.UserSelection, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT food_id, selected_at
		FROM selections
		WHERE user_id = $1
		ORDER BY selected_at DESC
		LIMIT $2
	`, id, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.UserSelection{}
	for rows.Next() {
		var s domain.UserSelection
		if err := rows.Scan(&s.FoodID, &s.SelectedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// DeleteUser removes the user and every row keyed by it in one transaction.
func (r *PostgresRepository) DeleteUser(ctx context.Context, id string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"selections", "feedback", "page_views"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE user_id = $1", id); err != nil {
			return fmt.Errorf("delete %s: %w", table, err)
		}
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrUserNotFound
	}
	return tx.Commit()
}
