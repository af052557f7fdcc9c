package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/01moynul/ytgenius-golang/internal/models"
	"github.com/go-sql-driver/mysql"
)

var (
	// ErrNotFound is returned when no profile exists for an identity.
	ErrNotFound = errors.New("profile not found")
	// ErrInsufficientCoins is returned by DebitCoins when the conditional
	// update matched no row.
	ErrInsufficientCoins = errors.New("insufficient coins")
	// ErrProfileExists is returned by CreateProfile when another request
	// created the profile first.
	ErrProfileExists = errors.New("profile already exists")
)

// Store is the datastore contract: balance records plus the append-only
// generation history.
type Store interface {
	GetProfile(ctx context.Context, id string) (*models.Profile, error)
	CreateProfile(ctx context.Context, p *models.Profile) error
	// UpdateCoins overwrites the balance with an absolute value.
	UpdateCoins(ctx context.Context, id string, coins int) error
	// DebitCoins subtracts cost only if the stored balance still covers it.
	DebitCoins(ctx context.Context, id string, cost int) error
	InsertGeneration(ctx context.Context, g *models.Generation) error
	ListGenerations(ctx context.Context, userID string, limit int) ([]models.Generation, error)
	Ping(ctx context.Context) error
}

// SQLStore implements Store on database/sql. The queries only use '?'
// placeholders so the same statements run on MySQL and SQLite.
type SQLStore struct {
	DB *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{DB: db}
}

func (s *SQLStore) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	var p models.Profile
	err := s.DB.QueryRowContext(ctx,
		"SELECT id, email, coins, created_at, updated_at FROM profiles WHERE id = ?", id,
	).Scan(&p.ID, &p.Email, &p.Coins, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &p, nil
}

// AnyProfile returns one profile row, or ErrNotFound on an empty table.
func (s *SQLStore) AnyProfile(ctx context.Context) (*models.Profile, error) {
	var p models.Profile
	err := s.DB.QueryRowContext(ctx,
		"SELECT id, email, coins, created_at, updated_at FROM profiles LIMIT 1",
	).Scan(&p.ID, &p.Email, &p.Coins, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	return &p, nil
}

func (s *SQLStore) CreateProfile(ctx context.Context, p *models.Profile) error {
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	_, err := s.DB.ExecContext(ctx,
		"INSERT INTO profiles (id, email, coins, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		p.ID, p.Email, p.Coins, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrProfileExists
		}
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

func (s *SQLStore) UpdateCoins(ctx context.Context, id string, coins int) error {
	res, err := s.DB.ExecContext(ctx,
		"UPDATE profiles SET coins = ?, updated_at = ? WHERE id = ?",
		coins, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update coins: %w", err)
	}
	return requireOneRow(res, ErrNotFound)
}

func (s *SQLStore) DebitCoins(ctx context.Context, id string, cost int) error {
	res, err := s.DB.ExecContext(ctx,
		"UPDATE profiles SET coins = coins - ?, updated_at = ? WHERE id = ? AND coins >= ?",
		cost, time.Now().UTC(), id, cost,
	)
	if err != nil {
		return fmt.Errorf("failed to debit coins: %w", err)
	}
	return requireOneRow(res, ErrInsufficientCoins)
}

func (s *SQLStore) InsertGeneration(ctx context.Context, g *models.Generation) error {
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now().UTC()
	}
	_, err := s.DB.ExecContext(ctx,
		"INSERT INTO history (id, user_id, task_type, prompt, result, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		g.ID, g.UserID, g.TaskType, g.Prompt, string(g.Result), g.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert generation: %w", err)
	}
	return nil
}

// ListGenerations returns a user's history, newest first.
func (s *SQLStore) ListGenerations(ctx context.Context, userID string, limit int) ([]models.Generation, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, user_id, task_type, prompt, result, created_at
		FROM history
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list generations: %w", err)
	}
	defer rows.Close()

	items := []models.Generation{}
	for rows.Next() {
		var g models.Generation
		var result string
		if err := rows.Scan(&g.ID, &g.UserID, &g.TaskType, &g.Prompt, &result, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan generation: %w", err)
		}
		g.Result = []byte(result)
		items = append(items, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate generations: %w", err)
	}
	return items, nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

func requireOneRow(res sql.Result, notMatched error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return notMatched
	}
	return nil
}

// isDuplicateKey recognizes a primary key violation on either driver.
func isDuplicateKey(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry
	}
	// modernc sqlite reports extended result codes; the low byte is the
	// primary code.
	var liteErr interface{ Code() int }
	if errors.As(err, &liteErr) {
		return liteErr.Code()&0xff == sqliteConstraint
	}
	return false
}

const (
	mysqlDuplicateEntry = 1062
	sqliteConstraint    = 19
)
