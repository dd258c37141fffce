package repo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/dbpg"

	"waitlist/internal/model"
)

var (
	ErrSoldOut          = errors.New("campaign sold out")
	ErrCampaignNotFound = errors.New("campaign not found")
)

type Repository interface {
	GetCampaign(ctx context.Context) (*model.Campaign, error)
	CountOrders(ctx context.Context) (int, error)
	CreateOrderTx(ctx context.Context, email string) (*model.Order, error)
	GetAllOrders(ctx context.Context) ([]model.Order, error)
	DeleteAllOrders(ctx context.Context) error
	MigrateUp(migrationsDir string) error
	MigrateDown(migrationsDir string) error
}

type repository struct {
	db  *dbpg.DB
	log *zerolog.Logger
}

func NewRepository(db *dbpg.DB, log *zerolog.Logger) (Repository, error) {
	if db == nil {
		return nil, fmt.Errorf("db cannot be nil")
	}
	if err := db.Master.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}
	return &repository{db: db, log: log}, nil
}

func (r *repository) MigrateUp(migrationsDir string) error {
	files, err := filepath.Glob(filepath.Join(migrationsDir, "*.up.sql"))
	if err != nil {
		return fmt.Errorf("failed to read migration files: %w", err)
	}

	for _, file := range files {
		sqlBytes, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}

		if _, err := r.db.ExecContext(context.Background(), string(sqlBytes)); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", file, err)
		}
	}

	r.log.Info().Msgf("Migrations applied successfully from %s", migrationsDir)
	return nil
}

func (r *repository) MigrateDown(migrationsDir string) error {
	files, err := filepath.Glob(filepath.Join(migrationsDir, "*.down.sql"))
	if err != nil {
		return fmt.Errorf("failed to read rollback files: %w", err)
	}

	for _, file := range files {
		sqlBytes, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read rollback file %s: %w", file, err)
		}

		if _, err := r.db.ExecContext(context.Background(), string(sqlBytes)); err != nil {
			return fmt.Errorf("failed to rollback migration %s: %w", file, err)
		}
	}

	r.log.Info().Msgf("Migrations rolled back successfully from %s", migrationsDir)
	return nil
}

func (r *repository) GetCampaign(ctx context.Context) (*model.Campaign, error) {
	query := `
		SELECT id, name, capacity, created_at
		FROM campaign
		ORDER BY id
		LIMIT 1
	`
	row := r.db.QueryRowContext(ctx, query)

	var c model.Campaign
	if err := row.Scan(&c.ID, &c.Name, &c.Capacity, &c.CreatedAt); err != nil {
		return nil, ErrCampaignNotFound
	}
	return &c, nil
}

func (r *repository) CountOrders(ctx context.Context) (int, error) {
	var count int
	row := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}

// CreateOrderTx performs the whole admission inside one transaction: the
// campaign row is locked FOR UPDATE, so concurrent buyers serialize on it
// and the count-then-insert below can never admit past capacity.
func (r *repository) CreateOrderTx(ctx context.Context, email string) (*model.Order, error) {
	tx, err := r.db.Master.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	var campaign model.Campaign
	err = tx.QueryRowContext(ctx, `
		SELECT id, capacity
		FROM campaign
		ORDER BY id
		LIMIT 1
		FOR UPDATE
	`).Scan(&campaign.ID, &campaign.Capacity)
	if err != nil {
		_ = tx.Rollback()
		return nil, ErrCampaignNotFound
	}

	var count int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count)
	if err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	if count >= campaign.Capacity {
		_ = tx.Rollback()
		return nil, ErrSoldOut
	}

	order := &model.Order{
		ID:        uuid.New(),
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, email, created_at)
		VALUES ($1, $2, $3)
	`, order.ID, order.Email, order.CreatedAt)
	if err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return order, nil
}

func (r *repository) GetAllOrders(ctx context.Context) ([]model.Order, error) {
	query := `
		SELECT id, email, created_at
		FROM orders
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := make([]model.Order, 0)
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.Email, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read orders: %w", err)
	}
	return orders, nil
}

func (r *repository) DeleteAllOrders(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM orders`); err != nil {
		return fmt.Errorf("failed to delete orders: %w", err)
	}
	return nil
}
