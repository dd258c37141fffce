package repo

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"waitlist/internal/model"
)

// Memory is an in-memory Repository with the same admission semantics as
// the Postgres implementation. The mutex plays the role of the campaign
// row lock.
type Memory struct {
	mu       sync.Mutex
	campaign model.Campaign
	orders   []model.Order
}

func NewMemory(capacity int) *Memory {
	return &Memory{
		campaign: model.Campaign{
			ID:        1,
			Name:      "drop",
			Capacity:  capacity,
			CreatedAt: time.Now().UTC(),
		},
	}
}

func (m *Memory) GetCampaign(ctx context.Context) (*model.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.campaign
	return &c, nil
}

func (m *Memory) CountOrders(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.orders), nil
}

func (m *Memory) CreateOrderTx(ctx context.Context, email string) (*model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.orders) >= m.campaign.Capacity {
		return nil, ErrSoldOut
	}

	order := model.Order{
		ID:        uuid.New(),
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	m.orders = append(m.orders, order)
	return &order, nil
}

func (m *Memory) GetAllOrders(ctx context.Context) ([]model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Insertion order is chronological; return newest first.
	orders := make([]model.Order, 0, len(m.orders))
	for i := len(m.orders) - 1; i >= 0; i-- {
		orders = append(orders, m.orders[i])
	}
	return orders, nil
}

func (m *Memory) DeleteAllOrders(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = nil
	return nil
}

func (m *Memory) MigrateUp(migrationsDir string) error   { return nil }
func (m *Memory) MigrateDown(migrationsDir string) error { return nil }
