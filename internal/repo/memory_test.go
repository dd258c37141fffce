package repo

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
)

const testCapacity = 5

type MemoryRepoSuite struct {
	suite.Suite
	repo *Memory
	ctx  context.Context
}

func TestMemoryRepoSuite(t *testing.T) {
	suite.Run(t, new(MemoryRepoSuite))
}

func (s *MemoryRepoSuite) SetupTest() {
	s.repo = NewMemory(testCapacity)
	s.ctx = context.Background()
}

func (s *MemoryRepoSuite) TestCampaign() {
	campaign, err := s.repo.GetCampaign(s.ctx)
	s.Require().NoError(err)
	s.Equal(testCapacity, campaign.Capacity)
}

func (s *MemoryRepoSuite) TestCreateOrder() {
	s.Run("assigns id and timestamp", func() {
		order, err := s.repo.CreateOrderTx(s.ctx, "a@b.com")
		s.Require().NoError(err)
		s.NotEmpty(order.ID)
		s.False(order.CreatedAt.IsZero())
		s.Equal("a@b.com", order.Email)
	})

	s.Run("admits up to capacity, then sells out", func() {
		for i := 1; i < testCapacity; i++ {
			_, err := s.repo.CreateOrderTx(s.ctx, fmt.Sprintf("user%d@example.com", i))
			s.Require().NoError(err)
		}

		_, err := s.repo.CreateOrderTx(s.ctx, "late@example.com")
		s.Require().ErrorIs(err, ErrSoldOut)

		count, err := s.repo.CountOrders(s.ctx)
		s.Require().NoError(err)
		s.Equal(testCapacity, count)
	})
}

func (s *MemoryRepoSuite) TestListNewestFirst() {
	emails := []string{"first@example.com", "second@example.com", "third@example.com"}
	for _, e := range emails {
		_, err := s.repo.CreateOrderTx(s.ctx, e)
		s.Require().NoError(err)
	}

	orders, err := s.repo.GetAllOrders(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(orders, 3)
	s.Equal("third@example.com", orders[0].Email)
	s.Equal("second@example.com", orders[1].Email)
	s.Equal("first@example.com", orders[2].Email)
}

func (s *MemoryRepoSuite) TestDeleteAll() {
	_, err := s.repo.CreateOrderTx(s.ctx, "a@b.com")
	s.Require().NoError(err)

	s.Require().NoError(s.repo.DeleteAllOrders(s.ctx))
	// Idempotent on an already-empty store.
	s.Require().NoError(s.repo.DeleteAllOrders(s.ctx))

	count, err := s.repo.CountOrders(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, count)
}

// Concurrent buyers must never push the order count past capacity.
func (s *MemoryRepoSuite) TestConcurrentAdmission() {
	const buyers = 50

	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted := 0

	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := s.repo.CreateOrderTx(s.ctx, fmt.Sprintf("buyer%d@example.com", i)); err == nil {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	s.Equal(testCapacity, admitted)

	count, err := s.repo.CountOrders(s.ctx)
	s.Require().NoError(err)
	s.Equal(testCapacity, count)
}
