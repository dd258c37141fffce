package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/ginext"

	"waitlist/internal/dto"
	"waitlist/internal/inventory"
	"waitlist/internal/repo"
	"waitlist/pkg/validator"
)

type Service interface {
	Status(ctx *ginext.Context)
	Orders(ctx *ginext.Context)
	Buy(ctx *ginext.Context)
	Reset(ctx *ginext.Context)
}

// Publisher is the slice of the rabbit client the service needs. A nil
// publisher disables confirmation messages without affecting admission.
type Publisher interface {
	Publish(message []byte) error
}

type service struct {
	repo repo.Repository
	log  *zerolog.Logger
	pub  Publisher
}

func NewService(repo repo.Repository, logger *zerolog.Logger, pub Publisher) Service {
	return &service{
		repo: repo,
		log:  logger,
		pub:  pub,
	}
}

func (s *service) Status(ctx *ginext.Context) {
	campaign, err := s.repo.GetCampaign(ctx.Request.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("failed to load campaign")
		dto.InternalServerError(ctx)
		return
	}

	count, err := s.repo.CountOrders(ctx.Request.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("failed to count orders")
		dto.InternalServerError(ctx)
		return
	}

	status := inventory.Compute(count, campaign.Capacity)
	ctx.JSON(200, dto.StatusResponse{
		Remaining: status.Remaining,
		SoldOut:   status.SoldOut,
	})
}

func (s *service) Orders(ctx *ginext.Context) {
	orders, err := s.repo.GetAllOrders(ctx.Request.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list orders")
		dto.InternalServerError(ctx)
		return
	}

	resp := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, dto.OrderResponse{
			ID:        o.ID,
			Email:     o.Email,
			CreatedAt: o.CreatedAt,
		})
	}
	ctx.JSON(200, resp)
}

func (s *service) Buy(ctx *ginext.Context) {
	var req dto.BuyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadRequestError(ctx, dto.MsgInvalidJSON)
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadRequestError(ctx, fmt.Sprintf("%v", verr))
		return
	}

	order, err := s.repo.CreateOrderTx(ctx.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, repo.ErrSoldOut) {
			dto.SoldOutError(ctx)
			return
		}
		s.log.Error().Err(err).Msg("failed to create order")
		dto.InternalServerError(ctx)
		return
	}

	s.log.Info().
		Str("order_id", order.ID.String()).
		Str("email", order.Email).
		Msg("order created successfully")

	s.publishConfirmation(order.ID.String(), &dto.OrderConfirmationMessage{
		OrderID:   order.ID,
		Email:     order.Email,
		CreatedAt: order.CreatedAt,
	})

	dto.SuccessBuyResponse(ctx)
}

// publishConfirmation is best effort: a broker outage must not fail an
// admitted order.
func (s *service) publishConfirmation(orderID string, msg *dto.OrderConfirmationMessage) {
	if s.pub == nil {
		return
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		s.log.Error().Err(err).Str("order_id", orderID).Msg("failed to marshal confirmation message")
		return
	}
	if err := s.pub.Publish(payload); err != nil {
		s.log.Error().Err(err).Str("order_id", orderID).Msg("failed to publish confirmation message")
	}
}

func (s *service) Reset(ctx *ginext.Context) {
	if err := s.repo.DeleteAllOrders(ctx.Request.Context()); err != nil {
		s.log.Error().Err(err).Msg("failed to reset campaign")
		dto.InternalServerError(ctx)
		return
	}

	s.log.Info().Msg("campaign reset")
	ctx.JSON(200, dto.ResetResponse{Message: dto.MsgCampaignReset})
}
