package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"
)

const (
	MsgInvalidJSON     = "Invalid JSON format"
	MsgSoldOut         = "Campaign Sold Out!"
	MsgOrderPlaced     = "Order placed! Check your email for confirmation."
	MsgCampaignReset   = "Campaign has been reset"
	MsgTooManyAttempts = "Too many attempts, please try again later."
	MsgInternalError   = "Service is currently unavailable. Please try again later."
)

type BuyRequest struct {
	Email string `json:"email" validate:"required,email,max=254"`
}

type BuyResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type StatusResponse struct {
	Remaining int  `json:"remaining"`
	SoldOut   bool `json:"soldOut"`
}

type OrderResponse struct {
	ID        uuid.UUID `json:"_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type ResetResponse struct {
	Message string `json:"message"`
}

// OrderConfirmationMessage is what the buy handler publishes to RabbitMQ
// for the confirmation mail worker.
type OrderConfirmationMessage struct {
	OrderID   uuid.UUID `json:"order_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func BadRequestError(c *ginext.Context, msg string) {
	c.JSON(400, BuyResponse{Success: false, Message: msg})
}

func SoldOutError(c *ginext.Context) {
	BadRequestError(c, MsgSoldOut)
}

func InternalServerError(c *ginext.Context) {
	c.JSON(500, BuyResponse{Success: false, Message: MsgInternalError})
}

func SuccessBuyResponse(c *ginext.Context) {
	c.JSON(200, BuyResponse{Success: true, Message: MsgOrderPlaced})
}
