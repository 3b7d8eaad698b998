package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderProcessing OrderStatus = "Processing"
	OrderShipped    OrderStatus = "Shipped"
	OrderDelivered  OrderStatus = "Delivered"
)

type (
	ShippingAddress struct {
		Name    string
		Address string
		City    string
		State   string
		Zip     string
	}

	PaymentCard struct {
		Name   string
		Number string
		Expiry string
		CVC    string
	}

	CheckoutForm struct {
		Shipping ShippingAddress
		Payment  PaymentCard
	}
)

type (
	OrderItem struct {
		ProductID string
		Name      string
		Quantity  int
		Price     decimal.Decimal
	}

	Order struct {
		ID         string
		SessionID  string
		Shipping   ShippingAddress
		CardMasked string
		Items      []OrderItem
		Total      decimal.Decimal
		Status     OrderStatus
		PlacedAt   time.Time
	}
)
