package orders

import "github.com/google/uuid"

// CreateOrderInput is the POST /orders payload. The customer id comes from
// the access token, never from the body.
type CreateOrderInput struct {
	Address       string          `json:"address" validate:"required,min=1,max=500"`
	PaymentMethod string          `json:"paymentMethod" validate:"required,min=1,max=50"`
	TotalAmount   int             `json:"totalAmount" validate:"required,gt=0"`
	Items         []LineItemInput `json:"items" validate:"required,min=1,dive"`

	CustomerID uuid.UUID `json:"-"`
}

// LineItemInput is one requested line. Declared prices are verified against
// the catalog with exact cents comparison; the stored values are always the
// server-side ones.
type LineItemInput struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
	UnitPrice int       `json:"unitPrice,omitempty" validate:"omitempty,gte=0"`
	Subtotal  int       `json:"subtotal,omitempty" validate:"omitempty,gte=0"`
}
