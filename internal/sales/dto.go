package sales

import "github.com/google/uuid"

// CreateSaleInput is the POST /sales payload.
type CreateSaleInput struct {
	CustomerName     string          `json:"customerName" validate:"required,min=1,max=200"`
	CustomerDocument *string         `json:"customerDocument,omitempty" validate:"omitempty,max=50"`
	PaymentMethod    string          `json:"paymentMethod" validate:"required,min=1,max=50"`
	Items            []LineItemInput `json:"items" validate:"required,min=1,dive"`
}

// LineItemInput is one requested line. Unit price and subtotal are optional
// client echoes; when present they must match the authoritative catalog
// price exactly, and the persisted values always come from the catalog.
type LineItemInput struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
	UnitPrice int       `json:"unitPrice,omitempty" validate:"omitempty,gte=0"`
	Subtotal  int       `json:"subtotal,omitempty" validate:"omitempty,gte=0"`
}
