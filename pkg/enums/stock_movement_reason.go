package enums

// StockMovementReason records why a product's stock changed.
type StockMovementReason string

const (
	StockMovementReasonSale    StockMovementReason = "sale"
	StockMovementReasonOrder   StockMovementReason = "order"
	StockMovementReasonRestock StockMovementReason = "restock"
)

func (r StockMovementReason) IsValid() bool {
	switch r {
	case StockMovementReasonSale, StockMovementReasonOrder, StockMovementReasonRestock:
		return true
	default:
		return false
	}
}
