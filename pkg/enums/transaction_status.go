package enums

// TransactionStatus is the lifecycle state of a committed sale or order.
// Only "completed" is reachable today; the column exists so refunds and
// cancellations can be layered in without a schema change.
type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "completed"
)

func (s TransactionStatus) IsValid() bool {
	return s == TransactionStatusCompleted
}
