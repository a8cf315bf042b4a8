package enums

import "fmt"

// SequenceKind selects which day-scoped counter a document draws its
// human-readable number from.
type SequenceKind string

const (
	SequenceKindSale  SequenceKind = "sale"
	SequenceKindOrder SequenceKind = "order"
)

// Prefix returns the letter embedded in the generated sequence number.
func (k SequenceKind) Prefix() string {
	switch k {
	case SequenceKindSale:
		return "V"
	case SequenceKindOrder:
		return "O"
	default:
		return "X"
	}
}

func (k SequenceKind) IsValid() bool {
	switch k {
	case SequenceKindSale, SequenceKindOrder:
		return true
	default:
		return false
	}
}

func ParseSequenceKind(raw string) (SequenceKind, error) {
	kind := SequenceKind(raw)
	if !kind.IsValid() {
		return "", fmt.Errorf("invalid sequence kind %q", raw)
	}
	return kind, nil
}
