package enums

import (
	"fmt"
	"strings"
)

// AlertFilter narrows alert listings by resolution state.
type AlertFilter string

const (
	AlertFilterAll      AlertFilter = "all"
	AlertFilterActive   AlertFilter = "active"
	AlertFilterResolved AlertFilter = "resolved"
)

func ParseAlertFilter(raw string) (AlertFilter, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return AlertFilterActive, nil
	}
	filter := AlertFilter(value)
	switch filter {
	case AlertFilterAll, AlertFilterActive, AlertFilterResolved:
		return filter, nil
	default:
		return "", fmt.Errorf("invalid alert filter %q", raw)
	}
}
