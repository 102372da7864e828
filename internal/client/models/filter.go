package models

import (
	"fmt"
	"strings"
)

type StatusFilter string

const (
	StatusAll     StatusFilter = "all"
	StatusPaid    StatusFilter = "paid"
	StatusPending StatusFilter = "pending"
)

func ParseStatusFilter(s string) (StatusFilter, error) {
	switch f := StatusFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case "", StatusAll:
		return StatusAll, nil
	case StatusPaid, StatusPending:
		return f, nil
	default:
		return "", fmt.Errorf("unknown status filter %q (want all, paid or pending)", s)
	}
}

// FilterByStatus keeps the order of props.
func FilterByStatus(props []*Property, f StatusFilter) []*Property {
	if f == StatusAll || f == "" {
		return props
	}
	out := make([]*Property, 0, len(props))
	for _, p := range props {
		if (f == StatusPaid) == p.Paid {
			out = append(out, p)
		}
	}
	return out
}
