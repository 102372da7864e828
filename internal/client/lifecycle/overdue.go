package lifecycle

import (
	"time"

	"github.com/dmitrijs2005/rentkeeper/internal/client/models"
)

// ComputeOverdue returns how many days past dueDay today is within the
// current month. Paid properties are never overdue.
func ComputeOverdue(today time.Time, dueDay int, paid bool) int {
	if paid {
		return 0
	}
	if d := today.Day(); d > dueDay {
		return d - dueDay
	}
	return 0
}

// StampOverdue returns copies of props with OverdueDays recomputed for today.
// The input is not modified.
func StampOverdue(today time.Time, props []*models.Property) []*models.Property {
	out := make([]*models.Property, len(props))
	for i, p := range props {
		c := p.Clone()
		c.OverdueDays = ComputeOverdue(today, c.DueDay, c.Paid)
		out[i] = c
	}
	return out
}
