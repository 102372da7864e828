package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/rentkeeper/internal/client/models"
	"github.com/dmitrijs2005/rentkeeper/internal/common"
)

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}

func overdueLabel(p *models.Property) string {
	if p.OverdueDays == 0 {
		return "-"
	}
	return fmt.Sprintf("%dd", p.OverdueDays)
}

func printTable(w io.Writer, props []*models.Property) error {
	if len(props) == 0 {
		_, err := fmt.Fprintln(w, "No properties.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tADDRESS\tTENANT\tRENT\tDUE\tSTATUS\tOVERDUE")
	for _, p := range props {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			p.ID, p.Address, p.TenantName, p.RentAmount.StringFixed(2), p.DueDay, p.Status(), overdueLabel(p))
	}
	return tw.Flush()
}

func printDetails(w io.Writer, p *models.Property) error {
	last := "never"
	if p.LastPaymentAt != nil {
		last = formatTime(*p.LastPaymentAt)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", p.ID)
	fmt.Fprintf(tw, "Address:\t%s\n", p.Address)
	fmt.Fprintf(tw, "Tenant:\t%s\n", p.TenantName)
	fmt.Fprintf(tw, "Rent:\t%s\n", p.RentAmount.StringFixed(2))
	fmt.Fprintf(tw, "Due day:\t%d\n", p.DueDay)
	fmt.Fprintf(tw, "Status:\t%s\n", p.Status())
	fmt.Fprintf(tw, "Overdue:\t%s\n", overdueLabel(p))
	fmt.Fprintf(tw, "Last payment:\t%s\n", last)
	fmt.Fprintf(tw, "Contract:\t%s to %s\n", p.ContractStart.Format(common.DateLayout), p.ContractEnd.Format(common.DateLayout))
	fmt.Fprintf(tw, "Created:\t%s\n", formatTime(p.CreatedAt))
	return tw.Flush()
}

func printExports(w io.Writer, history []*models.Export) error {
	if len(history) == 0 {
		_, err := fmt.Fprintln(w, "No exports yet.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CREATED\tNAME\tROWS\tSTATUS\tKEY")
	for _, e := range history {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", formatTime(e.CreatedAt.Local()), e.Name, e.Rows, e.Status, e.Key)
	}
	return tw.Flush()
}
