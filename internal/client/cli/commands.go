package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/rentkeeper/internal/client/models"
	"github.com/spf13/cobra"
)

// rootCmd builds a fresh command tree. Cobra keeps flag values between
// executions, so every REPL line gets its own tree.
func (a *App) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "rentkeeper",
		Short:         "Track rent payments of your properties",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(a.out)
	root.SetErr(a.out)
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(
		a.simpleCmd("register", "Create an account", a.Register),
		a.simpleCmd("login", "Log in and load your properties", a.Login),
		a.simpleCmd("logout", "End the session and forget it on this machine", a.Logout),
		a.simpleCmd("ping", "Check that the property store is reachable", a.ping),
		a.simpleCmd("status", "Show session and scheduler state", a.showStatus),
		a.listCmd(),
		a.idCmd("show", "Show one property", a.show),
		a.simpleCmd("add", "Register a new property", a.add),
		a.idCmd("edit", "Edit a property", a.edit),
		a.idCmd("pay", "Register this month's payment", a.pay),
		a.deleteCmd(),
		a.simpleCmd("reconcile", "Reset payments recorded in a previous month", a.reconcile),
		a.simpleCmd("refresh", "Reload properties from the store", a.refresh),
		a.exportCmd(),
		a.idCmd("report", "Print a download link for an exported report", a.report),
		a.simpleCmd("exports", "List reports exported from this machine", a.exports),
	)
	return root
}

func (a *App) simpleCmd(use, short string, run func(ctx context.Context) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context())
		},
	}
}

func (a *App) idCmd(name, short string, run func(ctx context.Context, id string) error) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args[0])
		},
	}
}

func (a *App) listCmd() *cobra.Command {
	var statusFlag string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List properties",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := models.ParseStatusFilter(statusFlag)
			if err != nil {
				return err
			}
			return a.list(f)
		},
	}
	cmd.Flags().StringVarP(&statusFlag, "status", "s", string(models.StatusAll), "all, paid or pending")
	return cmd
}

func (a *App) deleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.delete(cmd.Context(), args[0], yes)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func (a *App) exportCmd() *cobra.Command {
	var statusFlag string
	cmd := &cobra.Command{
		Use:   "export [name]",
		Short: "Upload the property list as a CSV report",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := models.ParseStatusFilter(statusFlag)
			if err != nil {
				return err
			}
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			return a.export(cmd.Context(), name, f)
		},
	}
	cmd.Flags().StringVarP(&statusFlag, "status", "s", string(models.StatusAll), "all, paid or pending")
	return cmd
}

func (a *App) session() (PropertyManager, error) {
	if a.manager == nil {
		return nil, errNotLoggedIn
	}
	return a.manager, nil
}

func (a *App) ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := a.auth.Ping(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Property store is reachable.")
	return nil
}

func (a *App) showStatus(context.Context) error {
	m, err := a.session()
	if err != nil {
		return err
	}
	props := m.Properties()
	paid := len(models.FilterByStatus(props, models.StatusPaid))

	fmt.Fprintf(a.out, "User:            %s\n", a.identity.Username)
	fmt.Fprintf(a.out, "Properties:      %d (%d paid, %d pending)\n", len(props), paid, len(props)-paid)
	fmt.Fprintf(a.out, "Monthly reset:   %s, next check %s\n", m.SchedulerState(), formatTime(m.NextMonthlyCheck()))
	return nil
}

func (a *App) list(f models.StatusFilter) error {
	m, err := a.session()
	if err != nil {
		return err
	}
	return printTable(a.out, m.Filter(f))
}

func (a *App) show(_ context.Context, id string) error {
	m, err := a.session()
	if err != nil {
		return err
	}
	p, ok := m.Get(id)
	if !ok {
		return errUnknownID(id)
	}
	return printDetails(a.out, p)
}

func (a *App) add(ctx context.Context) error {
	m, err := a.session()
	if err != nil {
		return err
	}
	f, err := PromptFields(a.reader, a.out, nil)
	if err != nil {
		return err
	}
	p, err := m.Add(ctx, f)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added %s (id %s).\n", p.Address, p.ID)
	return nil
}

func (a *App) edit(ctx context.Context, id string) error {
	m, err := a.session()
	if err != nil {
		return err
	}
	cur, ok := m.Get(id)
	if !ok {
		return errUnknownID(id)
	}
	existing := cur.Fields()
	f, err := PromptFields(a.reader, a.out, &existing)
	if err != nil {
		return err
	}
	p, err := m.Edit(ctx, id, f)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated %s.\n", p.Address)
	return nil
}

func (a *App) pay(ctx context.Context, id string) error {
	m, err := a.session()
	if err != nil {
		return err
	}
	p, err := m.Pay(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Payment registered for %s on %s.\n", p.Address, formatTime(*p.LastPaymentAt))
	return nil
}

func (a *App) delete(ctx context.Context, id string, yes bool) error {
	m, err := a.session()
	if err != nil {
		return err
	}
	p, ok := m.Get(id)
	if !ok {
		return errUnknownID(id)
	}
	if !yes {
		ok, err := Confirm(a.reader, fmt.Sprintf("Delete %s (tenant %s)?", p.Address, p.TenantName), a.out)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(a.out, "Cancelled.")
			return nil
		}
	}
	if err := m.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted %s.\n", p.Address)
	return nil
}

func (a *App) reconcile(ctx context.Context) error {
	m, err := a.session()
	if err != nil {
		return err
	}
	n, err := m.Reconcile(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%d stale payment(s) reset.\n", n)
	return nil
}

func (a *App) refresh(ctx context.Context) error {
	m, err := a.session()
	if err != nil {
		return err
	}
	if err := m.Reload(ctx); err != nil {
		return err
	}
	m.RefreshOverdue()
	fmt.Fprintf(a.out, "%d properties loaded.\n", len(m.Properties()))
	return nil
}

func (a *App) export(ctx context.Context, name string, f models.StatusFilter) error {
	m, err := a.session()
	if err != nil {
		return err
	}
	if name == "" {
		name = "properties.csv"
	}
	key, err := a.reports.Export(ctx, name, m.Filter(f))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Report uploaded, key: %s\n", key)
	return nil
}

func (a *App) report(ctx context.Context, key string) error {
	if _, err := a.session(); err != nil {
		return err
	}
	url, err := a.reports.DownloadURL(ctx, key)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, url)
	return nil
}

func (a *App) exports(ctx context.Context) error {
	if _, err := a.session(); err != nil {
		return err
	}
	history, err := a.reports.History(ctx)
	if err != nil {
		return err
	}
	return printExports(a.out, history)
}
