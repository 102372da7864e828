package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/rentkeeper/internal/client/client"
	"github.com/dmitrijs2005/rentkeeper/internal/client/config"
	"github.com/dmitrijs2005/rentkeeper/internal/client/lifecycle"
	"github.com/dmitrijs2005/rentkeeper/internal/client/models"
	"github.com/dmitrijs2005/rentkeeper/internal/client/repositories/exports"
	"github.com/dmitrijs2005/rentkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/rentkeeper/internal/client/repositories/properties"
	"github.com/dmitrijs2005/rentkeeper/internal/client/services"
	"github.com/dmitrijs2005/rentkeeper/internal/filex"
	"github.com/dmitrijs2005/rentkeeper/internal/logging"
)

// Authenticator is the session surface of services.AuthService.
type Authenticator interface {
	Register(ctx context.Context, username string, password []byte) error
	Login(ctx context.Context, username string, password []byte) (*services.Identity, error)
	Resume(ctx context.Context) (*services.Identity, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
}

// Reporter is the surface of services.ReportService.
type Reporter interface {
	Export(ctx context.Context, name string, props []*models.Property) (string, error)
	DownloadURL(ctx context.Context, key string) (string, error)
	History(ctx context.Context) ([]*models.Export, error)
}

// PropertyManager is what the commands need from lifecycle.Manager.
type PropertyManager interface {
	Start(ctx context.Context) error
	Stop()
	Properties() []*models.Property
	Filter(f models.StatusFilter) []*models.Property
	Get(id string) (*models.Property, bool)
	Reload(ctx context.Context) error
	RefreshOverdue()
	Reconcile(ctx context.Context) (int, error)
	Add(ctx context.Context, f models.PropertyFields) (*models.Property, error)
	Edit(ctx context.Context, id string, f models.PropertyFields) (*models.Property, error)
	Pay(ctx context.Context, id string) (*models.Property, error)
	Delete(ctx context.Context, id string) error
	SchedulerState() lifecycle.SchedulerState
	NextMonthlyCheck() time.Time
}

// ManagerFactory builds the lifecycle manager for a freshly authenticated user.
type ManagerFactory func(userID string) PropertyManager

type App struct {
	config     *config.Config
	logger     logging.Logger
	auth       Authenticator
	reports    Reporter
	newManager ManagerFactory

	identity *services.Identity
	manager  PropertyManager

	reader  *bufio.Reader
	out     io.Writer
	closers []func() error
}

// NewApp wires local storage, the store client and the services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewTextLogger(os.Stderr, c.LogLevel)

	loc, err := c.Location()
	if err != nil {
		return nil, err
	}

	dbPath, err := filex.EnsureParentDir(c.DatabasePath)
	if err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, dbPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	apiClient, err := client.NewGRPCClient(c.ServerEndpointAddr)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	adapter := properties.NewAdapter(apiClient)
	opts := lifecycle.Options{Location: loc, RefreshInterval: c.RefreshInterval}
	factory := func(userID string) PropertyManager {
		return lifecycle.NewManager(adapter, userID, logger, opts)
	}

	a := newApp(
		c, logger,
		services.NewAuthService(apiClient, metadata.NewSessionStore(db), logger),
		services.NewReportService(apiClient, exports.NewSQLiteRepository(db), logger),
		factory,
		os.Stdin, os.Stdout,
	)
	a.closers = []func() error{apiClient.Close, db.Close}
	return a, nil
}

func newApp(c *config.Config, l logging.Logger, auth Authenticator, reports Reporter, f ManagerFactory, in io.Reader, out io.Writer) *App {
	return &App{
		config:     c,
		logger:     l.With("module", "cli"),
		auth:       auth,
		reports:    reports,
		newManager: f,
		reader:     bufio.NewReader(in),
		out:        out,
	}
}

// Run resumes a stored session if there is one and then blocks in the REPL
// until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.close()

	fmt.Fprintln(a.out, "Welcome to RentKeeper (type 'help' for commands)")
	a.resume(ctx)

	runREPL(ctx, a)
}

func (a *App) close() {
	a.endSession()
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.logger.Warn(context.Background(), "close failed", "error", err)
		}
	}
}

func (a *App) isLoggedIn() bool { return a.manager != nil }

func (a *App) status() string {
	if a.identity == nil {
		return "(guest)"
	}
	return fmt.Sprintf("(%s)", a.identity.Username)
}

// beginSession starts the lifecycle manager for id. A failed initial load
// is reported but the session stays open; timers are already running.
func (a *App) beginSession(ctx context.Context, id *services.Identity) {
	a.endSession()

	a.identity = id
	a.manager = a.newManager(id.UserID)
	if err := a.manager.Start(ctx); err != nil {
		a.reportFailure(ctx, "load properties", err)
	}
}

func (a *App) endSession() {
	if a.manager != nil {
		a.manager.Stop()
	}
	a.manager = nil
	a.identity = nil
}
