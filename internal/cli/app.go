package cli

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/avolkov/backoffice/internal/api"
	"github.com/avolkov/backoffice/internal/config"
	"github.com/avolkov/backoffice/internal/filex"
	"github.com/avolkov/backoffice/internal/grid"
	"github.com/avolkov/backoffice/internal/logging"
	"github.com/avolkov/backoffice/internal/models"
	"github.com/avolkov/backoffice/internal/repositories/credentials"
	"github.com/avolkov/backoffice/internal/services"
	"github.com/avolkov/backoffice/internal/session"

	_ "modernc.org/sqlite"
)

// App wires configuration, local credential storage, the API client, the
// session manager and the entity services behind the interactive REPL.
type App struct {
	config  *config.Config
	log     logging.Logger
	session *session.Manager

	products   *services.ProductService
	categories *services.CategoryService
	orders     *services.OrderService
	users      *services.UserService
	images     *services.ImageService

	notifier grid.Notifier
	reader   *bufio.Reader

	// reference data for editors, refreshed by the list commands
	productCache  []models.Product
	categoryCache []models.Category
	userCache     []models.User
	currentOrder  *models.Order
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	if log == nil {
		log = logging.NewNop()
	}

	ctx := context.Background()

	if err := filex.EnsureParentDir(c.DatabasePath); err != nil {
		return nil, err
	}

	db, err := credentials.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}
	store := credentials.NewSQLiteRepository(db)

	// The API client asks the session manager for the current token, and
	// the manager talks to the backend through that same client. The
	// closure breaks the cycle: sess is assigned before any request runs.
	var sess *session.Manager
	httpClient := &http.Client{Timeout: c.RequestTimeout}
	apiClient := api.New(c.BaseURL, httpClient, func() string {
		if sess == nil {
			return ""
		}
		return sess.Token()
	}, log)
	sess = session.NewManager(apiClient, store, log)

	return &App{
		config:     c,
		log:        log,
		session:    sess,
		products:   services.NewProductService(apiClient, log),
		categories: services.NewCategoryService(apiClient, log),
		orders:     services.NewOrderService(apiClient, log),
		users:      services.NewUserService(apiClient, log),
		images:     services.NewImageService(apiClient, log),
		notifier:   &printNotifier{},
		reader:     bufio.NewReader(os.Stdin),
	}, nil
}

// Run restores a persisted session and blocks in the REPL until the user
// exits.
func (a *App) Run(ctx context.Context) {
	a.session.Initialize(ctx)
	fmt.Println("Back-office CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}

func (a *App) isLoggedIn() bool {
	return a.session.Snapshot().Authenticated()
}

func (a *App) isAdmin() bool {
	return a.session.Snapshot().User.IsAdmin()
}

func (a *App) getStatus() string {
	snap := a.session.Snapshot()
	if snap.User == nil {
		return "(anonymous)"
	}
	s := snap.User.Email
	if snap.User.IsAdmin() {
		s += " admin"
	}
	return fmt.Sprintf("(%s)", s)
}

// printNotifier reports grid outcomes straight to the terminal.
type printNotifier struct{}

func (printNotifier) Success(msg string) { printlnFn("OK:", msg) }
func (printNotifier) Warning(msg string) { printlnFn("Warning:", msg) }
func (printNotifier) Error(msg string)   { printlnFn("Error:", msg) }
