package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prizoapp/prizo-cli/internal/client/api"
	"github.com/prizoapp/prizo-cli/internal/client/config"
	"github.com/prizoapp/prizo-cli/internal/client/models"
	"github.com/prizoapp/prizo-cli/internal/client/repositories/holds"
	"github.com/prizoapp/prizo-cli/internal/client/services"
	"github.com/prizoapp/prizo-cli/internal/filex"
	"github.com/prizoapp/prizo-cli/internal/logging"

	_ "modernc.org/sqlite"
)

const stateDBName = "state.db"

type App struct {
	config *config.Config
	log    logging.Logger
	api    api.API
	repo   holds.Repository
	db     *sql.DB
	reader *bufio.Reader

	raffle *models.RaffleConfig

	// mu guards session, which the interrupt goroutine reads while the
	// REPL goroutine may be swapping it in setRaffle.
	mu      sync.Mutex
	session *services.Session

	// remaining mirrors the countdown of the live hold, in nanoseconds,
	// so the prompt can show it without touching the session lock.
	remaining atomic.Int64
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {

	ctx := context.Background()

	dir, err := filex.EnsureStateDir(c.StateDirName)
	if err != nil {
		return nil, fmt.Errorf("error preparing state dir: %w", err)
	}

	db, err := holds.InitDatabase(ctx, filepath.Join(dir, stateDBName))
	if err != nil {
		return nil, fmt.Errorf("error initializing state database: %w", err)
	}

	apiClient, err := api.NewClient(c.APIBaseURL, c.Origin, c.RequestTimeout, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &App{
		config: c,
		log:    log,
		api:    apiClient,
		repo:   holds.NewSQLiteRepository(db),
		db:     db,
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

// osExit is a seam so tests can observe the interrupt path.
var osExit = os.Exit

// Run starts the REPL and blocks until the user exits. An interrupt releases
// the live hold and terminates the process; the REPL cannot be unblocked
// from its stdin read any other way.
func (a *App) Run(ctx context.Context) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer func() {
		signal.Stop(sig)
		close(sig)
	}()

	go a.handleInterrupt(sig)

	a.Root(ctx)

	a.releaseHold()
	_ = a.db.Close()
}

// handleInterrupt waits for a signal, releases the live hold, and exits.
// A closed channel means Run finished normally and nothing is left to do.
func (a *App) handleInterrupt(sig <-chan os.Signal) {
	if _, ok := <-sig; !ok {
		return
	}
	a.releaseHold()
	if a.db != nil {
		_ = a.db.Close()
	}
	osExit(0)
}

// releaseHold cancels the current session's hold, if any. Safe to call more
// than once and from the interrupt goroutine.
func (a *App) releaseHold() {
	a.mu.Lock()
	session := a.session
	a.mu.Unlock()
	if session == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	session.Cancel(ctx, services.ReasonUser)
}

func (a *App) hasRaffle() bool {
	return a.raffle != nil
}

// setRaffle swaps the active raffle, cancelling any hold on the previous one.
func (a *App) setRaffle(cfg *models.RaffleConfig) {
	a.releaseHold()
	a.remaining.Store(0)

	a.raffle = cfg
	uploader := services.NewEvidenceUploader(a.api, cfg.Storage, a.log)
	session := services.NewSession(a.api, a.repo, uploader, cfg.RaffleID, a.log)

	session.OnTick = func(remaining time.Duration) {
		a.remaining.Store(int64(remaining))
	}
	session.OnExpired = func() {
		a.remaining.Store(0)
		printlnFn("\nYour reservation expired and the tickets were released.")
	}

	a.mu.Lock()
	a.session = session
	a.mu.Unlock()
}

func (a *App) holdRemaining() time.Duration {
	return time.Duration(a.remaining.Load())
}
