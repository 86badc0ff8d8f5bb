package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/placementportal/internal/client/client"
	"github.com/dmitrijs2005/placementportal/internal/client/config"
	"github.com/dmitrijs2005/placementportal/internal/client/services"
	"github.com/dmitrijs2005/placementportal/internal/server/models"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config      *config.Config
	authService services.AuthService
	db          *sql.DB
	reader      *bufio.Reader
	out         io.Writer

	mu   sync.Mutex
	user *models.AccountView
	Mode Mode
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	db, err := client.InitDatabase(ctx, c.SessionDB)
	if err != nil {
		log.Printf("error initializing session database: %s", err.Error())
		return nil, err
	}

	apiClient := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)
	as := services.NewAuthService(apiClient, db)

	return &App{
		config:      c,
		authService: as,
		db:          db,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}, nil
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Mode != mode {
		a.Mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) setUser(u *models.AccountView) {
	a.mu.Lock()
	a.user = u
	a.mu.Unlock()
}

func (a *App) isLoggedIn() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.user != nil
}

// Run resumes a stored session, then blocks in the REPL until the user
// exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.db.Close()
	a.Root(ctx)
}

// resume restores the last session when the server still accepts its token.
func (a *App) resume(ctx context.Context) {
	u, err := a.authService.WhoAmI(ctx)
	switch {
	case err == nil:
		a.setUser(u)
		a.setMode(ModeOnline)
		log.Printf("Resumed session for %s", u.Email)
	case errors.Is(err, client.ErrUnavailable):
		a.setMode(ModeOffline)
	case errors.Is(err, client.ErrNotLoggedIn):
		a.setMode(ModeOnline)
	default:
		log.Printf("Stored session rejected: %s", err.Error())
		a.setMode(ModeOnline)
	}
}

// StartOnlineStatusWatcher pings the server every interval and flips Mode
// accordingly until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.authService.Ping(pctx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
