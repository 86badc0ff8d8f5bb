// Package services contains application services for the portal CLI.
// This file defines the authentication service: signup, login, session
// verification, logout and the liveness probe.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/placementportal/internal/client/client"
	"github.com/dmitrijs2005/placementportal/internal/client/repositories/session"
	"github.com/dmitrijs2005/placementportal/internal/dbx"
	"github.com/dmitrijs2005/placementportal/internal/server/models"
)

// AuthService defines authentication operations for the CLI.
//
// Register and Login persist the issued token locally so later runs can
// resume the session. WhoAmI verifies the stored token with the server and
// forgets it when the server rejects it.
type AuthService interface {
	Register(ctx context.Context, req client.SignupRequest) (*models.AccountView, error)
	Login(ctx context.Context, email string, password []byte) (*models.AccountView, error)
	WhoAmI(ctx context.Context) (*models.AccountView, error)
	SavedEmail(ctx context.Context) (string, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
}

type authService struct {
	client client.Client
	db     *sql.DB
}

func NewAuthService(c client.Client, db *sql.DB) AuthService {
	return &authService{client: c, db: db}
}

func (a *authService) sessions(db dbx.DBTX) session.Repository {
	return session.NewSQLiteRepository(db)
}

func (a *authService) Register(ctx context.Context, req client.SignupRequest) (*models.AccountView, error) {
	res, err := a.client.Signup(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := a.saveSession(ctx, res); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	return &res.User, nil
}

func (a *authService) Login(ctx context.Context, email string, password []byte) (*models.AccountView, error) {
	res, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		return nil, err
	}
	if err := a.saveSession(ctx, res); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	return &res.User, nil
}

func (a *authService) saveSession(ctx context.Context, res *client.AuthResult) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := a.sessions(tx)
		if err := repo.Set(ctx, session.KeyToken, res.Token); err != nil {
			return err
		}
		return repo.Set(ctx, session.KeyEmail, res.User.Email)
	})
}

func (a *authService) WhoAmI(ctx context.Context) (*models.AccountView, error) {
	repo := a.sessions(a.db)

	token, err := repo.Get(ctx, session.KeyToken)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, client.ErrNotLoggedIn
	}

	user, err := a.client.Verify(ctx, token)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			if cerr := repo.Delete(ctx, session.KeyToken); cerr != nil {
				return nil, errors.Join(err, cerr)
			}
		}
		return nil, err
	}
	return user, nil
}

func (a *authService) SavedEmail(ctx context.Context) (string, error) {
	return a.sessions(a.db).Get(ctx, session.KeyEmail)
}

func (a *authService) Logout(ctx context.Context) error {
	return a.sessions(a.db).Clear(ctx)
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}
