package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/placementportal/internal/client/client"
	"github.com/dmitrijs2005/placementportal/internal/common"
)

// getText and getPassword are indirections used to facilitate testing.
var getText = GetText
var getPassword = GetPassword

// Register prompts for the signup fields and creates an account. The new
// session is stored and becomes current.
func (a *App) Register(ctx context.Context) error {
	email, err := getText(a.reader, a.out, "Email", "")
	if err != nil {
		return err
	}
	fullName, err := getText(a.reader, a.out, "Full name", "")
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	rollNumber, err := getText(a.reader, a.out, "Roll number (optional)", "")
	if err != nil {
		return err
	}
	department, err := getText(a.reader, a.out, "Department (optional)", "")
	if err != nil {
		return err
	}

	u, err := a.authService.Register(ctx, client.SignupRequest{
		Email:      email,
		Password:   string(password),
		FullName:   fullName,
		RollNumber: rollNumber,
		Department: department,
	})
	if err != nil {
		a.report(err)
		return err
	}

	a.setUser(u)
	a.setMode(ModeOnline)
	printlnFn(fmt.Sprintf("Account created. Logged in as %s", u.Email))
	return nil
}

// Login prompts for credentials and authenticates against the server. The
// last used email is offered as the default.
func (a *App) Login(ctx context.Context) error {
	saved, _ := a.authService.SavedEmail(ctx)

	email, err := getText(a.reader, a.out, "Email", saved)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.authService.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, client.ErrUnavailable) {
			a.setMode(ModeOffline)
		}
		a.report(err)
		return err
	}

	a.setUser(u)
	a.setMode(ModeOnline)
	printlnFn(fmt.Sprintf("Login successful. Welcome, %s", u.FullName))
	return nil
}

// WhoAmI verifies the stored token and prints the account it belongs to.
func (a *App) WhoAmI(ctx context.Context) error {
	u, err := a.authService.WhoAmI(ctx)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) || errors.Is(err, client.ErrNotLoggedIn) {
			a.setUser(nil)
		}
		a.report(err)
		return err
	}

	a.setUser(u)
	printlnFn(fmt.Sprintf("id=%d email=%s name=%q roll=%s department=%q",
		u.ID, u.Email, u.FullName, u.RollNumber, u.Department))
	return nil
}

// Logout forgets the stored session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		a.report(err)
		return err
	}
	a.setUser(nil)
	printlnFn("Logged out")
	return nil
}

func (a *App) report(err error) {
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr):
		printlnFn("Error:", apiErr.Error())
	case errors.Is(err, client.ErrUnavailable):
		printlnFn("Error: server unavailable, try again later")
	case errors.Is(err, client.ErrNotLoggedIn):
		printlnFn("Not logged in")
	default:
		printlnFn("Error:", err.Error())
	}
}
