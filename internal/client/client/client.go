package client

import (
	"context"

	"github.com/dmitrijs2005/placementportal/internal/server/models"
)

// SignupRequest mirrors the body accepted by POST /api/auth/signup.
type SignupRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	FullName   string `json:"fullName"`
	RollNumber string `json:"rollNumber,omitempty"`
	Department string `json:"department,omitempty"`
	Year       string `json:"year,omitempty"`
}

// AuthResult is the data part of a signup or login response.
type AuthResult struct {
	Token string             `json:"token"`
	User  models.AccountView `json:"user"`
}

type Client interface {
	Signup(ctx context.Context, req SignupRequest) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Verify(ctx context.Context, token string) (*models.AccountView, error)
	Ping(ctx context.Context) error
}
