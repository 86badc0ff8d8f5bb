// Package services contains server-side business logic. This file implements
// CredentialService, which handles account registration, password login and
// session token verification.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/placementportal/internal/common"
	"github.com/dmitrijs2005/placementportal/internal/server/auth"
	"github.com/dmitrijs2005/placementportal/internal/server/config"
	"github.com/dmitrijs2005/placementportal/internal/server/models"
	"github.com/dmitrijs2005/placementportal/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 6
	// bcrypt ignores input past 72 bytes
	maxPasswordBytes = 72

	defaultDepartment = "Not Specified"
	defaultYear       = "4th Year"
)

var (
	errInvalidCredentials = common.NewError(common.ErrorUnauthorized, "invalid email or password")
	errInvalidSession     = common.NewError(common.ErrorUnauthorized, "invalid or expired token")
)

// RegisterInput is the signup form. RollNumber, Department and Year are
// optional.
type RegisterInput struct {
	Email      string
	Password   string
	FullName   string
	RollNumber string
	Department string
	Year       string
}

// AuthResult is returned by a successful signup or login.
type AuthResult struct {
	Token string             `json:"token"`
	User  models.AccountView `json:"user"`
}

// CredentialService provides authentication-related operations:
// - Register: create accounts with a bcrypt password hash
// - Login: verify credentials and mint a session token
// - VerifyToken: validate a session token and resolve its account
type CredentialService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	jwtSecret     []byte
	bcryptCost    int
	tokenValidity time.Duration
	now           func() time.Time

	dummyOnce sync.Once
	dummyHash []byte
}

// NewCredentialService constructs a CredentialService using repositories and
// server config.
func NewCredentialService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *CredentialService {
	return &CredentialService{
		db:            db,
		repomanager:   m,
		jwtSecret:     []byte(cfg.SecretKey),
		bcryptCost:    cfg.BcryptCost,
		tokenValidity: auth.TokenValidity,
		now:           time.Now,
	}
}

// Register creates an account and signs it in. A taken email yields a
// conflict; the check relies on the UNIQUE constraint, not a prior read.
func (s *CredentialService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	email := normalizeEmail(in.Email)
	fullName := strings.TrimSpace(in.FullName)

	if email == "" || in.Password == "" || fullName == "" {
		return nil, common.NewError(common.ErrorValidation, "email, password and full name are required")
	}
	if err := checkPassword(in.Password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &models.Account{
		Email:        email,
		PasswordHash: sql.NullString{String: string(hash), Valid: true},
		FullName:     fullName,
		RollNumber:   strings.TrimSpace(in.RollNumber),
		Department:   strings.TrimSpace(in.Department),
		Year:         strings.TrimSpace(in.Year),
	}
	if account.RollNumber == "" {
		account.RollNumber = "ROLL" + strconv.FormatInt(s.now().UnixMilli(), 10)
	}
	if account.Department == "" {
		account.Department = defaultDepartment
	}
	if account.Year == "" {
		account.Year = defaultYear
	}

	repo := s.repomanager.Accounts(s.db)
	created, err := repo.Create(ctx, account)
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, common.NewError(common.ErrorConflict, "an account with this email already exists")
		}
		return nil, fmt.Errorf("error creating account: %w", err)
	}

	return s.issue(created)
}

// Login verifies the password of the account registered under email. Unknown
// emails, accounts without a password and wrong passwords all fail with the
// same error after comparable bcrypt work.
func (s *CredentialService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, common.NewError(common.ErrorValidation, "email and password are required")
	}

	repo := s.repomanager.Accounts(s.db)
	account, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.burnCompare(password)
			return nil, errInvalidCredentials
		}
		return nil, fmt.Errorf("error reading account: %w", err)
	}

	if !account.HasCredential() {
		s.burnCompare(password)
		return nil, errInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash.String), []byte(password)); err != nil {
		return nil, errInvalidCredentials
	}

	return s.issue(account)
}

// VerifyToken checks signature, algorithm and expiry of token and returns
// the current public view of its account.
func (s *CredentialService) VerifyToken(ctx context.Context, token string) (*models.AccountView, error) {
	if strings.TrimSpace(token) == "" {
		return nil, common.NewError(common.ErrorUnauthorized, "no token provided")
	}

	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, errInvalidSession
	}

	repo := s.repomanager.Accounts(s.db)
	account, err := repo.GetByID(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, errInvalidSession
		}
		return nil, fmt.Errorf("error reading account: %w", err)
	}

	view := account.View()
	return &view, nil
}

// --- helpers below ---

func (s *CredentialService) issue(account *models.Account) (*AuthResult, error) {
	token, err := auth.GenerateToken(account.ID, account.Email, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, fmt.Errorf("error signing token: %w", err)
	}
	return &AuthResult{Token: token, User: account.View()}, nil
}

// burnCompare spends the time of a real password check.
func (s *CredentialService) burnCompare(password string) {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("placement-portal-dummy"), s.bcryptCost)
	})
	_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func checkPassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return common.NewError(common.ErrorValidation,
			fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if len(password) > maxPasswordBytes {
		return common.NewError(common.ErrorValidation,
			fmt.Sprintf("password must be at most %d bytes", maxPasswordBytes))
	}
	return nil
}
