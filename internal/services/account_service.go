package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/nurdn/binarytalk-be/internal/apperr"
	"github.com/nurdn/binarytalk-be/internal/database"
	"github.com/nurdn/binarytalk-be/internal/models"
)

// TokenIssuer signs bearer tokens for authenticated accounts.
type TokenIssuer interface {
	Generate(username string) (string, error)
}

// AccountServiceProvider defines the interface for account services.
type AccountServiceProvider interface {
	Register(req models.RegisterRequest) (models.Account, error)
	Login(req models.LoginRequest) (string, error)
	GetUser(username string) (models.Account, error)
	UpdateProfile(req models.UpdateProfileRequest) (models.Account, error)
	ChangePassword(req models.ChangePasswordRequest) (models.Account, error)
	Delete(username string) error
}

// AccountService provides business logic for account management.
type AccountService struct {
	db       *sql.DB
	tokens   TokenIssuer
	validate *validator.Validate
}

// NewAccountService creates a new AccountService.
func NewAccountService(db *sql.DB, tokens TokenIssuer) *AccountService {
	return &AccountService{db: db, tokens: tokens, validate: validator.New()}
}

// Register creates a new account after checking field presence, email format
// and username/email uniqueness. The uniqueness checks and the insert share a
// transaction; the UNIQUE constraints in the schema close the remaining race.
func (s *AccountService) Register(req models.RegisterRequest) (models.Account, error) {
	if blank(req.Username) || blank(req.Email) || blank(req.Name) || blank(req.Password) {
		return models.Account{}, apperr.BadRequest("Username, email, name, and password is required")
	}
	if err := s.validate.Var(req.Email, "email"); err != nil {
		return models.Account{}, apperr.BadRequest("Email must be valid email")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.Account{}, fmt.Errorf("failed to hash password: %w", err)
	}

	account := models.Account{
		ID:           uuid.New().String(),
		Username:     req.Username,
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: string(hashed),
	}

	err = database.WithTx(s.db, func(tx *sql.Tx) error {
		taken, err := s.exists(tx, "username", req.Username)
		if err != nil {
			return err
		}
		if taken {
			return apperr.BadRequest("Username is already exist")
		}

		taken, err = s.exists(tx, "email", req.Email)
		if err != nil {
			return err
		}
		if taken {
			return apperr.BadRequest("Email is already exist")
		}

		_, err = tx.Exec(
			"INSERT INTO accounts (id, username, email, name, password_hash) VALUES (?, ?, ?, ?, ?)",
			account.ID, account.Username, account.Email, account.Name, account.PasswordHash,
		)
		return err
	})
	if err != nil {
		return models.Account{}, err
	}

	return account.PublicView(), nil
}

// Login verifies credentials and issues a signed bearer token. Unknown
// usernames and wrong passwords are deliberately indistinguishable.
func (s *AccountService) Login(req models.LoginRequest) (string, error) {
	if blank(req.Username) || blank(req.Password) {
		return "", apperr.BadRequest("Username and password is required")
	}

	account, err := s.findByUsername(s.db, req.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", apperr.BadRequest("Username or password is wrong")
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return "", apperr.BadRequest("Username or password is wrong")
	}

	return s.tokens.Generate(account.Username)
}

// GetUser retrieves a single account by username.
func (s *AccountService) GetUser(username string) (models.Account, error) {
	if blank(username) {
		return models.Account{}, apperr.NotFound("User not found")
	}

	account, err := s.findByUsername(s.db, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Account{}, apperr.NotFound("User not found")
		}
		return models.Account{}, err
	}
	return account.PublicView(), nil
}

// UpdateProfile applies the non-blank fields of the request to the account.
// Sending both fields blank changes nothing.
func (s *AccountService) UpdateProfile(req models.UpdateProfileRequest) (models.Account, error) {
	if blank(req.Username) {
		return models.Account{}, apperr.NotFound("User not found")
	}

	var account models.Account
	err := database.WithTx(s.db, func(tx *sql.Tx) error {
		var err error
		account, err = s.findByUsername(tx, req.Username)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperr.NotFound("User not found")
			}
			return err
		}

		if !blank(req.Name) {
			account.Name = req.Name
		}
		if !blank(req.ProfilePic) {
			account.ProfilePic = req.ProfilePic
		}

		_, err = tx.Exec(
			"UPDATE accounts SET name = ?, profile_pic = ? WHERE username = ?",
			account.Name, account.ProfilePic, account.Username,
		)
		return err
	})
	if err != nil {
		return models.Account{}, err
	}

	return account.PublicView(), nil
}

// ChangePassword verifies the old password, then replaces the stored hash.
func (s *AccountService) ChangePassword(req models.ChangePasswordRequest) (models.Account, error) {
	if blank(req.OldPassword) || blank(req.NewPassword) {
		return models.Account{}, apperr.BadRequest("Password is required")
	}

	var account models.Account
	err := database.WithTx(s.db, func(tx *sql.Tx) error {
		var err error
		account, err = s.findByUsername(tx, req.Username)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperr.NotFound("User not found")
			}
			return err
		}

		if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.OldPassword)); err != nil {
			return apperr.BadRequest("Old password is wrong")
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash new password: %w", err)
		}
		account.PasswordHash = string(hashed)

		_, err = tx.Exec(
			"UPDATE accounts SET password_hash = ? WHERE username = ?",
			account.PasswordHash, account.Username,
		)
		return err
	})
	if err != nil {
		return models.Account{}, err
	}

	return account.PublicView(), nil
}

// Delete removes an account permanently.
func (s *AccountService) Delete(username string) error {
	if blank(username) {
		return apperr.BadRequest("Username is required")
	}

	return database.WithTx(s.db, func(tx *sql.Tx) error {
		if _, err := s.findByUsername(tx, username); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperr.NotFound("User not found")
			}
			return err
		}
		_, err := tx.Exec("DELETE FROM accounts WHERE username = ?", username)
		return err
	})
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryRow(query string, args ...any) *sql.Row
}

func (s *AccountService) findByUsername(q querier, username string) (models.Account, error) {
	var a models.Account
	row := q.QueryRow(
		"SELECT id, username, email, name, profile_pic, password_hash, created_at FROM accounts WHERE username = ?",
		username,
	)
	err := row.Scan(&a.ID, &a.Username, &a.Email, &a.Name, &a.ProfilePic, &a.PasswordHash, &a.CreatedAt)
	return a, err
}

func (s *AccountService) exists(q querier, column, value string) (bool, error) {
	var count int
	// column is one of "username"/"email", never user input.
	err := q.QueryRow("SELECT COUNT(*) FROM accounts WHERE "+column+" = ?", value).Scan(&count)
	return count > 0, err
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
