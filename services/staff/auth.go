package staff

import (
	"context"
	"errors"
	"time"

	staffRepo "harborview/database/repository/staff"
	"harborview/models"
	"harborview/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials hides whether the email or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthService authenticates back-office staff.
type AuthService interface {
	Authenticate(ctx context.Context, email, password string) (string, *models.Staff, error)
}

// DefaultAuthService verifies credentials against the staff repository and
// issues a JWT on success.
type DefaultAuthService struct {
	Repo staffRepo.StaffRepository
}

func (s *DefaultAuthService) Authenticate(ctx context.Context, email, password string) (string, *models.Staff, error) {
	rec, err := s.Repo.GetByEmail(ctx, email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(rec.ID, rec.Email, 24*time.Hour)
	if err != nil {
		return "", nil, err
	}
	return token, rec, nil
}

// HashPassword produces a bcrypt hash for storing new staff credentials.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
