package services

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/terraincognita07/hushline/internal/models"
	"github.com/terraincognita07/hushline/internal/prompt"
	"github.com/terraincognita07/hushline/internal/security"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	maxCredentialNameLength = 128
	// bcrypt ignores everything past this many bytes.
	maxPasswordBytes = 72
)

var (
	ErrCredentialNotFound     = errors.New("credential not found")
	ErrCredentialNameRequired = errors.New("credential name is required")
	ErrCredentialNameTooLong  = errors.New("credential name is too long")

	// The password errors below ask the prompt loop for another attempt.
	ErrEmptyPassword    = fmt.Errorf("password must not be empty: %w", prompt.ErrWrongSecret)
	ErrPasswordTooLong  = fmt.Errorf("password must be at most %d bytes: %w", maxPasswordBytes, prompt.ErrWrongSecret)
	ErrPasswordMismatch = fmt.Errorf("passwords do not match: %w", prompt.ErrWrongSecret)
)

type CredentialRepository interface {
	FindByNormalizedName(name string) (models.Credential, error)
	ExistsByNormalizedName(name string) (bool, error)
	Create(credential *models.Credential) error
	UpdatePassword(credentialID uint, passwordHash string, mustChangePassword bool) error
	MarkVerified(credentialID uint, at time.Time) error
}

type CredentialService struct {
	credentials CredentialRepository
	logger      *zap.Logger
	now         func() time.Time
	hashCost    int
}

func NewCredentialService(credentials CredentialRepository, logger *zap.Logger) *CredentialService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CredentialService{
		credentials: credentials,
		logger:      logger,
		now:         time.Now,
		hashCost:    bcrypt.DefaultCost,
	}
}

// ValidateCredentialName returns the normalized form of name, or an error
// when it is empty or too long.
func ValidateCredentialName(name string) (string, error) {
	normalized := models.NormalizeCredentialName(name)
	if normalized == "" {
		return "", ErrCredentialNameRequired
	}
	if utf8.RuneCountInString(normalized) > maxCredentialNameLength {
		return "", ErrCredentialNameTooLong
	}
	return normalized, nil
}

// Exists reports whether a credential called name is stored.
func (service *CredentialService) Exists(name string) (bool, error) {
	normalized, err := ValidateCredentialName(name)
	if err != nil {
		return false, err
	}

	exists, err := service.credentials.ExistsByNormalizedName(normalized)
	if err != nil {
		return false, fmt.Errorf("check credential: %w", err)
	}
	return exists, nil
}

func (service *CredentialService) Find(name string) (models.Credential, error) {
	normalized, err := ValidateCredentialName(name)
	if err != nil {
		return models.Credential{}, err
	}

	credential, err := service.credentials.FindByNormalizedName(normalized)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Credential{}, fmt.Errorf("%w: %s", ErrCredentialNotFound, normalized)
		}
		return models.Credential{}, fmt.Errorf("load credential: %w", err)
	}
	return credential, nil
}

// VerifyPassword loads the credential once and returns a validator that
// checks entered passwords against its hash. A wrong password is reported as
// prompt.ErrWrongSecret so the prompt loop asks again.
func (service *CredentialService) VerifyPassword(name string) (prompt.Validator[models.Credential], error) {
	credential, err := service.Find(name)
	if err != nil {
		return nil, err
	}

	attempt := 0
	return func(secret []byte) (models.Credential, error) {
		attempt++
		err := bcrypt.CompareHashAndPassword([]byte(credential.PasswordHash), secret)
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			service.logger.Warn("password rejected",
				zap.String("credential", credential.Name),
				zap.Int("attempt", attempt),
			)
			return models.Credential{}, prompt.ErrWrongSecret
		}
		if err != nil {
			return models.Credential{}, fmt.Errorf("compare password hash: %w", err)
		}

		verifiedAt := service.now().UTC()
		if err := service.credentials.MarkVerified(credential.ID, verifiedAt); err != nil {
			return models.Credential{}, fmt.Errorf("record verification: %w", err)
		}
		credential.LastVerifiedAt = &verifiedAt

		service.logger.Info("password verified",
			zap.String("credential", credential.Name),
			zap.Int("attempt", attempt),
		)
		return credential, nil
	}, nil
}

// NewPasswordHash returns a validator that turns a new password into a
// bcrypt hash. Weak passwords are rejected as retryable. When confirm is set it is called to read the password a
// second time; the confirmation is wiped before the validator returns.
func (service *CredentialService) NewPasswordHash(confirm func() (*prompt.Secret, error)) prompt.Validator[string] {
	return func(secret []byte) (string, error) {
		if len(secret) == 0 {
			return "", ErrEmptyPassword
		}
		if len(secret) > maxPasswordBytes {
			return "", ErrPasswordTooLong
		}
		if err := ValidatePasswordStrength(secret); err != nil {
			return "", err
		}

		if confirm != nil {
			confirmation, err := confirm()
			if err != nil {
				return "", err
			}
			defer confirmation.Wipe()

			if subtle.ConstantTimeCompare(secret, confirmation.Bytes()) != 1 {
				service.logger.Warn("password confirmation mismatch")
				return "", ErrPasswordMismatch
			}
		}

		hash, err := bcrypt.GenerateFromPassword(secret, service.hashCost)
		if err != nil {
			return "", fmt.Errorf("hash password: %w", err)
		}
		return string(hash), nil
	}
}

// SetPassword stores passwordHash for name, creating the credential when it
// does not exist yet. It reports whether a new credential was created.
func (service *CredentialService) SetPassword(name string, passwordHash string) (models.Credential, bool, error) {
	normalized, err := ValidateCredentialName(name)
	if err != nil {
		return models.Credential{}, false, err
	}

	existing, err := service.credentials.FindByNormalizedName(normalized)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		now := service.now().UTC()
		credential := models.Credential{
			Name:         strings.TrimSpace(name),
			PasswordHash: passwordHash,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := service.credentials.Create(&credential); err != nil {
			return models.Credential{}, false, fmt.Errorf("create credential: %w", err)
		}
		service.logger.Info("credential created", zap.String("credential", credential.Name))
		return credential, true, nil
	case err != nil:
		return models.Credential{}, false, fmt.Errorf("load credential: %w", err)
	}

	if err := service.credentials.UpdatePassword(existing.ID, passwordHash, false); err != nil {
		return models.Credential{}, false, fmt.Errorf("update credential password: %w", err)
	}
	existing.PasswordHash = passwordHash
	existing.MustChangePassword = false
	service.logger.Info("credential password changed", zap.String("credential", existing.Name))
	return existing, false, nil
}

// ResetPassword replaces the password of name with a generated temporary one
// that must be changed on next use, and returns it.
func (service *CredentialService) ResetPassword(name string) (string, error) {
	credential, err := service.Find(name)
	if err != nil {
		return "", err
	}

	temporaryPassword, err := generateTemporaryPassword(12)
	if err != nil {
		return "", fmt.Errorf("generate temporary password: %w", err)
	}

	passwordBytes := []byte(temporaryPassword)
	passwordHash, err := bcrypt.GenerateFromPassword(passwordBytes, service.hashCost)
	security.Wipe(passwordBytes)
	if err != nil {
		return "", fmt.Errorf("hash temporary password: %w", err)
	}

	if err := service.credentials.UpdatePassword(credential.ID, string(passwordHash), true); err != nil {
		return "", fmt.Errorf("update credential password: %w", err)
	}
	service.logger.Info("credential password reset", zap.String("credential", credential.Name))
	return temporaryPassword, nil
}
