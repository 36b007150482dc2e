package services

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/terraincognita07/hushline/internal/models"
)

const (
	sessionTokenPurpose = "session"
	defaultSessionTTL   = 12 * time.Hour
)

var (
	ErrSessionTokenMissing              = errors.New("missing session token")
	ErrSessionTokenInvalid              = errors.New("invalid session token")
	ErrSessionTokenInvalidPurpose       = errors.New("invalid session token purpose")
	ErrSessionTokenExpired              = errors.New("expired session token")
	ErrSessionTokenInvalidCredentialID  = errors.New("invalid session token credential id")
	ErrSessionTokenInvalidPasswordState = errors.New("invalid session token password state")
	ErrSessionTokenRevoked              = errors.New("session token revoked by password change")
)

type SessionClaims struct {
	CredentialID  uint   `json:"cid"`
	Name          string `json:"name"`
	Purpose       string `json:"purpose"`
	PasswordState string `json:"password_state"`
	jwt.RegisteredClaims
}

// BuildSessionToken signs a token for a verified credential. The token is
// bound to the current password hash, so changing the password revokes it.
func BuildSessionToken(secretKey []byte, credential models.Credential, ttl time.Duration, now time.Time) (string, error) {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	if now.IsZero() {
		now = time.Now()
	}
	if credential.ID == 0 {
		return "", ErrSessionTokenInvalidCredentialID
	}

	passwordState := PasswordStateFingerprint(credential.PasswordHash)
	if passwordState == "" {
		return "", ErrSessionTokenInvalidPasswordState
	}

	claims := SessionClaims{
		CredentialID:  credential.ID,
		Name:          credential.Name,
		Purpose:       sessionTokenPurpose,
		PasswordState: passwordState,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatUint(uint64(credential.ID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey)
}

func ParseSessionToken(secretKey []byte, rawToken string, now time.Time) (*SessionClaims, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, ErrSessionTokenMissing
	}
	if now.IsZero() {
		now = time.Now()
	}

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(strings.TrimSpace(rawToken), claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return secretKey, nil
	}, jwt.WithTimeFunc(func() time.Time { return now }), jwt.WithExpirationRequired())
	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, ErrSessionTokenExpired
	}
	if err != nil || !token.Valid {
		return nil, ErrSessionTokenInvalid
	}
	if claims.Purpose != sessionTokenPurpose {
		return nil, ErrSessionTokenInvalidPurpose
	}
	if claims.CredentialID == 0 {
		return nil, ErrSessionTokenInvalidCredentialID
	}
	if strings.TrimSpace(claims.PasswordState) == "" {
		return nil, ErrSessionTokenInvalidPasswordState
	}
	return claims, nil
}

// VerifySessionToken parses rawToken and checks it still matches the stored
// credential.
func (service *CredentialService) VerifySessionToken(secretKey []byte, rawToken string) (*SessionClaims, error) {
	claims, err := ParseSessionToken(secretKey, rawToken, service.now())
	if err != nil {
		return nil, err
	}

	credential, err := service.Find(claims.Name)
	if err != nil {
		return nil, err
	}
	if credential.ID != claims.CredentialID {
		return nil, ErrSessionTokenInvalidCredentialID
	}
	if !IsPasswordStateFingerprintMatch(claims.PasswordState, credential.PasswordHash) {
		return nil, ErrSessionTokenRevoked
	}
	return claims, nil
}

func PasswordStateFingerprint(passwordHash string) string {
	normalizedHash := strings.TrimSpace(passwordHash)
	if normalizedHash == "" {
		return ""
	}

	sum := sha256.Sum256([]byte("hushline.session.password-state.v1:" + normalizedHash))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

func IsPasswordStateFingerprintMatch(expected string, passwordHash string) bool {
	actual := PasswordStateFingerprint(passwordHash)
	if strings.TrimSpace(expected) == "" || strings.TrimSpace(actual) == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(actual)) == 1
}
