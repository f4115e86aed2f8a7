package auth

import (
	"fmt"
	"strconv"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/Senegura/TicketSystem/internal/domain"
	"github.com/Senegura/TicketSystem/pkg/util"
)

// Token issuer and audience. Fixed strings: existing tokens carry them and
// verification rejects anything else.
const (
	Issuer   = "TicketSystem"
	Audience = "TicketSystemUsers"
)

// DefaultTTLMinutes is substituted when a non-positive expiry is requested.
const DefaultTTLMinutes = 60

// TokenManager handles issuing and validating JWT session tokens.
type TokenManager struct {
	secret []byte
	now    func() time.Time
}

// NewTokenManager builds a new manager around the externally supplied
// signing secret.
func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret), now: time.Now}
}

// NewTokenManagerWithClock builds a manager with a fixed clock for tests.
func NewTokenManagerWithClock(secret string, now func() time.Time) *TokenManager {
	return &TokenManager{secret: []byte(secret), now: now}
}

// Claims describes the JWT payload.
type Claims struct {
	UserID   string          `json:"userId"`
	UserType domain.UserType `json:"userType"`
	jwt.RegisteredClaims
}

// SignToken builds and signs a session token for the user. A non-positive
// expiresInMinutes falls back to DefaultTTLMinutes.
func (tm *TokenManager) SignToken(userID int64, userType domain.UserType, expiresInMinutes int) (string, time.Time, error) {
	if expiresInMinutes <= 0 {
		expiresInMinutes = DefaultTTLMinutes
	}

	now := tm.now().UTC()
	expiresAt := now.Add(time.Duration(expiresInMinutes) * time.Minute)
	claims := &Claims{
		UserID:   strconv.FormatInt(userID, 10),
		UserType: userType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Audience:  jwt.ClaimStrings{Audience},
			Subject:   strconv.FormatInt(userID, 10),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return tokenString, expiresAt, nil
}

// ValidateToken verifies the signature, issuer, audience and validity
// window of a token (zero clock-skew tolerance) and returns its claims.
func (tm *TokenManager) ValidateToken(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return tm.secret, nil
	},
		jwt.WithIssuer(Issuer),
		jwt.WithAudience(Audience),
		jwt.WithLeeway(0),
		jwt.WithTimeFunc(tm.now),
	)
	if err != nil {
		return nil, util.NewUnauthorized("invalid or expired token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, util.NewUnauthorized("invalid token claims")
	}
	return claims, nil
}
