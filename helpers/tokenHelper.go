package helpers

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// refreshFactor is how much longer a refresh token lives than an access token.
const refreshFactor = 7

type SignedDetails struct {
	Email     string `json:"email,omitempty"`
	Name      string `json:"name,omitempty"`
	Uid       string `json:"uid,omitempty"`
	User_role string `json:"user_role,omitempty"`
	jwt.RegisteredClaims
}

// TokenHelper issues and checks HS256 tokens for back-office users.
type TokenHelper struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenHelper(secret string, ttl time.Duration) *TokenHelper {
	return &TokenHelper{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (h *TokenHelper) GenerateAllTokens(email, name, uid, userRole string) (signedToken string, refreshSignedToken string, err error) {
	now := h.now()
	claims := SignedDetails{
		Email:     email,
		Name:      name,
		Uid:       uid,
		User_role: userRole,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(h.ttl)),
		},
	}
	refreshClaims := SignedDetails{
		Uid: uid,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(refreshFactor * h.ttl)),
		},
	}

	signedToken, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.secret)
	if err != nil {
		return "", "", fmt.Errorf("sign token: %w", err)
	}
	refreshSignedToken, err = jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(h.secret)
	if err != nil {
		return "", "", fmt.Errorf("sign refresh token: %w", err)
	}
	return signedToken, refreshSignedToken, nil
}

// ValidateToken verifies signature and expiry and returns the claims.
func (h *TokenHelper) ValidateToken(signedToken string) (*SignedDetails, error) {
	claims := &SignedDetails{}
	token, err := jwt.ParseWithClaims(signedToken, claims,
		func(t *jwt.Token) (interface{}, error) {
			return h.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(h.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.New("token is expired")
		}
		return nil, errors.New("the token is invalid")
	}
	if !token.Valid {
		return nil, errors.New("the token is invalid")
	}
	return claims, nil
}
