package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"yummy-backend/domain"
)

type (
	// JWTService resolves the owner behind a bearer token. Tokens are issued
	// by the platform's account service with the shared secret; Generate is
	// kept for tooling and tests.
	JWTService interface {
		GenerateToken(ownerID uuid.UUID, role string, ttl time.Duration) (string, error)
		OwnerFromToken(token string) (uuid.UUID, string, error)
	}

	ownerClaim struct {
		UserID string `json:"user_id"`
		Role   string `json:"role"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
		now       func() time.Time
	}
)

func NewJWTService(secretKey, issuer string) JWTService {
	return &jwtService{secretKey: secretKey, issuer: issuer, now: time.Now}
}

func (j *jwtService) GenerateToken(ownerID uuid.UUID, role string, ttl time.Duration) (string, error) {
	now := j.now()
	claims := ownerClaim{
		UserID: ownerID.String(),
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(j.secretKey))
}

func (j *jwtService) parseToken(t *jwt.Token) (any, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) OwnerFromToken(token string) (uuid.UUID, string, error) {
	parsed, err := jwt.ParseWithClaims(token, &ownerClaim{}, j.parseToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, "", domain.ErrTokenExpired
		}
		return uuid.Nil, "", domain.ErrTokenInvalid
	}
	claims, ok := parsed.Claims.(*ownerClaim)
	if !ok || !parsed.Valid {
		return uuid.Nil, "", domain.ErrTokenInvalid
	}
	if j.issuer != "" && claims.Issuer != j.issuer {
		return uuid.Nil, "", domain.ErrTokenInvalid
	}
	ownerID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, "", domain.ErrTokenInvalid
	}
	return ownerID, claims.Role, nil
}
