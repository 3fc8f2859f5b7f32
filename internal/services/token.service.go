package services

import (
	"errors"
	"fmt"
	"time"

	"galhub/config"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// TokenService issues and validates the HS256 bearer tokens used by both the
// user and admin auth flows.
type TokenService struct {
	secret []byte
	expiry time.Duration
	log    logger.Logger
}

type UserClaims struct {
	UID int `json:"uid"`
	jwt.RegisteredClaims
}

type AdminClaims struct {
	Admin    bool   `json:"admin"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func NewTokenService(config config.Config) *TokenService {
	return &TokenService{
		secret: []byte(config.JWTSecret),
		expiry: time.Duration(config.JWTExpiryHours) * time.Hour,
		log:    logger.New("tokenService"),
	}
}

func (s *TokenService) IssueUserToken(uid int) (string, error) {
	log := s.log.Function("IssueUserToken")

	now := time.Now()
	claims := UserClaims{
		UID: uid,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", log.Err("failed to sign user token", err, "uid", uid)
	}

	return token, nil
}

func (s *TokenService) IssueAdminToken(username string) (string, error) {
	log := s.log.Function("IssueAdminToken")

	now := time.Now()
	claims := AdminClaims{
		Admin:    true,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", log.Err("failed to sign admin token", err, "username", username)
	}

	return token, nil
}

func (s *TokenService) ValidateUserToken(tokenString string) (*UserClaims, error) {
	claims := &UserClaims{}
	if err := s.parse(tokenString, claims); err != nil {
		return nil, err
	}

	if claims.UID <= 0 {
		return nil, fmt.Errorf("%w: missing uid claim", ErrInvalidToken)
	}

	return claims, nil
}

func (s *TokenService) ValidateAdminToken(tokenString string) (*AdminClaims, error) {
	claims := &AdminClaims{}
	if err := s.parse(tokenString, claims); err != nil {
		return nil, err
	}

	if !claims.Admin || claims.Username == "" {
		return nil, fmt.Errorf("%w: missing admin claim", ErrInvalidToken)
	}

	return claims, nil
}

func (s *TokenService) parse(tokenString string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid {
		return ErrInvalidToken
	}

	return nil
}
