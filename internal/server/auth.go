package server

import (
	"crypto/rand"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	roleController = "controller"
	roleAdmin      = "admin"

	controllerTokenTTL = 24 * time.Hour
)

var (
	ErrAuthRequired  = errors.New("authentication required")
	ErrInvalidToken  = errors.New("invalid token")
	ErrAdminDisabled = errors.New("admin access requires SESSION_SECRET")
)

// signingKeyFor returns the HS256 key and whether admin tokens are accepted.
// Without a secret, controller tokens are signed with a random key that dies
// with the process and no admin token can be valid.
func signingKeyFor(secret string) ([]byte, bool) {
	if secret != "" {
		return []byte(secret), true
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("signing key generation failed: %v", err)
	}
	log.Println("SESSION_SECRET not set; using an ephemeral signing key, admin routes disabled")
	return key, false
}

// tokenClaims authorize a bearer for one session (controller) or for the
// entitlement callback (admin).
type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (s *Server) issueToken(subject, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.signingKey)
}

func (s *Server) parseToken(raw string) (*tokenClaims, error) {
	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (any, error) {
		return s.signingKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *Server) authorizeSession(c *gin.Context, sessionID string) error {
	raw := requestToken(c)
	if raw == "" {
		return ErrAuthRequired
	}
	return s.checkSessionToken(raw, sessionID)
}

func (s *Server) checkSessionToken(raw, sessionID string) error {
	claims, err := s.parseToken(raw)
	if err != nil {
		return err
	}
	if claims.Role != roleController || claims.Subject != sessionID {
		return ErrInvalidToken
	}
	return nil
}

func (s *Server) authorizeAdmin(c *gin.Context) error {
	if !s.adminEnabled {
		return ErrAdminDisabled
	}
	raw := requestToken(c)
	if raw == "" {
		return ErrAuthRequired
	}
	claims, err := s.parseToken(raw)
	if err != nil {
		return err
	}
	if claims.Role != roleAdmin {
		return ErrInvalidToken
	}
	return nil
}

func requestToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return strings.TrimSpace(c.Query("token"))
}
