package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SignedLink is a validated single-use action link token (unsubscribe links
// in digest emails, notification action links).
type SignedLink struct {
	Subject   string
	Action    string
	TokenID   string
	ExpiresAt time.Time
}

// LinkSignerService generates and validates signed single-use action links.
type LinkSignerService struct {
	secretKey []byte
	redis     *redis.Client
}

func NewLinkSignerService(secretKey []byte, redisClient *redis.Client) *LinkSignerService {
	return &LinkSignerService{
		secretKey: secretKey,
		redis:     redisClient,
	}
}

// GenerateLink signs a token binding a subject (user id or email) to an
// action, valid for ttl.
func (s *LinkSignerService) GenerateLink(subject, action string, ttl time.Duration) (string, error) {
	tokenID := uuid.New().String()
	expiresAt := time.Now().Add(ttl)

	claims := jwt.MapClaims{
		"sub":    subject,
		"action": action,
		"jti":    tokenID,
		"exp":    expiresAt.Unix(),
		"iat":    time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign link token: %w", err)
	}

	return tokenString, nil
}

// ValidateLink parses the token and rejects expired or already-used links.
func (s *LinkSignerService) ValidateLink(ctx context.Context, tokenString string) (*SignedLink, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid link token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid link claims")
	}

	subject, _ := claims["sub"].(string)
	action, _ := claims["action"].(string)
	tokenID, _ := claims["jti"].(string)
	if subject == "" || action == "" || tokenID == "" {
		return nil, errors.New("missing link claims")
	}

	expFloat, ok := claims["exp"].(float64)
	if !ok {
		return nil, errors.New("missing exp claim")
	}
	expiresAt := time.Unix(int64(expFloat), 0)
	if time.Now().After(expiresAt) {
		return nil, errors.New("link expired")
	}

	used, err := s.redis.Exists(ctx, "used_link:"+tokenID).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to check link usage: %w", err)
	}
	if used > 0 {
		return nil, errors.New("link already used")
	}

	return &SignedLink{
		Subject:   subject,
		Action:    action,
		TokenID:   tokenID,
		ExpiresAt: expiresAt,
	}, nil
}

// MarkLinkUsed enforces single use by recording the token id until expiry.
func (s *LinkSignerService) MarkLinkUsed(ctx context.Context, link *SignedLink) error {
	ttl := time.Until(link.ExpiresAt)
	if ttl <= 0 {
		ttl = time.Minute
	}
	if err := s.redis.Set(ctx, "used_link:"+link.TokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to mark link as used: %w", err)
	}
	return nil
}
