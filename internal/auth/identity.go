package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"lifewithchrist/community/internal/logging"
	models "lifewithchrist/community/internal/models/gorm"
)

const sessionTTL = 7 * 24 * time.Hour

// Session is what the identity provider knows about a signed-in identity.
// The profile record is resolved separately by the account service.
type Session struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Token     string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SignUpMetadata is the extra account data captured at registration time and
// passed through to the profile row.
type SignUpMetadata struct {
	FullName string
}

// IdentityProvider issues and validates login sessions independently of the
// profile table.
type IdentityProvider interface {
	SignUp(ctx context.Context, email, password string, meta SignUpMetadata) (string, error)
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context, token string) error
	GetSession(ctx context.Context, token string) (*Session, error)
}

// IdentityService is the production IdentityProvider: bcrypt credentials in
// Postgres, HS256 bearer tokens, and a revocable session record in Redis.
type IdentityService struct {
	db        *gorm.DB
	redis     *redis.Client
	secretKey []byte
}

var _ IdentityProvider = (*IdentityService)(nil)

func NewIdentityService(db *gorm.DB, redisClient *redis.Client, secretKey []byte) *IdentityService {
	return &IdentityService{
		db:        db,
		redis:     redisClient,
		secretKey: secretKey,
	}
}

// SignUp creates a credential row and returns the new identity id.
func (s *IdentityService) SignUp(ctx context.Context, email, password string, meta SignUpMetadata) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	cred := models.Credential{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     meta.FullName,
	}

	if err := s.db.WithContext(ctx).Create(&cred).Error; err != nil {
		return "", fmt.Errorf("failed to create credential: %w", err)
	}

	return cred.ID, nil
}

// SignInWithPassword verifies the credential and opens a session.
func (s *IdentityService) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	var cred models.Credential
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&cred).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: credential lookup: %v", ErrRemoteUnavailable, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	sessionID := uuid.New().String()
	now := time.Now()
	session := Session{
		SessionID: sessionID,
		UserID:    cred.ID,
		Email:     cred.Email,
		CreatedAt: now,
		ExpiresAt: now.Add(sessionTTL),
	}

	data, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.redis.Set(ctx, "session:"+sessionID, data, sessionTTL).Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to store session: %v", ErrRemoteUnavailable, err)
	}

	token, err := s.signToken(sessionID, cred.ID, session.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	session.Token = token

	return &session, nil
}

// SignOut revokes the session behind the token. A token that no longer parses
// is treated as already signed out.
func (s *IdentityService) SignOut(ctx context.Context, token string) error {
	sessionID, _, err := s.parseToken(token)
	if err != nil {
		return nil
	}
	if err := s.redis.Del(ctx, "session:"+sessionID).Err(); err != nil {
		return fmt.Errorf("%w: failed to delete session: %v", ErrRemoteUnavailable, err)
	}
	return nil
}

// GetSession validates the token and loads the live session record.
func (s *IdentityService) GetSession(ctx context.Context, token string) (*Session, error) {
	sessionID, _, err := s.parseToken(token)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	val, err := s.redis.Get(ctx, "session:"+sessionID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: failed to get session: %v", ErrRemoteUnavailable, err)
	}

	var session Session
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		if delErr := s.redis.Del(ctx, "session:"+sessionID).Err(); delErr != nil {
			logging.Warn("Failed to delete expired session", "session_id", sessionID, "error", delErr.Error())
		}
		return nil, ErrInvalidCredentials
	}

	session.Token = token
	return &session, nil
}

func (s *IdentityService) signToken(sessionID, userID string, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sid": sessionID,
		"sub": userID,
		"exp": expiresAt.Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

func (s *IdentityService) parseToken(tokenStr string) (sessionID, userID string, err error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil || !token.Valid {
		return "", "", ErrInvalidCredentials
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", ErrInvalidCredentials
	}

	sessionID, _ = claims["sid"].(string)
	userID, _ = claims["sub"].(string)
	if sessionID == "" || userID == "" {
		return "", "", ErrInvalidCredentials
	}
	return sessionID, userID, nil
}
