package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nocturnedev/auth-service/config"
	"github.com/nocturnedev/auth-service/internal/auth/domain"
	"github.com/nocturnedev/auth-service/internal/auth/dto"
	autherror "github.com/nocturnedev/auth-service/internal/errors"
	"github.com/nocturnedev/auth-service/pkg/constant"
	"github.com/nocturnedev/auth-service/pkg/logger"
)

// AuthService owns the credential and session lifecycle: registration,
// login with attempt-based lockout, single-use refresh rotation,
// fail-soft logout, and the per-user session cap. Dependencies flow
// strictly service -> stores/hasher/signer.
type AuthService struct {
	users     domain.UserRepository
	tokens    domain.RefreshTokenRepository
	blacklist domain.TokenBlacklistRepository
	attempts  domain.LoginAttemptRepository

	tokenService TokenGenerator
	hasher       PasswordHasher
	cfg          *config.Config
}

func NewAuthService(
	users domain.UserRepository,
	tokens domain.RefreshTokenRepository,
	blacklist domain.TokenBlacklistRepository,
	attempts domain.LoginAttemptRepository,
	tokenService TokenGenerator,
	hasher PasswordHasher,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		users:        users,
		tokens:       tokens,
		blacklist:    blacklist,
		attempts:     attempts,
		tokenService: tokenService,
		hasher:       hasher,
		cfg:          cfg,
	}
}

// NormalizeEmail lowercases and trims an email before any uniqueness
// check or lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, input dto.RegisterInput) (*dto.LoginResponse, error) {
	email := NormalizeEmail(input.Email)

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, autherror.ErrEmailAlreadyInUse
	}

	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: hashed,
		Role:         constant.RoleUser,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	accessToken, refreshToken, _, err := s.tokenService.Generate(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	if err := s.issueSession(ctx, user.ID, refreshToken, sessionMeta{
		IPAddress:  input.IPAddress,
		UserAgent:  input.UserAgent,
		DeviceInfo: input.DeviceInfo,
	}); err != nil {
		return nil, err
	}

	logger.Info().Str("user_id", user.ID).Msg("user registered")

	return &dto.LoginResponse{
		User:         dto.NewUserOutput(user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    constant.DefaultTokenType,
		ExpiresIn:    int(s.tokenService.GetAccessTokenExpiry().Seconds()),
	}, nil
}

func (s *AuthService) Login(ctx context.Context, input dto.LoginInput) (*dto.LoginResponse, error) {
	email := NormalizeEmail(input.Email)

	// Lockout comes first; a locked-out attempt is not recorded, so the
	// lock releases once the recorded failures age out of the window.
	failed, err := s.attempts.CountRecentFailedByEmail(ctx, email, s.cfg.LoginAttemptWindow())
	if err != nil {
		return nil, fmt.Errorf("failed to check login attempts: %w", err)
	}
	if failed >= s.cfg.LoginMaxAttempts {
		return nil, autherror.ErrTooManyLoginAttempts
	}

	user, err := s.validateUser(ctx, email, input.Password)
	if err != nil {
		switch err {
		case autherror.ErrUserNotFound, autherror.ErrAccountInactive, autherror.ErrWrongPassword:
			s.recordAttempt(ctx, email, input.IPAddress, input.UserAgent, false, err.Error())
			// Collapse every credential failure to one message so the
			// response cannot be used for account enumeration.
			return nil, autherror.ErrInvalidCredentials
		}
		return nil, err
	}

	s.recordAttempt(ctx, email, input.IPAddress, input.UserAgent, true, "")

	accessToken, refreshToken, _, err := s.tokenService.Generate(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	if err := s.issueSession(ctx, user.ID, refreshToken, sessionMeta{
		IPAddress:  input.IPAddress,
		UserAgent:  input.UserAgent,
		DeviceInfo: input.DeviceInfo,
	}); err != nil {
		return nil, err
	}

	logger.Info().Str("user_id", user.ID).Msg("user logged in")

	return &dto.LoginResponse{
		User:         dto.NewUserOutput(user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    constant.DefaultTokenType,
		ExpiresIn:    int(s.tokenService.GetAccessTokenExpiry().Seconds()),
	}, nil
}

// Refresh rotates a refresh token: the presented token is consumed and
// a new pair is minted. A token is good for exactly one refresh; the
// loser of a concurrent race gets ErrInvalidRefreshToken.
func (s *AuthService) Refresh(ctx context.Context, input dto.RefreshInput) (*dto.TokenResponse, error) {
	revoked, err := s.blacklist.IsBlacklisted(ctx, input.RefreshToken)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, autherror.ErrTokenRevoked
	}

	if _, err := s.tokenService.VerifyRefreshToken(input.RefreshToken); err != nil {
		return nil, autherror.ErrInvalidOrExpiredToken
	}

	stored, err := s.tokens.GetByToken(ctx, input.RefreshToken)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, autherror.ErrInvalidRefreshToken
	}

	if time.Now().After(stored.ExpiresAt) {
		if _, err := s.tokens.DeleteByToken(ctx, input.RefreshToken); err != nil {
			return nil, err
		}
		return nil, autherror.ErrRefreshTokenExpired
	}

	user, err := s.users.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, autherror.ErrUserNotFoundOrInactive
	}

	// Consume the old token. RowsAffected == 0 means a concurrent
	// refresh already rotated it; this caller loses.
	deleted, err := s.tokens.DeleteByToken(ctx, input.RefreshToken)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, autherror.ErrInvalidRefreshToken
	}

	accessToken, refreshToken, _, err := s.tokenService.Generate(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate new tokens: %w", err)
	}

	if err := s.issueSession(ctx, user.ID, refreshToken, sessionMeta{
		IPAddress:  input.IPAddress,
		UserAgent:  input.UserAgent,
		DeviceInfo: input.DeviceInfo,
	}); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    constant.DefaultTokenType,
		ExpiresIn:    int(s.tokenService.GetAccessTokenExpiry().Seconds()),
	}, nil
}

// Logout is fail-soft: a token that is already rotated, expired or
// deleted is not an error. A found token is blacklisted with its own
// residual expiry before the session row goes.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	stored, err := s.tokens.GetByToken(ctx, refreshToken)
	if err != nil {
		logger.Warn().Err(err).Msg("logout: refresh token lookup failed")
		return nil
	}
	if stored == nil {
		return nil
	}

	now := time.Now()
	if err := s.blacklist.Create(ctx, &domain.BlacklistedToken{
		ID:        uuid.NewString(),
		Token:     stored.Token,
		UserID:    stored.UserID,
		Reason:    constant.BlacklistReasonLogout,
		ExpiresAt: stored.ExpiresAt,
		CreatedAt: now,
	}); err != nil {
		logger.Warn().Err(err).Msg("logout: failed to blacklist token")
		return nil
	}

	if _, err := s.tokens.DeleteByToken(ctx, refreshToken); err != nil {
		logger.Warn().Err(err).Msg("logout: failed to delete refresh token")
	}
	return nil
}

// LogoutAllSessions blacklists every live refresh token of the user,
// then bulk-deletes the session rows. A token minted by a racing login
// between the two steps stays live; that gap is accepted.
func (s *AuthService) LogoutAllSessions(ctx context.Context, userID string) error {
	if err := s.blacklist.BlacklistUserTokens(ctx, userID, constant.BlacklistReasonLogoutAll); err != nil {
		return err
	}
	if err := s.tokens.DeleteByUserID(ctx, userID); err != nil {
		return err
	}
	logger.Info().Str("user_id", userID).Msg("all sessions revoked")
	return nil
}

// Authenticate resolves a bearer access token to a live user. Claims
// identify the subject only; role and active status are re-read from
// the store on every call.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*domain.User, error) {
	claims, err := s.tokenService.VerifyAccessToken(accessToken)
	if err != nil {
		return nil, autherror.ErrInvalidOrExpiredToken
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, autherror.ErrUserNotFoundOrInactive
	}
	return user, nil
}

func (s *AuthService) validateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, autherror.ErrUserNotFound
	}
	if !user.IsActive {
		return nil, autherror.ErrAccountInactive
	}
	if !s.hasher.Compare(password, user.PasswordHash) {
		return nil, autherror.ErrWrongPassword
	}
	return user, nil
}

type sessionMeta struct {
	IPAddress  string
	UserAgent  string
	DeviceInfo string
}

// issueSession applies the session-pool bound and persists the new
// refresh token with its metadata.
func (s *AuthService) issueSession(ctx context.Context, userID, refreshToken string, meta sessionMeta) error {
	s.manageUserSessions(ctx, userID)

	now := time.Now()
	return s.tokens.Create(ctx, &domain.RefreshToken{
		Token:      refreshToken,
		UserID:     userID,
		DeviceInfo: meta.DeviceInfo,
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
		ExpiresAt:  now.Add(s.tokenService.GetRefreshTokenExpiry()),
		CreatedAt:  now,
	})
}

// manageUserSessions enforces the session cap as evict-then-insert: a
// full pool never rejects a login or refresh, the oldest session is
// dropped instead. The cap is soft under concurrency.
func (s *AuthService) manageUserSessions(ctx context.Context, userID string) {
	count, err := s.tokens.CountByUserID(ctx, userID)
	if err != nil {
		logger.Warn().Err(err).Str("user_id", userID).Msg("failed to count active sessions")
		return
	}
	if count >= s.cfg.MaxActiveSessions {
		if err := s.tokens.DeleteOldestByUserID(ctx, userID); err != nil {
			logger.Warn().Err(err).Str("user_id", userID).Msg("failed to evict oldest session")
		}
	}
}

// recordAttempt appends to the audit trail. A write failure must not
// change the outcome of the login itself.
func (s *AuthService) recordAttempt(ctx context.Context, email, ip, userAgent string, success bool, reason string) {
	if err := s.attempts.Create(ctx, &domain.LoginAttempt{
		ID:         uuid.NewString(),
		Email:      email,
		IPAddress:  ip,
		UserAgent:  userAgent,
		Success:    success,
		FailReason: reason,
		CreatedAt:  time.Now(),
	}); err != nil {
		logger.Warn().Err(err).Str("email", email).Msg("failed to record login attempt")
	}
}
