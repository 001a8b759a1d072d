package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/operation"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/profile"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/session"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/postgresql"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	tx postgresql.Transactor
	user.UserRepository
	roles    user.RoleRepository
	profiles profile.ProfileRepository
	jwt.Service
	auth.RefreshTokenRepository
	sessions    session.Provider
	operations  operation.Service
	frontendURL string
}

func NewAuthService(
	tx postgresql.Transactor,
	userRepository user.UserRepository,
	roleRepository user.RoleRepository,
	profileRepository profile.ProfileRepository,
	jwtService jwt.Service,
	refreshTokenRepository auth.RefreshTokenRepository,
	sessions session.Provider,
	operations operation.Service,
	frontendURL string,
) auth.AuthService {
	return &AuthServiceImpl{
		tx:                     tx,
		UserRepository:         userRepository,
		roles:                  roleRepository,
		profiles:               profileRepository,
		Service:                jwtService,
		RefreshTokenRepository: refreshTokenRepository,
		sessions:               sessions,
		operations:             operations,
		frontendURL:            frontendURL,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// redirectTarget is the request origin, or the frontend URL, plus "/".
func (a *AuthServiceImpl) redirectTarget(origin string) string {
	base := strings.TrimSpace(origin)
	if base == "" || base == "null" {
		base = a.frontendURL
	}
	return strings.TrimRight(base, "/") + "/"
}

// issueTokens creates an access/refresh pair and stores the refresh token.
func (a *AuthServiceImpl) issueTokens(ctx context.Context, u user.User, role *user.Role, track auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	var tokenResponse auth.TokenResponse
	var err error

	tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(u.ID, u.Email, role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.Service.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create refresh token: %w", err)
	}

	err = a.RefreshTokenRepository.CreateRefreshToken(ctx, u.ID, tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, track)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to save refresh token to database: %w", err)
	}
	return tokenResponse, nil
}

// SignUp implements auth.AuthService.
func (a *AuthServiceImpl) SignUp(ctx context.Context, req auth.SignUpRequest, track auth.SessionTrackingRequest) (auth.SignUpResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.SignUpResponse{}, err
	}

	exists, err := a.UserRepository.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return auth.SignUpResponse{}, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return auth.SignUpResponse{}, auth.ErrEmailExists
	}

	hashedPassword, err := a.hashPassword(req.Password)
	if err != nil {
		return auth.SignUpResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.RoleOrDefault()
	var created user.User
	var tokenResponse auth.TokenResponse

	err = a.tx.WithinTx(ctx, func(txCtx context.Context) error {
		created, err = a.UserRepository.Create(txCtx, user.User{
			Email:        req.Email,
			PasswordHash: hashedPassword,
		})
		if err != nil {
			if errors.Is(err, user.ErrUserEmailExists) {
				return auth.ErrEmailExists
			}
			return fmt.Errorf("failed to create user: %w", err)
		}

		if err := a.roles.Assign(txCtx, created.ID, role); err != nil {
			return err
		}

		if _, err := a.profiles.Create(txCtx, profile.Profile{
			UserID:   created.ID,
			FullName: req.FullName,
			Email:    created.Email,
		}); err != nil {
			return err
		}

		tokenResponse, err = a.issueTokens(txCtx, created, &role, track)
		return err
	})
	if err != nil {
		return auth.SignUpResponse{}, err
	}

	a.sessions.Notify(session.Identity{UserID: created.ID, Email: created.Email}, session.EventSignedIn)
	a.operations.Log(ctx, operation.LogRequest{
		ActorUserID:  &created.ID,
		TargetUserID: &created.ID,
		Action:       operation.ActionSignUp,
		Metadata:     map[string]interface{}{"role": string(role)},
	})

	return auth.SignUpResponse{
		TokenResponse: tokenResponse,
		UserID:        created.ID,
		RedirectTo:    a.redirectTarget(req.Origin),
	}, nil
}

// SignIn implements auth.AuthService.
func (a *AuthServiceImpl) SignIn(ctx context.Context, req auth.SignInRequest, track auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	userData, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	role, err := a.roles.GetRole(ctx, userData.ID)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	tokenResponse, err := a.issueTokens(ctx, userData, role, track)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	a.sessions.Notify(session.Identity{UserID: userData.ID, Email: userData.Email}, session.EventSignedIn)
	return tokenResponse, nil
}

// SignOut implements auth.AuthService.
func (a *AuthServiceImpl) SignOut(ctx context.Context, req auth.SignOutRequest) error {
	// Session state goes first so a failing store still signs the user out locally.
	if req.UserID != "" {
		a.sessions.Close(req.UserID)
	}

	if req.AccessToken != "" {
		if err := a.Service.RevokeToken(ctx, req.AccessToken); err != nil {
			return fmt.Errorf("failed to revoke access token: %w", err)
		}
	}

	if req.RefreshToken != "" {
		if err := a.RefreshTokenRepository.RevokeRefreshToken(ctx, req.RefreshToken); err != nil {
			return fmt.Errorf("failed to revoke refresh token: %w", err)
		}
	}
	return nil
}

// RefreshToken implements auth.AuthService.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	var accessTokenResponse auth.AccessTokenResponse

	// 1. Verify JWT signature and expiry
	token, err := jwtauth.VerifyToken(a.JWTAuth(), req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	// 2. Check token type is "refresh"
	claims, err := token.AsMap(ctx)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != jwt.TypeRefresh {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	// 3. Check DB for revocation/expiry (pass raw token, not hash)
	userID, isRevoked, err := a.RefreshTokenRepository.IsRefreshTokenRevoked(ctx, req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	if isRevoked {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	// 4. Get user
	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrUserNotFound
	}

	role, err := a.roles.GetRole(ctx, userData.ID)
	if err != nil {
		return auth.AccessTokenResponse{}, err
	}

	// 5. Generate new access token
	accessTokenResponse.AccessToken, accessTokenResponse.AccessTokenExpiresIn, err =
		a.Service.GenerateAccessToken(userData.ID, userData.Email, role)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return accessTokenResponse, nil
}
