package service

import (
	"context"
	"time"

	"meetingbot/internal/logger"
	"meetingbot/internal/model"
	"meetingbot/internal/repository"
)

type authService struct {
	userRepo repository.UserRepository
	logger   *logger.Logger
}

func NewAuthService(userRepo repository.UserRepository, logger *logger.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (s *authService) GetOrCreateUser(ctx context.Context, googleID, email, name, accessToken, refreshToken string, tokenExpiry interface{}) (*model.User, error) {
	existingUser, err := s.userRepo.FindByGoogleID(ctx, googleID)
	if err != nil {
		newUser := model.NewUser(googleID, email, name, accessToken, refreshToken, parseExpiry(tokenExpiry))
		if err := s.userRepo.Create(ctx, newUser); err != nil {
			s.logger.Error("Failed to create user:", err)
			return nil, err
		}
		s.logger.Info("Created new account:", newUser.Email)
		return newUser, nil
	}

	// Refresh stored tokens on every sign-in so the background jobs keep
	// working with a live credential.
	if accessToken != "" || refreshToken != "" {
		existingUser.AccessToken = accessToken
		existingUser.RefreshToken = refreshToken
		if expiry := parseExpiry(tokenExpiry); !expiry.IsZero() {
			existingUser.TokenExpiry = expiry
		}
		if err := s.userRepo.Update(ctx, existingUser); err != nil {
			s.logger.Error("Failed to update user tokens:", err)
			return nil, err
		}
	}

	return existingUser, nil
}

func (s *authService) GetUser(ctx context.Context, userID string) (*model.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// parseExpiry tolerates the two shapes goth hands back for token expiry.
func parseExpiry(tokenExpiry interface{}) time.Time {
	switch v := tokenExpiry.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse(time.RFC3339, v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
