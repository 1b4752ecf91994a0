package application

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/inclusive-studai/internal/domain/entity"
)

type LoginResult struct {
	User              entity.User
	AccessToken       string
	AccessTokenExpiry time.Time
}

// Login resolves a user by exact email match after LoginDelay.
// The password is accepted as is: there is no credential store to check it against.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	_ = password
	if err := wait(ctx, s.LoginDelay); err != nil {
		return nil, err
	}
	u, ok := s.Store.GetUserByEmail(email)
	if !ok {
		return nil, ErrInvalidCredentials
	}
	res := &LoginResult{User: u}
	if s.JWT != nil {
		tok, exp, err := s.JWT.GenerateAccessToken(u.ID, string(u.Role))
		if err != nil {
			return nil, fmt.Errorf("issue access token: %w", err)
		}
		res.AccessToken, res.AccessTokenExpiry = tok, exp
	}
	s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "role": u.Role}).Info("user logged in")
	return res, nil
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
