package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"skincare-backend/internal/mail"

	"github.com/rs/zerolog/log"
)

// Service generates one-time codes, keeps them in the TTL store and
// mails them to the user.
type Service struct {
	store  Store
	mailer mail.Mailer
	ttl    time.Duration
}

func NewService(store Store, mailer mail.Mailer, ttl time.Duration) *Service {
	return &Service{
		store:  store,
		mailer: mailer,
		ttl:    ttl,
	}
}

// Send generates a 6-digit code, stores it under the email for the
// configured TTL and delivers it by mail. The code is only usable
// while the store entry lives.
func (s *Service) Send(ctx context.Context, email string) error {
	code, err := generateCode()
	if err != nil {
		return err
	}

	if err := s.store.Set(ctx, email, code, s.ttl); err != nil {
		log.Error().Err(err).Str("email", email).Msg("Failed to store OTP code")
		return err
	}

	if err := s.mailer.SendOTP(email, code); err != nil {
		log.Error().Err(err).Str("email", email).Msg("Failed to send OTP mail")
		return err
	}

	log.Info().Str("email", email).Msg("OTP sent")
	return nil
}

// Verify checks the submitted code against the stored one and consumes
// it on success. A missing or expired entry verifies as false.
func (s *Service) Verify(ctx context.Context, email, code string) (bool, error) {
	stored, err := s.store.Get(ctx, email)
	if err == ErrCodeNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if stored != code {
		return false, nil
	}

	// One shot: a verified code cannot be replayed.
	if err := s.store.Delete(ctx, email); err != nil {
		log.Warn().Err(err).Str("email", email).Msg("Failed to delete consumed OTP code")
	}
	return true, nil
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
