package auth

import (
	"errors"
	"time"

	"skincare-backend/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// BlocklistService is the only way in or out of the invalidated_tokens
// table: revoke on logout/refresh, check on every verified request,
// purge on a schedule.
type BlocklistService struct {
	tokenRepo *repository.TokenRepository
}

func NewBlocklistService(tokenRepo *repository.TokenRepository) *BlocklistService {
	return &BlocklistService{tokenRepo: tokenRepo}
}

// Revoke records a jti as invalidated until its original expiry.
// Revoking the same jti twice is a no-op success; the token is already
// dead either way. Any other store failure is returned so the caller
// can fail the logout/refresh instead of telling the client a token is
// revoked when it is not.
func (s *BlocklistService) Revoke(jti string, expiredAt time.Time) error {
	_, err := s.tokenRepo.Insert(jti, expiredAt)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			log.Debug().Str("jti", jti).Msg("Token already revoked")
			return nil
		}
		log.Error().Err(err).Str("jti", jti).Msg("Failed to revoke token")
		return err
	}

	log.Info().Str("jti", jti).Time("expiredAt", expiredAt).Msg("Token revoked")
	return nil
}

// IsRevoked reports whether a jti is on the blocklist. No matching row
// means "not revoked". A store failure fails closed: the token is
// treated as revoked, since failing open would defeat revocation.
func (s *BlocklistService) IsRevoked(jti string) bool {
	exists, err := s.tokenRepo.ExistsByJti(jti)
	if err != nil {
		log.Warn().Err(err).Str("jti", jti).Msg("Blocklist check failed, treating token as revoked")
		return true
	}
	return exists
}

// PurgeExpired deletes rows whose token has passed its own expiry.
// Safe to run on any cadence and concurrently with live requests:
// an expired token is already rejected by the signature/exp check
// before the blocklist is ever consulted.
func (s *BlocklistService) PurgeExpired(asOf time.Time) (int64, error) {
	count, err := s.tokenRepo.DeleteExpiredBefore(asOf)
	if err != nil {
		return 0, err
	}

	if count > 0 {
		log.Info().Int64("count", count).Msg("Purged expired blocklist entries")
	}
	return count, nil
}
