package repository

import (
	"time"

	"skincare-backend/internal/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// TokenRepository owns the invalidated_tokens table. Nothing else
// reads or writes it.
type TokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// Insert records a revoked jti together with the token's original
// expiry. Uniqueness of jti is enforced by the database index, not by
// a prior lookup; a second insert for the same jti returns
// gorm.ErrDuplicatedKey.
func (r *TokenRepository) Insert(jti string, expiredTime time.Time) (*models.InvalidatedToken, error) {
	token := &models.InvalidatedToken{
		Jti:         jti,
		ExpiredTime: expiredTime,
	}

	result := r.db.Create(token)
	if result.Error != nil {
		return nil, result.Error
	}
	return token, nil
}

// ExistsByJti reports whether a jti has been revoked. Called on every
// authenticated request, so it must stay an indexed point lookup.
func (r *TokenRepository) ExistsByJti(jti string) (bool, error) {
	var count int64
	result := r.db.Model(&models.InvalidatedToken{}).
		Where("jti = ?", jti).
		Count(&count)

	if result.Error != nil {
		log.Error().Err(result.Error).Str("jti", jti).Msg("Failed to check invalidated token")
		return false, result.Error
	}
	return count > 0, nil
}

// DeleteExpiredBefore removes rows whose token has already passed its
// own expiry and returns how many were deleted.
func (r *TokenRepository) DeleteExpiredBefore(now time.Time) (int64, error) {
	result := r.db.Where("expired_time < ?", now).
		Delete(&models.InvalidatedToken{})

	if result.Error != nil {
		log.Error().Err(result.Error).Msg("Failed to delete expired invalidated tokens")
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
