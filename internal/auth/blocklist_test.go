package auth

import (
	"testing"
	"time"

	"skincare-backend/internal/models"
	"skincare-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupBlocklist(t *testing.T) (*BlocklistService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.InvalidatedToken{}))

	return NewBlocklistService(repository.NewTokenRepository(db)), db
}

func TestIsRevokedDefaultsToFalse(t *testing.T) {
	blocklist, _ := setupBlocklist(t)

	assert.False(t, blocklist.IsRevoked("never-seen"))
}

func TestRevokeThenIsRevoked(t *testing.T) {
	blocklist, _ := setupBlocklist(t)

	err := blocklist.Revoke("abc", time.Now().Add(time.Hour))
	require.NoError(t, err)

	// Read-your-write on the same store handle
	assert.True(t, blocklist.IsRevoked("abc"))
}

func TestRevokeIsIdempotent(t *testing.T) {
	blocklist, _ := setupBlocklist(t)

	require.NoError(t, blocklist.Revoke("abc", time.Now().Add(time.Hour)))
	require.NoError(t, blocklist.Revoke("abc", time.Now().Add(time.Hour)))

	assert.True(t, blocklist.IsRevoked("abc"))
}

func TestPurgeExpiredRemovesOnlyExpiredRows(t *testing.T) {
	blocklist, _ := setupBlocklist(t)
	now := time.Now()

	require.NoError(t, blocklist.Revoke("old", now.Add(-time.Hour)))
	require.NoError(t, blocklist.Revoke("fresh", now.Add(time.Hour)))

	count, err := blocklist.PurgeExpired(now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	assert.False(t, blocklist.IsRevoked("old"))
	assert.True(t, blocklist.IsRevoked("fresh"))

	// Second sweep in a row removes nothing
	count, err = blocklist.PurgeExpired(now)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestPurgeAfterNaturalExpiry(t *testing.T) {
	blocklist, _ := setupBlocklist(t)
	now := time.Now()
	exp := now.Add(time.Hour)

	require.NoError(t, blocklist.Revoke("abc", exp))
	assert.True(t, blocklist.IsRevoked("abc"))

	count, err := blocklist.PurgeExpired(exp.Add(time.Second))
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Post-purge the jti reads as not revoked; inert, since the token
	// itself is past its exp by now and fails the local check first.
	assert.False(t, blocklist.IsRevoked("abc"))
}

func TestIsRevokedFailsClosedOnStoreError(t *testing.T) {
	blocklist, db := setupBlocklist(t)

	require.NoError(t, db.Migrator().DropTable(&models.InvalidatedToken{}))

	// A broken store must not let tokens through
	assert.True(t, blocklist.IsRevoked("whatever"))
}

func TestRevokeSurfacesStoreError(t *testing.T) {
	blocklist, db := setupBlocklist(t)

	require.NoError(t, db.Migrator().DropTable(&models.InvalidatedToken{}))

	err := blocklist.Revoke("abc", time.Now().Add(time.Hour))
	assert.Error(t, err)
}
