package models

import "time"

// InvalidatedToken is a blocklist row for a token revoked by logout or
// refresh. The row only needs to outlive the token's own exp claim;
// after that the signature check rejects the token anyway and the
// sweep is free to delete the row.
type InvalidatedToken struct {
	ID          uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Jti         string    `json:"jti" gorm:"type:varchar(36);not null;uniqueIndex"`
	ExpiredTime time.Time `json:"expiredTime" gorm:"not null;index"`
	CreatedAt   time.Time `json:"createdAt" gorm:"autoCreateTime;not null"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"autoUpdateTime;not null"`
}

// TableName specifies the table name for GORM
func (InvalidatedToken) TableName() string {
	return "invalidated_tokens"
}
