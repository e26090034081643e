package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/meejain/da-crawl/internal/model"
)

// TokenRepository defines DB ops for JWT revocation.
type TokenRepository interface {
	// Add adds a token to the blacklist.
	Add(token *model.BlacklistedToken) error
	// IsBlacklisted checks if a token is in the blacklist.
	IsBlacklisted(jti string) (bool, error)
	// RemoveExpired removes expired tokens from the blacklist.
	RemoveExpired() error
}

type tokenRepo struct {
	db *gorm.DB
}

// NewTokenRepo returns a TokenRepository backed by GORM.
func NewTokenRepo(db *gorm.DB) TokenRepository {
	return &tokenRepo{db: db}
}

// Add adds a token to the blacklist.
func (r *tokenRepo) Add(token *model.BlacklistedToken) error {
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now()
	}
	return r.db.Create(token).Error
}

// IsBlacklisted checks if a token ID is in the blacklist.
func (r *tokenRepo) IsBlacklisted(jti string) (bool, error) {
	var count int64
	err := r.db.Model(&model.BlacklistedToken{}).
		Where("jti = ?", jti).
		Count(&count).Error

	return count > 0, err
}

// RemoveExpired removes expired tokens from the blacklist.
func (r *tokenRepo) RemoveExpired() error {
	return r.db.Where("expires_at < ?", time.Now()).
		Delete(&model.BlacklistedToken{}).Error
}
