package repo

import (
	"context"
	"time"

	"github.com/Skotchmaster/ecommerce_api/internal/models"
)

func (r *GormRepo) CreateSession(ctx context.Context, s *models.Session) error {
	return r.DB.WithContext(ctx).Create(s).Error
}

// GetSessionByToken looks a session up by the sha256 hex of the raw
// cookie value.
func (r *GormRepo) GetSessionByToken(ctx context.Context, tokenHash string) (*models.Session, error) {
	var s models.Session
	if err := r.DB.WithContext(ctx).Where("token = ?", tokenHash).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *GormRepo) RevokeSession(ctx context.Context, tokenHash string) error {
	res := r.DB.WithContext(ctx).Model(&models.Session{}).
		Where("token = ?", tokenHash).
		Update("revoked", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// PurgeExpiredSessions removes rows that can no longer authenticate
// anything. Ran on a schedule from cmd/server.
func (r *GormRepo) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	res := r.DB.WithContext(ctx).
		Where("revoked = ? OR expires_at < ?", true, time.Now().Unix()).
		Delete(&models.Session{})
	return res.RowsAffected, res.Error
}
