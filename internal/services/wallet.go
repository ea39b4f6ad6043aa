package services

import (
	"errors"
	"fmt"
	"time"

	"property-verify/backend/internal/cache"
	"property-verify/backend/internal/models"

	"gorm.io/gorm"
)

const walletCacheTTL = 5 * time.Minute

type WalletService interface {
	Balance(db *gorm.DB, email string) (int64, error)
	InvalidateBalance(email string)
}

// WalletServiceImpl reads wallet balances, optionally through a redis
// cache-aside. A nil cache means every read hits the database.
type WalletServiceImpl struct {
	cache *cache.RedisCache
}

func NewWalletService(cacheInstance *cache.RedisCache) *WalletServiceImpl {
	return &WalletServiceImpl{cache: cacheInstance}
}

func (s *WalletServiceImpl) Balance(db *gorm.DB, email string) (int64, error) {
	cacheKey := walletCacheKey(email)

	if s.cache != nil {
		var cached int64
		if err := s.cache.Get(cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	var user models.AppUser
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("failed to look up user: %w", err)
	}

	if s.cache != nil {
		s.cache.Set(cacheKey, user.WalletBalanceCents, walletCacheTTL)
	}

	return user.WalletBalanceCents, nil
}

// InvalidateBalance drops the cached balance after a credit. Safe to call
// with caching disabled.
func (s *WalletServiceImpl) InvalidateBalance(email string) {
	if s.cache == nil {
		return
	}
	s.cache.Delete(walletCacheKey(email))
}

func walletCacheKey(email string) string {
	return fmt.Sprintf("wallet:%s", email)
}
