package services

import (
	"fmt"

	"property-verify/backend/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type SeedService interface {
	Seed(db *gorm.DB) error
}

type SeedServiceImpl struct{}

func NewSeedService() *SeedServiceImpl {
	return &SeedServiceImpl{}
}

// Seed inserts a demo user and three sample properties, but only into
// collections that are currently empty. Calling it again is a no-op.
func (s *SeedServiceImpl) Seed(db *gorm.DB) error {
	var userCount int64
	if err := db.Model(&models.AppUser{}).Count(&userCount).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}

	if userCount == 0 {
		demo := models.AppUser{
			ID:    uuid.Must(uuid.NewV4()),
			Name:  "Demo User",
			Email: "demo@example.com",
		}
		if err := db.Create(&demo).Error; err != nil {
			return fmt.Errorf("failed to seed demo user: %w", err)
		}
	}

	var taskCount int64
	if err := db.Model(&models.VerificationTask{}).Count(&taskCount).Error; err != nil {
		return fmt.Errorf("failed to count tasks: %w", err)
	}

	if taskCount == 0 {
		samples := []models.VerificationTask{
			{
				Title:        "Modern Studio Apartment",
				Price:        1200.0,
				Location:     "San Francisco, CA",
				ImageURL:     "https://images.unsplash.com/photo-1505693416388-ac5ce068fe85?q=80&w=1200&auto=format&fit=crop",
				PropertyType: "Apartment",
			},
			{
				Title:        "Cozy Suburban Home",
				Price:        350000.0,
				Location:     "Austin, TX",
				ImageURL:     "https://images.unsplash.com/photo-1560185008-b033106af2fa?q=80&w=1200&auto=format&fit=crop",
				PropertyType: "House",
			},
			{
				Title:        "Downtown Loft",
				Price:        2200.0,
				Location:     "Chicago, IL",
				ImageURL:     "https://images.unsplash.com/photo-1600585154526-990dced4db0d?q=80&w=1200&auto=format&fit=crop",
				PropertyType: "Loft",
			},
		}

		for i := range samples {
			samples[i].ID = uuid.Must(uuid.NewV4())
			samples[i].RewardCents = models.DefaultRewardCents
			samples[i].Instructions = models.DefaultInstructions
			samples[i].Status = models.TaskStatusPending
		}

		if err := db.Create(&samples).Error; err != nil {
			return fmt.Errorf("failed to seed tasks: %w", err)
		}
	}

	return nil
}
