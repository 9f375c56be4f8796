package team

import (
	"errors"

	"gorm.io/gorm"
)

// TeamRepository reads roster snapshots for display consumers.
type TeamRepository interface {
	GetTeamByID(id uint) (*Team, error)
}

// GormTeamRepository implements TeamRepository using GORM
type GormTeamRepository struct {
	db *gorm.DB
}

// NewGormTeamRepository creates a new GormTeamRepository
func NewGormTeamRepository(db *gorm.DB) *GormTeamRepository {
	return &GormTeamRepository{db: db}
}

// GetTeamByID retrieves a team with its roster
func (r *GormTeamRepository) GetTeamByID(id uint) (*Team, error) {
	var t Team
	result := r.db.Preload("Players", func(db *gorm.DB) *gorm.DB {
		return db.Order("batting_order asc")
	}).Preload("Players.Player").First(&t, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &t, nil
}
