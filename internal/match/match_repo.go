package match

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MatchRepository defines methods to interact with match and ledger data
type MatchRepository interface {
	// Match methods
	CreateMatch(match *Match) error
	GetMatchByID(id uint) (*Match, error)
	SaveMatch(match *Match) error
	GetMatches(filters map[string]interface{}, page, pageSize int) ([]Match, int64, error)

	// Ledger methods. AppendBallEvent assigns the next sequence number
	// inside a transaction; ListBallEvents with innings 0 returns the
	// whole match ledger in append order.
	AppendBallEvent(event *BallEvent) error
	ListBallEvents(matchID uint, innings int) ([]BallEvent, error)
	ListBallEventsPage(matchID uint, innings int, page, pageSize int) ([]BallEvent, int64, error)

	// Transaction support
	WithTransaction(txFunc func(MatchRepository) error) error
}

// GormMatchRepository implements MatchRepository using GORM
type GormMatchRepository struct {
	db *gorm.DB
}

// NewGormMatchRepository creates a new GormMatchRepository
func NewGormMatchRepository(db *gorm.DB) *GormMatchRepository {
	return &GormMatchRepository{db: db}
}

// WithTransaction implements transaction support
func (r *GormMatchRepository) WithTransaction(txFunc func(MatchRepository) error) error {
	tx := r.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	txRepo := &GormMatchRepository{db: tx}
	err := txFunc(txRepo)
	if err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// CreateMatch creates a match together with its team snapshots and players
func (r *GormMatchRepository) CreateMatch(match *Match) error {
	return r.db.Create(match).Error
}

// GetMatchByID retrieves a match with both rosters preloaded
func (r *GormMatchRepository) GetMatchByID(id uint) (*Match, error) {
	var match Match
	result := r.db.Preload("Teams").
		Preload("Teams.Team").
		Preload("Teams.Team.Players", func(db *gorm.DB) *gorm.DB {
			return db.Order("batting_order asc")
		}).
		Preload("Teams.Team.Players.Player").
		First(&match, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &match, nil
}

// SaveMatch persists the mutable match fields (status, toss, slots, result)
func (r *GormMatchRepository) SaveMatch(match *Match) error {
	return r.db.Omit(clause.Associations).Save(match).Error
}

// GetMatches retrieves matches based on filters with pagination
func (r *GormMatchRepository) GetMatches(filters map[string]interface{}, page, pageSize int) ([]Match, int64, error) {
	var matches []Match
	var total int64

	query := r.db.Model(&Match{})

	// Apply filters
	for key, value := range filters {
		query = query.Where(key+" = ?", value)
	}

	// Count total before pagination
	err := query.Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	// Apply pagination
	offset := (page - 1) * pageSize
	result := query.Preload("Teams").
		Preload("Teams.Team").
		Order("created_at desc").
		Offset(offset).Limit(pageSize).
		Find(&matches)

	if result.Error != nil {
		return nil, 0, result.Error
	}

	return matches, total, nil
}

// AppendBallEvent appends one event to a match ledger. The next sequence
// number is claimed inside the transaction; the unique (match_id, seq)
// index turns a lost race between two scorers into an insert error instead
// of a reordered ledger.
func (r *GormMatchRepository) AppendBallEvent(event *BallEvent) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var maxSeq int64
		err := tx.Model(&BallEvent{}).
			Where("match_id = ?", event.MatchID).
			Select("COALESCE(MAX(seq), 0)").
			Scan(&maxSeq).Error
		if err != nil {
			return err
		}

		event.Seq = int(maxSeq) + 1
		return tx.Create(event).Error
	})
}

// ListBallEvents returns a match ledger in append order; innings 0 means
// both innings.
func (r *GormMatchRepository) ListBallEvents(matchID uint, innings int) ([]BallEvent, error) {
	var events []BallEvent
	query := r.db.Where("match_id = ?", matchID)
	if innings > 0 {
		query = query.Where("innings = ?", innings)
	}
	err := query.Order("seq asc").Find(&events).Error
	return events, err
}

// ListBallEventsPage returns a page of the ledger, newest last
func (r *GormMatchRepository) ListBallEventsPage(matchID uint, innings int, page, pageSize int) ([]BallEvent, int64, error) {
	var events []BallEvent
	var total int64

	query := r.db.Model(&BallEvent{}).Where("match_id = ?", matchID)
	if innings > 0 {
		query = query.Where("innings = ?", innings)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("seq asc").Offset(offset).Limit(pageSize).Find(&events).Error
	if err != nil {
		return nil, 0, err
	}

	return events, total, nil
}
