package listing

import (
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gormListingRepository implements the ListingRepository interface using GORM
type gormListingRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewGormListingRepository creates a new GORM-based listing repository
func NewGormListingRepository(db *gorm.DB, logger *zap.Logger) ListingRepository {
	return &gormListingRepository{
		db:     db,
		logger: logger,
	}
}

// ListActiveAds returns active ads with author display fields, newest first
func (r *gormListingRepository) ListActiveAds() ([]AdWithAuthor, error) {
	r.logger.Debug("Listing active ads")

	var rows []AdWithAuthor
	err := r.db.Table("ads").
		Select("ads.id, ads.title, ads.description, ads.price, ads.category, ads.image_url, ads.is_active, ads.created_at, " +
			"users.first_name AS author_first_name, users.last_name AS author_last_name, users.is_shop AS author_is_shop").
		Joins("LEFT JOIN users ON users.id = ads.author_id").
		Where("ads.is_active = ?", true).
		Order("ads.created_at DESC").
		Scan(&rows).Error

	if err != nil {
		return nil, WrapRepositoryError(err, "list active ads")
	}

	r.logger.Debug("Retrieved active ads", zap.Int("count", len(rows)))
	return rows, nil
}

// CreateAd inserts an ad for the user identified by telegramID, creating the
// user when unseen. The user insert uses ON CONFLICT (telegram_id) DO NOTHING
// so two concurrent first-time submissions cannot race into a duplicate: the
// loser of the conflict simply reads the winner's row.
func (r *gormListingRepository) CreateAd(ad *Ad, telegramID string) (*User, bool, error) {
	r.logger.Debug("Creating ad",
		zap.String("title", ad.Title),
		zap.String("telegramID", telegramID))

	var author User
	var registered bool

	err := r.db.Transaction(func(tx *gorm.DB) error {
		author = User{
			TelegramID: telegramID,
			FirstName:  PlaceholderFirstName,
			Username:   PlaceholderUsername,
		}

		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "telegram_id"}},
			DoNothing: true,
		}).Create(&author)
		if result.Error != nil {
			return WrapRepositoryError(result.Error, "upsert user")
		}

		// RowsAffected is zero when the identifier already existed; the
		// conflicting insert leaves author.ID unset, so load the real row.
		registered = result.RowsAffected > 0
		if !registered {
			if err := tx.Where("telegram_id = ?", telegramID).First(&author).Error; err != nil {
				return WrapRepositoryError(err, "load user after conflict")
			}
		}

		ad.AuthorID = author.ID
		if err := tx.Omit(clause.Associations).Create(ad).Error; err != nil {
			return WrapRepositoryError(err, "create ad")
		}

		return nil
	})

	if err != nil {
		return nil, false, err
	}

	r.logger.Info("Ad created successfully",
		zap.Uint("adID", ad.ID),
		zap.Uint("authorID", author.ID),
		zap.Bool("newUser", registered))

	return &author, registered, nil
}

// FindUserByTelegramID retrieves a user by external identifier
func (r *gormListingRepository) FindUserByTelegramID(telegramID string) (*User, error) {
	r.logger.Debug("Finding user by telegram ID", zap.String("telegramID", telegramID))

	var user User
	err := r.db.Where("telegram_id = ?", telegramID).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, WrapRepositoryError(err, "find user by telegram ID")
	}

	return &user, nil
}
