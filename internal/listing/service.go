package listing

import (
	"strings"

	"admarket-api/internal/events"

	"go.uber.org/zap"
)

// ListingService defines the interface for listing operations
type ListingService interface {
	ListAds() (*AdListing, error)
	CreateAd(req CreateAdRequest) (*AdView, error)
}

// listingService implements the ListingService interface
type listingService struct {
	eventBus   events.EventBus
	logger     *zap.Logger
	repository ListingRepository
}

// NewListingService creates a new instance of ListingService
func NewListingService(eventBus events.EventBus, logger *zap.Logger, repository ListingRepository) ListingService {
	return &listingService{
		eventBus:   eventBus,
		logger:     logger,
		repository: repository,
	}
}

// ListAds returns a snapshot of all active ads with authors, newest first
func (s *listingService) ListAds() (*AdListing, error) {
	rows, err := s.repository.ListActiveAds()
	if err != nil {
		s.logger.Error("Failed to list ads", zap.Error(err))
		return nil, err
	}

	ads := make([]AdView, 0, len(rows))
	for _, row := range rows {
		ads = append(ads, row.View())
	}

	return &AdListing{
		Ads:   ads,
		Total: len(ads),
	}, nil
}

// CreateAd validates the request, resolves the author by telegram identifier
// and persists the ad. The caller-supplied identifier is trusted as-is; there
// is no server-side identity verification.
func (s *listingService) CreateAd(req CreateAdRequest) (*AdView, error) {
	if err := validateCreateAdRequest(req); err != nil {
		return nil, err
	}

	price, _ := req.Price.Value()

	ad := &Ad{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Price:       price,
		Category:    strings.TrimSpace(req.Category),
		ImageURL:    optionalString(req.ImageURL),
		IsActive:    true,
	}

	author, registered, err := s.repository.CreateAd(ad, req.AuthorTelegramID)
	if err != nil {
		s.logger.Error("Failed to create ad",
			zap.String("telegramID", req.AuthorTelegramID),
			zap.Error(err))
		return nil, err
	}

	if registered {
		s.publish(events.TopicUserRegistered, events.UserRegistered{
			Event:      events.NewEvent(),
			UserID:     author.ID,
			TelegramID: author.TelegramID,
		})
	}
	s.publish(events.TopicListingCreated, events.ListingCreated{
		Event:    events.NewEvent(),
		AdID:     ad.ID,
		AuthorID: author.ID,
		Category: ad.Category,
	})

	view := AdView{
		ID:          ad.ID,
		Title:       ad.Title,
		Description: ad.Description,
		Price:       ad.Price,
		Category:    ad.Category,
		ImageURL:    ad.ImageURL,
		IsActive:    ad.IsActive,
		CreatedAt:   ad.CreatedAt,
		Author:      AuthorViewOf(author),
	}
	return &view, nil
}

// validateCreateAdRequest applies the documented checks in order; the first
// failure wins.
func validateCreateAdRequest(req CreateAdRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return NewValidationError("title", "Title is required")
	}
	if strings.TrimSpace(req.Description) == "" {
		return NewValidationError("description", "Description is required")
	}
	if strings.TrimSpace(req.Category) == "" {
		return NewValidationError("category", "Category is required")
	}
	if req.AuthorTelegramID == "" {
		return NewValidationError("authorTelegramId", "Unable to identify the user. Please restart the app.")
	}

	price, ok := req.Price.Value()
	if !ok {
		return NewValidationError("price", "Price must be a number")
	}
	if price != nil && *price < 0 {
		return NewValidationError("price", "Price must not be negative")
	}

	return nil
}

// publish sends a domain event; publish failures are logged, never surfaced
// to the HTTP caller.
func (s *listingService) publish(topic string, data interface{}) {
	if err := s.eventBus.Publish(topic, data); err != nil {
		s.logger.Warn("Failed to publish event",
			zap.String("topic", topic),
			zap.Error(err))
	}
}

func optionalString(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
