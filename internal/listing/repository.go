package listing

// ListingRepository defines the interface for ad and user data access
type ListingRepository interface {
	// ListActiveAds returns all active ads joined with their author's display
	// fields, newest first.
	ListActiveAds() ([]AdWithAuthor, error)

	// CreateAd resolves the author by telegram identifier (creating the user
	// atomically when unseen), inserts the ad, and returns the resolved
	// author plus whether a new user row was created. Both writes happen in
	// one transaction.
	CreateAd(ad *Ad, telegramID string) (*User, bool, error)

	// FindUserByTelegramID returns the user for an external identifier, or
	// ErrUserNotFound.
	FindUserByTelegramID(telegramID string) (*User, error)
}
