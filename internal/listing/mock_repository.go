package listing

import (
	"sort"
	"sync"
	"time"
)

// MockListingRepository provides an in-memory implementation for testing
type MockListingRepository struct {
	mu          sync.Mutex
	users       map[string]*User
	ads         []*Ad
	nextUserID  uint
	nextAdID    uint
	listError   error
	createError error
	findError   error
}

// NewMockListingRepository creates a new mock repository
func NewMockListingRepository() *MockListingRepository {
	return &MockListingRepository{
		users: make(map[string]*User),
	}
}

// SetListError makes ListActiveAds fail with err
func (m *MockListingRepository) SetListError(err error) { m.listError = err }

// SetCreateError makes CreateAd fail with err
func (m *MockListingRepository) SetCreateError(err error) { m.createError = err }

// SetFindError makes FindUserByTelegramID fail with err
func (m *MockListingRepository) SetFindError(err error) { m.findError = err }

// AddUser seeds a user row and returns it
func (m *MockListingRepository) AddUser(user User) *User {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextUserID++
	user.ID = m.nextUserID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.users[user.TelegramID] = &user
	return &user
}

// UserCount returns the number of stored users
func (m *MockListingRepository) UserCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

// AdCount returns the number of stored ads
func (m *MockListingRepository) AdCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ads)
}

func (m *MockListingRepository) ListActiveAds() ([]AdWithAuthor, error) {
	if m.listError != nil {
		return nil, m.listError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	byID := make(map[uint]*User)
	for _, u := range m.users {
		byID[u.ID] = u
	}

	var rows []AdWithAuthor
	for _, ad := range m.ads {
		if !ad.IsActive {
			continue
		}
		row := AdWithAuthor{
			ID:          ad.ID,
			Title:       ad.Title,
			Description: ad.Description,
			Price:       ad.Price,
			Category:    ad.Category,
			ImageURL:    ad.ImageURL,
			IsActive:    ad.IsActive,
			CreatedAt:   ad.CreatedAt,
		}
		if author, ok := byID[ad.AuthorID]; ok {
			first, last, shop := author.FirstName, author.LastName, author.IsShop
			row.AuthorFirstName = &first
			row.AuthorLastName = &last
			row.AuthorIsShop = &shop
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	})
	return rows, nil
}

func (m *MockListingRepository) CreateAd(ad *Ad, telegramID string) (*User, bool, error) {
	if m.createError != nil {
		return nil, false, m.createError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	registered := false
	author, ok := m.users[telegramID]
	if !ok {
		m.nextUserID++
		author = &User{
			ID:         m.nextUserID,
			TelegramID: telegramID,
			FirstName:  PlaceholderFirstName,
			Username:   PlaceholderUsername,
			CreatedAt:  time.Now(),
			UpdatedAt:  time.Now(),
		}
		m.users[telegramID] = author
		registered = true
	}

	m.nextAdID++
	ad.ID = m.nextAdID
	ad.AuthorID = author.ID
	if ad.CreatedAt.IsZero() {
		ad.CreatedAt = time.Now()
	}
	ad.UpdatedAt = ad.CreatedAt
	stored := *ad
	m.ads = append(m.ads, &stored)

	return author, registered, nil
}

func (m *MockListingRepository) FindUserByTelegramID(telegramID string) (*User, error) {
	if m.findError != nil {
		return nil, m.findError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if user, ok := m.users[telegramID]; ok {
		return user, nil
	}
	return nil, ErrUserNotFound
}
