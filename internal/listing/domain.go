package listing

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Placeholder profile values assigned when a user is created lazily from a
// bare telegram identifier.
const (
	PlaceholderFirstName = "User"
	PlaceholderUsername  = "unknown"
)

// User is an account keyed by an external Telegram identifier. Users are
// created lazily on first ad submission and never deleted through the API.
type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TelegramID string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"telegramId"`
	Username   string    `gorm:"type:varchar(255)" json:"username,omitempty"`
	FirstName  string    `gorm:"type:varchar(255)" json:"firstName,omitempty"`
	LastName   string    `gorm:"type:varchar(255)" json:"lastName,omitempty"`
	IsShop     bool      `gorm:"not null;default:false" json:"isShop"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// Ad is a classified listing owned by exactly one user. Deleting the author
// cascades to their ads, so an ad is never orphaned.
type Ad struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Price       *float64  `gorm:"type:decimal(10,2)" json:"price"`
	Category    string    `gorm:"type:varchar(255);not null" json:"category"`
	ImageURL    *string   `gorm:"type:text" json:"imageUrl"`
	IsActive    bool      `gorm:"not null;default:true" json:"isActive"`
	AuthorID    uint      `gorm:"not null" json:"authorId"`
	Author      User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName returns the table name for the Ad model
func (Ad) TableName() string {
	return "ads"
}

// AdWithAuthor is the flat row produced by the list query: ad columns joined
// with the author's display fields. Author columns are pointers because the
// join is a LEFT JOIN.
type AdWithAuthor struct {
	ID              uint
	Title           string
	Description     string
	Price           *float64
	Category        string
	ImageURL        *string
	IsActive        bool
	CreatedAt       time.Time
	AuthorFirstName *string
	AuthorLastName  *string
	AuthorIsShop    *bool
}

// AuthorView is the embedded author object in API responses.
type AuthorView struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	IsShop    bool   `json:"isShop"`
}

// AdView is the API representation of an ad with its author.
type AdView struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Price       *float64   `json:"price"`
	Category    string     `json:"category"`
	ImageURL    *string    `json:"imageUrl"`
	IsActive    bool       `json:"isActive"`
	CreatedAt   time.Time  `json:"createdAt"`
	Author      AuthorView `json:"author"`
}

// AdListing is the list endpoint response body.
type AdListing struct {
	Ads   []AdView `json:"ads"`
	Total int      `json:"total"`
}

// View maps a joined row to its API shape, applying the display fallbacks the
// mini-app relies on for authors without profile data.
func (r AdWithAuthor) View() AdView {
	author := AuthorView{
		FirstName: PlaceholderFirstName,
		LastName:  "",
	}
	if r.AuthorFirstName != nil && *r.AuthorFirstName != "" {
		author.FirstName = *r.AuthorFirstName
	}
	if r.AuthorLastName != nil {
		author.LastName = *r.AuthorLastName
	}
	if r.AuthorIsShop != nil {
		author.IsShop = *r.AuthorIsShop
	}

	return AdView{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		Category:    r.Category,
		ImageURL:    r.ImageURL,
		IsActive:    r.IsActive,
		CreatedAt:   r.CreatedAt,
		Author:      author,
	}
}

// AuthorViewOf maps a stored user to the embedded author object with the same
// fallbacks the list endpoint applies.
func AuthorViewOf(u *User) AuthorView {
	view := AuthorView{
		FirstName: PlaceholderFirstName,
		LastName:  "",
	}
	if u == nil {
		return view
	}
	if u.FirstName != "" {
		view.FirstName = u.FirstName
	}
	view.LastName = u.LastName
	view.IsShop = u.IsShop
	return view
}

// Price accepts a JSON number or a numeric string, since the mini-app sends
// whatever the form field contains. Absent, null and empty-string values all
// mean "no price". Decoding never fails outright so that field-level
// validation keeps its documented ordering; malformed input is surfaced by
// Value instead.
type Price struct {
	value   *float64
	invalid bool
}

// PriceOf wraps an optional float for constructing requests in code.
func PriceOf(v *float64) Price {
	return Price{value: v}
}

func (p *Price) UnmarshalJSON(data []byte) error {
	p.value = nil
	p.invalid = false

	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "" {
		return nil
	}

	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			p.invalid = true
			return nil
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			p.invalid = true
			return nil
		}
		p.value = &f
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		p.invalid = true
		return nil
	}
	p.value = &f
	return nil
}

func (p Price) MarshalJSON() ([]byte, error) {
	if p.value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*p.value)
}

// Value returns the parsed price and whether the raw input was parseable.
func (p Price) Value() (*float64, bool) {
	if p.invalid {
		return nil, false
	}
	return p.value, true
}

// CreateAdRequest is the POST /api/ads request body.
type CreateAdRequest struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	Price            Price  `json:"price"`
	Category         string `json:"category"`
	ImageURL         string `json:"imageUrl"`
	AuthorTelegramID string `json:"authorTelegramId"`
}
