package models

type Product struct {
	ID          int     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"not null"                 json:"name"`
	Price       float64 `gorm:"not null"                 json:"price"`
	Description string  `gorm:"not null;default:''"      json:"description"`
}

// ProductSummary is the list projection: description is intentionally
// absent from /api/products responses.
type ProductSummary struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func (p Product) Summary() ProductSummary {
	return ProductSummary{ID: p.ID, Name: p.Name, Price: p.Price}
}

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"unique;not null"          json:"username"`
	PasswordHash string `gorm:"not null"                 json:"-"`
}

// AuthID satisfies the Authenticatable capability consumed by the
// session layer.
func (u User) AuthID() uint { return u.ID }

// Session is the server-side record behind a session cookie. Token
// holds the sha256 hex of the value handed to the client, never the
// raw token itself.
type Session struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Token     string `gorm:"unique;not null"          json:"-"`
	UserID    uint   `gorm:"index;not null"           json:"user_id"`
	ExpiresAt int64  `gorm:"not null"                 json:"expires_at"`
	Revoked   bool   `gorm:"default:false"            json:"revoked"`
}
