package models

// Category labels expenses. A nil UserID marks a global default shared by
// every user; those rows are read-only.
type Category struct {
	Base
	UserID    *string `gorm:"type:varchar(36);index" json:"user_id,omitempty"`
	Name      string  `gorm:"column:category_name;size:50;not null" json:"category_name"`
	Icon      string  `gorm:"column:category_icon;size:50;not null;default:'fa-tag'" json:"category_icon"`
	IsDefault bool    `gorm:"not null;default:false" json:"is_default"`
}

// DefaultCategoryIcon is used when a category is created without an icon.
const DefaultCategoryIcon = "fa-tag"

// OwnedBy reports whether the category is a custom category of userID.
func (c *Category) OwnedBy(userID string) bool {
	return !c.IsDefault && c.UserID != nil && *c.UserID == userID
}

// Choice is a selectable value with its display label.
type Choice struct {
	Value string
	Label string
}

// CategoryIcons are the icons offered for custom categories.
var CategoryIcons = []Choice{
	{"fa-utensils", "Food & Dining"},
	{"fa-bus", "Transport"},
	{"fa-house-chimney", "Housing"},
	{"fa-lightbulb", "Utilities"},
	{"fa-bag-shopping", "Shopping"},
	{"fa-heart-pulse", "Health"},
	{"fa-plane", "Travel"},
	{"fa-film", "Entertainment"},
	{"fa-graduation-cap", "Education"},
	{"fa-gift", "Gifts"},
	{"fa-coffee", "Coffee"},
	{"fa-wine-bottle", "Drinks"},
	{"fa-dumbbell", "Fitness"},
	{"fa-dog", "Pets"},
	{"fa-mobile", "Mobile"},
	{"fa-wifi", "Internet"},
	{"fa-water", "Water"},
	{"fa-gas-pump", "Fuel"},
	{"fa-book", "Books"},
	{"fa-gamepad", "Gaming"},
	{"fa-music", "Music"},
	{"fa-camera", "Photography"},
	{"fa-cut", "Beauty"},
	{"fa-tshirt", "Clothing"},
	{"fa-shoe-prints", "Footwear"},
	{DefaultCategoryIcon, "Other"},
}
