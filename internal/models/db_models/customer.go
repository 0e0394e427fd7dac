package db_models

// Customer is keyed naturally by email; the unique index settles concurrent
// first purchases from the same address.
type Customer struct {
	BaseModel
	Email       string `gorm:"uniqueIndex;not null" json:"email"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
}
