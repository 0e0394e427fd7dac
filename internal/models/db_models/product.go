package db_models

type Product struct {
	BaseModel
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	Price       int64  `gorm:"not null" json:"price"` // minor units
	Stock       int    `gorm:"not null;check:stock >= 0" json:"stock"`
}
