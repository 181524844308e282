package models

const (
	InclusionTypeInclusion = "INCLUSION"
	InclusionTypeExclusion = "EXCLUSION"
)

type ItineraryDay struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	PackageID   uint   `gorm:"index;not null" json:"packageId"`
	DayNumber   int    `json:"dayNumber"`
	Title       string `gorm:"size:255" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Location    string `gorm:"size:255" json:"location"`
}

type PackageHotel struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	PackageID  uint   `gorm:"index;not null" json:"packageId"`
	City       string `gorm:"size:255" json:"city"`
	HotelName  string `gorm:"size:255" json:"hotelName"`
	StarRating int    `json:"starRating"`
	RoomType   string `gorm:"size:255" json:"roomType"`
	Nights     int    `json:"nights"`
}

type PackageMeal struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	PackageID   uint   `gorm:"index;not null" json:"packageId"`
	DayNumber   int    `json:"dayNumber"`
	MealType    string `gorm:"size:50" json:"mealType"`
	Description string `gorm:"type:text" json:"description"`
}

type PackageTransfer struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	PackageID    uint   `gorm:"index;not null" json:"packageId"`
	DayNumber    int    `json:"dayNumber"`
	FromLocation string `gorm:"size:255" json:"fromLocation"`
	ToLocation   string `gorm:"size:255" json:"toLocation"`
	Mode         string `gorm:"size:100" json:"mode"`
	Description  string `gorm:"type:text" json:"description"`
}

type PackageSightseeing struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	PackageID   uint   `gorm:"index;not null" json:"packageId"`
	DayNumber   int    `json:"dayNumber"`
	Title       string `gorm:"size:255" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Duration    string `gorm:"size:100" json:"duration"`
}

func (PackageSightseeing) TableName() string { return "package_sightseeing" }

// PackageInclusion is one line item of the inclusion or exclusion list,
// distinguished by Type.
type PackageInclusion struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	PackageID uint   `gorm:"index;not null" json:"packageId"`
	Type      string `gorm:"size:20;not null" json:"type"`
	Text      string `gorm:"type:text;not null" json:"text"`
	SortOrder int    `json:"sortOrder"`
}

type PackagePolicy struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	PackageID uint   `gorm:"index;not null" json:"packageId"`
	Type      string `gorm:"size:50;not null" json:"type"`
	Title     string `gorm:"size:255" json:"title"`
	Content   string `gorm:"type:text" json:"content"`
	SortOrder int    `json:"sortOrder"`
}

type OptionalActivity struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	PackageID   uint     `gorm:"index;not null" json:"packageId"`
	Name        string   `gorm:"size:255" json:"name"`
	Description string   `gorm:"type:text" json:"description"`
	Price       *float64 `gorm:"type:decimal(12,2)" json:"price"`
}
