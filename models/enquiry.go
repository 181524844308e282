package models

import "time"

const (
	EnquiryStatusNew        = "NEW"
	EnquiryStatusContacted  = "CONTACTED"
	EnquiryStatusInProgress = "IN_PROGRESS"
	EnquiryStatusConverted  = "CONVERTED"
	EnquiryStatusClosed     = "CLOSED"
)

// EnquiryStatuses is the ordered status set shown in the admin pipeline.
var EnquiryStatuses = []string{
	EnquiryStatusNew,
	EnquiryStatusContacted,
	EnquiryStatusInProgress,
	EnquiryStatusConverted,
	EnquiryStatusClosed,
}

const (
	EnquirySourceContactPage   = "CONTACT_PAGE"
	EnquirySourceQuickEnquiry  = "QUICK_ENQUIRY"
	EnquirySourcePackageDetail = "PACKAGE_DETAIL"
)

var EnquirySources = []string{
	EnquirySourceContactPage,
	EnquirySourceQuickEnquiry,
	EnquirySourcePackageDetail,
}

// Enquiry is a lead captured from a public form. Status only changes through
// admin updates.
type Enquiry struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"size:255;not null" json:"name"`
	Email       string     `gorm:"size:255;not null;index" json:"email"`
	Phone       string     `gorm:"size:50" json:"phone"`
	PackageID   *uint      `gorm:"index" json:"packageId"`
	Destination string     `gorm:"size:255" json:"destination"`
	TravelDate  *time.Time `json:"travelDate"`
	Travelers   int        `json:"travelers"`
	Message     string     `gorm:"type:text" json:"message"`
	Source      string     `gorm:"size:32;not null;default:CONTACT_PAGE" json:"source"`
	Status      string     `gorm:"size:32;not null;default:NEW;index" json:"status"`
	Notes       string     `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time  `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	Package *Package `gorm:"foreignKey:PackageID;references:ID" json:"package,omitempty"`
}
