package model

import "time"

// swagger:model Certificate
type Certificate struct {
	BaseModel
	UserID        uint      `gorm:"index;not null" json:"userId"`
	User          *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CertificateID string    `gorm:"size:36;uniqueIndex;not null" json:"certificateId"`
	Score         float64   `gorm:"not null" json:"score"`
	IssueDate     time.Time `gorm:"not null" json:"issueDate"`
	ExpiryDate    time.Time `gorm:"not null" json:"expiryDate"`
	Revoked       bool      `gorm:"default:false" json:"revoked"`
}

func (Certificate) TableName() string {
	return "certificates"
}

func (c *Certificate) Active(now time.Time) bool {
	return !c.Revoked && c.ExpiryDate.After(now)
}
