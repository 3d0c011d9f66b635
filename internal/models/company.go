package models

import "time"

// DefaultRejectionReason подставляется, когда в запросе на отказ нет поля reason
const DefaultRejectionReason = "No reason provided"

type Company struct {
	BaseModel
	UserID             string        `gorm:"type:varchar(36);uniqueIndex;not null" json:"user_id"`
	CompanyName        string        `gorm:"type:varchar(200);not null" json:"company_name"`
	RegistrationNumber string        `gorm:"type:varchar(100);uniqueIndex;not null" json:"registration_number"`
	Email              string        `gorm:"type:varchar(254)" json:"email"`
	Phone              string        `gorm:"type:varchar(20)" json:"phone"`
	Address            string        `gorm:"type:text" json:"address"`
	City               string        `gorm:"type:varchar(100);index" json:"city"`
	State              string        `gorm:"type:varchar(100)" json:"state"`
	Website            string        `gorm:"type:varchar(255)" json:"website,omitempty"`
	LogoKey            string        `gorm:"type:varchar(255)" json:"logo_key,omitempty"`
	Description        string        `gorm:"type:text" json:"description"`
	Status             CompanyStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	SubmittedAt        time.Time     `gorm:"not null" json:"submitted_at"`
	ApprovedAt         *time.Time    `json:"approved_at,omitempty"`
	RejectionReason    string        `gorm:"type:text" json:"rejection_reason,omitempty"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Jobs []Job `gorm:"foreignKey:CompanyID" json:"jobs,omitempty"`
}

func (c *Company) IsApproved() bool {
	return c.Status == CompanyStatusApproved
}

// Approve переводит компанию в approved и фиксирует время одобрения.
// Повторное одобрение не запрещено и обновляет время.
func (c *Company) Approve(now time.Time) {
	c.Status = CompanyStatusApproved
	c.ApprovedAt = &now
}

// Reject переводит компанию в rejected, причина сохраняется как есть.
func (c *Company) Reject(reason string) {
	c.Status = CompanyStatusRejected
	c.RejectionReason = reason
}
