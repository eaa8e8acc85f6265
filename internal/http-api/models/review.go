package models

import "time"

// Review is a star rating plus free text, authored by exactly one user
// about exactly one book. Rating is an integer in [1,5]. Deleting a book
// cascades to its reviews.
type Review struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	BookID     int64     `gorm:"not null;index" json:"book_id"`
	ReviewerID string    `gorm:"not null;type:uuid;index" json:"reviewer_id"`
	ReviewText string    `gorm:"not null" json:"review_text"`
	Rating     int       `gorm:"not null" json:"rating"`
	CreatedAt  time.Time `json:"created_at"`

	Book     Book `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"-"`
	Reviewer User `gorm:"foreignKey:ReviewerID" json:"-"`
}

func (Review) TableName() string {
	return "reviews"
}
