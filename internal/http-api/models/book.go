package models

import "time"

// Book is a catalog entry. No two books may share the same (title, author)
// pair; the composite unique index enforces that at the store level.
type Book struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string    `gorm:"not null;uniqueIndex:idx_books_title_author" json:"title"`
	Author    string    `gorm:"not null;uniqueIndex:idx_books_title_author" json:"author"`
	Genre     string    `gorm:"not null" json:"genre"`
	CreatedAt time.Time `json:"created_at"`
}

func (Book) TableName() string {
	return "books"
}
