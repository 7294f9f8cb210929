package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is a blog entry owned by its author.
type Post struct {
	ID         uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Title      string     `json:"title" gorm:"size:200;not null"`
	Content    string     `json:"content" gorm:"type:text;not null"`
	AuthorID   uuid.UUID  `json:"authorId" gorm:"type:char(36);not null;index"`
	Author     *User      `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	CategoryID *uuid.UUID `json:"categoryId,omitempty" gorm:"type:char(36);index"`
	Category   *Category  `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Slug       string     `json:"slug" gorm:"uniqueIndex;size:220"`
	Published  bool       `json:"published" gorm:"not null;default:false;index"`
	Views      uint       `json:"views" gorm:"not null;default:0"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Slugify derives a URL-safe slug from a post title: lowercase, runs of
// non-alphanumeric characters collapse to a single dash, edge dashes dropped.
// It runs once at creation; later title edits do not regenerate the slug.
func Slugify(title string) string {
	lower := strings.ToLower(title)

	var b strings.Builder
	b.Grow(len(lower))
	dash := false
	for _, r := range lower {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
			continue
		}
		dash = true
	}
	return b.String()
}
