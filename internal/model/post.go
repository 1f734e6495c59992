package model

import (
	"strings"
	"time"
)

// Post is a short social update on the community feed. Images holds
// comma-separated image references.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"not null;index"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	Images    string    `json:"-" gorm:"type:text"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
}

// ImageRefs splits the stored image references.
func (p Post) ImageRefs() []string {
	if p.Images == "" {
		return []string{}
	}
	return strings.Split(p.Images, ",")
}

// PostView is a post joined with its author's name for the feed.
type PostView struct {
	Post
	UserName  string   `json:"userName"`
	ImageList []string `json:"images" gorm:"-"`
}
