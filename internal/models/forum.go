package models

import (
	"time"
)

// ForumPost represents a discussion forum post. Forum content is readable by
// any authenticated user; once locked no further mutation is accepted.
type ForumPost struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Title     string    `json:"title" gorm:"column:title"`
	Content   string    `json:"content" gorm:"column:content"`
	AuthorID  uint      `json:"author_id" gorm:"column:author_id;index"`
	RTNumber  string    `json:"rt_number" gorm:"column:rt_number"`
	RWNumber  string    `json:"rw_number" gorm:"column:rw_number"`
	IsLocked  bool      `json:"is_locked" gorm:"column:is_locked;default:false"`
	IsPinned  bool      `json:"is_pinned" gorm:"column:is_pinned;default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the insert table name for ForumPost
func (ForumPost) TableName() string {
	return "forum_posts"
}

// ForumComment represents a comment on a forum post
type ForumComment struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	PostID    uint      `json:"post_id" gorm:"column:post_id;index"`
	Content   string    `json:"content" gorm:"column:content"`
	AuthorID  uint      `json:"author_id" gorm:"column:author_id;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the insert table name for ForumComment
func (ForumComment) TableName() string {
	return "forum_comments"
}
