package gorm

import (
	"time"

	"gorm.io/gorm"
)

// PostType mirrors the Postgres ENUM 'post_type'
type PostType string

const (
	PostTestimony    PostType = "testimony"
	PostPrayer       PostType = "prayer"
	PostAnnouncement PostType = "announcement"
	PostGeneral      PostType = "general"
)

// PostVisibility mirrors the Postgres ENUM 'post_visibility'
type PostVisibility string

const (
	VisibilityPublic  PostVisibility = "public"
	VisibilityGroups  PostVisibility = "groups"
	VisibilityLeaders PostVisibility = "leaders"
)

// PostStatus mirrors the Postgres ENUM 'post_status'
type PostStatus string

const (
	PostPublished PostStatus = "published"
	PostHidden    PostStatus = "hidden"
	PostDeleted   PostStatus = "deleted"
)

// ReactionType mirrors the Postgres ENUM 'reaction_type'. A user holds at
// most one active reaction type per post.
type ReactionType string

const (
	ReactionAmen  ReactionType = "amen"
	ReactionPray  ReactionType = "pray"
	ReactionHeart ReactionType = "heart"
)

type Post struct {
	ID         string         `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	AuthorID   string         `gorm:"column:author_id;type:uuid;index" json:"author_id"`
	Content    string         `gorm:"column:content" json:"content"`
	Type       PostType       `gorm:"column:type;type:text;default:general" json:"type"`
	MediaURLs  StringList     `gorm:"column:media_urls;type:text" json:"media_urls,omitempty"`
	Visibility PostVisibility `gorm:"column:visibility;type:text;default:public" json:"visibility"`
	GroupID    *string        `gorm:"column:group_id;type:uuid;index" json:"group_id,omitempty"`
	Tags       StringList     `gorm:"column:tags;type:text" json:"tags,omitempty"`
	Status     PostStatus     `gorm:"column:status;type:text;default:published" json:"status"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	// Relationships
	Author    *User          `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Reactions []PostReaction `gorm:"foreignKey:PostID" json:"reactions,omitempty"`
	Comments  []Comment      `gorm:"foreignKey:PostID" json:"comments,omitempty"`
}

// TableName specifies the table name for GORM
func (Post) TableName() string {
	return "posts"
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = newID()
	}
	return nil
}

type PostReaction struct {
	ID        string       `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	PostID    string       `gorm:"column:post_id;type:uuid;uniqueIndex:idx_post_reaction" json:"post_id"`
	UserID    string       `gorm:"column:user_id;type:uuid;uniqueIndex:idx_post_reaction" json:"user_id"`
	Type      ReactionType `gorm:"column:type;type:text;uniqueIndex:idx_post_reaction" json:"type"`
	CreatedAt time.Time    `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for GORM
func (PostReaction) TableName() string {
	return "post_reactions"
}

func (r *PostReaction) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = newID()
	}
	return nil
}

// Comment supports one level of threading through ParentID.
type Comment struct {
	ID        string    `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	PostID    string    `gorm:"column:post_id;type:uuid;index" json:"post_id"`
	AuthorID  string    `gorm:"column:author_id;type:uuid" json:"author_id"`
	Content   string    `gorm:"column:content" json:"content"`
	ParentID  *string   `gorm:"column:parent_id;type:uuid" json:"parent_id,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	// Relationships
	Author  *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Replies []Comment `gorm:"foreignKey:ParentID" json:"replies,omitempty"`
}

// TableName specifies the table name for GORM
func (Comment) TableName() string {
	return "comments"
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = newID()
	}
	return nil
}
