package models

import (
	"sort"
	"time"
)

// Comment moderation statuses. Public submissions always start pending and
// only moderation moves them elsewhere.
const (
	CommentStatusPending  = "pending"
	CommentStatusApproved = "approved"
	CommentStatusSpam     = "spam"
	CommentStatusRejected = "rejected"
)

// Comment represents a visitor comment on a post. Threading is one level
// deep: a comment either has no parent or points at a top-level comment of
// the same post.
type Comment struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Content       string    `gorm:"type:text;not null" json:"content"`
	AuthorName    string    `gorm:"size:255;not null" json:"author_name"`
	AuthorEmail   string    `gorm:"size:255;not null" json:"author_email"`
	AuthorWebsite string    `gorm:"size:255" json:"author_website"`
	AuthorIP      string    `gorm:"size:45" json:"author_ip"`
	UserAgent     string    `gorm:"size:255" json:"user_agent"`
	Status        string    `gorm:"size:16;index;default:'pending'" json:"status"`
	PostID        uint      `gorm:"index;not null" json:"post_id"`
	ParentID      *uint     `gorm:"index" json:"parent_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Post          *Post     `json:"post,omitempty"`
	Parent        *Comment  `json:"parent,omitempty"`
	Replies       []Comment `gorm:"foreignKey:ParentID" json:"replies,omitempty"`
}

// ValidCommentStatus reports whether s is one of the four moderation states.
func ValidCommentStatus(s string) bool {
	switch s {
	case CommentStatusPending, CommentStatusApproved, CommentStatusSpam, CommentStatusRejected:
		return true
	}
	return false
}

// BuildCommentTree shapes a flat set of comments into the public thread view:
// approved top-level comments newest first, each carrying its approved direct
// replies oldest first. Anything unapproved is dropped, and so are replies
// whose parent is not an approved top-level comment, so a reply can never
// surface through a hidden parent. Deeper nesting is not rendered.
func BuildCommentTree(comments []Comment) []Comment {
	topLevel := make([]Comment, 0)
	replies := make(map[uint][]Comment)

	for _, c := range comments {
		if c.Status != CommentStatusApproved {
			continue
		}
		if c.ParentID == nil {
			c.Replies = nil
			topLevel = append(topLevel, c)
		} else {
			replies[*c.ParentID] = append(replies[*c.ParentID], c)
		}
	}

	sort.Slice(topLevel, func(i, j int) bool {
		if !topLevel[i].CreatedAt.Equal(topLevel[j].CreatedAt) {
			return topLevel[i].CreatedAt.After(topLevel[j].CreatedAt)
		}
		return topLevel[i].ID > topLevel[j].ID
	})

	for i := range topLevel {
		children := replies[topLevel[i].ID]
		sort.Slice(children, func(a, b int) bool { return children[a].ID < children[b].ID })
		topLevel[i].Replies = children
	}

	return topLevel
}
