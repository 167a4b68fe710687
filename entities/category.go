package entities

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is a node of the recipe category tree. Path is derived from the
// parent chain on save and is never supplied by callers.
type Category struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	ParentID    *uuid.UUID `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	Title       string     `gorm:"size:128;not null" json:"title"`
	Slug        string     `gorm:"size:64;not null" json:"slug"`
	PhotoID     *uuid.UUID `gorm:"type:uuid" json:"photo_id,omitempty"`
	Path        string     `gorm:"size:255;not null;uniqueIndex" json:"path"`
	Description string     `gorm:"type:text" json:"description"`
	Timestamp
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	ensureID(&c.ID)
	return nil
}

func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}

// Level is the depth of the node, roots being level 1.
func (c *Category) Level() int {
	if c.Path == "" {
		return 0
	}
	return len(strings.Split(c.Path, "/"))
}

func (c *Category) AbsoluteURL() string {
	return "/" + c.Path + "/"
}
