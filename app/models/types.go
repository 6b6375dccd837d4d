package models

import "github.com/jinzhu/gorm"

// User is a registered account. Users author posts and comments; they are
// never deleted and there is no profile-edit flow.
type User struct {
	gorm.Model
	Name     string `gorm:"size:250;not null"`
	Email    string `gorm:"size:250;unique_index;not null"`
	Password string `gorm:"size:250;not null"` // bcrypt hash, never plaintext

	Posts    []BlogPost `gorm:"foreignkey:AuthorID"`
	Comments []Comment  `gorm:"foreignkey:AuthorID"`
}

// BlogPost is a published article. Date is stored as display-formatted text,
// matching what the templates print.
type BlogPost struct {
	gorm.Model
	Title    string `gorm:"size:250;not null"`
	Subtitle string `gorm:"size:250;not null"`
	Date     string `gorm:"size:250;not null"`
	Body     string `gorm:"type:text;not null"`
	ImgURL   string `gorm:"size:250;not null"`
	AuthorID uint   `gorm:"not null"`

	Author   *User     `gorm:"foreignkey:AuthorID"`
	Comments []Comment `gorm:"foreignkey:PostID"`
}

// Comment is a reader comment on a post. Comments are never edited or
// deleted through any exposed operation.
type Comment struct {
	gorm.Model
	Text     string `gorm:"type:text;not null"`
	AuthorID uint   `gorm:"not null"`
	PostID   uint   `gorm:"not null"`

	Author *User     `gorm:"foreignkey:AuthorID"`
	Post   *BlogPost `gorm:"foreignkey:PostID"`
}
