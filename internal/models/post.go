package models

import (
	"strings"
	"time"
)

// DateLayout formats the creation date shown under each post, e.g. "June Jun, 2024".
const DateLayout = "January Jan, 2006"

// Post represents a blog post stored in the SQL table or the Mongo collection
type Post struct {
	ID       uint   `json:"id" gorm:"primaryKey" bson:"_id"`
	Title    string `json:"title" gorm:"size:250;uniqueIndex" bson:"title"`
	Subtitle string `json:"subtitle" gorm:"size:250" bson:"subtitle"`
	Date     string `json:"date" gorm:"size:250" bson:"date"` // Set once on creation
	Body     string `json:"body" gorm:"type:text" bson:"body"`
	Author   string `json:"author" gorm:"size:250" bson:"author"`
	ImageURL string `json:"img_url" gorm:"column:img_url;size:250" bson:"img_url"`
}

// TableName keeps the table name stable regardless of gorm's naming strategy
func (Post) TableName() string {
	return "blog_posts"
}

// PostFields are the operator-editable fields of a post
type PostFields struct {
	Title    string
	Subtitle string
	Author   string
	ImageURL string
	Body     string
}

// NewPost builds a post from validated fields, stamping the creation date
func NewPost(fields PostFields, createdAt time.Time) *Post {
	p := &Post{Date: createdAt.Format(DateLayout)}
	p.Apply(fields)
	return p
}

// Apply overwrites the editable fields. ID and Date are left alone.
func (p *Post) Apply(fields PostFields) {
	p.Title = fields.Title
	p.Subtitle = fields.Subtitle
	p.Author = fields.Author
	p.ImageURL = fields.ImageURL
	p.Body = fields.Body
}

// PostForm defines the form body submitted when creating or editing a post
type PostForm struct {
	Title         string `form:"title" validate:"required"`
	Subtitle      string `form:"subtitle" validate:"required"`
	AuthorName    string `form:"author_name" validate:"required"`
	BackgroundURL string `form:"background_url" validate:"required"`
	Body          string `form:"body" validate:"required"`
}

// PostFormFrom pre-populates a form from an existing post
func PostFormFrom(p *Post) PostForm {
	return PostForm{
		Title:         p.Title,
		Subtitle:      p.Subtitle,
		AuthorName:    p.Author,
		BackgroundURL: p.ImageURL,
		Body:          p.Body,
	}
}

// Normalize trims surrounding whitespace so blank input fails the required check
func (f *PostForm) Normalize() {
	f.Title = strings.TrimSpace(f.Title)
	f.Subtitle = strings.TrimSpace(f.Subtitle)
	f.AuthorName = strings.TrimSpace(f.AuthorName)
	f.BackgroundURL = strings.TrimSpace(f.BackgroundURL)
	f.Body = strings.TrimSpace(f.Body)
}

// Fields returns the normalized field set of a validated form
func (f PostForm) Fields() PostFields {
	return PostFields{
		Title:    f.Title,
		Subtitle: f.Subtitle,
		Author:   f.AuthorName,
		ImageURL: f.BackgroundURL,
		Body:     f.Body,
	}
}
