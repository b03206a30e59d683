// Package models defines the domain types exchanged with the upstream API
// and the request payloads accepted from clients.
package models

import "time"

// User roles as reported by the upstream API.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleUser   = "user"
)

// Publication statuses shared by articles, formations and portfolio projects.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

type User struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

type Article struct {
	ID         uint      `json:"id"`
	Title      string    `json:"title"`
	Slug       string    `json:"slug"`
	Excerpt    string    `json:"excerpt"`
	Content    string    `json:"content"`
	Image      string    `json:"image,omitempty"`
	Categories []string  `json:"categories"`
	Status     string    `json:"status"`
	Author     *User     `json:"author,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Formation struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Level       string    `json:"level,omitempty"`
	Duration    string    `json:"duration,omitempty"`
	Price       float64   `json:"price"`
	Categories  []string  `json:"categories"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type PortfolioProject struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Image        string    `json:"image,omitempty"`
	URL          string    `json:"url,omitempty"`
	Categories   []string  `json:"categories"`
	Technologies []string  `json:"technologies"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Comment is tree-shaped: top-level comments carry replies, replies carry
// an empty slice in practice even though the type allows deeper nesting.
type Comment struct {
	ID         uint      `json:"id"`
	ArticleID  uint      `json:"article_id"`
	ParentID   uint      `json:"parent_id,omitempty"`
	Content    string    `json:"content"`
	Author     User      `json:"author"`
	Status     string    `json:"status,omitempty"`
	LikesCount int       `json:"likes_count"`
	IsLiked    bool      `json:"is_liked"`
	Replies    []Comment `json:"replies,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type ContactMessage struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// List accessor methods used by the listview engine. All three listable
// resources satisfy the same shape; formations have no technology facet.

func (a Article) ListTitle() string          { return a.Title }
func (a Article) ListExcerpt() string        { return a.Excerpt }
func (a Article) ListCategories() []string   { return a.Categories }
func (a Article) ListTechnologies() []string { return nil }
func (a Article) ListDate() time.Time        { return a.CreatedAt }

func (f Formation) ListTitle() string          { return f.Title }
func (f Formation) ListExcerpt() string        { return f.Description }
func (f Formation) ListCategories() []string   { return f.Categories }
func (f Formation) ListTechnologies() []string { return nil }
func (f Formation) ListDate() time.Time        { return f.CreatedAt }

func (p PortfolioProject) ListTitle() string          { return p.Title }
func (p PortfolioProject) ListExcerpt() string        { return p.Description }
func (p PortfolioProject) ListCategories() []string   { return p.Categories }
func (p PortfolioProject) ListTechnologies() []string { return p.Technologies }
func (p PortfolioProject) ListDate() time.Time        { return p.CreatedAt }
