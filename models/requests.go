package models

import "strings"

// Request payloads, validated locally before any upstream call. Validation
// covers required fields only; business rules stay with the upstream API.

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	if r.Email == "" || r.Password == "" {
		return NewValidationError("Email and password are required")
	}
	return nil
}

type RegisterRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

func (r RegisterRequest) Validate() error {
	if r.Name == "" || r.Email == "" || r.Password == "" {
		return NewValidationError("Name, email, and password are required")
	}
	if r.Password != r.PasswordConfirmation {
		return NewValidationError("Passwords do not match")
	}
	return nil
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

func (r ForgotPasswordRequest) Validate() error {
	if r.Email == "" {
		return NewValidationError("Email is required")
	}
	return nil
}

type ResetPasswordRequest struct {
	Token                string `json:"token"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

func (r ResetPasswordRequest) Validate() error {
	if r.Token == "" || r.Password == "" {
		return NewValidationError("Token and password are required")
	}
	if r.Password != r.PasswordConfirmation {
		return NewValidationError("Passwords do not match")
	}
	return nil
}

type ArticleInput struct {
	Title      string   `json:"title"`
	Slug       string   `json:"slug,omitempty"`
	Excerpt    string   `json:"excerpt,omitempty"`
	Content    string   `json:"content"`
	Image      string   `json:"image,omitempty"`
	Categories []string `json:"categories,omitempty"`
	Status     string   `json:"status,omitempty"`
}

func (r ArticleInput) Validate() error {
	if r.Title == "" || r.Content == "" {
		return NewValidationError("Title and content are required")
	}
	return nil
}

type FormationInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Level       string   `json:"level,omitempty"`
	Duration    string   `json:"duration,omitempty"`
	Price       float64  `json:"price,omitempty"`
	Categories  []string `json:"categories,omitempty"`
	Status      string   `json:"status,omitempty"`
}

func (r FormationInput) Validate() error {
	if r.Title == "" || r.Description == "" {
		return NewValidationError("Title and description are required")
	}
	return nil
}

type PortfolioInput struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Image        string   `json:"image,omitempty"`
	URL          string   `json:"url,omitempty"`
	Categories   []string `json:"categories,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	Status       string   `json:"status,omitempty"`
}

func (r PortfolioInput) Validate() error {
	if r.Title == "" {
		return NewValidationError("Title is required")
	}
	return nil
}

type UserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

func (r UserInput) Validate() error {
	if r.Name == "" || r.Email == "" {
		return NewValidationError("Name and email are required")
	}
	return nil
}

type CommentInput struct {
	ArticleID uint   `json:"article_id"`
	ParentID  uint   `json:"parent_id,omitempty"`
	Content   string `json:"content"`
}

func (r CommentInput) Validate() error {
	if strings.TrimSpace(r.Content) == "" {
		return NewValidationError("Content is required")
	}
	if r.ArticleID == 0 {
		return NewValidationError("Article is required")
	}
	return nil
}

type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

func (r ContactInput) Validate() error {
	if r.Name == "" || r.Email == "" || r.Message == "" {
		return NewValidationError("Name, email, and message are required")
	}
	return nil
}

type SettingInput struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (r SettingInput) Validate() error {
	if r.Key == "" {
		return NewValidationError("Key is required")
	}
	return nil
}
