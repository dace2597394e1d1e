// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"errors"

	"github.com/newsroom/newsroom/internal/model"
)

// ErrMissingField is returned by Validate when a required field is absent.
var ErrMissingField = errors.New("missing field")

// PublishNewsletterRequest represents the request body for publishing a newsletter.
// Fields are pointers so that absent and empty values can be told apart.
type PublishNewsletterRequest struct {
	Title   *string            `json:"title"`
	Content *NewsletterContent `json:"content"`
}

// NewsletterContent carries both renderings of an issue.
type NewsletterContent struct {
	Text *string `json:"text_content"`
	HTML *string `json:"html_content"`
}

// ToModel checks that every field is present and converts the request.
func (r PublishNewsletterRequest) ToModel() (model.Newsletter, error) {
	switch {
	case r.Title == nil:
		return model.Newsletter{}, fieldError("title")
	case r.Content == nil:
		return model.Newsletter{}, fieldError("content")
	case r.Content.Text == nil:
		return model.Newsletter{}, fieldError("content.text_content")
	case r.Content.HTML == nil:
		return model.Newsletter{}, fieldError("content.html_content")
	}
	return model.Newsletter{
		Title:       *r.Title,
		TextContent: *r.Content.Text,
		HTMLContent: *r.Content.HTML,
	}, nil
}

func fieldError(name string) error {
	return &FieldError{Field: name}
}

// FieldError names the missing field.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return "missing field `" + e.Field + "`"
}

func (e *FieldError) Unwrap() error {
	return ErrMissingField
}
