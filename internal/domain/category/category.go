package category

import (
	"errors"
	"strings"
)

var ErrInvalidCategory = errors.New("invalid category")

// Category is a topic of the question bank. Categories are seeded once
// and ordered by SessionNumber (the course session they belong to).
type Category struct {
	ID            int64
	Name          string
	Description   string
	SessionNumber int
}

func New(name, description string, sessionNumber int) *Category {
	return &Category{
		Name:          strings.TrimSpace(name),
		Description:   description,
		SessionNumber: sessionNumber,
	}
}

func (c *Category) Validate() error {
	if c.Name == "" {
		return errors.Join(ErrInvalidCategory, errors.New("name cannot be empty"))
	}
	if c.SessionNumber < 0 {
		return errors.Join(ErrInvalidCategory, errors.New("session number cannot be negative"))
	}
	return nil
}
