package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing article.
	ErrNotFound = errors.New("article not found")
	// ErrInvalidArticle signals an article record that fails validation.
	ErrInvalidArticle = errors.New("invalid article")
	// ErrDuplicateArticle signals two articles sharing one identifier.
	ErrDuplicateArticle = errors.New("duplicate article id")

	// ErrNotReady signals that the article collection has not been loaded yet.
	ErrNotReady = errors.New("article index not ready")
	// ErrAlreadyLoaded signals a second load attempt on a one-shot catalog.
	ErrAlreadyLoaded = errors.New("article index already loaded")
	// ErrSourceEmpty signals a source that holds no article collection.
	ErrSourceEmpty = errors.New("article source is empty")
)

// DuplicateArticleError wraps ErrDuplicateArticle with the offending identifier.
type DuplicateArticleError struct {
	ID int
}

func (e *DuplicateArticleError) Error() string {
	return fmt.Sprintf("%s: %d", ErrDuplicateArticle.Error(), e.ID)
}

func (e *DuplicateArticleError) Unwrap() error { return ErrDuplicateArticle }

// NewDuplicateArticle creates a duplicate article error.
func NewDuplicateArticle(id int) error {
	return &DuplicateArticleError{ID: id}
}
