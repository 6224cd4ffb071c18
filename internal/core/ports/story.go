package ports

import (
	"context"
	"io"

	"github.com/sunshine-recruitment/portal/internal/core/domain"
)

type StoryRepository interface {
	Create(ctx context.Context, story *domain.SuccessStory) (*domain.SuccessStory, error)
	// List returns stories newest first; limit <= 0 returns all.
	List(ctx context.Context, limit int) ([]*domain.SuccessStory, error)
}

// ImageStore persists uploaded images and returns their public path.
type ImageStore interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
	Remove(ctx context.Context, publicPath string) error
}

// ImageUpload is an uploaded image as received from a multipart form.
type ImageUpload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// StoryInput is the admin success-story form.
type StoryInput struct {
	CustomerName string `validate:"required,max=100"`
	JobTitle     string `validate:"required,max=100"`
	Company      string `validate:"required,max=100"`
	Location     string `validate:"required,max=100"`
	Testimonial  string `validate:"required,max=1000"`
	Rating       int    `validate:"required,min=1,max=5"`
	Image        *ImageUpload
}

type StoryService interface {
	Create(ctx context.Context, actor *domain.Identity, in StoryInput, meta domain.RequestMeta) (*domain.SuccessStory, error)
	ListAll(ctx context.Context, viewer *domain.Identity) ([]*domain.SuccessStory, error)
	ListPublic(ctx context.Context) ([]*domain.SuccessStory, error)
}
