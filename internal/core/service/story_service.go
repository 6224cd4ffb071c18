package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sunshine-recruitment/portal/internal/core/domain"
	"github.com/sunshine-recruitment/portal/internal/core/ports"
	"github.com/sunshine-recruitment/portal/internal/pkg/metrics"
	"github.com/sunshine-recruitment/portal/internal/pkg/validate"
)

const (
	publicStoryLimit   = 20
	defaultMaxImageLen = 5 << 20
	storyImageDir      = "success-stories"
)

var allowedImageExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// StoryService manages success stories and their uploaded portraits.
type StoryService struct {
	repo     ports.StoryRepository
	images   ports.ImageStore
	auditor  ports.Auditor
	log      zerolog.Logger
	maxBytes int64
	now      func() time.Time
}

func NewStoryService(repo ports.StoryRepository, images ports.ImageStore, auditor ports.Auditor, log zerolog.Logger, maxBytes int64) *StoryService {
	if maxBytes <= 0 {
		maxBytes = defaultMaxImageLen
	}
	return &StoryService{
		repo:     repo,
		images:   images,
		auditor:  auditor,
		log:      log,
		maxBytes: maxBytes,
		now:      time.Now,
	}
}

// Create saves the image first and removes it again if the story cannot be stored.
func (s *StoryService) Create(ctx context.Context, actor *domain.Identity, in ports.StoryInput, meta domain.RequestMeta) (*domain.SuccessStory, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.JobTitle = strings.TrimSpace(in.JobTitle)
	in.Company = strings.TrimSpace(in.Company)
	in.Location = strings.TrimSpace(in.Location)
	in.Testimonial = strings.TrimSpace(in.Testimonial)
	if err := validate.Struct(&in); err != nil {
		return nil, err
	}
	if in.Image == nil || in.Image.Content == nil {
		return nil, domain.NewValidationError("customer image is required")
	}
	ext := strings.ToLower(filepath.Ext(in.Image.Filename))
	if !allowedImageExt[ext] {
		return nil, domain.NewValidationError("customer image must be a jpg, png, gif or webp file")
	}
	if in.Image.Size > s.maxBytes {
		return nil, domain.NewValidationError("customer image must be at most %d bytes", s.maxBytes)
	}

	now := s.now().UTC()
	name := fmt.Sprintf("%s/success-story-%d-%s%s", storyImageDir, now.UnixMilli(), uuid.NewString()[:8], ext)
	// Size comes from the multipart header; the reader is capped regardless.
	path, err := s.images.Save(ctx, name, io.LimitReader(in.Image.Content, s.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("save story image: %w", err)
	}
	metrics.UploadedBytesTotal.Add(float64(in.Image.Size))

	story, err := s.repo.Create(ctx, &domain.SuccessStory{
		CustomerName:  in.CustomerName,
		CustomerImage: path,
		JobTitle:      in.JobTitle,
		Company:       in.Company,
		Location:      in.Location,
		Testimonial:   in.Testimonial,
		Rating:        in.Rating,
		CreatedBy:     actor.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		if rmErr := s.images.Remove(ctx, path); rmErr != nil {
			s.log.Warn().Err(rmErr).Str("path", path).Msg("failed to remove orphaned story image")
		}
		return nil, fmt.Errorf("create success story: %w", err)
	}

	s.auditor.Record(ctx, audit(actor.ID, domain.ActionStoryCreated, domain.ResourceSuccessStory,
		fmt.Sprintf("Added success story for %s - %s at %s", story.CustomerName, story.JobTitle, story.Company),
		domain.ActivitySuccess, meta))
	return story, nil
}

// ListAll returns every story, newest first. Admin only.
func (s *StoryService) ListAll(ctx context.Context, viewer *domain.Identity) ([]*domain.SuccessStory, error) {
	if err := requireAdmin(viewer); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, 0)
}

// ListPublic returns the most recent stories for the home page.
func (s *StoryService) ListPublic(ctx context.Context) ([]*domain.SuccessStory, error) {
	return s.repo.List(ctx, publicStoryLimit)
}
