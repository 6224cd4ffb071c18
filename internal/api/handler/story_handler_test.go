package handler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/sunshine-recruitment/portal/internal/api/middleware"
	"github.com/sunshine-recruitment/portal/internal/core/domain"
	"github.com/sunshine-recruitment/portal/internal/core/ports"
)

type stubStoryService struct {
	createFn     func(ctx context.Context, actor *domain.Identity, in ports.StoryInput, meta domain.RequestMeta) (*domain.SuccessStory, error)
	listAllFn    func(ctx context.Context, viewer *domain.Identity) ([]*domain.SuccessStory, error)
	listPublicFn func(ctx context.Context) ([]*domain.SuccessStory, error)
}

func (s *stubStoryService) Create(ctx context.Context, actor *domain.Identity, in ports.StoryInput, meta domain.RequestMeta) (*domain.SuccessStory, error) {
	return s.createFn(ctx, actor, in, meta)
}

func (s *stubStoryService) ListAll(ctx context.Context, viewer *domain.Identity) ([]*domain.SuccessStory, error) {
	return s.listAllFn(ctx, viewer)
}

func (s *stubStoryService) ListPublic(ctx context.Context) ([]*domain.SuccessStory, error) {
	return s.listPublicFn(ctx)
}

type formFile struct {
	field, name string
	content     []byte
}

func multipartContext(t *testing.T, target string, fields map[string]string, file *formFile, id *domain.Identity) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if file != nil {
		part, err := w.CreateFormFile(file.field, file.name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(file.content); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != nil {
		c.Set(middleware.IdentityKey, id)
	}
	return c, rec
}

func storyFields() map[string]string {
	return map[string]string{
		"customer_name": "Ravi",
		"job_title":     "Electrician",
		"company":       "Gulf Build",
		"location":      "Dubai",
		"testimonial":   "Great placement",
		"rating":        "5",
	}
}

func TestStoryHandler_Create(t *testing.T) {
	stub := &stubStoryService{
		createFn: func(_ context.Context, actor *domain.Identity, in ports.StoryInput, _ domain.RequestMeta) (*domain.SuccessStory, error) {
			if actor != adminID || in.CustomerName != "Ravi" || in.Rating != 5 {
				t.Fatalf("unexpected input: %+v", in)
			}
			if in.Image == nil || in.Image.Filename != "ravi.png" || in.Image.Size != 4 {
				t.Fatalf("unexpected image: %+v", in.Image)
			}
			data, err := io.ReadAll(in.Image.Content)
			if err != nil || string(data) != "\x89PNG" {
				t.Fatalf("unexpected image content %q: %v", data, err)
			}
			return &domain.SuccessStory{ID: "s1", CustomerName: in.CustomerName}, nil
		},
	}
	h := NewStoryHandler(stub)

	c, rec := multipartContext(t, "/api/admin/success-stories", storyFields(),
		&formFile{field: "customer_image", name: "ravi.png", content: []byte("\x89PNG")}, adminID)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestStoryHandler_Create_MissingImage(t *testing.T) {
	stub := &stubStoryService{
		createFn: func(_ context.Context, _ *domain.Identity, in ports.StoryInput, _ domain.RequestMeta) (*domain.SuccessStory, error) {
			if in.Image != nil {
				t.Fatalf("expected no image")
			}
			return nil, domain.NewValidationError("customer image is required")
		},
	}
	h := NewStoryHandler(stub)

	c, _ := multipartContext(t, "/api/admin/success-stories", storyFields(), nil, adminID)
	var ve *domain.ValidationError
	if err := h.Create(c); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestStoryHandler_ListPublic_EmptyArray(t *testing.T) {
	stub := &stubStoryService{
		listPublicFn: func(context.Context) ([]*domain.SuccessStory, error) { return nil, nil },
	}
	h := NewStoryHandler(stub)

	c, rec := jsonContext(http.MethodGet, "/api/success-stories", "", nil)
	if err := h.ListPublic(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if stories, ok := decode(t, rec)["stories"].([]any); !ok || len(stories) != 0 {
		t.Fatalf("expected empty stories array")
	}
}

func TestStoryHandler_ListAll_Forbidden(t *testing.T) {
	stub := &stubStoryService{
		listAllFn: func(context.Context, *domain.Identity) ([]*domain.SuccessStory, error) {
			return nil, domain.ErrForbidden
		},
	}
	h := NewStoryHandler(stub)

	c, _ := jsonContext(http.MethodGet, "/api/admin/success-stories", "", userID)
	if err := h.ListAll(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
