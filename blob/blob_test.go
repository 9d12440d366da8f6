package blob

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/satheeshds/invoicing/config"
)

type stubUploader struct {
	calls int
	err   error
}

func (s *stubUploader) Upload(ctx context.Context, img Image) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return "https://cdn.example.com/products/" + img.Filename, nil
}

func TestDisabled(t *testing.T) {
	t.Parallel()

	_, err := Disabled{}.Upload(context.Background(), Image{Filename: "a.png", Reader: strings.NewReader("x")})
	if !errors.Is(err, ErrDisabled) {
		t.Errorf("Upload() error = %v, want ErrDisabled", err)
	}
}

func TestBreaker_PassesThrough(t *testing.T) {
	t.Parallel()

	stub := &stubUploader{}
	b := NewBreaker(stub, BreakerConfig{Name: "pass", MaxRequests: 1, Timeout: time.Minute, FailureThreshold: 2})

	url, err := b.Upload(context.Background(), Image{Filename: "bolt.png"})
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if url != "https://cdn.example.com/products/bolt.png" {
		t.Errorf("Upload() = %q", url)
	}
	if b.State() != "closed" {
		t.Errorf("State() = %q, want closed", b.State())
	}
}

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	t.Parallel()

	boom := errors.New("cloudinary down")
	stub := &stubUploader{err: boom}
	b := NewBreaker(stub, BreakerConfig{Name: "trip", MaxRequests: 1, Timeout: time.Minute, FailureThreshold: 2})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := b.Upload(ctx, Image{}); !errors.Is(err, boom) {
			t.Fatalf("attempt %d error = %v, want %v", i, err, boom)
		}
	}

	_, err := b.Upload(ctx, Image{})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Upload() with open breaker error = %v, want ErrUnavailable", err)
	}
	if stub.calls != 2 {
		t.Errorf("wrapped uploader called %d times, want 2", stub.calls)
	}
	if b.State() != "open" {
		t.Errorf("State() = %q, want open", b.State())
	}
}

func TestBreaker_IgnoresCancellation(t *testing.T) {
	t.Parallel()

	stub := &stubUploader{err: context.Canceled}
	b := NewBreaker(stub, BreakerConfig{Name: "cancel", MaxRequests: 1, Timeout: time.Minute, FailureThreshold: 1})

	for i := 0; i < 3; i++ {
		_, _ = b.Upload(context.Background(), Image{})
	}
	if b.State() != "closed" {
		t.Errorf("State() = %q, want closed", b.State())
	}
}

func TestPublicID(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"bolt.png":            "bolt",
		"dir/sub/nut.jpeg":    "nut",
		`C:\pics\washer.webp`: "washer",
		".hidden":             ".hidden",
		"":                    "",
		"archive.tar.gz":      "archive.tar",
	}
	for in, want := range tests {
		if got := publicID(in); got != want {
			t.Errorf("publicID(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNewCloudinary(t *testing.T) {
	t.Parallel()

	c, err := NewCloudinary(config.CloudinaryConfig{
		CloudName: "demo",
		APIKey:    "key",
		APISecret: "secret",
		Folder:    "products",
		Timeout:   time.Second,
	})
	if err != nil {
		t.Fatalf("NewCloudinary() error = %v", err)
	}
	if c.folder != "products" {
		t.Errorf("folder = %q, want products", c.folder)
	}

	if _, err := c.Upload(context.Background(), Image{Filename: "x.png"}); err == nil {
		t.Error("expected error for image without content")
	}
}
