// Package blob stores product images and returns their public URL.
package blob

import (
	"context"
	"errors"
	"io"
)

// ErrDisabled is returned when no image store is configured.
var ErrDisabled = errors.New("image storage is not configured")

// Image is an uploaded file as received from the client.
type Image struct {
	Filename string
	Reader   io.Reader
}

// Uploader stores an image and returns the URL it can be fetched from.
type Uploader interface {
	Upload(ctx context.Context, img Image) (string, error)
}

// Disabled rejects every upload. It is used when Cloudinary credentials are
// missing so that products without images still work.
type Disabled struct{}

func (Disabled) Upload(context.Context, Image) (string, error) {
	return "", ErrDisabled
}
