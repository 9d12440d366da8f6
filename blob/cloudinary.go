package blob

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/satheeshds/invoicing/config"
)

// Cloudinary uploads images into one folder of a Cloudinary account.
type Cloudinary struct {
	cld     *cloudinary.Cloudinary
	folder  string
	timeout time.Duration
}

// NewCloudinary builds an uploader from the configured credentials.
func NewCloudinary(cfg config.CloudinaryConfig) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("configuring cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true

	return &Cloudinary{cld: cld, folder: cfg.Folder, timeout: cfg.Timeout}, nil
}

// Upload sends the image and returns its secure URL.
func (c *Cloudinary) Upload(ctx context.Context, img Image) (string, error) {
	if img.Reader == nil {
		return "", errors.New("empty image")
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	params := uploader.UploadParams{Folder: c.folder}
	if name := publicID(img.Filename); name != "" {
		params.PublicID = name
		params.UniqueFilename = boolPtr(true)
	}

	res, err := c.cld.Upload.Upload(ctx, img.Reader, params)
	if err != nil {
		return "", err
	}
	if res.Error.Message != "" {
		return "", errors.New(res.Error.Message)
	}
	if res.SecureURL == "" {
		return "", errors.New("cloudinary returned no url")
	}
	return res.SecureURL, nil
}

// publicID strips directories and the extension from a client filename.
func publicID(filename string) string {
	if i := strings.LastIndexAny(filename, `/\`); i >= 0 {
		filename = filename[i+1:]
	}
	if i := strings.LastIndexByte(filename, '.'); i > 0 {
		filename = filename[:i]
	}
	return strings.TrimSpace(filename)
}

func boolPtr(b bool) *bool { return &b }
