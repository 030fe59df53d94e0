package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"admindash/internal/utils"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// MediaService uploads category background images to Cloudinary and
// hands back the hosted secure URL.
type MediaService struct {
	CloudinaryURL string
	RequestID     string

	// Upload is swappable in tests to avoid a real Cloudinary account.
	Upload func(ctx context.Context, file multipart.File, params uploader.UploadParams) (string, error)
}

// UploadImage stores the file and returns its secure URL.
func (s MediaService) UploadImage(ctx context.Context, header *multipart.FileHeader, folder string) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	params := uploader.UploadParams{
		Folder:   folder,
		PublicID: publicID(header.Filename),
	}

	if s.Upload != nil {
		return s.Upload(ctx, file, params)
	}

	if strings.TrimSpace(s.CloudinaryURL) == "" {
		return "", fmt.Errorf("CLOUDINARY_URL is not configured")
	}

	cld, err := cloudinary.NewFromURL(s.CloudinaryURL)
	if err != nil {
		return "", fmt.Errorf("cloudinary init: %w", err)
	}

	res, err := cld.Upload.Upload(ctx, file, params)
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}

	utils.LogEvent(s.RequestID, "media", "image_uploaded", "public_id="+res.PublicID)
	return res.SecureURL, nil
}

func publicID(filename string) string {
	base := strings.TrimSpace(filename)
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, base)
	if base == "" {
		base = "image"
	}
	return fmt.Sprintf("%s_%d", base, time.Now().UnixNano())
}
