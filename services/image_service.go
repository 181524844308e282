package services

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"travel-backend/utils"
)

const MaxImageBytes = 5 << 20

var (
	folderPattern  = regexp.MustCompile(`^[a-z0-9_-]{1,40}$`)
	imageExtByMime = map[string]string{
		"image/png":  ".png",
		"image/jpeg": ".jpg",
		"image/jpg":  ".jpg",
		"image/gif":  ".gif",
		"image/webp": ".webp",
	}
)

type UploadedImage struct {
	Path string `json:"path"`
	URL  string `json:"url"`
	Size int    `json:"size"`
}

// ImageService stores admin uploaded images below Dir, which is served at
// /uploads.
type ImageService struct {
	Dir string
}

func NewImageService(dir string) *ImageService {
	if dir == "" {
		dir = "uploads"
	}
	return &ImageService{Dir: dir}
}

// SaveBase64 accepts a data URL or raw base64 payload and writes it to
// Dir/folder. The stored path is relative to Dir.
func (s *ImageService) SaveBase64(b64, folder string) (*UploadedImage, error) {
	folder = strings.ToLower(strings.TrimSpace(folder))
	if folder == "" {
		folder = "general"
	}
	if !folderPattern.MatchString(folder) {
		return nil, invalid("invalid folder %q", folder)
	}

	b64 = strings.TrimSpace(b64)
	declared := ""
	if strings.HasPrefix(b64, "data:") {
		meta, payload, ok := strings.Cut(b64, ";base64,")
		if !ok {
			return nil, invalid("image must be base64 encoded")
		}
		declared = strings.ToLower(strings.TrimPrefix(meta, "data:"))
		b64 = payload
	}
	if b64 == "" {
		return nil, invalid("image is required")
	}

	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, invalid("decode base64: %v", err)
	}
	if len(data) > MaxImageBytes {
		return nil, invalid("image exceeds %d MB", MaxImageBytes>>20)
	}

	mime := http.DetectContentType(data)
	ext, ok := imageExtByMime[mime]
	if !ok {
		return nil, invalid("unsupported image type %q", mime)
	}
	if declared != "" && imageExtByMime[declared] != ext {
		return nil, invalid("declared type %q does not match content %q", declared, mime)
	}

	dir := filepath.Join(s.Dir, folder)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("mkdir uploads dir: %w", err)
	}

	suffix, err := utils.GenerateSecureToken(4)
	if err != nil {
		return nil, err
	}
	filename := fmt.Sprintf("%d_%s%s", time.Now().UnixNano(), suffix, ext)
	if err := os.WriteFile(filepath.Join(dir, filename), data, 0644); err != nil {
		return nil, fmt.Errorf("write file: %w", err)
	}

	rel := path.Join(folder, filename)
	return &UploadedImage{Path: rel, URL: "/uploads/" + rel, Size: len(data)}, nil
}
