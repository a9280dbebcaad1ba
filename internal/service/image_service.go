package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif" // register decoders for image.Decode
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"strings"

	"inkwell/internal/featureflags"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/storage"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	DefaultImageMaxUploadSizeMB = 10
	ThumbMaxSize                = 320
	ThumbWebPQuality            = 75
)

type ImageService struct {
	store    storage.ObjectStore
	flags    *featureflags.Manager
	maxBytes int64
}

type UploadImageInput struct {
	UserID   uint
	Filename string
	Content  []byte
}

// UploadResult is the payload returned to the client after a stored upload.
type UploadResult struct {
	ImageURL     string `json:"imageUrl"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
}

func NewImageService(store storage.ObjectStore, flags *featureflags.Manager, maxUploadSizeMB int) *ImageService {
	if maxUploadSizeMB <= 0 {
		maxUploadSizeMB = DefaultImageMaxUploadSizeMB
	}
	return &ImageService{
		store:    store,
		flags:    flags,
		maxBytes: int64(maxUploadSizeMB) * 1024 * 1024,
	}
}

// Upload validates the bytes as a decodable image, stores them under a fresh
// uuid key and, when the image_thumbs flag is on, writes a webp thumbnail
// variant alongside. Thumbnail failures never fail the upload.
func (s *ImageService) Upload(ctx context.Context, in UploadImageInput) (*UploadResult, error) {
	if len(in.Content) == 0 {
		return nil, models.NewValidationError("No image file provided")
	}
	if int64(len(in.Content)) > s.maxBytes {
		observability.ImageUploads.WithLabelValues("rejected").Inc()
		return nil, models.NewValidationError(
			fmt.Sprintf("Image exceeds the %d MB upload limit", s.maxBytes/(1024*1024)))
	}

	contentType := http.DetectContentType(in.Content)
	ext, ok := imageExtensions[contentType]
	if !ok {
		observability.ImageUploads.WithLabelValues("rejected").Inc()
		return nil, models.NewValidationError("Unsupported image type, use JPEG, PNG, GIF or WebP")
	}

	decoded, _, err := image.Decode(bytes.NewReader(in.Content))
	if err != nil {
		observability.ImageUploads.WithLabelValues("rejected").Inc()
		return nil, models.NewValidationError("Corrupt or unreadable image data")
	}

	key := uuid.New().String() + ext
	url, err := s.store.Upload(ctx, key, in.Content, contentType)
	if err != nil {
		observability.ImageUploads.WithLabelValues("error").Inc()
		return nil, models.NewInternalError(err)
	}

	result := &UploadResult{
		ImageURL:     url,
		Filename:     key,
		OriginalName: in.Filename,
		Size:         int64(len(in.Content)),
	}

	if s.flags.Enabled(featureflags.ImageThumbs, in.UserID) {
		thumbKey := strings.TrimSuffix(key, ext) + "_thumb.webp"
		thumbURL, err := s.uploadThumbnail(ctx, thumbKey, decoded)
		if err != nil {
			middleware.Logger.WarnContext(ctx, "thumbnail generation failed",
				"key", key, "error", err)
		} else {
			result.ThumbnailURL = thumbURL
		}
	}

	observability.ImageUploads.WithLabelValues("success").Inc()
	return result, nil
}

// Delete removes a stored image (and its thumbnail variant, if any) by the
// filename returned from Upload.
func (s *ImageService) Delete(ctx context.Context, filename string) error {
	if filename == "" || strings.ContainsAny(filename, "/\\") || strings.Contains(filename, "..") {
		return models.NewValidationError("Invalid filename")
	}

	exists, err := s.store.Exists(ctx, filename)
	if err != nil {
		return models.NewInternalError(err)
	}
	if !exists {
		return models.NewNotFoundError("Image", filename)
	}
	if err := s.store.Delete(ctx, filename); err != nil {
		return models.NewInternalError(err)
	}

	// Best-effort cleanup of the thumbnail variant.
	if dot := strings.LastIndex(filename, "."); dot > 0 {
		thumbKey := filename[:dot] + "_thumb.webp"
		if ok, err := s.store.Exists(ctx, thumbKey); err == nil && ok {
			if err := s.store.Delete(ctx, thumbKey); err != nil {
				middleware.Logger.WarnContext(ctx, "thumbnail cleanup failed",
					"key", thumbKey, "error", err)
			}
		}
	}
	return nil
}

func (s *ImageService) uploadThumbnail(ctx context.Context, key string, src image.Image) (string, error) {
	thumb := resizeToFit(src, ThumbMaxSize, ThumbMaxSize)
	encoded, err := encodeWebP(thumb, ThumbWebPQuality)
	if err != nil {
		return "", err
	}
	return s.store.Upload(ctx, key, encoded, "image/webp")
}

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= 0 || h <= 0 {
		return src
	}
	if w <= maxWidth && h <= maxHeight {
		return src
	}

	scaleW := float64(maxWidth) / float64(w)
	scaleH := float64(maxHeight) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

func encodeWebP(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, img, &webp.Options{Quality: float32(quality)}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
