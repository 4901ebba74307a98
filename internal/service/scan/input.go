package scan

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/nivara-backend/internal/domain"
)

// Upload rejection messages, shown to the user as-is.
const (
	MsgNoImage     = "No image file provided"
	MsgInvalidType = "Invalid file type. Please upload an image."
	MsgTooLarge    = "Image size should be less than 10MB"
)

// ImageInput is an uploaded photo.
type ImageInput struct {
	Data     []byte
	MimeType string
	Filename string
}

// Validate checks presence, type and size before anything leaves the process.
func (i ImageInput) Validate(maxBytes int64) error {
	if len(i.Data) == 0 {
		return domain.NewValidationError("image", MsgNoImage)
	}
	if !strings.HasPrefix(i.MimeType, "image/") {
		return domain.NewValidationError("image", MsgInvalidType)
	}
	if int64(len(i.Data)) > maxBytes {
		return domain.NewValidationError("image", MsgTooLarge)
	}
	return nil
}

// DataURI renders the image for storage in a history record.
func (i ImageInput) DataURI() string {
	return fmt.Sprintf("data:%s;base64,%s", i.MimeType, encode(i.Data))
}
