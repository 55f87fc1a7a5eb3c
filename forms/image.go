package forms

// Profile image constraints mirrored from the upload form.
const MaxImageBytes = 200 * 1024

var acceptedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// ImageConstraint validates a selected profile image before upload.
type ImageConstraint struct {
	MaxBytes int64
}

func NewImageConstraint() ImageConstraint {
	return ImageConstraint{MaxBytes: MaxImageBytes}
}

// Validate checks the file size and MIME type.
func (c ImageConstraint) Validate(size int64, contentType string) error {
	if size > c.MaxBytes {
		return &ValidationError{Field: "image", Message: "Max image upload size is 200KB"}
	}
	if !acceptedImageTypes[contentType] {
		return &ValidationError{Field: "image", Message: "Only jpeg, png and webp formats are allowed"}
	}
	return nil
}
