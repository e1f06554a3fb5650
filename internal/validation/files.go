package validation

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var imageTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/gif":     true,
	"image/bmp":     true,
	"image/svg+xml": true,
	"image/webp":    true,
}

// detect sniffs the uploaded content; the client-supplied name and
// Content-Type are not trusted.
func detect(fh *multipart.FileHeader) (*mimetype.MIME, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload %s: %w", fh.Filename, err)
	}
	defer f.Close()

	mt, err := mimetype.DetectReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to detect type of upload %s: %w", fh.Filename, err)
	}
	return mt, nil
}

type fileRule struct{}

func (fileRule) Name() string { return "file" }
func (fileRule) Check(_ context.Context, _ *Env, _ string, value any) (bool, error) {
	fh, ok := value.(*multipart.FileHeader)
	return ok && fh != nil, nil
}
func (fileRule) Message(field string, _ any) string {
	return fmt.Sprintf("The %s must be a file.", Attribute(field))
}

// File requires an uploaded file.
func File() Rule { return fileRule{} }

type mimesRule struct {
	extensions []string
	allowed    map[string]bool
}

func (mimesRule) Name() string { return "mimes" }
func (r mimesRule) Check(_ context.Context, _ *Env, _ string, value any) (bool, error) {
	fh, ok := value.(*multipart.FileHeader)
	if !ok || fh == nil {
		return false, nil
	}
	mt, err := detect(fh)
	if err != nil {
		return false, err
	}
	for m := mt; m != nil; m = m.Parent() {
		if r.allowed[strings.TrimPrefix(m.Extension(), ".")] {
			return true, nil
		}
	}
	return false, nil
}
func (r mimesRule) Message(field string, _ any) string {
	return fmt.Sprintf("The %s must be a file of type: %s.", Attribute(field), strings.Join(r.extensions, ", "))
}

// Mimes restricts uploads to the given extensions, judged by content.
// jpg and jpeg are interchangeable.
func Mimes(extensions ...string) Rule {
	allowed := make(map[string]bool, len(extensions)+1)
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimPrefix(ext, "."))
		allowed[ext] = true
		if ext == "jpg" || ext == "jpeg" {
			allowed["jpg"] = true
			allowed["jpeg"] = true
		}
	}
	return mimesRule{extensions: extensions, allowed: allowed}
}

type imageRule struct{}

func (imageRule) Name() string { return "image" }
func (imageRule) Check(_ context.Context, _ *Env, _ string, value any) (bool, error) {
	fh, ok := value.(*multipart.FileHeader)
	if !ok || fh == nil {
		return false, nil
	}
	mt, err := detect(fh)
	if err != nil {
		return false, err
	}
	for m := mt; m != nil; m = m.Parent() {
		if imageTypes[m.String()] {
			return true, nil
		}
	}
	return false, nil
}
func (imageRule) Message(field string, _ any) string {
	return fmt.Sprintf("The %s must be an image.", Attribute(field))
}

// Image requires an uploaded jpeg, png, gif, bmp, svg or webp.
func Image() Rule { return imageRule{} }
