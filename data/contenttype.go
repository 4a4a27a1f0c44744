package data

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

type ContentType string

const (
	ContentTypeTextPlain         = "text/plain"
	ContentTypeImageJPEG         = "image/jpeg"
	ContentTypeImagePNG          = "image/png"
	ContentTypeImageGIF          = "image/gif"
	ContentTypeImageWebP         = "image/webp"
	ContentTypeImageBMP          = "image/bmp"
	ContentTypeImageTIFF         = "image/tiff"
	ContentTypeImageHEIC         = "image/heic"
	ContentTypeImageAVIF         = "image/avif"
	ContentTypeImageSVGXML       = "image/svg+xml"
	ContentTypeVideoMP4          = "video/mp4"
	ContentTypeVideoQuickTime    = "video/quicktime"
	ContentTypeApplicationPDF    = "application/pdf"
	ContentTypeApplicationJson   = "application/json"
	ContentTypeApplicationStream = "application/octet-stream"
	ContentTypeDirectory         = "application/x-directory"
)

// ExtensionToMIME maps file extensions to MIME types
var ExtensionToMIME = map[string]ContentType{
	".txt":  ContentTypeTextPlain,
	".jpg":  ContentTypeImageJPEG,
	".jpeg": ContentTypeImageJPEG,
	".png":  ContentTypeImagePNG,
	".gif":  ContentTypeImageGIF,
	".webp": ContentTypeImageWebP,
	".bmp":  ContentTypeImageBMP,
	".tif":  ContentTypeImageTIFF,
	".tiff": ContentTypeImageTIFF,
	".heic": ContentTypeImageHEIC,
	".avif": ContentTypeImageAVIF,
	".svg":  ContentTypeImageSVGXML,
	".mp4":  ContentTypeVideoMP4,
	".mov":  ContentTypeVideoQuickTime,
	".pdf":  ContentTypeApplicationPDF,
	".json": ContentTypeApplicationJson,
}

// GetMIMEType returns the MIME type for a file extension
func GetMIMEType(name string) ContentType {
	ext := strings.ToLower(filepath.Ext(name))

	if mimeType, exists := ExtensionToMIME[ext]; exists {
		return mimeType
	}

	// Default to octet-stream for unknown types
	return ContentTypeApplicationStream
}

// DetectContentType resolves the content type by extension first and sniffs
// the leading bytes of the content when the extension is unknown.
func DetectContentType(name string, head []byte) string {
	if ct := GetMIMEType(name); ct != ContentTypeApplicationStream {
		return string(ct)
	}

	if len(head) == 0 {
		return ContentTypeApplicationStream
	}

	return BaseMediaType(mimetype.Detect(head).String())
}

// BaseMediaType strips parameters such as "; charset=utf-8".
func BaseMediaType(contentType string) string {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		return mediaType
	}
	return strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])
}

// IsImage reports whether the media type describes an image.
func IsImage(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}
