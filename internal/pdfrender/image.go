package pdfrender

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
)

// DecodeImage accepts a data URI or bare base64 and returns the bytes with
// the fpdf image type ("png", "jpg" or "gif").
func DecodeImage(data string) ([]byte, string, error) {
	payload := data
	mime := ""
	if strings.HasPrefix(data, "data:") {
		header, body, ok := strings.Cut(data, ",")
		if !ok || !strings.HasSuffix(header, ";base64") {
			return nil, "", fmt.Errorf("%w: malformed data uri", ErrImageDecode)
		}
		mime = strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
		payload = body
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrImageDecode, err)
	}
	if mime == "" {
		mime = http.DetectContentType(raw)
	}

	imageType, ok := imageTypes[mime]
	if !ok {
		return nil, "", fmt.Errorf("%w: unsupported type %q", ErrImageDecode, mime)
	}
	return raw, imageType, nil
}

// EncodeDataURI is the inverse of DecodeImage.
func EncodeDataURI(raw []byte) (string, error) {
	mime := http.DetectContentType(raw)
	if _, ok := imageTypes[mime]; !ok {
		return "", fmt.Errorf("%w: unsupported type %q", ErrImageDecode, mime)
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(raw), nil
}

var imageTypes = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/gif":  "gif",
}
