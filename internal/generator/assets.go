package generator

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var errLogoMissing = errors.New("generator: logo not found")

// logoAsset is the optional brand image, embedded into every page and copied
// next to the pages as the manifest icon.
type logoAsset struct {
	Name   string
	MIME   string
	Data   []byte
	Base64 string
}

func loadLogo(path string) (*logoAsset, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errLogoMissing
		}
		return nil, fmt.Errorf("generator: read logo %s: %w", path, err)
	}
	return &logoAsset{
		Name:   filepath.Base(path),
		MIME:   detectContentType(data),
		Data:   data,
		Base64: base64.StdEncoding.EncodeToString(data),
	}, nil
}

func (l *logoAsset) request() WriteRequest {
	return newWriteRequest(l.Name, categoryAsset, l.MIME, l.Data)
}

// detectContentType sniffs the payload and drops parameters such as charset
// so the value can be used inside a data URI.
func detectContentType(data []byte) string {
	mime := mimetype.Detect(data).String()
	if base, _, ok := strings.Cut(mime, ";"); ok {
		mime = base
	}
	return strings.TrimSpace(mime)
}
