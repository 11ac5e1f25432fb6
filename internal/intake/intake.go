package intake

import (
	"bytes"
	"image/png"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrUnsupportedType signals that neither the filename extension nor the
// declared content-type matched the image allow-list.
var ErrUnsupportedType = errors.New("unsupported image type")

// allowedExts is the allow-list of accepted upload extensions.
var allowedExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".tga":  true,
}

// contentTypeExts maps declared content-types to extensions, used when
// the original filename carries no recognized extension.
var contentTypeExts = map[string]string{
	"image/png":   ".png",
	"image/jpeg":  ".jpg",
	"image/gif":   ".gif",
	"image/webp":  ".webp",
	"image/tga":   ".tga",
	"image/x-tga": ".tga",
	"image/targa": ".tga",
}

// Intake stores uploaded screenshots into the public upload directory
// and converts legacy TGA captures to PNG on the way in.
type Intake struct {
	dir       string
	urlPrefix string
	log       *logrus.Logger
}

// New creates an Intake writing into dir and returning URLs under urlPrefix.
func New(dir, urlPrefix string, log *logrus.Logger) *Intake {
	return &Intake{dir: dir, urlPrefix: urlPrefix, log: log}
}

// Store saves an uploaded image and returns its server-relative URL path.
// TGA uploads are re-encoded as PNG under a generated name; when the
// conversion fails the original bytes are kept under their original name
// instead of failing the request.
func (in *Intake) Store(data []byte, contentType, filename string) (string, error) {
	ext := resolveExt(filename, contentType)
	if ext == "" {
		return "", ErrUnsupportedType
	}

	name := uuid.New().String() + ext
	if ext == ".tga" {
		converted, err := tgaToPNG(data)
		if err != nil {
			in.log.WithError(err).WithField("filename", filename).Warn("TGA conversion failed, storing original bytes")
			if base := filepath.Base(filename); base != "." && base != "/" && base != "" {
				name = base
			}
		} else {
			data = converted
			name = uuid.New().String() + ".png"
		}
	}

	if err := os.MkdirAll(in.dir, 0755); err != nil {
		return "", errors.Wrap(err, "failed to create upload directory")
	}
	dst := filepath.Join(in.dir, name)
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return "", errors.Wrapf(err, "failed to write screenshot %s", dst)
	}

	in.log.WithFields(logrus.Fields{
		"file": name,
		"size": len(data),
	}).Info("Stored screenshot")

	return path.Join(in.urlPrefix, name), nil
}

// resolveExt picks the stored extension: recognized filename extension
// first, declared content-type second, empty when neither is allowed.
func resolveExt(filename, contentType string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if allowedExts[ext] {
		return ext
	}

	ct := contentType
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	ct = strings.ToLower(strings.TrimSpace(ct))
	return contentTypeExts[ct]
}

func tgaToPNG(data []byte) ([]byte, error) {
	img, err := tga.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode TGA image")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(err, "failed to encode PNG image")
	}
	return buf.Bytes(), nil
}
