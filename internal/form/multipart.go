package form

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"

	"github.com/fivetwenty-io/replyify-client/internal/constants"
)

// Multipart is an encoded multipart/form-data body.
type Multipart struct {
	Body     []byte
	Boundary string
}

// ContentType returns the Content-Type header value announcing the boundary.
func (m *Multipart) ContentType() string {
	return constants.ContentTypeMultipart + "; boundary=" + m.Boundary
}

type named interface {
	Name() string
}

// readerOnly hides io.WriterTo so io.CopyBuffer uses the chunk buffer.
type readerOnly struct {
	io.Reader
}

// BuildMultipart encodes params as multipart/form-data with a random boundary.
// Values implementing io.Reader become file parts; everything else is
// flattened with the same rules as Encode. Nil values are skipped.
func BuildMultipart(params map[string]any) (*Multipart, error) {
	var buf bytes.Buffer

	writer := multipart.NewWriter(&buf)
	chunk := make([]byte, constants.MultipartChunkSize)

	for _, key := range sortedKeys(params) {
		value := params[key]
		if isNil(value) {
			continue
		}

		if reader, ok := value.(io.Reader); ok {
			part, err := writer.CreateFormFile(key, fileName(key, value))
			if err != nil {
				return nil, fmt.Errorf("creating file part %q: %w", key, err)
			}

			if _, err := io.CopyBuffer(part, readerOnly{reader}, chunk); err != nil {
				return nil, fmt.Errorf("copying file part %q: %w", key, err)
			}

			continue
		}

		pairs, err := encodeValue(key, value)
		if err != nil {
			return nil, err
		}

		for _, pair := range pairs {
			if err := writer.WriteField(pair.Key, pair.Value); err != nil {
				return nil, fmt.Errorf("writing field %q: %w", pair.Key, err)
			}
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart body: %w", err)
	}

	return &Multipart{Body: buf.Bytes(), Boundary: writer.Boundary()}, nil
}

func fileName(key string, value any) string {
	if n, ok := value.(named); ok && n.Name() != "" {
		return filepath.Base(n.Name())
	}

	return key
}
