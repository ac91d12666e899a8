package persistence

import (
	"bytes"
	"mime/multipart"
	"sort"

	"github.com/cockroachdb/errors"
)

// FilePart is one file attachment of a multipart submission.
type FilePart struct {
	Field   string
	Name    string
	Content []byte
}

// encodeMultipart builds the multipart/form-data body for a job submission:
// plain form fields first, file attachments after. Fields are written in
// sorted order so request bodies are reproducible across runs.
func encodeMultipart(fields map[string]string, files []FilePart) ([]byte, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := writer.WriteField(name, fields[name]); err != nil {
			return nil, "", errors.Wrapf(err, "writing field %q", name)
		}
	}

	for _, file := range files {
		part, err := writer.CreateFormFile(file.Field, file.Name)
		if err != nil {
			return nil, "", errors.Wrapf(err, "attaching %q", file.Field)
		}
		if _, err := part.Write(file.Content); err != nil {
			return nil, "", errors.Wrapf(err, "writing %q content", file.Field)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}

	return buf.Bytes(), writer.FormDataContentType(), nil
}
