package table

import (
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/gzip"
)

// Fingerprint hashes raw CSV content. The hash is logged alongside job
// submissions so reruns against a modified dataset are visible in the logs.
func Fingerprint(content []byte) uint64 {
	return xxhash.Sum64(content)
}

// WriteGzip stores a fetched solution artifact on disk as gzip-compressed
// CSV. Artifacts can be large for long horizon optimizations; compressing
// the local cache keeps repeated runs cheap to keep around.
func WriteGzip(path string, t *Table) error {
	content, err := t.MarshalCSV()
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}

	zw := gzip.NewWriter(file)
	if _, err := zw.Write(content); err != nil {
		file.Close()
		return errors.Wrapf(err, "writing %s", path)
	}
	if err := zw.Close(); err != nil {
		file.Close()
		return errors.Wrapf(err, "flushing %s", path)
	}
	return file.Close()
}

// ReadGzip loads a table previously stored with WriteGzip.
func ReadGzip(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer file.Close()

	zr, err := gzip.NewReader(file)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	defer zr.Close()

	content, err := io.ReadAll(zr)
	if err != nil {
		return nil, errors.Wrapf(err, "decompressing %s", path)
	}
	return Parse(content)
}
