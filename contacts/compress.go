package contacts

import (
	"compress/flate"
	"compress/gzip"
	"compress/lzw"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
)

const (
	lzwOrder        = lzw.MSB
	lzwLitwidth int = 8
)

//This will cause additional indirections
//but each Next call takes enough time to make those delays irrelevant.
//Also, why couldn't *zstd.Decoder implement io.ReadCloser? :-(
type stdql struct {
	closeql func()
	*zstd.Decoder
}

// Close Closes the object. It can not be used after this call
func (s stdql) Close() error {
	s.closeql()
	return nil
}

//compression format from the file extension. Files without a known
//compression extension are taken as plain text.
func format(name string) string {
	temp := strings.Split(name, ".")
	return strings.ToLower(temp[len(temp)-1])
}

//newCompReader wraps a reader with the decompressor matching the file
//extension: .zst/.zstd (the default written by this library), .gz,
//.fz (flate) and .lzw are supported. Anything else is read as is.
func newCompReader(a io.Reader, name string) (io.ReadCloser, error) {
	switch format(name) {
	case "zst", "zstd":
		r, err := zstd.NewReader(a)
		if err != nil {
			return nil, err
		}
		return &stdql{r.Close, r}, nil
	case "gz":
		return gzip.NewReader(a)
	case "fz":
		return flate.NewReader(a), nil
	case "lzw":
		return lzw.NewReader(a, lzwOrder, lzwLitwidth), nil
	default:
		return io.NopCloser(a), nil
	}
}

//newCompWriter is the writing counterpart of newCompReader.
func newCompWriter(a io.Writer, name string, level int) (io.WriteCloser, error) {
	switch format(name) {
	case "zst", "zstd":
		return zstd.NewWriter(a, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)))
	case "gz":
		return gzip.NewWriterLevel(a, gzip.DefaultCompression)
	case "fz":
		return flate.NewWriter(a, flate.DefaultCompression)
	case "lzw":
		return lzw.NewWriter(a, lzwOrder, lzwLitwidth), nil
	default:
		return nopWriteCloser{a}, nil
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (n nopWriteCloser) Close() error { return nil }
