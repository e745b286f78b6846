package compression

import (
	"io"
	"os"

	stringpool "github.com/sdsymphony/hist2json/pkg/strings"
)

// DetectAlgorithm picks a compression algorithm from a file name's
// extension. History files rotated by older Symphony hosts commonly carry
// ".gz" or the legacy Unix ".Z" suffix; an unrecognised or absent extension
// is treated as an uncompressed file.
func DetectAlgorithm(path string) Algorithm {
	switch {
	case stringpool.HasSuffix(path, ".gz"):
		return Gzip
	case stringpool.HasSuffix(path, ".Z"):
		return UnixCompress
	case stringpool.HasSuffix(path, ".lz4"):
		return LZ4
	case stringpool.HasSuffix(path, ".zst"):
		return Zstd
	case stringpool.HasSuffix(path, ".sz"):
		return Snappy
	default:
		return None
	}
}

// OpenReader opens path and wraps it in a decompressing reader chosen by
// DetectAlgorithm. Callers must Close the result; closing propagates to the
// underlying file.
func OpenReader(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	algo := DetectAlgorithm(path)
	if algo == None {
		return f, nil
	}

	comp, err := NewCompressor(&Config{Algorithm: algo, Level: Default})
	if err != nil {
		f.Close()
		return nil, err
	}

	pr, pw := io.Pipe()
	go func() {
		err := comp.DecompressStream(pw, f)
		f.Close()
		pw.CloseWithError(err)
	}()

	return pr, nil
}
