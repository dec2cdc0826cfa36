package titercalc

import (
	"compress/bzip2"
	"compress/gzip"
	"compress/zlib"
	"io"
	"os"

	"github.com/xi2/xz"
)

type compression byte

const (
	compressionNone compression = iota
	compressionGzip
	compressionXZ
	compressionZlib
	compressionBZip2
)

// Magic-byte signatures from https://stackoverflow.com/a/19127748/199475
var magicBytes = map[compression][]byte{
	compressionGzip:  {0x1f, 0x8b, 0x08},
	compressionXZ:    {0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00},
	compressionBZip2: {0x42, 0x5a, 0x68},
}

// OpenAssayFile opens an assay input file, transparently decompressing gzip,
// bzip2, xz, or zlib content based on its leading magic bytes. Anything
// without a known signature is passed through as plain text.
func OpenAssayFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	comp, err := detectCompression(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, err
	}

	switch comp {
	case compressionGzip:
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &layeredReadCloser{Reader: gz, closers: []io.Closer{gz, f}}, nil
	case compressionBZip2:
		return &layeredReadCloser{Reader: bzip2.NewReader(f), closers: []io.Closer{f}}, nil
	case compressionXZ:
		xzr, err := xz.NewReader(f, 0)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &layeredReadCloser{Reader: xzr, closers: []io.Closer{f}}, nil
	case compressionZlib:
		zr, err := zlib.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &layeredReadCloser{Reader: zr, closers: []io.Closer{zr, f}}, nil
	}

	return f, nil
}

func detectCompression(r io.Reader) (compression, error) {
	buff := make([]byte, 6)
	n, err := io.ReadFull(r, buff)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		// Shorter than any signature; treat as uncompressed.
		buff = buff[:n]
	} else if err != nil {
		return compressionNone, err
	}

Outer:
	for comp, sig := range magicBytes {
		if len(buff) < len(sig) {
			continue
		}
		for i := range sig {
			if buff[i] != sig[i] {
				continue Outer
			}
		}
		return comp, nil
	}

	// Zlib's 2-byte header is 0x78 followed by a compression-level flag byte.
	if len(buff) >= 2 && buff[0] == 0x78 {
		switch buff[1] {
		case 0x01, 0x5e, 0x9c, 0xda:
			return compressionZlib, nil
		}
	}

	return compressionNone, nil
}

// layeredReadCloser closes every layer of a decompression stack in order.
type layeredReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (l *layeredReadCloser) Close() error {
	var firstErr error
	for _, c := range l.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
