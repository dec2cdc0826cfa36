package titercalc

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"io"
	"os"
	"path/filepath"
	"testing"
)

const assayText = "VOLUME 0.1\nDILUTION 10\nNREPLICATES 2\nSAMPLE x\nA,B\nA\n"

func writeTempFile(t *testing.T, name string, contents []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatal(err)
	}

	return path
}

func readAllAndClose(t *testing.T, path string) string {
	t.Helper()

	r, err := OpenAssayFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}

	return string(out)
}

func TestOpenAssayFilePlainText(t *testing.T) {
	path := writeTempFile(t, "assay.txt", []byte(assayText))

	if got := readAllAndClose(t, path); got != assayText {
		t.Errorf("plain text mangled: %q", got)
	}
}

func TestOpenAssayFileGzip(t *testing.T) {
	buf := bytes.Buffer{}
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write([]byte(assayText)); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}

	path := writeTempFile(t, "assay.txt.gz", buf.Bytes())

	if got := readAllAndClose(t, path); got != assayText {
		t.Errorf("gzip content mangled: %q", got)
	}
}

func TestOpenAssayFileZlib(t *testing.T) {
	buf := bytes.Buffer{}
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write([]byte(assayText)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	path := writeTempFile(t, "assay.txt.z", buf.Bytes())

	if got := readAllAndClose(t, path); got != assayText {
		t.Errorf("zlib content mangled: %q", got)
	}
}

func TestOpenAssayFileShortFile(t *testing.T) {
	path := writeTempFile(t, "short.txt", []byte("ab"))

	if got := readAllAndClose(t, path); got != "ab" {
		t.Errorf("short file mangled: %q", got)
	}
}
