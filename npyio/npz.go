package npyio

import (
	"bufio"
	"io"
	"os"
	"sort"

	"github.com/klauspost/compress/zip"
)

// MakeNPZ writes an .npz archive to output containing one entry per
// element of npyFiles. Entries are written in sorted order of name.
func MakeNPZ(npyFiles map[string]io.Reader, output string) error {
	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := WriteNPZ(f, npyFiles); err != nil {
		return err
	}

	return f.Close()
}

// WriteNPZ writes an .npz archive to w.
func WriteNPZ(w io.Writer, npyFiles map[string]io.Reader) error {
	b := bufio.NewWriter(w)
	z := zip.NewWriter(b)

	names := make([]string, 0, len(npyFiles))
	for name := range npyFiles {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		w, err := z.Create(name)
		if err != nil {
			return err
		}

		if _, err := io.Copy(w, npyFiles[name]); err != nil {
			return err
		}
	}

	if err := z.Close(); err != nil {
		return err
	}

	return b.Flush()
}
