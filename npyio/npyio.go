// Package npyio writes float32 arrays in the NumPy .npy and .npz formats,
// so strategy histories can be analyzed with numpy.load.
package npyio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/pkg/errors"
)

var order = binary.LittleEndian

// Write writes v as a 1-dimensional array.
func Write(w io.Writer, v []float32) error {
	return WriteArray(w, []int{len(v)}, v)
}

// WriteMatrix writes data as a row-major (rows x cols) array.
func WriteMatrix(w io.Writer, rows, cols int, data []float32) error {
	return WriteArray(w, []int{rows, cols}, data)
}

// WriteArray writes data as a row-major array with the given shape.
func WriteArray(w io.Writer, shape []int, data []float32) error {
	n := 1
	for _, d := range shape {
		n *= d
	}

	if n != len(data) {
		return errors.Errorf("shape %v requires %d elements, got %d", shape, n, len(data))
	}

	if err := writeHeader(w, shape); err != nil {
		return err
	}

	var buf [4]byte
	for _, x := range data {
		order.PutUint32(buf[:], math.Float32bits(x))
		if _, err := w.Write(buf[:]); err != nil {
			return err
		}
	}

	return nil
}

// The following is adapted from: github.com/sbinet/npyio
var magic = [6]byte{'\x93', 'N', 'U', 'M', 'P', 'Y'}

const (
	majorVersion = byte(2)
	minorVersion = byte(0)
	// Magic, version and 4-byte header length.
	preambleSize = len(magic) + 2 + 4
	alignment    = 64
)

func writeHeader(w io.Writer, shape []int) error {
	if err := binary.Write(w, order, magic[:]); err != nil {
		return err
	}
	if err := binary.Write(w, order, majorVersion); err != nil {
		return err
	}
	if err := binary.Write(w, order, minorVersion); err != nil {
		return err
	}

	buf := new(bytes.Buffer)
	fmt.Fprintf(buf,
		"{'descr': '<f4', 'fortran_order': False, 'shape': %s, }",
		shapeString(shape))

	// The header is terminated by a newline and padded with spaces so that
	// the array data starts on an aligned boundary.
	padding := (alignment - (preambleSize+buf.Len()+1)%alignment) % alignment
	if _, err := buf.Write(bytes.Repeat([]byte{'\x20'}, padding)); err != nil {
		return err
	}
	if _, err := buf.Write([]byte{'\n'}); err != nil {
		return err
	}

	buflen := int64(buf.Len())
	if err := binary.Write(w, order, uint32(buflen)); err != nil {
		return err
	}

	if n, err := io.Copy(w, buf); err != nil {
		return err
	} else if n < buflen {
		return io.ErrShortWrite
	}

	return nil
}

// shapeString formats shape as a python tuple.
func shapeString(shape []int) string {
	dims := make([]string, len(shape))
	for i, d := range shape {
		dims[i] = fmt.Sprint(d)
	}

	if len(dims) == 1 {
		return "(" + dims[0] + ",)"
	}

	return "(" + strings.Join(dims, ", ") + ")"
}
