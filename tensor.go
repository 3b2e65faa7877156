package regret

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

// Tensor is an immutable, dense, row-major array of float64.
type Tensor struct {
	shape   []int
	strides []int
	data    []float64
}

// NewTensor creates a Tensor with the given shape from a flat slice of
// row-major data. Both shape and data are copied.
func NewTensor(shape []int, data []float64) (*Tensor, error) {
	if len(shape) == 0 {
		return nil, errors.Wrap(ErrInvalidShape, "tensor must have at least one axis")
	}

	n := 1
	for i, d := range shape {
		if d <= 0 {
			return nil, errors.Wrapf(ErrInvalidShape, "axis %d of shape %v has length %d", i, shape, d)
		}

		n *= d
	}

	if len(data) != n {
		return nil, errors.Wrapf(ErrInvalidShape,
			"shape %v requires %d elements, got %d", shape, n, len(data))
	}

	strides := make([]int, len(shape))
	stride := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = stride
		stride *= shape[i]
	}

	return &Tensor{
		shape:   append([]int(nil), shape...),
		strides: strides,
		data:    append([]float64(nil), data...),
	}, nil
}

// ParseTensor converts an array-like value into a Tensor. Accepted values are
// a *Tensor, a Tensor, or arbitrarily nested slices/arrays (including
// []interface{} as produced by YAML and JSON decoders) whose leaves are numbers.
// Ragged nesting is rejected.
func ParseTensor(v interface{}) (*Tensor, error) {
	switch t := v.(type) {
	case *Tensor:
		if t == nil {
			return nil, errors.Wrap(ErrInvalidShape, "nil tensor")
		}
		return t, nil
	case Tensor:
		return &t, nil
	}

	rv := indirect(reflect.ValueOf(v))
	if !isArrayLike(rv) {
		return nil, errors.Wrapf(ErrInvalidShape, "%T is not array-like", v)
	}

	var shape []int
	for x := rv; isArrayLike(x); {
		shape = append(shape, x.Len())
		if x.Len() == 0 {
			break
		}

		x = indirect(x.Index(0))
	}

	data, err := flatten(rv, shape, nil)
	if err != nil {
		return nil, err
	}

	return NewTensor(shape, data)
}

// Shape returns the length of each axis.
func (t *Tensor) Shape() []int {
	return append([]int(nil), t.shape...)
}

// NumDims returns the number of axes.
func (t *Tensor) NumDims() int {
	return len(t.shape)
}

// Len returns the total number of elements.
func (t *Tensor) Len() int {
	return len(t.data)
}

// Data returns a copy of the row-major elements.
func (t *Tensor) Data() []float64 {
	return append([]float64(nil), t.data...)
}

// At returns the element at the given index, one entry per axis.
// It panics if the index is out of range.
func (t *Tensor) At(index ...int) float64 {
	if len(index) != len(t.shape) {
		panic(errors.Errorf("index %v does not match shape %v", index, t.shape))
	}

	return t.data[t.offset(index)]
}

// lastAxis returns a copy of the vector along the final axis at the given
// index into the leading axes.
func (t *Tensor) lastAxis(index []int) []float64 {
	n := t.shape[len(t.shape)-1]
	off := t.offset(index)
	return append([]float64(nil), t.data[off:off+n]...)
}

func (t *Tensor) offset(index []int) int {
	off := 0
	for i, x := range index {
		if x < 0 || x >= t.shape[i] {
			panic(errors.Errorf("index %v out of range for shape %v", index, t.shape))
		}

		off += x * t.strides[i]
	}

	return off
}

func flatten(v reflect.Value, shape []int, data []float64) ([]float64, error) {
	v = indirect(v)
	if len(shape) == 0 {
		x, ok := toFloat(v)
		if !ok {
			return nil, errors.Wrapf(ErrInvalidShape, "ragged or non-numeric element: %v", describe(v))
		}

		return append(data, x), nil
	}

	if !isArrayLike(v) || v.Len() != shape[0] {
		return nil, errors.Wrapf(ErrInvalidShape,
			"ragged array: expected %d elements, got %v", shape[0], describe(v))
	}

	var err error
	for i := 0; i < v.Len(); i++ {
		data, err = flatten(v.Index(i), shape[1:], data)
		if err != nil {
			return nil, err
		}
	}

	return data, nil
}

func indirect(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Interface || v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return v
		}

		v = v.Elem()
	}

	return v
}

func isArrayLike(v reflect.Value) bool {
	k := v.Kind()
	return k == reflect.Slice || k == reflect.Array
}

func toFloat(v reflect.Value) (float64, bool) {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	}

	return 0, false
}

func describe(v reflect.Value) string {
	if !v.IsValid() {
		return "nil"
	}

	if isArrayLike(v) {
		return fmt.Sprintf("%v of length %d", v.Type(), v.Len())
	}

	return v.Type().String()
}
