package regret

import (
	"reflect"
	"testing"

	"github.com/pkg/errors"
)

func TestParseTensor(t *testing.T) {
	testCases := []struct {
		name  string
		value interface{}
		shape []int
		data  []float64
	}{
		{"float slices", [][]float64{{1, 2}, {3, 4}}, []int{2, 2}, []float64{1, 2, 3, 4}},
		{"int arrays", [2][3]int{{1, 2, 3}, {4, 5, 6}}, []int{2, 3}, []float64{1, 2, 3, 4, 5, 6}},
		{"decoded yaml", []interface{}{
			[]interface{}{1, 2.5},
			[]interface{}{uint8(3), float32(4)},
		}, []int{2, 2}, []float64{1, 2.5, 3, 4}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tensor, err := ParseTensor(tc.value)
			if err != nil {
				t.Fatal(err)
			}

			if !reflect.DeepEqual(tensor.Shape(), tc.shape) {
				t.Errorf("expected shape %v, got %v", tc.shape, tensor.Shape())
			}

			if !reflect.DeepEqual(tensor.Data(), tc.data) {
				t.Errorf("expected data %v, got %v", tc.data, tensor.Data())
			}
		})
	}
}

func TestParseTensor_Invalid(t *testing.T) {
	testCases := []struct {
		name  string
		value interface{}
	}{
		{"nil", nil},
		{"scalar", 1.0},
		{"string", []string{"a", "b"}},
		{"empty", [][]float64{}},
		{"ragged", [][]float64{{1, 2}, {3}}},
		{"mixed depth", []interface{}{1, []int{2}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseTensor(tc.value); errors.Cause(err) != ErrInvalidShape {
				t.Errorf("expected ErrInvalidShape, got %v", err)
			}
		})
	}
}

func TestTensor_At(t *testing.T) {
	tensor, err := NewTensor([]int{2, 3, 2}, []float64{
		0, 1, 2, 3, 4, 5,
		6, 7, 8, 9, 10, 11,
	})
	if err != nil {
		t.Fatal(err)
	}

	if got := tensor.At(1, 2, 0); got != 10 {
		t.Errorf("expected 10, got %v", got)
	}

	if got := tensor.lastAxis([]int{0, 1}); !reflect.DeepEqual(got, []float64{2, 3}) {
		t.Errorf("expected [2 3], got %v", got)
	}
}
