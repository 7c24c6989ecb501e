package layout

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type layoutCall struct {
	element *int
	col     int
	row     int
}

type recorder struct {
	beginWidth  int
	beginHeight int
	beginCalls  int
	calls       []layoutCall
}

func (r *recorder) onBegin(width, height int) {
	r.beginWidth = width
	r.beginHeight = height
	r.beginCalls++
}

func (r *recorder) onLayout(element *int, col, row int) {
	r.calls = append(r.calls, layoutCall{element: element, col: col, row: row})
}

func (r *recorder) values() []*int {
	values := make([]*int, len(r.calls))
	for i, c := range r.calls {
		values[i] = c.element
	}
	return values
}

func intp(v int) *int { return &v }

func TestLayoutEmpty(t *testing.T) {
	var r recorder

	err := Layout(nil, 11, r.onBegin, r.onLayout)
	require.NoError(t, err)

	assert.Equal(t, 1, r.beginCalls)
	assert.Equal(t, 0, r.beginWidth)
	assert.Equal(t, 0, r.beginHeight)
	assert.Empty(t, r.calls)
}

func TestLayoutUndecoratedOnly(t *testing.T) {
	tests := []struct {
		count    int
		width    int
		colStart int
		height   int
	}{
		{1, 1, 0, 1},
		{2, 3, -1, 1},
		{3, 3, -1, 1},
		{4, 5, -2, 1},
		{5, 5, -2, 1},
		{6, 7, -3, 1},
		{7, 7, -3, 1},
		{8, 9, -4, 1},
		{9, 9, -4, 1},
		{10, 11, -5, 1},
		{11, 11, -5, 1},
		{12, 11, -5, 2},
		{13, 11, -5, 2},
		{21, 11, -5, 2},
		{22, 11, -5, 2},
		{23, 13, -6, 2},
		{24, 13, -6, 2},
		{33, 17, -8, 2},
		{34, 17, -8, 2},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_elements", tt.count), func(t *testing.T) {
			elements := make([]Element[int], tt.count)
			for i := range elements {
				elements[i] = Element[int]{Value: i}
			}

			var r recorder
			err := Layout(elements, 11, r.onBegin, r.onLayout)
			require.NoError(t, err)

			assert.Equal(t, tt.width, r.beginWidth)
			assert.Equal(t, tt.height, r.beginHeight)
			require.Len(t, r.calls, tt.width*tt.height)

			i := 0
			for row := 0; row < tt.height; row++ {
				for w := 0; w < tt.width; w++ {
					call := r.calls[i]
					assert.Equal(t, tt.colStart+w, call.col)
					assert.Equal(t, row, call.row)
					if i < tt.count {
						require.NotNil(t, call.element)
						assert.Equal(t, i, *call.element)
					} else {
						assert.Nil(t, call.element)
					}
					i++
				}
			}
		})
	}
}

func TestLayoutDecoratedOnly(t *testing.T) {
	tests := []struct {
		col    int
		row    int
		width  int
		height int
	}{
		{0, 0, 1, 1},
		{-1, 0, 3, 1},
		{1, 0, 3, 1},
		{-2, 0, 5, 1},
		{2, 0, 5, 1},
		{-3, 0, 7, 1},
		{1, 1, 3, 2},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("cell_%d_%d", tt.col, tt.row), func(t *testing.T) {
			elements := []Element[int]{
				{Value: 45, Coordinates: &Coordinates{Col: tt.col, Row: tt.row}},
			}

			var r recorder
			err := Layout(elements, 11, r.onBegin, r.onLayout)
			require.NoError(t, err)

			assert.Equal(t, tt.width, r.beginWidth)
			assert.Equal(t, tt.height, r.beginHeight)
			require.Len(t, r.calls, tt.width*tt.height)

			for _, call := range r.calls {
				if call.col == tt.col && call.row == tt.row {
					require.NotNil(t, call.element)
					assert.Equal(t, 45, *call.element)
				} else {
					assert.Nil(t, call.element)
				}
			}
		})
	}
}

func TestLayoutDecoratedAndUndecorated(t *testing.T) {
	tests := []struct {
		name         string
		decoratedCol int
		want         []*int
	}{
		{"undecorated_decorated_empty", 0, []*int{intp(1000), intp(10), nil}},
		{"decorated_undecorated_empty", -1, []*int{intp(10), intp(1000), nil}},
		{"undecorated_empty_decorated", 1, []*int{intp(1000), nil, intp(10)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			elements := []Element[int]{
				{Value: 10, Coordinates: &Coordinates{Col: tt.decoratedCol, Row: 0}},
				{Value: 1000},
			}

			var r recorder
			err := Layout(elements, 11, r.onBegin, r.onLayout)
			require.NoError(t, err)

			assert.Equal(t, 3, r.beginWidth)
			assert.Equal(t, 1, r.beginHeight)

			got := r.values()
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				if tt.want[i] == nil {
					assert.Nil(t, got[i], "cell %d", i)
					continue
				}
				require.NotNil(t, got[i], "cell %d", i)
				assert.Equal(t, *tt.want[i], *got[i], "cell %d", i)
			}
		})
	}
}

func TestLayoutRejectsDuplicateCell(t *testing.T) {
	elements := []Element[int]{
		{Value: 1, Coordinates: &Coordinates{Col: 0, Row: 0}},
		{Value: 2, Coordinates: &Coordinates{Col: 0, Row: 0}},
	}

	var r recorder
	err := Layout(elements, 11, r.onBegin, r.onLayout)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "(0,0)")
}

func TestLayoutRejectsNegativeRow(t *testing.T) {
	elements := []Element[int]{
		{Value: 1, Coordinates: &Coordinates{Col: 0, Row: -1}},
	}

	err := Layout(elements, 11, func(int, int) {}, func(*int, int, int) {})
	require.Error(t, err)
}
