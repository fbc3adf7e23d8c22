package grid

import (
	"github.com/zeu5/rescue-rl/policies"
	"gonum.org/v1/plot/plotter"
)

// ValueDataSet exposes the best value of each cell as a heat map grid.
// Plot rows are flipped so that grid row 0 renders at the top of the
// figure, next to the exit.
type ValueDataSet struct {
	Values map[int]map[int]float64
	Size   int
}

var _ plotter.GridXYZ = &ValueDataSet{}

func NewValueDataSet(level Level, table *policies.QTable) *ValueDataSet {
	dataSet := &ValueDataSet{
		Values: make(map[int]map[int]float64),
		Size:   level.Size,
	}
	for r := 0; r < level.Size; r++ {
		dataSet.Values[r] = make(map[int]float64)
		for c := 0; c < level.Size; c++ {
			_, best := table.Max(Position{r, c}.Hash(), 0)
			dataSet.Values[r][c] = best
		}
	}
	return dataSet
}

func (v *ValueDataSet) Dims() (int, int) {
	return v.Size, v.Size
}

func (v *ValueDataSet) Z(c, r int) float64 {
	return v.Values[v.Size-1-r][c]
}

func (v *ValueDataSet) X(c int) float64 {
	return float64(c)
}

func (v *ValueDataSet) Y(r int) float64 {
	return float64(r)
}

func (v *ValueDataSet) Min() float64 {
	min := 0.0
	first := true
	for _, vals := range v.Values {
		for _, value := range vals {
			if first || value < min {
				min = value
				first = false
			}
		}
	}
	return min
}

func (v *ValueDataSet) Max() float64 {
	max := 0.0
	first := true
	for _, vals := range v.Values {
		for _, value := range vals {
			if first || value > max {
				max = value
				first = false
			}
		}
	}
	return max
}
