package util

import (
	"math"
	"testing"
)

func TestMovingAverage(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6}
	expected := []float64{1, 1.5, 2, 3, 4, 5}
	obtained := MovingAverage(values, 3)

	if len(obtained) != len(expected) {
		t.Fatalf("expected %d points, got %d", len(expected), len(obtained))
	}
	for i := range expected {
		if math.Abs(obtained[i]-expected[i]) > 1e-9 {
			t.Errorf("expected %f at index %d, got %f", expected[i], i, obtained[i])
		}
	}
}

func TestMovingAverageWindowOne(t *testing.T) {
	values := []float64{3, -1, 4}
	obtained := MovingAverage(values, 1)
	for i := range values {
		if obtained[i] != values[i] {
			t.Errorf("expected the series unchanged at index %d, got %f", i, obtained[i])
		}
	}
}

func TestMovingAverageEmpty(t *testing.T) {
	if obtained := MovingAverage(nil, 5); len(obtained) != 0 {
		t.Errorf("expected an empty result, got %d points", len(obtained))
	}
}
