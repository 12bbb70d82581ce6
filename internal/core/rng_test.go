package core

import (
	"testing"
	"time"
)

func TestSimpleRNGDeterminism(t *testing.T) {
	a := NewSimpleRNG(42)
	b := NewSimpleRNG(42)

	for i := 0; i < 100; i++ {
		if a.Next() != b.Next() {
			t.Fatalf("Same seed should produce the same sequence, diverged at %d", i)
		}
	}
}

func TestSimpleRNGBounds(t *testing.T) {
	r := NewSimpleRNG(7)

	for i := 0; i < 1000; i++ {
		if v := r.Intn(10); v < 0 || v >= 10 {
			t.Fatalf("Intn(10) = %d, out of range", v)
		}
		if v := r.Range(2, 22); v < 2 || v >= 22 {
			t.Fatalf("Range(2, 22) = %d, out of range", v)
		}
		if f := r.Float64(); f < 0 || f >= 1 {
			t.Fatalf("Float64() = %f, out of range", f)
		}
	}

	if r.Intn(0) != 0 {
		t.Error("Intn(0) should be 0")
	}
	if r.Range(5, 5) != 5 {
		t.Error("Range with empty interval should return lo")
	}
}

func TestSimpleRNGChance(t *testing.T) {
	r := NewSimpleRNG(99)

	for i := 0; i < 100; i++ {
		if r.Chance(0) {
			t.Fatal("Chance(0) should never fire")
		}
		if !r.Chance(1) {
			t.Fatal("Chance(1) should always fire")
		}
	}

	hits := 0
	for i := 0; i < 10000; i++ {
		if r.Chance(0.5) {
			hits++
		}
	}
	if hits < 4000 || hits > 6000 {
		t.Errorf("Chance(0.5) fired %d/10000 times, expected roughly half", hits)
	}
}

func TestManualClock(t *testing.T) {
	c := NewManualClock(DefaultEpoch)
	start := c.Now()

	c.Advance(1500 * time.Millisecond)
	if got := c.Now().Sub(start); got.Milliseconds() != 1500 {
		t.Errorf("Elapsed = %v, expected 1.5s", got)
	}
}
