package datagen

import (
	"math"
	"testing"
)

func TestFakerSeedDeterminism(t *testing.T) {
	a := NewFakerWithSeed(7)
	b := NewFakerWithSeed(7)

	for i := 0; i < 100; i++ {
		if av, bv := a.Int(0, 1000), b.Int(0, 1000); av != bv {
			t.Fatalf("draw %d diverged: %d vs %d", i, av, bv)
		}
	}
}

func TestNewFakerRandomSeed(t *testing.T) {
	a := NewFaker()
	b := NewFaker()

	same := true
	for i := 0; i < 64; i++ {
		if a.Int(0, 1<<30) != b.Int(0, 1<<30) {
			same = false
			break
		}
	}
	if same {
		t.Error("two randomly seeded fakers produced identical sequences")
	}
}

func TestFakerIntBounds(t *testing.T) {
	f := NewFakerWithSeed(1)
	for i := 0; i < 1000; i++ {
		v := f.Int(3, 9)
		if v < 3 || v > 9 {
			t.Fatalf("Int(3, 9) returned %d", v)
		}
	}
}

func TestChoose(t *testing.T) {
	f := NewFakerWithSeed(2)
	items := []string{"a", "b", "c"}
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		seen[Choose(f, items)] = true
	}
	if len(seen) != len(items) {
		t.Errorf("200 draws hit %d of %d items", len(seen), len(items))
	}
}

func TestChooseWeighted(t *testing.T) {
	f := NewFakerWithSeed(3)
	items := []string{"common", "rare"}
	weights := []float64{95, 5}

	counts := map[string]int{}
	for i := 0; i < 2000; i++ {
		counts[ChooseWeighted(f, items, weights)]++
	}

	if counts["common"] <= counts["rare"] {
		t.Errorf("weights ignored: common=%d rare=%d", counts["common"], counts["rare"])
	}
	if counts["rare"] == 0 {
		t.Error("low-weight item never drawn in 2000 tries")
	}
}

func TestNormalMoments(t *testing.T) {
	f := NewFakerWithSeed(4)
	const n = 20000
	const mean, stddev = 50.0, 8.0

	var sum, sqSum float64
	for i := 0; i < n; i++ {
		v := f.Normal(mean, stddev)
		sum += v
		sqSum += v * v
	}

	gotMean := sum / n
	gotStd := math.Sqrt(sqSum/n - gotMean*gotMean)

	if math.Abs(gotMean-mean) > 0.5 {
		t.Errorf("sample mean = %f, want ~%f", gotMean, mean)
	}
	if math.Abs(gotStd-stddev) > 0.5 {
		t.Errorf("sample stddev = %f, want ~%f", gotStd, stddev)
	}
}

func TestPoissonMean(t *testing.T) {
	f := NewFakerWithSeed(5)
	const n = 20000
	const lambda = 30.0

	var sum int
	for i := 0; i < n; i++ {
		v := f.Poisson(lambda)
		if v < 0 {
			t.Fatalf("Poisson returned negative %d", v)
		}
		sum += v
	}

	got := float64(sum) / n
	if math.Abs(got-lambda) > 0.5 {
		t.Errorf("sample mean = %f, want ~%f", got, lambda)
	}
}

func TestPoissonZeroLambda(t *testing.T) {
	f := NewFakerWithSeed(6)
	if v := f.Poisson(0); v != 0 {
		t.Errorf("Poisson(0) = %d, want 0", v)
	}
}
