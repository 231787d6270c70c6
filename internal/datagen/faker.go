//-------------------------------------------------------------------------
//
// Salestar Warehouse Builder
//
// Copyright (c) 2025 - 2026, the Salestar authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import (
	"math"

	"github.com/brianvoe/gofakeit/v7"
)

// Faker wraps gofakeit with the draw primitives the generator needs.
// A seeded Faker produces the same sequence every run.
type Faker struct {
	gf *gofakeit.Faker
}

// NewFaker creates a randomly seeded Faker.
func NewFaker() *Faker {
	return &Faker{gf: gofakeit.New(0)}
}

// NewFakerWithSeed creates a Faker with a fixed seed for reproducible
// output.
func NewFakerWithSeed(seed uint64) *Faker {
	return &Faker{gf: gofakeit.New(seed)}
}

// Int returns a random integer in [min, max].
func (f *Faker) Int(min, max int) int {
	return f.gf.IntRange(min, max)
}

// Float64 returns a random float in [min, max).
func (f *Faker) Float64(min, max float64) float64 {
	return f.gf.Float64Range(min, max)
}

// Choose returns a uniformly random element of items.
func Choose[T any](f *Faker, items []T) T {
	return items[f.Int(0, len(items)-1)]
}

// ChooseWeighted returns a random element of items where the chance of
// picking items[i] is proportional to weights[i].
func ChooseWeighted[T any](f *Faker, items []T, weights []float64) T {
	var total float64
	for _, w := range weights {
		total += w
	}

	r := f.Float64(0, total)
	var cum float64
	for i, w := range weights {
		cum += w
		if r < cum {
			return items[i]
		}
	}
	return items[len(items)-1]
}

// Normal draws from a normal distribution with the given mean and
// standard deviation, via the Box-Muller transform over two uniform
// draws.
func (f *Faker) Normal(mean, stddev float64) float64 {
	u1 := f.Float64(0, 1)
	u2 := f.Float64(0, 1)
	if u1 < 1e-12 {
		u1 = 1e-12
	}
	z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	return mean + stddev*z
}

// Poisson draws from a Poisson distribution with the given mean, using
// Knuth's multiplication method. Fine for the small means the
// generator uses.
func (f *Faker) Poisson(lambda float64) int {
	if lambda <= 0 {
		return 0
	}
	limit := math.Exp(-lambda)
	k := 0
	p := 1.0
	for {
		p *= f.Float64(0, 1)
		if p <= limit {
			return k
		}
		k++
	}
}
