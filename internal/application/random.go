package app

import (
	"math/rand/v2"

	"medvision/internal/domain/port"
)

// NewSeededSource возвращает воспроизводимый источник для заданного зерна.
func NewSeededSource(seed uint64) port.RandomSource {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewRandomSource возвращает источник со случайным зерном.
func NewRandomSource() port.RandomSource {
	return NewSeededSource(rand.Uint64())
}

// uniform возвращает число из [lo, hi). Пустой диапазон сжимается до точки lo.
func uniform(rnd port.RandomSource, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rnd.IntN(hi-lo)
}
