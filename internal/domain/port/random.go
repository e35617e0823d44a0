package port

// RandomSource источник псевдослучайных чисел для сегментации
type RandomSource interface {
	// IntN возвращает число из [0, n)
	IntN(n int) int
}
