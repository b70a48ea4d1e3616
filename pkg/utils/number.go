package utils

import "math"

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// floorEpsilon absorve o erro de representação de valores como 0.29*100
const floorEpsilon = 1e-9

// FloorWithTwoDecimalPlace trunca para duas casas, nunca arredondando para cima
func FloorWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Floor(f*100+floorEpsilon) / 100
}

// RoundPercentage arredonda e limita uma porcentagem ao intervalo [lower, upper]
func RoundPercentage(f float64, lower, upper int) int {
	switch {
	case math.IsNaN(f) || f <= float64(lower):
		return lower
	case f >= float64(upper):
		return upper
	}

	return int(math.Round(f))
}
