package utils

import "golang.org/x/exp/constraints"

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// Sign returns -1, 0 or 1 following the sign of x.
func Sign[T constraints.Signed](x T) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	default:
		return 0
	}
}

// TurnOrder lists the punters that move after me, in order, wrapping around.
func TurnOrder(me, punters int) []int {
	order := make([]int, 0, punters)
	for i := 1; i < punters; i++ {
		order = append(order, (me+i)%punters)
	}
	return order
}
