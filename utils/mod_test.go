package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSign(t *testing.T) {
	require.Equal(t, -1, Sign(-7))
	require.Equal(t, 0, Sign(0))
	require.Equal(t, 1, Sign(int64(3)))
}

func TestTurnOrder(t *testing.T) {
	require.Equal(t, []int{2, 3, 0}, TurnOrder(1, 4))
	require.Empty(t, TurnOrder(0, 1))
}

func TestFindIndex(t *testing.T) {
	require.Equal(t, 1, FindIndex([]string{"a", "b"}, "b"))
	require.Equal(t, -1, FindIndex([]int{1}, 2))
}
