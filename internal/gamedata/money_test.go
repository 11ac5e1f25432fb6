package gamedata

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatCopper(t *testing.T) {
	require.Equal(t, "1g 23s 45c", FormatCopper(12345))
	require.Equal(t, "0g 1s 50c", FormatCopper(150))
	require.Equal(t, "0g 0s 0c", FormatCopper(0))
	require.Equal(t, "12g 0s 7c", FormatCopper(120007))
}

func TestFormatCopperNegativeClampsToZero(t *testing.T) {
	require.Equal(t, "0g 0s 0c", FormatCopper(-5))
}
