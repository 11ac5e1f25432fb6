package gamedata

import "fmt"

// Currency conversion: 100 copper to a silver, 100 silver to a gold.
const (
	CopperPerSilver = 100
	CopperPerGold   = 10000
)

// FormatCopper renders a copper amount as the usual "1g 23s 45c" string.
func FormatCopper(copper int64) string {
	if copper < 0 {
		copper = 0
	}
	gold := copper / CopperPerGold
	silver := (copper % CopperPerGold) / CopperPerSilver
	rest := copper % CopperPerSilver
	return fmt.Sprintf("%dg %ds %dc", gold, silver, rest)
}
