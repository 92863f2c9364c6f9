package game

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand/v2"
)

// Tosser выдает число жеребьевки в диапазоне [TossMin, TossMax]
type Tosser interface {
	Draw() int
}

// TosserFunc позволяет использовать функцию как Tosser (удобно в тестах)
type TosserFunc func() int

func (f TosserFunc) Draw() int { return f() }

// CryptoTosser бросает монетку через crypto/rand
type CryptoTosser struct{}

func (CryptoTosser) Draw() int {
	span := int64(TossMax - TossMin + 1)
	n, err := rand.Int(rand.Reader, big.NewInt(span))
	if err != nil {
		return TossMin + mrand.IntN(int(span))
	}
	return TossMin + int(n.Int64())
}

// callerWins - закон четности: угадал "even" при четном числе или "odd" при нечетном
func callerWins(pick string, n int) bool {
	even := n%2 == 0
	return (pick == PickEven && even) || (pick == PickOdd && !even)
}
