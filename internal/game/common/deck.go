package common

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand/v2"
	"time"
)

// RNG is the source of swap indexes for ShuffleWith. *math/rand/v2.Rand satisfies it.
type RNG interface {
	IntN(n int) int
}

func NewStandardDeck() []Card {
	deck := make([]Card, 0, 52)
	for _, s := range Suits {
		for r := Ace; r <= King; r++ {
			deck = append(deck, Card{Rank: r, Suit: s})
		}
	}
	return deck
}

func Shuffle(cards []Card) {
	// Crypto-secure Fisher–Yates shuffle.
	// If crypto/rand fails, we fall back to a time-seeded shuffle as a last resort.
	for i := len(cards) - 1; i > 0; i-- {
		nBig, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			fallbackShuffle(cards)
			return
		}
		j := int(nBig.Int64())
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// ShuffleWith runs Fisher–Yates using rng, so a fixed source yields a fixed order.
func ShuffleWith(cards []Card, rng RNG) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// SeededRNG returns a PCG source for reproducible deals.
func SeededRNG(seed int64) *mrand.Rand {
	return mrand.New(mrand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}

func fallbackShuffle(cards []Card) {
	seed := time.Now().UnixNano()
	for i := len(cards) - 1; i > 0; i-- {
		seed = (seed*6364136223846793005 + 1) & 0x7fffffffffffffff
		j := int(seed % int64(i+1))
		cards[i], cards[j] = cards[j], cards[i]
	}
}
