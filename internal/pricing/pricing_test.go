package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuyerPriceRoundsToWholeUnit(t *testing.T) {
	cfg := Config{Rate: 1.20}

	price, err := cfg.BuyerPrice(49.99)
	assert.NoError(t, err)
	assert.Equal(t, int64(60), price, "49.99 * 1.20 = 59.988 arredonda pra 60")

	price, err = cfg.BuyerPrice(100)
	assert.NoError(t, err)
	assert.Equal(t, int64(120), price)

	price, err = cfg.BuyerPrice(0.50)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), price)
}

func TestBuyerPriceMonotonic(t *testing.T) {
	cfg := Config{Rate: 1.20}

	bases := []float64{1, 5, 10, 49.99, 75, 100, 250, 999.99, 10000}
	var last int64 = -1
	for _, base := range bases {
		price, err := cfg.BuyerPrice(base)
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, price, last, "base %v não pode baixar o preço", base)
		last = price
	}

	// Com distância de uma unidade inteira a monotonicidade é estrita.
	p1, _ := cfg.BuyerPrice(100)
	p2, _ := cfg.BuyerPrice(101)
	assert.Less(t, p1, p2)
}

func TestBuyerPriceRejectsNonPositive(t *testing.T) {
	cfg := Config{Rate: 1.20}

	_, err := cfg.BuyerPrice(0)
	assert.Error(t, err)

	_, err = cfg.BuyerPrice(-10)
	assert.Error(t, err)
}

func TestBuyerPriceZeroRateFallsBackToDefault(t *testing.T) {
	var cfg Config

	price, err := cfg.BuyerPrice(100)
	assert.NoError(t, err)
	assert.Equal(t, int64(120), price)
}
