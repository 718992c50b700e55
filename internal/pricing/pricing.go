package pricing

import (
	"fmt"
	"math"
	"os"
	"strconv"
)

// DefaultRate é o markup aplicado sobre o pedido do seller.
//
// NOTA DE PRODUTO: o sistema legado usava 20% na vitrine e 15% no email de
// notificação para o MESMO preço. Aqui existe uma taxa única, configurável
// via LEAD_MARKUP_RATE, consumida por todas as superfícies (API, checkout,
// emails). Divergência flagada para o time de produto; 20% é o default.
const DefaultRate = 1.20

type Config struct {
	Rate float64
}

// Load resolve a taxa uma única vez, no wiring.
func Load() Config {
	raw := os.Getenv("LEAD_MARKUP_RATE")
	if raw == "" {
		return Config{Rate: DefaultRate}
	}
	rate, err := strconv.ParseFloat(raw, 64)
	if err != nil || rate < 1.0 {
		return Config{Rate: DefaultRate}
	}
	return Config{Rate: rate}
}

// BuyerPrice converte o pedido do seller no preço de compra do buyer,
// arredondado pra unidade monetária inteira. Determinística e monotônica:
// base maior nunca produz preço menor.
//
// Base não-positiva é responsabilidade da validação upstream; se chegar
// aqui mesmo assim, o erro é explícito, nunca um clamp silencioso.
func (c Config) BuyerPrice(base float64) (int64, error) {
	if base <= 0 {
		return 0, fmt.Errorf("base price must be positive, got %v", base)
	}
	rate := c.Rate
	if rate == 0 {
		rate = DefaultRate
	}
	return int64(math.Round(base * rate)), nil
}
