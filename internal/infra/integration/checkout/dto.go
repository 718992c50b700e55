package checkout

// SessionInput é o DTO limpo que o usecase entrega pro gateway.
type SessionInput struct {
	LeadID string
	// Amount em unidades inteiras de moeda, já com markup aplicado.
	Amount     int64
	BuyerID    string
	BuyerEmail string

	SuccessURL string
	CancelURL  string
}

// Session é o que o gateway devolve: um redirect opaco. O resultado real
// chega depois pelo webhook, nunca por aqui.
type Session struct {
	ID          string
	RedirectURL string
}

// --- Payloads internos: o que mandamos/recebemos do provedor ---

type createSessionRequest struct {
	ExternalReference string `json:"externalReference"`
	Amount            int64  `json:"amount"`
	CustomerID        string `json:"customerId"`
	CustomerEmail     string `json:"customerEmail"`
	SuccessURL        string `json:"successUrl"`
	CancelURL         string `json:"cancelUrl"`
}

type sessionResponse struct {
	ID          string `json:"id"`
	RedirectURL string `json:"redirectUrl"`
}
