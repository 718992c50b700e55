package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// CreateSession abre uma sessão de checkout no provedor e retorna o destino
// de redirect. Timeout limitado: falha aqui é "inconclusivo", nunca muda
// estado de lead.
func (c *Client) CreateSession(ctx context.Context, input SessionInput) (*Session, error) {
	url := fmt.Sprintf("%s/sessions", c.baseURL)

	payload := createSessionRequest{
		ExternalReference: input.LeadID,
		Amount:            input.Amount,
		CustomerID:        input.BuyerID,
		CustomerEmail:     input.BuyerEmail,
		SuccessURL:        input.SuccessURL,
		CancelURL:         input.CancelURL,
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("erro ao marshal session: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro request checkout: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		fmt.Printf("❌ ERRO CRIAR SESSÃO CHECKOUT: %s\n", string(body))
		return nil, fmt.Errorf("erro criar sessão checkout (status %d)", resp.StatusCode)
	}

	var response sessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("erro decode checkout: %w", err)
	}

	return &Session{ID: response.ID, RedirectURL: response.RedirectURL}, nil
}

// Configured reporta se o client tem destino e credencial pra operar.
func (c *Client) Configured() bool {
	return c.baseURL != "" && c.apiKey != ""
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("access_token", c.apiKey)
}
