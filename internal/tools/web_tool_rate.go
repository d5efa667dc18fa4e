package tools

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/baalimago/plai/internal/models"
)

// RatesURL points at the coincap rates api. Var and not const so that
// tests can redirect it
var RatesURL = "https://api.coincap.io/v2/rates"

type RateTool models.Specification

var Rate = RateTool{
	Name:        "get_crypto_rate",
	Description: "Get the current exchange rate of a currency.",
	Inputs: &models.InputSchema{
		Type: "object",
		Properties: map[string]models.ParameterObject{
			"currency": {
				Type:        "string",
				Description: "The currency id (e.g., 'bitcoin')",
			},
		},
		Required: []string{"currency"},
	},
}

// CryptoRate is the answer from the coincap rates api. The rate arrives
// as a string on the wire and is converted to a float before it's handed
// to the model
type CryptoRate struct {
	ID             string  `json:"id"`
	Symbol         string  `json:"symbol"`
	CurrencySymbol *string `json:"currencySymbol"`
	Type           string  `json:"type"`
	RateUSD        float64 `json:"rateUsd"`
}

type rateResponse struct {
	Data struct {
		ID             string  `json:"id"`
		Symbol         string  `json:"symbol"`
		CurrencySymbol *string `json:"currencySymbol"`
		Type           string  `json:"type"`
		RateUSD        string  `json:"rateUsd"`
	} `json:"data"`
	Timestamp int64 `json:"timestamp"`
}

func (r RateTool) Call(input models.Input) (string, error) {
	currency, ok := input["currency"].(string)
	if !ok {
		return "", NewValidationError([]string{"currency"})
	}
	resp, err := http.Get(fmt.Sprintf("%v/%v", RatesURL, currency))
	if err != nil {
		return "", fmt.Errorf("failed to fetch rate: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("response status: %v, response body: %v", resp.Status, string(body))
	}

	var rateResp rateResponse
	err = json.Unmarshal(body, &rateResp)
	if err != nil {
		return "", fmt.Errorf("failed to decode JSON: %w", err)
	}
	rate, err := strconv.ParseFloat(rateResp.Data.RateUSD, 64)
	if err != nil {
		return "", fmt.Errorf("failed to parse rateUsd '%v': %w", rateResp.Data.RateUSD, err)
	}

	out, err := json.Marshal(CryptoRate{
		ID:             rateResp.Data.ID,
		Symbol:         rateResp.Data.Symbol,
		CurrencySymbol: rateResp.Data.CurrencySymbol,
		Type:           rateResp.Data.Type,
		RateUSD:        rate,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode JSON: %w", err)
	}
	return string(out), nil
}

func (r RateTool) Specification() models.Specification {
	return models.Specification(Rate)
}
