package handlers

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rishav-ranjan/healthlocker/internal/utils"
)

// GenerateState builds the OAuth state parameter: a random nonce joined
// with base64-encoded metadata tagging which flow started the round trip
// (e.g. {"flow": "login"}). The nonce keeps the state unguessable; the
// metadata survives the Google redirect so the callback knows whether it
// is signing in an existing account or registering a new one.
func GenerateState(data map[string]string) (string, error) {
	nonce, err := utils.GenerateSecureToken(16)
	if err != nil {
		return "", fmt.Errorf("failed to generate state nonce: %w", err)
	}

	payloadBytes, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to marshal state data: %w", err)
	}
	payload := base64.RawURLEncoding.EncodeToString(payloadBytes)

	return nonce + "." + payload, nil
}

// DecodeState recovers the flow metadata from a state parameter produced
// by GenerateState.
func DecodeState(state string) (map[string]string, error) {
	parts := strings.Split(state, ".")
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid state format")
	}

	payloadBytes, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, fmt.Errorf("failed to decode state payload: %w", err)
	}

	var data map[string]string
	if err := json.Unmarshal(payloadBytes, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state JSON: %w", err)
	}

	return data, nil
}
