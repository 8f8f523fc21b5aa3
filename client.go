package gettranslated

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/pitabwire/util"
	"github.com/rs/xid"
)

// Service endpoints, relative to the configured server base URL.
const (
	endpointInit      = "/client/init"
	endpointLogin     = "/client/login"
	endpointTranslate = "/client/string"
	endpointSync      = "/client/sync"
)

// gateway performs the authenticated JSON round-trips to the
// translation service. One attempt per request; retry policy, if any,
// belongs to the supplied http.Client.
type gateway struct {
	client *http.Client
	apiKey string

	mu        sync.RWMutex
	serverURL string
}

func newGateway(apiKey string, client *http.Client, serverURL string) *gateway {
	if client == nil {
		client = &http.Client{}
	}
	return &gateway{
		client:    client,
		apiKey:    apiKey,
		serverURL: serverURL,
	}
}

// setServerURL swaps the base URL; empty or whitespace values are
// ignored so the gateway always has a usable endpoint.
func (g *gateway) setServerURL(raw string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.serverURL = normalizeServerURL(raw, g.serverURL)
}

func (g *gateway) server() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.serverURL
}

// invoke POSTs payload to the endpoint and decodes the JSON response.
// Failures map onto the shared SDK error taxonomy: transport and
// decode problems carry code 0, non-2xx statuses carry the status.
func (g *gateway) invoke(
	ctx context.Context,
	endpoint string,
	payload map[string]any,
	userAgentSuffix string,
) (map[string]any, error) {
	requestID := xid.New().String()
	log := util.Log(ctx).WithField("endpoint", endpoint).WithField("request_id", requestID)

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, newParseError(err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.server()+endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, newNetworkError(err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	userAgent := "GetTranslated-SDK/" + Version
	if userAgentSuffix != "" {
		userAgent += " " + userAgentSuffix
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		log.WithError(err).Debug("request failed")
		return nil, newNetworkError(err)
	}
	defer util.CloseAndLogOnError(ctx, resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.WithField("status", resp.StatusCode).Debug("request rejected")
		return nil, newHTTPError(resp.StatusCode)
	}

	var result map[string]any
	if decodeErr := json.NewDecoder(resp.Body).Decode(&result); decodeErr != nil {
		log.WithError(decodeErr).Debug("response decode failed")
		return nil, newParseError("Invalid JSON response")
	}

	return result, nil
}
