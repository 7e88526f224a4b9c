package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/fr0stylo/linkbridge/internal/app/domain"
)

const webhookSubscriptionsPath = "/v1/webhook_subscriptions"

// PartnerClient manages webhook subscriptions on the partner API.
type PartnerClient struct {
	providerID string
	baseURL    string
	httpClient *http.Client
}

func NewPartnerClient(providerID, baseURL string, httpClient *http.Client) *PartnerClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &PartnerClient{
		providerID: providerID,
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: httpClient,
	}
}

func (c *PartnerClient) CreateSubscription(ctx context.Context, accessToken, callbackURL string) (string, error) {
	raw, err := json.Marshal(map[string]string{"url": strings.TrimSpace(callbackURL)})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+webhookSubscriptionsPath, bytes.NewReader(raw))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", c.upstreamError("create_subscription", 0, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return "", c.upstreamError("create_subscription", resp.StatusCode, responseError(resp))
	}

	var parsed struct {
		UUID string `json:"uuid"`
		ID   string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", c.upstreamError("create_subscription", resp.StatusCode, fmt.Errorf("decode response: %w", err))
	}
	id := strings.TrimSpace(parsed.UUID)
	if id == "" {
		id = strings.TrimSpace(parsed.ID)
	}
	if id == "" {
		return "", c.upstreamError("create_subscription", resp.StatusCode, fmt.Errorf("missing subscription id in response"))
	}
	return id, nil
}

// DeleteSubscription removes a subscription. A subscription the partner no
// longer knows reports domain.ErrSubscriptionNotFound.
func (c *PartnerClient) DeleteSubscription(ctx context.Context, accessToken, subscriptionID string) error {
	subscriptionID = strings.TrimSpace(subscriptionID)
	if subscriptionID == "" {
		return domain.ErrSubscriptionNotFound
	}
	endpoint := c.baseURL + webhookSubscriptionsPath + "/" + url.PathEscape(subscriptionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.upstreamError("delete_subscription", 0, err)
	}
	defer resp.Body.Close()
	switch {
	case resp.StatusCode == http.StatusNotFound, resp.StatusCode == http.StatusGone:
		return fmt.Errorf("%s subscription %s: %w", c.providerID, subscriptionID, domain.ErrSubscriptionNotFound)
	case resp.StatusCode >= 300:
		return c.upstreamError("delete_subscription", resp.StatusCode, responseError(resp))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *PartnerClient) upstreamError(op string, status int, err error) error {
	return &domain.UpstreamError{
		Provider: c.providerID,
		Op:       op,
		Status:   status,
		Err:      fmt.Errorf("%w: %v", domain.ErrUpstreamSubscription, err),
	}
}

func responseError(resp *http.Response) error {
	payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	message := strings.TrimSpace(string(payload))
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}
	return fmt.Errorf("%s", message)
}
