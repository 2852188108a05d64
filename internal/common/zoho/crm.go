// internal/common/zoho/crm.go
package zoho

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultBaseURL = "https://www.zohoapis.com/crm/v3"

var (
	ErrLeadNotFound = errors.New("CRM_LEAD_NOT_FOUND")
)

// Doer is the subset of *http.Client the CRM client needs.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type CRMClient struct {
	oauthToken string
	baseURL    string
	httpClient Doer
}

// Lead is a record in the Zoho Leads module. Zoho requires Last_Name, so
// anonymous web leads carry a placeholder.
type Lead struct {
	ID          string   `json:"id,omitempty"`
	LastName    string   `json:"Last_Name"`
	Company     string   `json:"Company,omitempty"`
	Source      string   `json:"Lead_Source,omitempty"`
	Description string   `json:"Description,omitempty"`
	City        string   `json:"City,omitempty"`
	Budget      *float64 `json:"Annual_Revenue,omitempty"`
	Tags        []Tag    `json:"Tag,omitempty"`
}

type Tag struct {
	Name string `json:"name"`
}

type CreateLeadResponse struct {
	Data []struct {
		Code    string `json:"code"`
		Details struct {
			ID string `json:"id"`
		} `json:"details"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"data"`
}

// NewCRMClient builds a client against baseURL (DefaultBaseURL when empty).
// A nil doer gets a plain http.Client with a 30s timeout.
func NewCRMClient(baseURL, oauthToken string, doer Doer) *CRMClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if doer == nil {
		doer = &http.Client{Timeout: 30 * time.Second}
	}
	return &CRMClient{
		oauthToken: oauthToken,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: doer,
	}
}

func (c *CRMClient) CreateLead(ctx context.Context, lead *Lead) (string, error) {
	endpoint := fmt.Sprintf("%s/Leads", c.baseURL)

	payload := map[string]interface{}{
		"data": []Lead{*lead},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal lead: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Zoho-oauthtoken "+c.oauthToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to create lead (status %d): %s", resp.StatusCode, string(body))
	}

	var createResp CreateLeadResponse
	if err := json.Unmarshal(body, &createResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(createResp.Data) == 0 {
		return "", fmt.Errorf("no data in response")
	}

	if createResp.Data[0].Status != "success" {
		return "", fmt.Errorf("lead creation failed: %s", createResp.Data[0].Message)
	}

	return createResp.Data[0].Details.ID, nil
}

func (c *CRMClient) GetLead(ctx context.Context, leadID string) (*Lead, error) {
	endpoint := fmt.Sprintf("%s/Leads/%s", c.baseURL, url.PathEscape(leadID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Zoho-oauthtoken "+c.oauthToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrLeadNotFound, leadID)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to get lead (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		Data []Lead `json:"data"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Data) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrLeadNotFound, leadID)
	}

	return &result.Data[0], nil
}
