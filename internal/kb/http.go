// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package kb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/meshintel/kbcheck/internal/httputil"
	"github.com/meshintel/kbcheck/pkg/types"
)

// HTTPStore talks to a remote knowledge-base server over its JSON API.
// It implements both Storage and Agent: the server fronts the document
// store and hosts the research agent behind the same base URL.
type HTTPStore struct {
	client   *http.Client
	baseURL  string
	apiKey   string
	agentURL string
	agentKey string
	cfg      types.HTTPConfig
}

// NewHTTPStore builds a client for the knowledge-base server at
// kb.BaseURL and the agent at agent.BaseURL. An empty agent URL falls
// back to the knowledge-base host.
func NewHTTPStore(kb types.KBConfig, agent types.AgentConfig) *HTTPStore {
	agentURL := agent.BaseURL
	if agentURL == "" {
		agentURL = kb.BaseURL
	}
	return &HTTPStore{
		client:   &http.Client{Timeout: kb.Timeout},
		baseURL:  strings.TrimRight(kb.BaseURL, "/"),
		apiKey:   kb.APIKey,
		agentURL: strings.TrimRight(agentURL, "/"),
		agentKey: agent.APIKey,
		cfg:      kb.HTTPConfig,
	}
}

type bulkInsertRequest struct {
	Records []types.PaperRecord `json:"records"`
}

type searchRequest struct {
	Query   string            `json:"query"`
	Filters map[string]string `json:"filters,omitempty"`
	TopK    int               `json:"top_k"`
}

type searchResponse struct {
	Hits []types.SearchHit `json:"hits"`
}

type scanResponse struct {
	Records []types.PaperRecord `json:"records"`
}

type askRequest struct {
	Question string `json:"question"`
}

type askResponse struct {
	Answer string `json:"answer"`
}

type apiError struct {
	Error string `json:"error"`
}

// Ping checks the server health endpoint.
func (s *HTTPStore) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/v1/health", nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	s.setHeaders(req, s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: health endpoint returned HTTP %d", ErrUnreachable, resp.StatusCode)
	}
	return nil
}

// BulkInsert submits one batch in a single POST.
func (s *HTTPStore) BulkInsert(ctx context.Context, records []types.PaperRecord) error {
	body, err := json.Marshal(bulkInsertRequest{Records: records})
	if err != nil {
		return fmt.Errorf("encoding batch: %w", err)
	}

	resp, err := s.post(ctx, s.baseURL+"/api/v1/records/bulk", s.apiKey, body)
	if err != nil {
		return fmt.Errorf("bulk insert request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("bulk insert: %s", readAPIError(resp))
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}

// Query issues one semantic search request.
func (s *HTTPStore) Query(ctx context.Context, text string, filters map[string]string, topK int) ([]types.SearchHit, error) {
	body, err := json.Marshal(searchRequest{Query: text, Filters: filters, TopK: topK})
	if err != nil {
		return nil, fmt.Errorf("encoding query: %w", err)
	}

	resp, err := s.post(ctx, s.baseURL+"/api/v1/search", s.apiKey, body)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search: %s", readAPIError(resp))
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}
	return sr.Hits, nil
}

// ScanAll pages through the full resident corpus.
func (s *HTTPStore) ScanAll(ctx context.Context) ([]types.PaperRecord, error) {
	return s.scan(ctx, 0)
}

// Sample returns up to n resident records.
func (s *HTTPStore) Sample(ctx context.Context, n int) ([]types.PaperRecord, error) {
	return s.scan(ctx, n)
}

func (s *HTTPStore) scan(ctx context.Context, limit int) ([]types.PaperRecord, error) {
	u := s.baseURL + "/api/v1/records"
	if limit > 0 {
		u += "?" + url.Values{"limit": {strconv.Itoa(limit)}}.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	s.setHeaders(req, s.apiKey)

	resp, err := httputil.DoWithRetry(ctx, s.client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("scan request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scan: %s", readAPIError(resp))
	}

	var sr scanResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing scan response: %w", err)
	}
	return sr.Records, nil
}

// Ask sends one question to the agent endpoint.
func (s *HTTPStore) Ask(ctx context.Context, question string) (string, error) {
	body, err := json.Marshal(askRequest{Question: question})
	if err != nil {
		return "", fmt.Errorf("encoding question: %w", err)
	}

	resp, err := s.post(ctx, s.agentURL+"/api/v1/agent/ask", s.agentKey, body)
	if err != nil {
		return "", fmt.Errorf("agent request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("agent: %s", readAPIError(resp))
	}

	var ar askResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return "", fmt.Errorf("parsing agent response: %w", err)
	}
	return ar.Answer, nil
}

func (s *HTTPStore) post(ctx context.Context, u, key string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	s.setHeaders(req, key)
	return httputil.DoWithRetry(ctx, s.client, req, 0)
}

func (s *HTTPStore) setHeaders(req *http.Request, key string) {
	req.Header.Set("User-Agent", s.cfg.UserAgent)
	if key != "" {
		req.Header.Set("x-api-key", key)
	}
}

// readAPIError extracts the error message from a JSON error body,
// falling back to the HTTP status.
func readAPIError(resp *http.Response) string {
	var ae apiError
	if err := json.NewDecoder(resp.Body).Decode(&ae); err == nil && ae.Error != "" {
		return fmt.Sprintf("HTTP %d: %s", resp.StatusCode, ae.Error)
	}
	return fmt.Sprintf("HTTP %d", resp.StatusCode)
}
