package syncer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPFallback writes a guide assignment through the store's REST
// gateway, bypassing the SQL client entirely.  It is only invoked at
// the final attempt of the assignment protocol, after every in-band
// path has failed.
type HTTPFallback struct {
	// URL is the gateway endpoint accepting assignment writes.
	URL string
	// APIKey, when set, is sent as a bearer token.
	APIKey string
	// Client defaults to a 10s-timeout client.
	Client *http.Client
}

// AssignGuide POSTs the assignment as JSON.  Any non-2xx response is
// an error.
func (f *HTTPFallback) AssignGuide(ctx context.Context, groupID string, guideID *string, name string) error {
	if f.URL == "" {
		return fmt.Errorf("out-of-band fallback not configured")
	}
	body, err := json.Marshal(map[string]interface{}{
		"group_id": groupID,
		"guide_id": guideID,
		"name":     name,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}

	client := f.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("out-of-band write returned %s", resp.Status)
	}
	return nil
}
