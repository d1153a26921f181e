package tools

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/taipm/reactagent/agent"
)

// NewHTTPFetch creates a GET-only HTTP retrieval tool. Write methods are
// deliberately not offered; the engine has no side-effect boundary a host
// could audit them through.
func NewHTTPFetch() *agent.Tool {
	return agent.NewTool("http_fetch", "Fetch the body of a URL via HTTP GET. Only http:// and https:// URLs are allowed.").
		AddParameter("url", "string", "Full URL to fetch", true).
		WithExecutor(fetchURL)
}

const httpFetchTimeout = 15 * time.Second
const httpFetchMaxBody = 4000

func fetchURL(ctx context.Context, parameters map[string]interface{}) (interface{}, error) {
	url, _ := parameters["url"].(string)
	if url == "" {
		return nil, fmt.Errorf("url is required")
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return nil, fmt.Errorf("url must start with http:// or https://")
	}

	reqCtx, cancel := context.WithTimeout(ctx, httpFetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "reactagent/1.0")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, httpFetchMaxBody+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var result strings.Builder
	fmt.Fprintf(&result, "GET %s\nStatus: %d %s\nContent-Type: %s\n\n", url, resp.StatusCode, http.StatusText(resp.StatusCode), resp.Header.Get("Content-Type"))
	if len(body) > httpFetchMaxBody {
		result.Write(body[:httpFetchMaxBody])
		fmt.Fprintf(&result, "\n... (truncated, response exceeded %d bytes)", httpFetchMaxBody)
	} else {
		result.Write(body)
	}

	return result.String(), nil
}
