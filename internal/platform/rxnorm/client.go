package rxnorm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the public RxNav REST endpoint maintained by the NLM.
const DefaultBaseURL = "https://rxnav.nlm.nih.gov/REST"

// ErrUnavailable indicates the RxNorm service could not be reached.
// Callers can fall back to offline behavior when they see this error.
var ErrUnavailable = errors.New("rxnorm service unavailable")

// Concept is a single RxNorm concept as returned by the RxNav API.
type Concept struct {
	RxCUI string
	Name  string
	TTY   string
}

// Client talks to an RxNav-compatible RxNorm terminology server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client against the given base URL. An empty baseURL
// falls back to the public NLM endpoint.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// ValidateRxCUI checks whether the given RxCUI exists and returns its
// normalized name. A valid-looking response with no properties means the
// code does not exist; that is reported as (nil, nil), not an error.
func (c *Client) ValidateRxCUI(ctx context.Context, rxcui string) (*Concept, error) {
	var propResp struct {
		Properties struct {
			RxCUI string `json:"rxcui"`
			Name  string `json:"name"`
			TTY   string `json:"tty"`
		} `json:"properties"`
	}

	path := fmt.Sprintf("/rxcui/%s/properties.json", url.PathEscape(rxcui))
	if err := c.get(ctx, path, &propResp); err != nil {
		return nil, err
	}

	if propResp.Properties.RxCUI == "" {
		return nil, nil
	}
	return &Concept{
		RxCUI: propResp.Properties.RxCUI,
		Name:  propResp.Properties.Name,
		TTY:   propResp.Properties.TTY,
	}, nil
}

// SearchByName looks up the RxCUI for an exact medication name.
// Returns (nil, nil) when the name has no match.
func (c *Client) SearchByName(ctx context.Context, name string) (*Concept, error) {
	var searchResp struct {
		IDGroup struct {
			Name     string   `json:"name"`
			RxNormID []string `json:"rxnormId"`
		} `json:"idGroup"`
	}

	path := fmt.Sprintf("/rxcui.json?name=%s", url.QueryEscape(name))
	if err := c.get(ctx, path, &searchResp); err != nil {
		return nil, err
	}

	if len(searchResp.IDGroup.RxNormID) == 0 {
		return nil, nil
	}
	return &Concept{
		RxCUI: searchResp.IDGroup.RxNormID[0],
		Name:  searchResp.IDGroup.Name,
	}, nil
}

// ApproximateMatch performs a fuzzy search and returns up to maxEntries
// candidate concepts ordered by score.
func (c *Client) ApproximateMatch(ctx context.Context, term string, maxEntries int) ([]Concept, error) {
	if maxEntries <= 0 {
		maxEntries = 5
	}

	var approxResp struct {
		ApproximateGroup struct {
			Candidate []struct {
				RxCUI string `json:"rxcui"`
				Name  string `json:"name"`
				Score string `json:"score"`
			} `json:"candidate"`
		} `json:"approximateGroup"`
	}

	path := fmt.Sprintf("/approximateTerm.json?term=%s&maxEntries=%d", url.QueryEscape(term), maxEntries)
	if err := c.get(ctx, path, &approxResp); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	concepts := make([]Concept, 0, len(approxResp.ApproximateGroup.Candidate))
	for _, cand := range approxResp.ApproximateGroup.Candidate {
		if cand.RxCUI == "" || seen[cand.RxCUI] {
			continue
		}
		seen[cand.RxCUI] = true
		concepts = append(concepts, Concept{RxCUI: cand.RxCUI, Name: cand.Name})
	}
	return concepts, nil
}
