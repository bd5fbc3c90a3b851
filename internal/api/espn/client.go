package espn

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/omarshaarawi/coachbrief/internal/config"
)

const defaultBaseURL = "https://lm-api-reads.fantasy.espn.com/apis/v3/games/ffl"

type Client struct {
	httpClient *http.Client
	baseURL    string
	Config     config.ESPNAPI
}

func NewClient(cfg config.ESPNAPI) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    defaultBaseURL,
		Config:     cfg,
	}
}

// WithBaseURL points the client at another host, e.g. a test server.
func (c *Client) WithBaseURL(base string) *Client {
	c.baseURL = base
	return c
}

// Request describes one league read: the named views plus optional query
// params and an x-fantasy-filter document.
type Request struct {
	Views  []string
	Params url.Values
	Filter any
}

func (c *Client) leagueEndpoint() string {
	return fmt.Sprintf("/seasons/%s/segments/0/leagues/%s", c.Config.Year, c.Config.LeagueID)
}

// Get issues a GET for endpoint and decodes the body into result.
func (c *Client) Get(ctx context.Context, endpoint string, r Request, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return errors.Wrap(err, "creating request")
	}

	q := req.URL.Query()
	for _, view := range r.Views {
		q.Add("view", view)
	}
	for key, values := range r.Params {
		for _, v := range values {
			q.Add(key, v)
		}
	}
	req.URL.RawQuery = q.Encode()

	filter := "{}"
	if r.Filter != nil {
		encoded, err := sonic.MarshalString(r.Filter)
		if err != nil {
			return errors.Wrap(err, "marshalling filter")
		}
		filter = encoded
	}
	req.Header.Set("x-fantasy-filter", filter)
	req.Header.Set("Accept", "application/json")
	c.setCookies(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "making request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 160))
		return errors.Newf("unexpected status code: %d body=%s", resp.StatusCode, string(body))
	}

	if err := sonic.ConfigDefault.NewDecoder(resp.Body).Decode(result); err != nil {
		return errors.Wrap(err, "decoding response")
	}

	return nil
}

func (c *Client) setCookies(req *http.Request) {
	cookie := fmt.Sprintf("SWID=%s; espn_s2=%s", c.Config.SWID, c.Config.ESPNS2)
	req.Header.Set("Cookie", cookie)
}
