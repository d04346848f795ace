package overpass

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/paulmach/orb"

	"tankwatch/internal/geo"
	"tankwatch/internal/models"
	"tankwatch/internal/providers"
	"tankwatch/internal/structures"
)

type element struct {
	Type  string            `json:"type"`
	ID    int64             `json:"id"`
	Lat   float64           `json:"lat"`
	Lon   float64           `json:"lon"`
	Nodes []int64           `json:"nodes"`
	Tags  map[string]string `json:"tags"`
}

type response struct {
	Remark   string    `json:"remark"`
	Elements []element `json:"elements"`
}

type ClientInterface interface {
	FetchTanks(ctx context.Context, region string, bbox *orb.Bound) ([]*models.Tank, error)
}

// Client queries Overpass mirrors for storage-tank polygons, rotating
// mirrors between attempts with linear backoff.
type Client struct {
	conf    structures.OverpassConfig
	http    *http.Client
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewClient(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) ClientInterface {
	return &Client{
		conf:    conf.Overpass,
		http:    &http.Client{Timeout: conf.Overpass.Timeout},
		logger:  logger,
		metrics: metrics,
	}
}

func (c *Client) FetchTanks(ctx context.Context, region string, bbox *orb.Bound) ([]*models.Tank, error) {
	query := BuildQuery(c.conf.QueryTimeout, geo.OverpassOrder(bbox))

	var lastErr error
	for attempt := 0; attempt < c.conf.MaxRetries; attempt++ {
		server := c.conf.Servers[attempt%len(c.conf.Servers)]

		if attempt > 0 {
			wait := time.Duration(attempt) * c.conf.RetryBackoff
			c.logger.Infof(providers.TypeFetch, "Retry %d/%d for %s via %s after %s",
				attempt+1, c.conf.MaxRetries, region, server, wait)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
		}

		resp, err := c.post(ctx, server, query)
		if err != nil {
			c.metrics.IncOverpassRequests(server, "error")
			c.logger.Warnf(providers.TypeFetch, "Overpass request for %s failed: %s", region, err)
			lastErr = err
			continue
		}

		if resp.Remark != "" {
			c.logger.Warnf(providers.TypeFetch, "Overpass remark for %s: %s", region, resp.Remark)
		}

		c.metrics.IncOverpassRequests(server, "ok")
		tanks := AssembleTanks(region, resp.Elements)
		c.logger.Infof(providers.TypeFetch, "Found %d valid tanks in %s", len(tanks), region)
		return tanks, nil
	}

	return nil, fmt.Errorf("all %d attempts failed for %s: %w", c.conf.MaxRetries, region, lastErr)
}

func (c *Client) post(ctx context.Context, server, query string) (*response, error) {
	form := url.Values{"data": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, server, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("overpass returned status %d", res.StatusCode)
	}

	var parsed response
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("invalid overpass response: %w", err)
	}
	return &parsed, nil
}
