// safemap/internal/geocode/naver.go

// Package geocode wraps the Naver cloud map APIs used by the pin form:
// forward geocoding (address or place query to coordinates) and reverse
// geocoding (coordinates to a human-readable address).
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://maps.apigw.ntruss.com"

// Coordinates is a resolved map position.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Client calls the Naver geocoding services. BaseURL is overridable for
// tests.
type Client struct {
	HTTPClient   *http.Client
	BaseURL      string
	ClientID     string
	ClientSecret string
}

// NewClientFromEnv reads NAVER_MAP_CLIENT_ID / NAVER_MAP_CLIENT_SECRET.
func NewClientFromEnv() *Client {
	return &Client{
		HTTPClient:   &http.Client{Timeout: 10 * time.Second},
		BaseURL:      defaultBaseURL,
		ClientID:     strings.TrimSpace(os.Getenv("NAVER_MAP_CLIENT_ID")),
		ClientSecret: strings.TrimSpace(os.Getenv("NAVER_MAP_CLIENT_SECRET")),
	}
}

type geocodeResponse struct {
	Status    string `json:"status"`
	Addresses []struct {
		X           string `json:"x"` // longitude
		Y           string `json:"y"` // latitude
		RoadAddress string `json:"roadAddress"`
	} `json:"addresses"`
}

// Geocode resolves a query string to coordinates. A nil result with a
// nil error means the provider found nothing.
func (c *Client) Geocode(ctx context.Context, query string) (*Coordinates, error) {
	endpoint := fmt.Sprintf("%s/map-geocode/v2/geocode?query=%s",
		c.BaseURL, url.QueryEscape(strings.TrimSpace(query)))

	var parsed geocodeResponse
	if err := c.getJSON(ctx, endpoint, &parsed); err != nil {
		return nil, err
	}
	if len(parsed.Addresses) == 0 {
		return nil, nil
	}

	lat, latErr := strconv.ParseFloat(parsed.Addresses[0].Y, 64)
	lng, lngErr := strconv.ParseFloat(parsed.Addresses[0].X, 64)
	if latErr != nil || lngErr != nil {
		return nil, fmt.Errorf("geocode: malformed point in response for %q", query)
	}
	return &Coordinates{Latitude: lat, Longitude: lng}, nil
}

type reverseGeocodeResponse struct {
	Results []struct {
		Name   string `json:"name"`
		Region struct {
			Area1 struct {
				Name string `json:"name"`
			} `json:"area1"`
			Area2 struct {
				Name string `json:"name"`
			} `json:"area2"`
			Area3 struct {
				Name string `json:"name"`
			} `json:"area3"`
			Area4 struct {
				Name string `json:"name"`
			} `json:"area4"`
		} `json:"region"`
		Land struct {
			Name    string `json:"name"` // street name for roadaddr results
			Number1 string `json:"number1"`
			Number2 string `json:"number2"`
		} `json:"land"`
	} `json:"results"`
}

// ReverseGeocode resolves coordinates to an address string. An empty
// string with a nil error means the provider has no address there.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	endpoint := fmt.Sprintf("%s/map-reversegeocode/v2/gc?coords=%s,%s&orders=roadaddr,addr&output=json",
		c.BaseURL,
		strconv.FormatFloat(lng, 'f', -1, 64),
		strconv.FormatFloat(lat, 'f', -1, 64))

	var parsed reverseGeocodeResponse
	if err := c.getJSON(ctx, endpoint, &parsed); err != nil {
		return "", err
	}
	if len(parsed.Results) == 0 {
		return "", nil
	}

	r := parsed.Results[0]
	parts := make([]string, 0, 5)
	for _, name := range []string{r.Region.Area1.Name, r.Region.Area2.Name, r.Region.Area3.Name, r.Region.Area4.Name} {
		if name != "" {
			parts = append(parts, name)
		}
	}
	if r.Land.Name != "" {
		parts = append(parts, r.Land.Name)
	}
	if r.Land.Number1 != "" {
		num := r.Land.Number1
		if r.Land.Number2 != "" {
			num += "-" + r.Land.Number2
		}
		parts = append(parts, num)
	}
	return strings.Join(parts, " "), nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("x-ncp-apigw-api-key-id", c.ClientID)
	req.Header.Set("x-ncp-apigw-api-key", c.ClientSecret)

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("geocode: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("geocode: provider returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("geocode: decode response: %w", err)
	}
	return nil
}
