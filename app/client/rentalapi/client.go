package rentalapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"rentagent/app/config"

	"github.com/samber/do"
	"github.com/samber/oops"
)

// Client talks to the rental listing API. Landmark endpoints are public,
// house endpoints require the per-deployment user id header.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userID     string
}

func NewClient(di *do.Injector) (*Client, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RentalAPI.TimeoutSeconds) * time.Second,
		},
		baseURL: strings.TrimRight(cfg.RentalAPI.BaseURL, "/"),
		userID:  cfg.RentalAPI.UserID,
	}, nil
}

func (c *Client) request(ctx context.Context, method, path string, params url.Values, needUserID bool) (Result, error) {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
	if err != nil {
		return Result{}, oops.Wrapf(err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/json")
	if needUserID && c.userID != "" {
		req.Header.Set("X-User-ID", c.userID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, oops.Wrapf(err, "request failed: %s %s", method, path)
	}
	defer resp.Body.Close()

	var value any
	if err = json.NewDecoder(resp.Body).Decode(&value); err != nil {
		return Result{}, oops.
			With("status", resp.StatusCode).
			Wrapf(err, "failed to decode response: %s %s", method, path)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		result := Result{value: value}
		if msg := result.ErrorMessage(); msg != "" {
			return Result{}, oops.
				With("status", resp.StatusCode).
				Errorf("%s", msg)
		}
		return Result{}, oops.Errorf("unexpected status %d: %s %s", resp.StatusCode, method, path)
	}

	return Result{value: value}, nil
}

func (c *Client) Landmarks(ctx context.Context, opts ListOptions) (Result, error) {
	return c.request(ctx, http.MethodGet, "/api/landmarks", opts.values(), false)
}

func (c *Client) LandmarkByName(ctx context.Context, name string) (Result, error) {
	return c.request(ctx, http.MethodGet, "/api/landmarks/name/"+url.PathEscape(name), nil, false)
}

func (c *Client) SearchLandmarks(ctx context.Context, query string) (Result, error) {
	params := url.Values{}
	params.Set("q", query)
	return c.request(ctx, http.MethodGet, "/api/landmarks/search", params, false)
}

func (c *Client) LandmarkByID(ctx context.Context, id string) (Result, error) {
	return c.request(ctx, http.MethodGet, "/api/landmarks/"+url.PathEscape(id), nil, false)
}

func (c *Client) LandmarkStats(ctx context.Context) (Result, error) {
	return c.request(ctx, http.MethodGet, "/api/landmarks/stats", nil, false)
}

func (c *Client) InitHouses(ctx context.Context) (Result, error) {
	return c.request(ctx, http.MethodPost, "/api/houses/init", nil, true)
}

func (c *Client) HouseByID(ctx context.Context, houseID string) (Result, error) {
	return c.request(ctx, http.MethodGet, "/api/houses/"+url.PathEscape(houseID), nil, true)
}

func (c *Client) HouseListings(ctx context.Context, houseID string) (Result, error) {
	return c.request(ctx, http.MethodGet, "/api/houses/listings/"+url.PathEscape(houseID), nil, true)
}

func (c *Client) HousesByCommunity(ctx context.Context, community string, opts ListOptions) (Result, error) {
	params := opts.values()
	params.Set("community", community)
	return c.request(ctx, http.MethodGet, "/api/houses/by_community", params, true)
}

func (c *Client) HousesByPlatform(ctx context.Context, filter PlatformFilter) (Result, error) {
	return c.request(ctx, http.MethodGet, "/api/houses/by_platform", filter.values(), true)
}

func (c *Client) HousesNearby(ctx context.Context, landmarkID string, maxDistance int, opts ListOptions) (Result, error) {
	params := opts.values()
	params.Set("landmark_id", landmarkID)
	if maxDistance > 0 {
		params.Set("max_distance", strconv.Itoa(maxDistance))
	}
	return c.request(ctx, http.MethodGet, "/api/houses/nearby", params, true)
}

func (c *Client) NearbyLandmarks(ctx context.Context, community, landmarkType string, maxDistanceM int) (Result, error) {
	params := url.Values{}
	params.Set("community", community)
	if landmarkType != "" {
		params.Set("type", landmarkType)
	}
	if maxDistanceM > 0 {
		params.Set("max_distance_m", strconv.Itoa(maxDistanceM))
	}
	return c.request(ctx, http.MethodGet, "/api/houses/nearby_landmarks", params, true)
}

func (c *Client) HouseStats(ctx context.Context) (Result, error) {
	return c.request(ctx, http.MethodGet, "/api/houses/stats", nil, true)
}

func (c *Client) Rent(ctx context.Context, houseID, platform string) (Result, error) {
	return c.houseAction(ctx, houseID, "rent", platform)
}

func (c *Client) Terminate(ctx context.Context, houseID, platform string) (Result, error) {
	return c.houseAction(ctx, houseID, "terminate", platform)
}

func (c *Client) Offline(ctx context.Context, houseID, platform string) (Result, error) {
	return c.houseAction(ctx, houseID, "offline", platform)
}

func (c *Client) houseAction(ctx context.Context, houseID, action, platform string) (Result, error) {
	params := url.Values{}
	params.Set("listing_platform", platform)
	path := "/api/houses/" + url.PathEscape(houseID) + "/" + action
	return c.request(ctx, http.MethodPost, path, params, true)
}
