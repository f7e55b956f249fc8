package quota

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

	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

// Supabase table and function names.
const (
	dailyPlaysTable   = "daily_plays"
	activitiesTable   = "activities"
	incrementPlaysRPC = "increment_daily_play_count"
)

// ErrUnexpectedStatus is returned when Supabase answers with a non-2xx code.
var ErrUnexpectedStatus = errors.New("quota: unexpected status from supabase")

// SupabaseConfig holds connection settings for the hosted backend.
type SupabaseConfig struct {
	URL    string
	APIKey string

	// RequestsPerSecond and Burst pace outgoing requests. Zero means 5 and 5.
	RequestsPerSecond float64
	Burst             int

	HTTPClient *http.Client
}

// SupabaseGateway implements Gateway over the Supabase REST API (PostgREST).
// Reads go to the daily_plays and activities tables; increments go through
// the increment_daily_play_count function so they are atomic server-side.
type SupabaseGateway struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

var _ Gateway = (*SupabaseGateway)(nil)

// NewSupabaseGateway creates a gateway for the given project.
func NewSupabaseGateway(cfg SupabaseConfig) (*SupabaseGateway, error) {
	if cfg.URL == "" {
		return nil, errors.New("quota: supabase URL is required")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("quota: supabase API key is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 5
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 5
	}

	return &SupabaseGateway{
		baseURL:    strings.TrimSuffix(cfg.URL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
	}, nil
}

// DailyPlayCount reads the user's row in daily_plays. A missing row is zero.
func (g *SupabaseGateway) DailyPlayCount(ctx context.Context, userID, date string) (int, error) {
	params := url.Values{}
	params.Set("select", "play_count")
	params.Set("user_id", "eq."+userID)
	params.Set("play_date", "eq."+date)

	body, err := g.get(ctx, dailyPlaysTable, params)
	if err != nil {
		return 0, fmt.Errorf("quota: fetch play count: %w", err)
	}

	res := gjson.GetBytes(body, "0.play_count")
	if !res.Exists() {
		return 0, nil
	}
	return int(res.Int()), nil
}

// IncrementDailyPlayCount calls the increment function and returns the new count.
func (g *SupabaseGateway) IncrementDailyPlayCount(ctx context.Context, userID, date string) (int, error) {
	body, err := g.rpc(ctx, incrementPlaysRPC, map[string]string{
		"p_user_id":   userID,
		"p_play_date": date,
	})
	if err != nil {
		return 0, fmt.Errorf("quota: increment play count: %w", err)
	}

	// The function may return a bare integer or the updated row
	res := gjson.ParseBytes(body)
	switch {
	case res.IsObject():
		res = res.Get("play_count")
	case res.IsArray():
		res = res.Get("0.play_count")
	}
	if res.Type != gjson.Number {
		return 0, fmt.Errorf("quota: increment play count: unexpected response %q", truncate(body))
	}
	return int(res.Int()), nil
}

// EligibleToday checks that both a journal entry and a breathing exercise
// were recorded for the user on date.
func (g *SupabaseGateway) EligibleToday(ctx context.Context, userID, date string) (bool, error) {
	params := url.Values{}
	params.Set("select", "kind")
	params.Set("user_id", "eq."+userID)
	params.Set("activity_date", "eq."+date)

	body, err := g.get(ctx, activitiesTable, params)
	if err != nil {
		return false, fmt.Errorf("quota: fetch activities: %w", err)
	}

	var journal, breathing bool
	for _, kind := range gjson.GetBytes(body, "#.kind").Array() {
		switch kind.String() {
		case "journal":
			journal = true
		case "breathing":
			breathing = true
		}
	}
	return journal && breathing, nil
}

func (g *SupabaseGateway) get(ctx context.Context, table string, params url.Values) ([]byte, error) {
	reqURL := fmt.Sprintf("%s/rest/v1/%s?%s", g.baseURL, table, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return g.do(req)
}

func (g *SupabaseGateway) rpc(ctx context.Context, fn string, params any) ([]byte, error) {
	data, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("marshal params: %w", err)
	}

	reqURL := fmt.Sprintf("%s/rest/v1/rpc/%s", g.baseURL, fn)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return g.do(req)
}

func (g *SupabaseGateway) do(req *http.Request) ([]byte, error) {
	if err := g.limiter.Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	req.Header.Set("apikey", g.apiKey)
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := gjson.GetBytes(body, "message").String()
		if msg == "" {
			msg = truncate(body)
		}
		return nil, fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, resp.StatusCode, msg)
	}
	return body, nil
}

func truncate(b []byte) string {
	const limit = 200
	if len(b) > limit {
		return string(b[:limit]) + "..."
	}
	return string(b)
}
