// Package qingping is a client for the Qingping (Cleargrass) Cloud API. It
// authenticates with the OAuth client-credentials flow, keeps the access token
// in a TokenStore across invocations, and exposes the three operations the
// workflow needs: list devices, read the latest measurements of one device and
// change a device's reporting interval.
package qingping

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	DefaultOAuthURL = "https://oauth.cleargrass.com"
	DefaultAPIURL   = "https://apis.cleargrass.com"

	defaultTimeout = 10 * time.Second

	// Interval bounds the workflow accepts, in minutes. The vendor API speaks
	// seconds (60-3600); minutes map onto that range exactly.
	MinIntervalMinutes = 1
	MaxIntervalMinutes = 60
)

// TokenStore caches access tokens across invocations. A miss is (nil, nil);
// the client treats Get and Put failures as cache misses, never as fatal.
type TokenStore interface {
	Get(ctx context.Context) (*Token, error)
	Put(ctx context.Context, t Token) error
	Delete(ctx context.Context) error
}

// Options configures a Client. ClientID and ClientSecret are required;
// everything else has a usable default.
type Options struct {
	ClientID     string
	ClientSecret string
	OAuthURL     string
	APIURL       string
	Tokens       TokenStore
	Logger       *slog.Logger
	Timeout      time.Duration
	Now          func() time.Time
}

type Client struct {
	http         *resty.Client
	oauthURL     string
	apiURL       string
	clientID     string
	clientSecret string
	tokens       TokenStore
	logger       *slog.Logger
	now          func() time.Time
}

func NewClient(opts Options) *Client {
	if opts.OAuthURL == "" {
		opts.OAuthURL = DefaultOAuthURL
	}
	if opts.APIURL == "" {
		opts.APIURL = DefaultAPIURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Client{
		http:         resty.New().SetTimeout(opts.Timeout),
		oauthURL:     strings.TrimSuffix(opts.OAuthURL, "/"),
		apiURL:       strings.TrimSuffix(opts.APIURL, "/"),
		clientID:     opts.ClientID,
		clientSecret: opts.ClientSecret,
		tokens:       opts.Tokens,
		logger:       opts.Logger,
		now:          opts.Now,
	}
}

// NormalizeMAC upper-cases a device MAC and strips separators so MACs compare
// equal regardless of how the user typed them.
func NormalizeMAC(mac string) string {
	mac = strings.ToUpper(strings.TrimSpace(mac))
	mac = strings.ReplaceAll(mac, ":", "")
	return strings.ReplaceAll(mac, "-", "")
}

// ListDevices returns every device registered to the account, with the latest
// reported data folded into LastSeen and ReportInterval.
func (c *Client) ListDevices(ctx context.Context) ([]Device, error) {
	var dr devicesResponse
	if err := c.do(ctx, http.MethodGet, "/v1/apis/devices", nil, &dr); err != nil {
		return nil, err
	}
	out := make([]Device, 0, len(dr.Devices))
	for _, d := range dr.Devices {
		out = append(out, d.device())
	}
	return out, nil
}

// DeviceReadings returns the device with the given MAC together with the
// readings from its latest data block. The readings slice is empty when the
// device has no recent data; an unknown MAC is a validation error.
func (c *Client) DeviceReadings(ctx context.Context, mac string) (Device, []Reading, error) {
	var dr devicesResponse
	if err := c.do(ctx, http.MethodGet, "/v1/apis/devices", nil, &dr); err != nil {
		return Device{}, nil, err
	}
	want := NormalizeMAC(mac)
	for _, d := range dr.Devices {
		if NormalizeMAC(d.Info.MAC) == want {
			return d.device(), d.readings(), nil
		}
	}
	return Device{}, nil, newError(ErrorKindValidation, 0, "no device with MAC %s", mac)
}

// SetReportInterval updates how often the device uploads sensor data. minutes
// must be in [MinIntervalMinutes, MaxIntervalMinutes]; values outside the
// range fail before any network call. The vendor keeps the collect interval
// equal to the report interval.
func (c *Client) SetReportInterval(ctx context.Context, mac string, minutes int) error {
	if NormalizeMAC(mac) == "" {
		return newError(ErrorKindValidation, 0, "device MAC is required")
	}
	if minutes < MinIntervalMinutes || minutes > MaxIntervalMinutes {
		return newError(ErrorKindValidation, 0, "interval must be between %d and %d minutes, got %d",
			MinIntervalMinutes, MaxIntervalMinutes, minutes)
	}
	seconds := minutes * 60
	body := map[string]any{
		"mac":              []string{mac},
		"report_interval":  seconds,
		"collect_interval": seconds,
		"timestamp":        c.now().UnixMilli(),
	}
	return c.do(ctx, http.MethodPut, "/v1/apis/devices/settings", body, nil)
}

// do runs one authenticated API call. On a 401 it refreshes the token exactly
// once and retries the call once; every other failure propagates immediately.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	tok, err := c.token(ctx, false)
	if err != nil {
		return err
	}
	resp, err := c.request(ctx, method, path, body, tok.AccessToken)
	if err != nil {
		return err
	}
	if resp.StatusCode() == http.StatusUnauthorized {
		c.logger.Debug("access token rejected, refreshing", "path", path)
		tok, err = c.token(ctx, true)
		if err != nil {
			return err
		}
		resp, err = c.request(ctx, method, path, body, tok.AccessToken)
		if err != nil {
			return err
		}
		if resp.StatusCode() == http.StatusUnauthorized {
			return newError(ErrorKindAuth, resp.StatusCode(), "not authorized after token refresh")
		}
	}
	switch {
	case resp.StatusCode() == http.StatusTooManyRequests:
		return newError(ErrorKindRateLimit, resp.StatusCode(), "rate limited by Qingping Cloud")
	case resp.StatusCode() >= 400:
		return newError(ErrorKindNetwork, resp.StatusCode(), "%s %s failed", method, path)
	}
	return decodeJSON(resp, out)
}

func (c *Client) request(ctx context.Context, method, path string, body any, token string) (*resty.Response, error) {
	req := c.http.R().SetContext(ctx).SetAuthToken(token)
	if body != nil {
		req.SetBody(body)
	}
	resp, err := req.Execute(method, c.apiURL+path)
	if err != nil {
		return nil, newError(ErrorKindNetwork, 0, "%s %s: %v", method, path, err)
	}
	return resp, nil
}

// token returns a token valid at c.now(). force drops the cached token first,
// for the 401-refresh path.
func (c *Client) token(ctx context.Context, force bool) (*Token, error) {
	if c.tokens != nil {
		if force {
			if err := c.tokens.Delete(ctx); err != nil {
				c.logger.Warn("token cache delete failed", "error", err)
			}
		} else {
			cached, err := c.tokens.Get(ctx)
			if err != nil {
				c.logger.Warn("token cache read failed", "error", err)
			} else if cached.Valid(c.now()) {
				return cached, nil
			}
		}
	}
	return c.fetchToken(ctx)
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

func (c *Client) fetchToken(ctx context.Context) (*Token, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBasicAuth(c.clientID, c.clientSecret).
		SetFormData(map[string]string{
			"grant_type": "client_credentials",
			"scope":      "device_full_access",
		}).
		Post(c.oauthURL + "/oauth2/token")
	if err != nil {
		return nil, newError(ErrorKindNetwork, 0, "token request: %v", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, newError(ErrorKindAuth, resp.StatusCode(), "token request rejected")
	}
	var tr tokenResponse
	if err := decodeJSON(resp, &tr); err != nil {
		return nil, err
	}
	if tr.AccessToken == "" || tr.ExpiresIn <= 0 {
		return nil, newError(ErrorKindAuth, resp.StatusCode(), "token response missing access_token or expires_in")
	}
	tok := Token{
		AccessToken: tr.AccessToken,
		ExpiresAt:   c.now().Add(time.Duration(tr.ExpiresIn) * time.Second),
	}
	if c.tokens != nil {
		if err := c.tokens.Put(ctx, tok); err != nil {
			c.logger.Warn("token cache write failed", "error", err)
		}
	}
	c.logger.Debug("fetched access token", "expires_at", tok.ExpiresAt)
	return &tok, nil
}

func decodeJSON(resp *resty.Response, out any) error {
	if out == nil || len(resp.Body()) == 0 {
		return nil
	}
	ct := resp.Header().Get("Content-Type")
	if !strings.HasPrefix(ct, "application/json") {
		return newError(ErrorKindNetwork, resp.StatusCode(), "unexpected content type %q", ct)
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return newError(ErrorKindNetwork, resp.StatusCode(), "decode response: %v", err)
	}
	return nil
}

// Wire types for GET /v1/apis/devices. The data block is a map keyed by
// measurement name; keys that are not a known Kind (battery, signal, ...) are
// ignored rather than surfaced as malformed readings.
type devicesResponse struct {
	Total   int          `json:"total"`
	Devices []deviceJSON `json:"devices"`
}

type deviceJSON struct {
	Info struct {
		Name    string `json:"name"`
		MAC     string `json:"mac"`
		Version string `json:"version"`
		Setting struct {
			ReportInterval  int64 `json:"report_interval"`
			CollectInterval int64 `json:"collect_interval"`
		} `json:"setting"`
	} `json:"info"`
	Data map[string]struct {
		Value float64 `json:"value"`
	} `json:"data"`
}

func (d deviceJSON) device() Device {
	dev := Device{
		MAC:            d.Info.MAC,
		Name:           d.Info.Name,
		Version:        d.Info.Version,
		ReportInterval: time.Duration(d.Info.Setting.ReportInterval) * time.Second,
	}
	if ts, ok := d.Data["timestamp"]; ok {
		dev.LastSeen = time.Unix(int64(ts.Value), 0)
	}
	return dev
}

var readingKinds = []Kind{KindCO2, KindPM25, KindTVOC, KindTemperature, KindHumidity}

func (d deviceJSON) readings() []Reading {
	var ts time.Time
	if v, ok := d.Data["timestamp"]; ok {
		ts = time.Unix(int64(v.Value), 0)
	}
	var out []Reading
	for _, k := range readingKinds {
		m, ok := d.Data[string(k)]
		if !ok {
			continue
		}
		out = append(out, Reading{
			DeviceMAC: d.Info.MAC,
			Kind:      k,
			Value:     m.Value,
			Unit:      k.Unit(),
			Time:      ts,
		})
	}
	return out
}
