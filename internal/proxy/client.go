package proxy

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/alimgiray/demography/internal/metrics"
	"github.com/alimgiray/demography/pkg/logger"
	"github.com/sirupsen/logrus"
)

// Routes as labelled in metrics
const (
	RouteHairColor  = "hair_color"
	RoutePercentage = "percentage"
)

// TLSConfig selects how the central service certificate is verified
type TLSConfig struct {
	// CAFile is a PEM bundle trusted instead of the system roots when set
	CAFile             string
	InsecureSkipVerify bool
	Timeout            time.Duration
}

// NewHTTPClient builds the HTTPS client used to reach the central service
func NewHTTPClient(cfg TLSConfig) (*http.Client, error) {
	tlsConfig := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: cfg.InsecureSkipVerify,
	}

	if cfg.CAFile != "" {
		pem, err := os.ReadFile(cfg.CAFile)
		if err != nil {
			return nil, fmt.Errorf("read CA file: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("no certificates found in %s", cfg.CAFile)
		}
		tlsConfig.RootCAs = pool
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = tlsConfig

	return &http.Client{Transport: transport, Timeout: cfg.Timeout}, nil
}

// StatusError is returned when the central service answers with anything but 200
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("central service responded with status %d", e.StatusCode)
}

// Client forwards the demography statistics calls to a central instance
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    *metrics.Metrics
}

func NewClient(baseURL string, httpClient *http.Client, m *metrics.Metrics) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		metrics:    m,
	}
}

// CountByHairColor asks the central service how many persons have hairColor
func (c *Client) CountByHairColor(ctx context.Context, hairColor string) (int64, error) {
	var count int64
	path := "/demography/hair-color/" + url.PathEscape(hairColor)
	if err := c.get(ctx, RouteHairColor, path, &count); err != nil {
		return 0, err
	}
	return count, nil
}

// PercentageByNationalityAndEyeColor asks the central service for the share
// of a nationality having eyeColor
func (c *Client) PercentageByNationalityAndEyeColor(ctx context.Context, nationality, eyeColor string) (float64, error) {
	var pct float64
	path := "/demography/nationality/" + url.PathEscape(nationality) + "/eye-color/" + url.PathEscape(eyeColor) + "/percentage"
	if err := c.get(ctx, RoutePercentage, path, &pct); err != nil {
		return 0, err
	}
	return pct, nil
}

func (c *Client) get(ctx context.Context, route, path string, out any) error {
	log := logger.WithFields(logrus.Fields{"route": route, "path": path})
	log.Info("Forwarding request to central service")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.IncrementUpstream(route, "transport_error")
		log.WithError(err).Error("Central service request failed")
		return fmt.Errorf("call central service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.IncrementUpstream(route, "upstream_error")
		log.WithField("status", resp.StatusCode).Warn("Central service returned an error status")
		return &StatusError{StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.metrics.IncrementUpstream(route, "decode_error")
		log.WithError(err).Error("Central service response could not be decoded")
		return fmt.Errorf("decode central service response: %w", err)
	}

	c.metrics.IncrementUpstream(route, "ok")
	log.Info("Central service responded")
	return nil
}
