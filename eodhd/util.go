package eodhd

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"path/filepath"

	"github.com/etnz/advisor"
	"github.com/etnz/advisor/date"
)

// diskCache implements a simple disk cache for HTTP responses
type diskCache struct {
	base http.RoundTripper
	dir  string // os.TempDir() if empty
}

// RoundTrip implements the http.RoundTripper interface. It checks for a cached
// response on disk first. If a fresh cached response is not found, it proceeds
// with the actual HTTP request and caches the new response if it's successful.
func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	// diskcache implements a unique key per day, so the local tmp expires every day.
	key := fmt.Sprintf("%s %s %s", date.Today(), req.Method, req.URL.String())
	key = fmt.Sprintf("eodhd-%x", sha1.Sum([]byte(key)))

	cachedResp, err := c.get(key, req)
	if err == nil { // Cache hit
		return cachedResp, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	// otherwise attempt to store it in cache

	err = c.put(key, resp)
	if err != nil {
		log.Printf("cache write err (ignored): %v\n", err)
	}
	return resp, nil
}

func (c *diskCache) file(key string) string {
	dir := c.dir
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, key)
}

// get retrieves a cached response from disk
func (c *diskCache) get(key string, req *http.Request) (resp *http.Response, err error) {
	content, err := os.ReadFile(c.file(key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response to disk cache
func (c *diskCache) put(key string, resp *http.Response) (err error) {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	return os.WriteFile(c.file(key), content, 0o644)
}

// newDailyCachingClient returns an http.Client that uses a disk cache where entries expire daily.
func newDailyCachingClient(base http.RoundTripper, dir string) *http.Client {
	if base == nil {
		base = http.DefaultTransport
	}
	return &http.Client{Transport: &diskCache{base: base, dir: dir}}
}

// jwget performs an HTTP GET request to the given address and unmarshals the
// JSON response body into the provided data structure.
//
// Errors are tagged with an advisor.Kind derived from the HTTP status.
func jwget(ctx context.Context, client *http.Client, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return advisor.Errorf(advisor.InvalidInput, "eodhd", "invalid request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return &advisor.Error{Kind: advisor.Unavailable, Op: "eodhd", Err: redact(err)}
	}
	defer resp.Body.Close()
	log.Printf("%v %v%v %v", resp.Request.Method, resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)

	if resp.StatusCode != http.StatusOK {
		return advisor.Errorf(kindOf(resp.StatusCode), "eodhd", "cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return &advisor.Error{Kind: advisor.Unavailable, Op: "eodhd", Err: err}
	}
	if err := json.Unmarshal(buf.Bytes(), data); err != nil {
		return advisor.Errorf(advisor.NoData, "eodhd", "malformed response from %v%v: %w", resp.Request.URL.Host, resp.Request.URL.Path, err)
	}
	return nil
}

// kindOf maps an EODHD http status to an advisor.Kind.
func kindOf(status int) advisor.Kind {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return advisor.Unauthenticated
	case status == http.StatusNotFound:
		return advisor.NoData
	case status == http.StatusTooManyRequests || status == http.StatusPaymentRequired || status >= 500:
		// 402 is how EODHD reports an exhausted daily quota.
		return advisor.Unavailable
	default:
		return advisor.InvalidInput
	}
}

// redact removes the query string (it holds the api token) from url errors.
func redact(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		if u, perr := url.Parse(uerr.URL); perr == nil {
			u.RawQuery = ""
			return &url.Error{Op: uerr.Op, URL: u.String(), Err: uerr.Err}
		}
	}
	return err
}
