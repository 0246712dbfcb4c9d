package central

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

// Response is the result of a single API call. HTTP-level failures (status
// >= 400) are carried here rather than as Go errors so callers and the batch
// engine can inspect, print, or retry them; Err is set only for transport
// failures or after retries are exhausted.
type Response struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte

	// RemainingDay / RemainingSecond mirror the X-RateLimit-Remaining-*
	// headers when the server sends them, -1 otherwise.
	RemainingDay    int
	RemainingSecond int

	Err error
}

// Ok reports whether the call completed with a 2xx status and no transport error.
func (r *Response) Ok() bool {
	return r.Err == nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// JSON parses the body lazily with gjson. An empty body yields a null result.
func (r *Response) JSON() gjson.Result {
	return gjson.ParseBytes(r.Body)
}

// Get returns the gjson value at path within the body.
func (r *Response) Get(path string) gjson.Result {
	return gjson.GetBytes(r.Body, path)
}

// Decode unmarshals the body into v.
func (r *Response) Decode(v any) error {
	if r.Err != nil {
		return r.Err
	}
	return json.Unmarshal(r.Body, v)
}

// Error formats a human-readable failure description. The vendor returns
// JSON error bodies with "description" or "error_description" fields; fall
// back to the raw body, then the status text.
func (r *Response) Error() string {
	if r.Err != nil {
		return r.Err.Error()
	}
	if r.Ok() {
		return ""
	}
	msg := r.Get("description").String()
	if msg == "" {
		msg = r.Get("error_description").String()
	}
	if msg == "" {
		msg = r.Get("error").String()
	}
	if msg == "" && len(r.Body) > 0 {
		msg = string(r.Body)
	}
	if msg == "" {
		msg = http.StatusText(r.StatusCode)
	}
	return fmt.Sprintf("%s %s: %d %s", r.Method, r.URL, r.StatusCode, msg)
}

// AsErr converts a failed Response into a Go error; nil when Ok.
func (r *Response) AsErr() error {
	if r.Ok() {
		return nil
	}
	if r.Err != nil {
		return r.Err
	}
	return fmt.Errorf("%s", r.Error())
}

func newResponse(method, url string) *Response {
	return &Response{
		Method:          method,
		URL:             url,
		RemainingDay:    -1,
		RemainingSecond: -1,
	}
}
