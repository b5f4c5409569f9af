package twitter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	// HeaderClient carries the configured agent.
	HeaderClient = "X-Twitter-Client"

	sourceParam = "source"
	idParam     = "id"
	formType    = "application/x-www-form-urlencoded"
)

// postActions are the endpoint suffixes that are sent as POST. The match is a
// plain suffix match on the resolved path, so "statuses/update" and
// "account/update_profile" both qualify.
var postActions = []string{
	// statuses
	"update", "retweet",
	// direct messages
	"new",
	// account
	"update_profile_image", "update_delivery_device", "update_profile",
	"update_profile_background_image", "update_profile_colors",
	"update_location", "end_session",
	// notifications
	"leave", "follow",
	// statuses, blocks, direct messages, friendships, favorites
	"destroy",
	// blocks, friendships, favorites
	"create",
}

// PostActions returns the endpoint suffixes that select POST.
func PostActions() []string {
	out := make([]string, len(postActions))
	copy(out, postActions)

	return out
}

// Do sends the call with args and returns the decoded result.
//
// With the json format the result is the decoded document ([]interface{},
// map[string]interface{} or a primitive; numbers are json.Number). Other
// formats return the raw body as a string. A 304 reply yields an empty
// []interface{}. Any other non-2xx reply is returned as *HTTPError; other
// transport errors are returned unchanged.
func (c *Call) Do(ctx context.Context, args Args) (interface{}, error) {
	req, err := c.Prepare(args)
	if err != nil {
		return nil, err
	}

	cfg := c.config

	err = cfg.interceptors.ExecuteRequestInterceptors(ctx, req)
	if err != nil {
		return nil, err
	}

	cfg.logger.Debug("twitter call", map[string]interface{}{
		"method": req.Method,
		"url":    req.URL,
	})

	resp, sendErr := cfg.transport.Send(ctx, req)

	observed := observedResponse(resp, sendErr)

	err = cfg.interceptors.ExecuteResponseInterceptors(ctx, req, observed)
	if err != nil {
		return nil, err
	}

	if sendErr != nil {
		return c.handleError(req, sendErr)
	}

	var body []byte
	if resp != nil {
		body = resp.Body
	}

	return c.decode(body)
}

// Prepare resolves the call against args into the request Do would send,
// auth applied, without sending it. args is not modified.
func (c *Call) Prepare(args Args) (*Request, error) {
	cfg := c.config
	params := args.clone()

	path := resolvePath(c.segments, params)
	method := inferMethod(path)

	if cfg.agent != "" && method == http.MethodPost {
		params[sourceParam] = cfg.agent
	}

	if id, ok := params[idParam]; ok {
		delete(params, idParam)

		if id != "" {
			path += "/" + id
		}
	}

	scheme := "http"
	if cfg.secure {
		scheme = "https"
	}

	baseURL := fmt.Sprintf("%s://%s/%s%s", scheme, cfg.domain, path, cfg.format.Extension())

	headers := make(http.Header)
	if cfg.agent != "" {
		headers.Set(HeaderClient, cfg.agent)
	}

	for k, v := range cfg.auth.GenerateHeaders() {
		headers.Set(k, v)
	}

	encoded, err := cfg.auth.EncodeParams(baseURL, method, params)
	if err != nil {
		return nil, fmt.Errorf("encoding parameters for %s: %w", baseURL, err)
	}

	req := &Request{
		Method:  method,
		URL:     baseURL,
		Headers: headers,
	}

	if method == http.MethodGet {
		if encoded != "" {
			req.URL += "?" + encoded
		}
	} else {
		req.Body = []byte(encoded)
		req.Headers.Set("Content-Type", formType)
	}

	return req, nil
}

// resolvePath substitutes segments named by a key of params with the value,
// deleting the key, and joins the result with "/".
func resolvePath(segments []string, params Args) string {
	resolved := make([]string, len(segments))

	for i, segment := range segments {
		if value, ok := params[segment]; ok {
			resolved[i] = value
			delete(params, segment)

			continue
		}

		resolved[i] = segment
	}

	return strings.Join(resolved, "/")
}

func inferMethod(path string) string {
	for _, action := range postActions {
		if strings.HasSuffix(path, action) {
			return http.MethodPost
		}
	}

	return http.MethodGet
}

func observedResponse(resp *Response, err error) *Response {
	if err == nil {
		if resp == nil {
			return &Response{}
		}

		return resp
	}

	observed := &Response{Error: err}

	statusErr := &StatusError{}
	if errors.As(err, &statusErr) {
		observed.StatusCode = statusErr.StatusCode
		observed.Headers = statusErr.Header
		observed.Body = statusErr.Body
	}

	return observed
}

func (c *Call) handleError(req *Request, err error) (interface{}, error) {
	statusErr := &StatusError{}
	if !errors.As(err, &statusErr) {
		return nil, err
	}

	if statusErr.StatusCode == http.StatusNotModified {
		return []interface{}{}, nil
	}

	c.config.logger.Warn("twitter call failed", map[string]interface{}{
		"method":      req.Method,
		"url":         req.URL,
		"status_code": statusErr.StatusCode,
	})

	return nil, &HTTPError{
		Err:        err,
		StatusCode: statusErr.StatusCode,
		URL:        req.URL,
		Format:     c.config.format,
		Segments:   c.Segments(),
		Body:       statusErr.Body,
	}
}

func (c *Call) decode(body []byte) (interface{}, error) {
	if c.config.format != FormatJSON {
		return string(body), nil
	}

	var result interface{}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()

	err := decoder.Decode(&result)
	if err != nil {
		return nil, fmt.Errorf("decoding json response: %w", err)
	}

	// The body must hold exactly one value.
	err = decoder.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding json response: %w", ErrTrailingData)
	}

	return result, nil
}
