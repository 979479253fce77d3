package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Spruttybangbang/aim25s-website/internal/core/directory"
)

// SubmitResult is the server acknowledgement of a report.
type SubmitResult struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Error    string `json:"error"`
	ReportID int64  `json:"report_id"`
}

// SubmitErrorReport posts an error report about a company.
func (c *Client) SubmitErrorReport(ctx context.Context, r directory.ErrorReport) (SubmitResult, error) {
	path := PathReportError
	if c.scoped {
		path = fmt.Sprintf("/companies/%d/report-error/", r.CompanyID)
	}
	return c.submit(ctx, path, r)
}

// SubmitSuggestion posts a new company suggestion.
func (c *Client) SubmitSuggestion(ctx context.Context, s directory.Suggestion) (SubmitResult, error) {
	s.ErrorType = directory.ErrorSuggestNewCompany
	return c.submit(ctx, PathReportError, s)
}

// submit posts payload once. Success requires a 2xx status and success=true.
func (c *Client) submit(ctx context.Context, path string, payload any) (SubmitResult, error) {
	token, err := c.csrfToken(ctx)
	if err != nil {
		return SubmitResult{}, err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("encode payload: %w", err)
	}

	header := http.Header{}
	header.Set("Content-Type", "application/json")
	header.Set(csrfHeader, token)
	header.Set("Referer", c.base.String()+"/")

	data, err := c.do(ctx, http.MethodPost, path, nil, bytes.NewReader(body), header)

	var result SubmitResult
	if len(data) > 0 {
		if jerr := json.Unmarshal(data, &result); jerr != nil && err == nil {
			return SubmitResult{}, malformed(path, jerr)
		}
	}

	var se *StatusError
	switch {
	case errors.As(err, &se):
		return result, &SubmitError{Code: se.Code, Message: result.Error}
	case err != nil:
		return result, err
	case !result.Success:
		return result, &SubmitError{Code: http.StatusOK, Message: result.Error}
	}
	return result, nil
}

// csrfToken returns the csrftoken cookie for the base URL, fetching the
// site root once to obtain it when the jar has none.
func (c *Client) csrfToken(ctx context.Context) (string, error) {
	if tok := c.cookie(csrfCookie); tok != "" {
		return tok, nil
	}

	if _, err := c.do(ctx, http.MethodGet, "/", nil, nil, nil); err != nil {
		var se *StatusError
		if !errors.As(err, &se) {
			return "", fmt.Errorf("prime csrf cookie: %w", err)
		}
	}

	if tok := c.cookie(csrfCookie); tok != "" {
		return tok, nil
	}
	return "", ErrMissingCSRF
}

func (c *Client) cookie(name string) string {
	u := &url.URL{Scheme: c.base.Scheme, Host: c.base.Host, Path: "/"}
	for _, ck := range c.jar.Cookies(u) {
		if ck.Name == name {
			return ck.Value
		}
	}
	return ""
}
