// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// validateHTTPURL validates that a URL is an absolute http(s) endpoint.
// Paths are allowed (API proxies mount the oracle under a prefix); query
// strings and fragments are not.
func validateHTTPURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}

	if parsedURL.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, parsedURL.RawQuery)
	}

	if parsedURL.Fragment != "" {
		return fmt.Errorf("%s should not contain a fragment, remove: #%s", fieldName, parsedURL.Fragment)
	}

	return nil
}

// validateCORSOrigin checks a single CORS origin entry. "*" is accepted.
func validateCORSOrigin(origin string) error {
	if origin == "*" {
		return nil
	}
	if strings.HasSuffix(origin, "/") {
		return fmt.Errorf("CORS_ORIGINS entry %q must not end with a slash", origin)
	}
	return validateHTTPURL(origin, "CORS_ORIGINS entry")
}
