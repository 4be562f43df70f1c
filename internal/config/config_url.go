// CarSelect - AHP Car Recommendation Backend
// Copyright 2026 aterii
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aterii/practice-4


package config

import (
	"fmt"
	"net/url"
	"strings"
)

// validateCatalogURL checks the base URL the catalog client joins paths onto.
// The catalog lives under a path (/api), so a path is fine. Credentials,
// query strings and fragments would be duplicated on every request and are
// rejected.
func validateCatalogURL(rawURL, fieldName string) error {
	if rawURL == "" {
		return fmt.Errorf("%s is required", fieldName)
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s: invalid URL: %w", fieldName, err)
	}

	switch {
	case u.Scheme != "http" && u.Scheme != "https":
		return fmt.Errorf("%s: scheme must be http or https, got %q", fieldName, u.Scheme)
	case u.Host == "":
		return fmt.Errorf("%s: host is required", fieldName)
	case u.User != nil:
		return fmt.Errorf("%s: credentials are not allowed in the URL", fieldName)
	case u.RawQuery != "":
		return fmt.Errorf("%s: query parameters are not allowed, remove ?%s", fieldName, u.RawQuery)
	case u.Fragment != "" || strings.HasSuffix(rawURL, "#"):
		return fmt.Errorf("%s: fragment is not allowed", fieldName)
	}
	return nil
}
