package oidc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
)

// WellKnownEndpoints holds the well known OIDC endpoints.
type WellKnownEndpoints struct {
	Issuer  string `json:"issuer"`
	JWKSURI string `json:"jwks_uri"`
}

// GetWellKnownEndpointsFromIssuerURL gets the well known endpoints for the
// passed in issuer url. The expectedIssuer must match the issuer the metadata
// declares, which stops a tampered discovery host from substituting its own
// key material.
func GetWellKnownEndpointsFromIssuerURL(
	ctx context.Context,
	client *http.Client,
	issuerURL url.URL,
	expectedIssuer string,
) (*WellKnownEndpoints, error) {
	issuerURL.Path = path.Join(issuerURL.Path, ".well-known/openid-configuration")

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, issuerURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("could not build request to get well-known endpoints: %w", err)
	}

	if client == nil {
		client = http.DefaultClient
	}

	response, err := client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("could not fetch well-known endpoints from url %s: %w", issuerURL.String(), err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("well-known endpoint %s returned status %d, expected 200", issuerURL.String(), response.StatusCode)
	}

	// Discovery documents are small; cap the read in case a misconfigured
	// host serves something else at this path.
	var wkEndpoints WellKnownEndpoints
	if err := json.NewDecoder(io.LimitReader(response.Body, 1<<20)).Decode(&wkEndpoints); err != nil {
		return nil, fmt.Errorf("failed to decode JSON from well-known endpoint %s: %w", issuerURL.String(), err)
	}

	if wkEndpoints.Issuer == "" {
		return nil, fmt.Errorf("oidc metadata from %s is missing required 'issuer' field", issuerURL.String())
	}
	if wkEndpoints.JWKSURI == "" {
		return nil, fmt.Errorf("oidc metadata from %s is missing required 'jwks_uri' field", issuerURL.String())
	}
	if expectedIssuer != "" && wkEndpoints.Issuer != expectedIssuer {
		return nil, fmt.Errorf("issuer mismatch: oidc metadata declares issuer %q but %q was expected", wkEndpoints.Issuer, expectedIssuer)
	}

	return &wkEndpoints, nil
}
