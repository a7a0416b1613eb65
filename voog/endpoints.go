package voog

import (
	"fmt"
	"net/url"

	"github.com/google/go-querystring/query"
)

// layoutsEndpoint returns the API endpoint to list layouts:
// https://www.voog.com/developers/api/resources/layouts#get_layouts
func (a *API) layoutsEndpoint(opts LayoutsQuery) (*url.URL, error) {
	ep, err := a.resolveEndpoint("/admin/api/layouts")
	if err != nil {
		return nil, fmt.Errorf("voog: couldn't resolve endpoint: %w", err)
	}

	v, err := query.Values(opts)
	if err != nil {
		return nil, fmt.Errorf("voog: couldn't encode query params: %w", err)
	}
	ep.RawQuery = v.Encode()

	return ep, nil
}

// layoutEndpoint returns the API endpoint for a single layout; it's used for get, update and
// delete alike.
func (a *API) layoutEndpoint(id int) (*url.URL, error) {
	if id < 1 {
		return nil, fmt.Errorf("voog: please provide ID of layout")
	}

	ep, err := a.resolveEndpoint(fmt.Sprintf("/admin/api/layouts/%d", id))
	if err != nil {
		return nil, fmt.Errorf("voog: couldn't resolve endpoint: %w", err)
	}

	return ep, nil
}

// layoutAssetsEndpoint returns the API endpoint to list or create layout assets:
// https://www.voog.com/developers/api/resources/layout_assets#get_layout_assets
func (a *API) layoutAssetsEndpoint(opts LayoutAssetsQuery) (*url.URL, error) {
	ep, err := a.resolveEndpoint("/admin/api/layout_assets")
	if err != nil {
		return nil, fmt.Errorf("voog: couldn't resolve endpoint: %w", err)
	}

	v, err := query.Values(opts)
	if err != nil {
		return nil, fmt.Errorf("voog: couldn't encode query params: %w", err)
	}
	ep.RawQuery = v.Encode()

	return ep, nil
}

func (a *API) layoutAssetEndpoint(id int) (*url.URL, error) {
	if id < 1 {
		return nil, fmt.Errorf("voog: please provide ID of layout asset")
	}

	ep, err := a.resolveEndpoint(fmt.Sprintf("/admin/api/layout_assets/%d", id))
	if err != nil {
		return nil, fmt.Errorf("voog: couldn't resolve endpoint: %w", err)
	}

	return ep, nil
}

// Do a bit of error checking on endpoint format, and return it relative to the base URI.
func (a *API) resolveEndpoint(endpoint string) (*url.URL, error) {
	ref, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("voog: failed to parse endpoint ref: %w", err)
	}

	return a.BaseURI.ResolveReference(ref), nil
}
