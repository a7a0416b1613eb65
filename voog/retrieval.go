package voog

import (
	"context"
	"fmt"
)

// ListAllLayouts walks every page of the layouts listing.  The API doesn't tell us how many
// pages there are, so we stop at the first short page.
func (api *API) ListAllLayouts(ctx context.Context, query LayoutsQuery) ([]Layout, error) {
	if query.PerPage < 1 {
		query.PerPage = DefaultPageSize
	}

	layouts := []Layout{}
	for page := 1; ; page++ {
		query.Page = page
		results, err := api.ListLayouts(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("voog: couldn't list layouts (page %d): %w", page, err)
		}

		layouts = append(layouts, results...)
		if len(results) < query.PerPage {
			break
		}
	}

	return layouts, nil
}

func (api *API) ListAllLayoutAssets(ctx context.Context, query LayoutAssetsQuery) ([]LayoutAsset, error) {
	if query.PerPage < 1 {
		query.PerPage = DefaultPageSize
	}

	assets := []LayoutAsset{}
	for page := 1; ; page++ {
		query.Page = page
		results, err := api.ListLayoutAssets(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("voog: couldn't list layout assets (page %d): %w", page, err)
		}

		assets = append(assets, results...)
		if len(results) < query.PerPage {
			break
		}
	}

	return assets, nil
}
