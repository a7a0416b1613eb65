package voog

// LayoutsQuery defines the query parameters for:
// https://www.voog.com/developers/api/resources/layouts#get_layouts
type LayoutsQuery struct {
	// Filter the results to layouts based on...
	Component *bool  `url:"q.layout.component,omitempty"` // whether they are components.
	Title     string `url:"q.layout.title,omitempty"`     // their exact title.

	PerPage int `url:"per_page,omitempty"` // page size; the API caps this at 250
	Page    int `url:"page,omitempty"`     // 1-based
}

// LayoutAssetsQuery defines the query parameters for:
// https://www.voog.com/developers/api/resources/layout_assets#get_layout_assets
type LayoutAssetsQuery struct {
	Filename  string `url:"q.layout_asset.filename,omitempty"`
	AssetType string `url:"q.layout_asset.asset_type,omitempty"`

	PerPage int `url:"per_page,omitempty"`
	Page    int `url:"page,omitempty"`
}

// DefaultPageSize is the largest page the API will hand out.
const DefaultPageSize = 250
