package voog

// See https://www.voog.com/developers/api/resources/layouts. Components are layouts with
// Component set; there's no separate endpoint for them.
type Layout struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Component   bool   `json:"component"`
	ContentType string `json:"content_type,omitempty"`
	MimeType    string `json:"mime_type,omitempty"`
	ParentID    int    `json:"parent_id,omitempty"`

	// Only present when fetching a single layout.
	Body string `json:"body,omitempty"`

	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// LayoutPayload is what we send when creating or updating a layout.  Zero values are left out,
// so an update carrying only Body leaves the rest alone.  Body is always sent: an empty body
// is a legitimate update.
type LayoutPayload struct {
	Title       string `json:"title,omitempty"`
	Body        string `json:"body"`
	Component   bool   `json:"component,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	ParentID    int    `json:"parent_id,omitempty"`
}

// See https://www.voog.com/developers/api/resources/layout_assets.
//
// Editable assets (stylesheets, javascripts) carry their contents inline in Data.  Everything
// else has to be fetched from PublicURL.
type LayoutAsset struct {
	ID          int    `json:"id"`
	Filename    string `json:"filename"`
	AssetType   string `json:"asset_type"`
	Editable    bool   `json:"editable"`
	ContentType string `json:"content_type,omitempty"`
	Size        int64  `json:"size,omitempty"`
	PublicURL   string `json:"public_url,omitempty"`

	// Only present for editable assets fetched one at a time.
	Data string `json:"data,omitempty"`

	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// LayoutAssetPayload always carries Data, for the same reason as LayoutPayload.Body.
type LayoutAssetPayload struct {
	Filename    string `json:"filename,omitempty"`
	Data        string `json:"data"`
	ContentType string `json:"content_type,omitempty"`
}
