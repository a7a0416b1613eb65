package localsync

import (
	"context"
	"io"

	"github.com/toothbrush/voog-kit/config"
	"github.com/toothbrush/voog-kit/voog"
)

// Client is the slice of the Voog API the sync engine needs.
type Client interface {
	ListAllLayouts(ctx context.Context, query voog.LayoutsQuery) ([]voog.Layout, error)
	GetLayout(ctx context.Context, id int) (*voog.Layout, error)
	CreateLayout(ctx context.Context, payload voog.LayoutPayload) (*voog.Layout, error)
	UpdateLayout(ctx context.Context, id int, payload voog.LayoutPayload) (*voog.Layout, error)
	DeleteLayout(ctx context.Context, id int) error

	ListAllLayoutAssets(ctx context.Context, query voog.LayoutAssetsQuery) ([]voog.LayoutAsset, error)
	GetLayoutAsset(ctx context.Context, id int) (*voog.LayoutAsset, error)
	CreateLayoutAsset(ctx context.Context, payload voog.LayoutAssetPayload) (*voog.LayoutAsset, error)
	UploadLayoutAsset(ctx context.Context, filename string, r io.Reader) (*voog.LayoutAsset, error)
	UpdateLayoutAsset(ctx context.Context, id int, payload voog.LayoutAssetPayload) (*voog.LayoutAsset, error)
	DeleteLayoutAsset(ctx context.Context, id int) error

	Download(ctx context.Context, url string, w io.Writer) error
}

var _ Client = (*voog.API)(nil)

// NewAPIClient is the default way of talking to a site.
func NewAPIClient(site config.Site) (Client, error) {
	api, err := voog.NewAPI(site.Host, site.Token)
	if err != nil {
		return nil, err
	}
	return api, nil
}
