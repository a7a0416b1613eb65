package localsync

import (
	"context"
	"fmt"

	"github.com/toothbrush/voog-kit/voog"
)

// Find works out which remote resource relativePath refers to.  A nil Resource with a nil
// error means there isn't one; errors are reserved for failing to ask.
func (e *Engine) Find(ctx context.Context, site string, relativePath string, opts Options) (Resource, error) {
	s, err := e.connect(site, opts)
	if err != nil {
		return nil, err
	}
	return e.find(ctx, s, relativePath)
}

func (e *Engine) find(ctx context.Context, s *session, relativePath string) (Resource, error) {
	if !IsLocalPath(relativePath) {
		return nil, nil
	}
	folder, filename := RelativePathParts(relativePath)
	t, _ := FolderToType(folder)

	if t.IsLayout() {
		layout, err := e.findLayout(ctx, s, NormalizeTitle(trimExt(filename)), t == ComponentType)
		if err != nil || layout == nil {
			return nil, err
		}
		return *layout, nil
	}

	assets, err := s.client.ListAllLayoutAssets(ctx, voog.LayoutAssetsQuery{
		Filename: filename,
		PerPage:  e.pageSize(),
	})
	if err != nil {
		return nil, fmt.Errorf("localsync: couldn't list layout assets: %w", err)
	}
	// the API filters by filename for us; if it ever hands back more than one, first wins.
	if len(assets) == 0 {
		return nil, nil
	}
	return assetFromRemote(assets[0]), nil
}

// findLayout returns the first layout, in API order, whose normalized title is want.
func (e *Engine) findLayout(ctx context.Context, s *session, want string, component bool) (*Layout, error) {
	layouts, err := s.client.ListAllLayouts(ctx, voog.LayoutsQuery{
		Component: &component,
		PerPage:   e.pageSize(),
	})
	if err != nil {
		return nil, fmt.Errorf("localsync: couldn't list layouts: %w", err)
	}

	for _, l := range layouts {
		if NormalizeTitle(l.Title) == want {
			found := layoutFromRemote(l)
			return &found, nil
		}
	}

	return nil, nil
}
