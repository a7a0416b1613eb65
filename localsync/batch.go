package localsync

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/toothbrush/voog-kit/voog"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"golang.org/x/sync/errgroup"
)

var ErrUnknownFolder = errors.New("unknown folder")

// BatchRunner runs pulls and pushes over everything on a site, or one folder of it.
type BatchRunner struct {
	Engine *Engine

	// Concurrency bounds the number of files in flight.  Zero means no bound.
	Concurrency int

	// Progress, when set, gets a progress bar.
	Progress io.Writer
}

func NewBatchRunner(engine *Engine) *BatchRunner {
	return &BatchRunner{Engine: engine}
}

// listing is a snapshot of a site's layouts and assets, in API order.
type listing struct {
	layouts []Layout
	assets  []Asset
}

func (l listing) resources() []Resource {
	all := make([]Resource, 0, len(l.layouts)+len(l.assets))
	for _, layout := range l.layouts {
		all = append(all, layout)
	}
	for _, asset := range l.assets {
		all = append(all, asset)
	}
	return all
}

func (b *BatchRunner) listAll(ctx context.Context, s *session) (listing, error) {
	var (
		layouts []voog.Layout
		assets  []voog.LayoutAsset
	)
	pageSize := b.Engine.pageSize()

	grp, gctx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		var err error
		layouts, err = s.client.ListAllLayouts(gctx, voog.LayoutsQuery{PerPage: pageSize})
		if err != nil {
			return fmt.Errorf("localsync: couldn't list layouts: %w", err)
		}
		return nil
	})
	grp.Go(func() error {
		var err error
		assets, err = s.client.ListAllLayoutAssets(gctx, voog.LayoutAssetsQuery{PerPage: pageSize})
		if err != nil {
			return fmt.Errorf("localsync: couldn't list layout assets: %w", err)
		}
		return nil
	})
	if err := grp.Wait(); err != nil {
		return listing{}, err
	}

	l := listing{
		layouts: make([]Layout, 0, len(layouts)),
		assets:  make([]Asset, 0, len(assets)),
	}
	for _, layout := range layouts {
		l.layouts = append(l.layouts, layoutFromRemote(layout))
	}
	for _, asset := range assets {
		l.assets = append(l.assets, assetFromRemote(asset))
	}
	return l, nil
}

// PullAllFiles pulls every layout, component and asset on the site.  Results come back
// layouts first, then assets, each in API order.
func (b *BatchRunner) PullAllFiles(ctx context.Context, site string, opts Options) ([]Result, error) {
	s, err := b.Engine.connect(site, opts)
	if err != nil {
		return nil, err
	}
	l, err := b.listAll(ctx, s)
	if err != nil {
		return nil, err
	}

	results := b.run(ctx, "pull", l.resources(), func(ctx context.Context, res Resource) (Result, error) {
		return b.Engine.pullResource(ctx, s, res.RelativePath(), res)
	})

	if opts.WriteManifest {
		if err := b.Engine.writeManifest(s, l); err != nil {
			return results, err
		}
	}
	return results, nil
}

// PushAllFiles pushes every local counterpart of what's on the site.  Remote resources without a
// local file show up as failed results.
func (b *BatchRunner) PushAllFiles(ctx context.Context, site string, opts Options) ([]Result, error) {
	s, err := b.Engine.connect(site, opts)
	if err != nil {
		return nil, err
	}
	l, err := b.listAll(ctx, s)
	if err != nil {
		return nil, err
	}

	return b.run(ctx, "push", l.resources(), func(ctx context.Context, res Resource) (Result, error) {
		return b.Engine.pushResource(ctx, s, res.RelativePath(), res, opts)
	}), nil
}

// PullFolder is PullAllFiles restricted to one of the known folders.
func (b *BatchRunner) PullFolder(ctx context.Context, site string, folder string, opts Options) ([]Result, error) {
	t, ok := FolderToType(folder)
	if !ok {
		return nil, fmt.Errorf("localsync: %w: %q", ErrUnknownFolder, folder)
	}
	s, err := b.Engine.connect(site, opts)
	if err != nil {
		return nil, err
	}
	l, err := b.listAll(ctx, s)
	if err != nil {
		return nil, err
	}

	return b.run(ctx, "pull "+folder, ofType(l.resources(), t), func(ctx context.Context, res Resource) (Result, error) {
		return b.Engine.pullResource(ctx, s, res.RelativePath(), res)
	}), nil
}

func (b *BatchRunner) PushFolder(ctx context.Context, site string, folder string, opts Options) ([]Result, error) {
	t, ok := FolderToType(folder)
	if !ok {
		return nil, fmt.Errorf("localsync: %w: %q", ErrUnknownFolder, folder)
	}
	s, err := b.Engine.connect(site, opts)
	if err != nil {
		return nil, err
	}
	l, err := b.listAll(ctx, s)
	if err != nil {
		return nil, err
	}

	return b.run(ctx, "push "+folder, ofType(l.resources(), t), func(ctx context.Context, res Resource) (Result, error) {
		return b.Engine.pushResource(ctx, s, res.RelativePath(), res, opts)
	}), nil
}

// GetTotalFileCount counts layouts and assets from one pass over both listings.
func (b *BatchRunner) GetTotalFileCount(ctx context.Context, site string, opts Options) (int, error) {
	s, err := b.Engine.connect(site, opts)
	if err != nil {
		return 0, err
	}
	l, err := b.listAll(ctx, s)
	if err != nil {
		return 0, err
	}
	return len(l.layouts) + len(l.assets), nil
}

func ofType(all []Resource, t ResourceType) []Resource {
	filtered := []Resource{}
	for _, res := range all {
		if res.Type() == t {
			filtered = append(filtered, res)
		}
	}
	return filtered
}

// run applies op to every resource and waits for all of them.  A failing item never stops its
// siblings; hard errors are folded into the item's Result.
func (b *BatchRunner) run(ctx context.Context, phaseName string, items []Resource, op func(context.Context, Resource) (Result, error)) []Result {
	results := make([]Result, len(items))
	if len(items) == 0 {
		return results
	}

	var (
		p   *mpb.Progress
		bar *mpb.Bar
	)
	if b.Progress != nil {
		p = mpb.New(mpb.WithOutput(b.Progress), mpb.WithWidth(64))
		bar = p.AddBar(int64(len(items)),
			mpb.PrependDecorators(
				decor.Name(fmt.Sprintf("%s:", phaseName),
					decor.WC{C: decor.DindentRight | decor.DextraSpace}),
			),
			mpb.AppendDecorators(
				decor.CountersNoUnit("(%d/%d) "),
				decor.NewPercentage("%d"),
			),
		)
	}

	var grp errgroup.Group
	if b.Concurrency > 0 {
		grp.SetLimit(b.Concurrency)
	}

	for i, res := range items {
		i, res := i, res
		grp.Go(func() error {
			result, err := op(ctx, res)
			if err != nil {
				b.Engine.Logger.WithField("file", res.RelativePath()).WithError(err).Warn("failed")
				result = Result{
					File:     res.RelativePath(),
					Resource: res,
					Failed:   true,
					Message:  err.Error(),
					Err:      err,
				}
			}
			results[i] = result
			if bar != nil {
				bar.Increment()
			}
			return nil
		})
	}

	// nothing returns an error from grp.Go
	_ = grp.Wait()
	if p != nil {
		p.Wait()
	}

	return results
}
