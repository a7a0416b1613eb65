package localsync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"github.com/toothbrush/voog-kit/config"
	"github.com/toothbrush/voog-kit/voog"
)

const testConfigPath = "/cfg/.voog"

var testOptions = Options{Scope: config.Scope{ConfigPath: testConfigPath}}

// fakeClient is an in-memory site.  Every method call is counted.
type fakeClient struct {
	mu sync.Mutex

	layouts []voog.Layout
	assets  []voog.LayoutAsset

	// public URL -> contents
	files         map[string]string
	failDownloads map[string]bool

	createErr error
	listErr   error

	nextID int
	calls  map[string]int

	createdLayouts []voog.LayoutPayload
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		files:         map[string]string{},
		failDownloads: map[string]bool{},
		nextID:        100,
		calls:         map[string]int{},
	}
}

func (f *fakeClient) count(name string) {
	f.calls[name]++
}

func (f *fakeClient) Calls(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeClient) ListAllLayouts(ctx context.Context, query voog.LayoutsQuery) ([]voog.Layout, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("ListAllLayouts")
	if f.listErr != nil {
		return nil, f.listErr
	}

	layouts := []voog.Layout{}
	for _, l := range f.layouts {
		if query.Component != nil && l.Component != *query.Component {
			continue
		}
		l.Body = ""
		layouts = append(layouts, l)
	}
	return layouts, nil
}

func (f *fakeClient) GetLayout(ctx context.Context, id int) (*voog.Layout, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("GetLayout")

	for _, l := range f.layouts {
		if l.ID == id {
			found := l
			return &found, nil
		}
	}
	return nil, voog.ErrNotFound
}

func (f *fakeClient) CreateLayout(ctx context.Context, payload voog.LayoutPayload) (*voog.Layout, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("CreateLayout")
	if f.createErr != nil {
		return nil, f.createErr
	}

	f.createdLayouts = append(f.createdLayouts, payload)
	f.nextID++
	l := voog.Layout{
		ID:          f.nextID,
		Title:       payload.Title,
		Component:   payload.Component,
		ContentType: payload.ContentType,
		ParentID:    payload.ParentID,
		Body:        payload.Body,
	}
	f.layouts = append(f.layouts, l)
	return &l, nil
}

func (f *fakeClient) UpdateLayout(ctx context.Context, id int, payload voog.LayoutPayload) (*voog.Layout, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("UpdateLayout")

	for i := range f.layouts {
		if f.layouts[i].ID == id {
			f.layouts[i].Body = payload.Body
			updated := f.layouts[i]
			return &updated, nil
		}
	}
	return nil, voog.ErrNotFound
}

func (f *fakeClient) DeleteLayout(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("DeleteLayout")

	for i := range f.layouts {
		if f.layouts[i].ID == id {
			f.layouts = append(f.layouts[:i], f.layouts[i+1:]...)
			return nil
		}
	}
	return voog.ErrNotFound
}

func (f *fakeClient) ListAllLayoutAssets(ctx context.Context, query voog.LayoutAssetsQuery) ([]voog.LayoutAsset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("ListAllLayoutAssets")
	if f.listErr != nil {
		return nil, f.listErr
	}

	assets := []voog.LayoutAsset{}
	for _, a := range f.assets {
		if query.Filename != "" && a.Filename != query.Filename {
			continue
		}
		a.Data = ""
		assets = append(assets, a)
	}
	return assets, nil
}

func (f *fakeClient) GetLayoutAsset(ctx context.Context, id int) (*voog.LayoutAsset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("GetLayoutAsset")

	for _, a := range f.assets {
		if a.ID == id {
			found := a
			return &found, nil
		}
	}
	return nil, voog.ErrNotFound
}

func (f *fakeClient) CreateLayoutAsset(ctx context.Context, payload voog.LayoutAssetPayload) (*voog.LayoutAsset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("CreateLayoutAsset")
	if f.createErr != nil {
		return nil, f.createErr
	}

	f.nextID++
	assetType, _ := ExtensionToType(payload.Filename)
	a := voog.LayoutAsset{
		ID:          f.nextID,
		Filename:    payload.Filename,
		AssetType:   string(assetType),
		Editable:    true,
		ContentType: payload.ContentType,
		Data:        payload.Data,
	}
	f.assets = append(f.assets, a)
	return &a, nil
}

func (f *fakeClient) UploadLayoutAsset(ctx context.Context, filename string, r io.Reader) (*voog.LayoutAsset, error) {
	contents, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("UploadLayoutAsset")
	if f.createErr != nil {
		return nil, f.createErr
	}

	f.nextID++
	assetType, _ := ExtensionToType(filename)
	a := voog.LayoutAsset{
		ID:        f.nextID,
		Filename:  filename,
		AssetType: string(assetType),
		PublicURL: fmt.Sprintf("https://media.voog.test/%d/%s", f.nextID, filename),
	}
	f.files[a.PublicURL] = string(contents)
	f.assets = append(f.assets, a)
	return &a, nil
}

func (f *fakeClient) UpdateLayoutAsset(ctx context.Context, id int, payload voog.LayoutAssetPayload) (*voog.LayoutAsset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("UpdateLayoutAsset")

	for i := range f.assets {
		if f.assets[i].ID == id {
			f.assets[i].Data = payload.Data
			updated := f.assets[i]
			return &updated, nil
		}
	}
	return nil, voog.ErrNotFound
}

func (f *fakeClient) DeleteLayoutAsset(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("DeleteLayoutAsset")

	for i := range f.assets {
		if f.assets[i].ID == id {
			f.assets = append(f.assets[:i], f.assets[i+1:]...)
			return nil
		}
	}
	return voog.ErrNotFound
}

func (f *fakeClient) Download(ctx context.Context, url string, w io.Writer) error {
	f.mu.Lock()
	f.count("Download")
	contents, ok := f.files[url]
	fail := f.failDownloads[url]
	f.mu.Unlock()

	if fail {
		_, _ = io.WriteString(w, "partial")
		return errors.New("connection reset by peer")
	}
	if !ok {
		return voog.ErrNotFound
	}
	_, err := io.WriteString(w, contents)
	return err
}

func (f *fakeClient) layoutBody(id int) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.layouts {
		if l.ID == id {
			return l.Body
		}
	}
	return ""
}

// newTestEngine registers site "test" in a config file on a fresh MemMapFs, and hands every
// connection the given client.  The site directory is /site.
func newTestEngine(t *testing.T, client *fakeClient) (*Engine, afero.Fs, *test.Hook) {
	t.Helper()

	fs := afero.NewMemMapFs()
	store := config.NewStore(fs)
	added, err := store.AddSite(config.Site{
		Name:  "test",
		Host:  "testhost.voog.com",
		Token: "SECRET",
		Dir:   "/site",
	}, testOptions.Scope)
	require.NoError(t, err)
	require.True(t, added)

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	engine := NewEngine(store, fs, logger)
	engine.NewClient = func(site config.Site) (Client, error) {
		return client, nil
	}
	return engine, fs, hook
}
