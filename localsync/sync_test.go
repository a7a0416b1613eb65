package localsync

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toothbrush/voog-kit/config"
	"github.com/toothbrush/voog-kit/voog"
)

func TestPullComponent(t *testing.T) {
	client := newFakeClient()
	client.layouts = []voog.Layout{
		{ID: 1, Title: "Test", Component: true, ContentType: "component", Body: "{{ site.name }}"},
	}
	engine, fs, _ := newTestEngine(t, client)

	var connected config.Site
	engine.NewClient = func(site config.Site) (Client, error) {
		connected = site
		return client, nil
	}

	result, err := engine.Pull(context.Background(), "test", "components/test.tpl", testOptions)
	require.NoError(t, err)
	assert.False(t, result.Failed)
	assert.Equal(t, "components/test.tpl", result.File)
	require.IsType(t, Layout{}, result.Resource)
	assert.Equal(t, 1, result.Resource.RemoteID())
	assert.Equal(t, "Test", result.Resource.(Layout).Title)
	assert.Equal(t, "testhost.voog.com", connected.Host)
	assert.Equal(t, "SECRET", connected.Token)

	contents, err := afero.ReadFile(fs, "/site/components/test.tpl")
	require.NoError(t, err)
	assert.Equal(t, "{{ site.name }}", string(contents))
	assert.Equal(t, 1, client.Calls("GetLayout"))
}

func TestPullNotFound(t *testing.T) {
	engine, fs, _ := newTestEngine(t, newFakeClient())

	result, err := engine.Pull(context.Background(), "test", "layouts/nope.tpl", testOptions)
	require.NoError(t, err)
	assert.True(t, result.Failed)
	assert.Equal(t, MsgNotFound, result.Message)
	assert.Equal(t, "layouts/nope.tpl", result.File)

	exists, err := afero.Exists(fs, "/site/layouts/nope.tpl")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestPullEditableAsset(t *testing.T) {
	client := newFakeClient()
	client.assets = []voog.LayoutAsset{
		{ID: 3, Filename: "main.css", AssetType: "stylesheet", Editable: true, Data: "body { margin: 0 }"},
	}
	engine, fs, _ := newTestEngine(t, client)

	result, err := engine.Pull(context.Background(), "test", "stylesheets/main.css", testOptions)
	require.NoError(t, err)
	assert.False(t, result.Failed)

	contents, err := afero.ReadFile(fs, "/site/stylesheets/main.css")
	require.NoError(t, err)
	assert.Equal(t, "body { margin: 0 }", string(contents))
	assert.Equal(t, 0, client.Calls("Download"))
}

func TestPullDownloadsNonEditableAsset(t *testing.T) {
	client := newFakeClient()
	client.assets = []voog.LayoutAsset{
		{ID: 4, Filename: "logo.png", AssetType: "image", PublicURL: "https://media.voog.test/logo.png"},
	}
	client.files["https://media.voog.test/logo.png"] = "\x89PNG"
	engine, fs, _ := newTestEngine(t, client)
	require.NoError(t, afero.WriteFile(fs, "/site/images/logo.png", []byte("old"), 0644))

	result, err := engine.Pull(context.Background(), "test", "images/logo.png", testOptions)
	require.NoError(t, err)
	assert.False(t, result.Failed)

	contents, err := afero.ReadFile(fs, "/site/images/logo.png")
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG", string(contents))

	entries, err := afero.ReadDir(fs, "/site/images")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestPullDownloadFailureIsSoft(t *testing.T) {
	client := newFakeClient()
	client.assets = []voog.LayoutAsset{
		{ID: 4, Filename: "logo.png", AssetType: "image", PublicURL: "https://media.voog.test/logo.png"},
	}
	client.failDownloads["https://media.voog.test/logo.png"] = true
	engine, fs, hook := newTestEngine(t, client)

	result, err := engine.Pull(context.Background(), "test", "images/logo.png", testOptions)
	require.NoError(t, err)
	assert.True(t, result.Failed)
	assert.Equal(t, MsgUnableToDownload, result.Message)
	assert.Error(t, result.Err)
	assert.Equal(t, 4, result.Resource.RemoteID())

	// neither the partial download nor its temporary file are left behind
	entries, err := afero.ReadDir(fs, "/site/images")
	require.NoError(t, err)
	assert.Empty(t, entries)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "images/logo.png", hook.LastEntry().Data["file"])
}

func TestPushLayout(t *testing.T) {
	client := newFakeClient()
	client.layouts = []voog.Layout{{ID: 1, Title: "Front page", Body: "old"}}
	engine, fs, _ := newTestEngine(t, client)
	require.NoError(t, afero.WriteFile(fs, "/site/layouts/front_page.tpl", []byte("new"), 0644))

	result, err := engine.Push(context.Background(), "test", "layouts/front_page.tpl", testOptions)
	require.NoError(t, err)
	assert.False(t, result.Failed)
	assert.Equal(t, "new", client.layoutBody(1))
}

func TestPushEditableAsset(t *testing.T) {
	client := newFakeClient()
	client.assets = []voog.LayoutAsset{{ID: 3, Filename: "app.js", AssetType: "javascript", Editable: true}}
	engine, fs, _ := newTestEngine(t, client)
	require.NoError(t, afero.WriteFile(fs, "/site/javascripts/app.js", []byte("alert(1)"), 0644))

	result, err := engine.Push(context.Background(), "test", "javascripts/app.js", testOptions)
	require.NoError(t, err)
	assert.False(t, result.Failed)
	assert.Equal(t, 1, client.Calls("UpdateLayoutAsset"))
	assert.Equal(t, "alert(1)", result.Resource.(Asset).Data)
}

func TestPushNonEditableNeedsOverwrite(t *testing.T) {
	client := newFakeClient()
	client.assets = []voog.LayoutAsset{{ID: 4, Filename: "logo.png", AssetType: "image"}}
	engine, fs, _ := newTestEngine(t, client)
	require.NoError(t, afero.WriteFile(fs, "/site/images/logo.png", []byte("png"), 0644))

	result, err := engine.Push(context.Background(), "test", "images/logo.png", testOptions)
	require.NoError(t, err)
	assert.True(t, result.Failed)
	assert.Equal(t, MsgUnableToUpdate, result.Message)
	assert.Equal(t, 0, client.Calls("DeleteLayoutAsset"))

	opts := testOptions
	opts.Overwrite = true
	result, err = engine.Push(context.Background(), "test", "images/logo.png", opts)
	require.NoError(t, err)
	assert.False(t, result.Failed)
	assert.Equal(t, 1, client.Calls("DeleteLayoutAsset"))
	assert.Equal(t, 1, client.Calls("UploadLayoutAsset"))
	assert.NotEqual(t, 4, result.Resource.RemoteID())
}

func TestPushMissingLocalFileIsHard(t *testing.T) {
	client := newFakeClient()
	client.layouts = []voog.Layout{{ID: 1, Title: "Front page"}}
	engine, _, _ := newTestEngine(t, client)

	_, err := engine.Push(context.Background(), "test", "layouts/front_page.tpl", testOptions)
	assert.Error(t, err)
	assert.Equal(t, 0, client.Calls("UpdateLayout"))
}

func TestAddThenRemove(t *testing.T) {
	client := newFakeClient()
	engine, fs, _ := newTestEngine(t, client)
	ctx := context.Background()

	result, err := engine.AddFile(ctx, "test", "stylesheets/new.css", testOptions)
	require.NoError(t, err)
	require.False(t, result.Failed)
	assert.Equal(t, "stylesheets/new.css", result.File)

	exists, err := afero.Exists(fs, "/site/stylesheets/new.css")
	require.NoError(t, err)
	assert.True(t, exists)

	result, err = engine.RemoveFile(ctx, "test", "stylesheets/new.css", testOptions)
	require.NoError(t, err)
	assert.False(t, result.Failed)

	assert.Equal(t, 1, client.Calls("CreateLayoutAsset"))
	assert.Equal(t, 1, client.Calls("DeleteLayoutAsset"))
	exists, err = afero.Exists(fs, "/site/stylesheets/new.css")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestAddFileFromBareFilename(t *testing.T) {
	client := newFakeClient()
	engine, fs, _ := newTestEngine(t, client)
	ctx := context.Background()

	result, err := engine.AddFile(ctx, "test", "Front_page.tpl", testOptions)
	require.NoError(t, err)
	require.False(t, result.Failed)
	assert.Equal(t, "layouts/front_page.tpl", result.File)

	require.Len(t, client.createdLayouts, 1)
	assert.Equal(t, "Front page", client.createdLayouts[0].Title)
	assert.Equal(t, "page", client.createdLayouts[0].ContentType)
	assert.False(t, client.createdLayouts[0].Component)

	exists, err := afero.Exists(fs, "/site/layouts/front_page.tpl")
	require.NoError(t, err)
	assert.True(t, exists)

	result, err = engine.AddFile(ctx, "test", "images/logo.png", testOptions)
	require.NoError(t, err)
	assert.False(t, result.Failed)
	assert.Equal(t, 1, client.Calls("UploadLayoutAsset"))
}

func TestAddFileKeepsExistingContents(t *testing.T) {
	client := newFakeClient()
	engine, fs, _ := newTestEngine(t, client)
	require.NoError(t, afero.WriteFile(fs, "/site/components/header.tpl", []byte("<header/>"), 0644))

	result, err := engine.AddFile(context.Background(), "test", "components/header.tpl", testOptions)
	require.NoError(t, err)
	require.False(t, result.Failed)

	require.Len(t, client.createdLayouts, 1)
	assert.Equal(t, "<header/>", client.createdLayouts[0].Body)
	assert.Equal(t, "component", client.createdLayouts[0].ContentType)
	assert.True(t, client.createdLayouts[0].Component)
}

func TestAddFileUnknownType(t *testing.T) {
	client := newFakeClient()
	engine, _, _ := newTestEngine(t, client)

	result, err := engine.AddFile(context.Background(), "test", "README", testOptions)
	require.NoError(t, err)
	assert.True(t, result.Failed)
	assert.Equal(t, MsgUnknownType, result.Message)
}

func TestCreateFileParentByTitle(t *testing.T) {
	client := newFakeClient()
	client.layouts = []voog.Layout{{ID: 5, Title: "Front page"}}
	engine, fs, _ := newTestEngine(t, client)
	require.NoError(t, afero.WriteFile(fs, "/site/layouts/blog.tpl", []byte("blog"), 0644))
	ctx := context.Background()

	opts := testOptions
	opts.ParentTitle = "Nope"
	result, err := engine.CreateFile(ctx, "test", "layouts/blog.tpl", opts)
	require.NoError(t, err)
	assert.True(t, result.Failed)
	assert.Equal(t, MsgParentNotFound, result.Message)

	opts.ParentTitle = "Front page"
	opts.Title = "Blog"
	result, err = engine.CreateFile(ctx, "test", "layouts/blog.tpl", opts)
	require.NoError(t, err)
	require.False(t, result.Failed)
	require.Len(t, client.createdLayouts, 1)
	assert.Equal(t, 5, client.createdLayouts[0].ParentID)
	assert.Equal(t, "Blog", client.createdLayouts[0].Title)
}

func TestCreateFileRemoteErrorIsSoft(t *testing.T) {
	client := newFakeClient()
	client.createErr = errors.New("voog: unprocessable entity")
	engine, fs, _ := newTestEngine(t, client)
	require.NoError(t, afero.WriteFile(fs, "/site/stylesheets/main.css", []byte("a{}"), 0644))

	result, err := engine.CreateFile(context.Background(), "test", "stylesheets/main.css", testOptions)
	require.NoError(t, err)
	assert.True(t, result.Failed)
	assert.Equal(t, MsgUnableToCreate, result.Message)
	assert.ErrorIs(t, result.Err, client.createErr)
}

func TestDeleteFileLeavesLocalFile(t *testing.T) {
	client := newFakeClient()
	client.layouts = []voog.Layout{{ID: 1, Title: "Front page"}}
	engine, fs, _ := newTestEngine(t, client)
	require.NoError(t, afero.WriteFile(fs, "/site/layouts/front_page.tpl", []byte("x"), 0644))

	result, err := engine.DeleteFile(context.Background(), "test", "layouts/front_page.tpl", testOptions)
	require.NoError(t, err)
	assert.False(t, result.Failed)
	assert.Equal(t, 1, client.Calls("DeleteLayout"))

	exists, err := afero.Exists(fs, "/site/layouts/front_page.tpl")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRemoveFileWithoutLocalCopy(t *testing.T) {
	client := newFakeClient()
	client.assets = []voog.LayoutAsset{{ID: 9, Filename: "font.woff", AssetType: "font"}}
	engine, _, _ := newTestEngine(t, client)

	result, err := engine.RemoveFile(context.Background(), "test", "assets/font.woff", testOptions)
	require.NoError(t, err)
	assert.False(t, result.Failed)
	assert.Equal(t, 1, client.Calls("DeleteLayoutAsset"))
}

func TestResolveSite(t *testing.T) {
	engine, _, _ := newTestEngine(t, newFakeClient())

	site, err := engine.ResolveSite("testhost.voog.com", testOptions)
	require.NoError(t, err)
	assert.Equal(t, "test", site.Name)

	opts := testOptions
	opts.Dir = "/elsewhere"
	site, err = engine.ResolveSite("test", opts)
	require.NoError(t, err)
	assert.Equal(t, "/elsewhere", site.Dir)
	assert.Equal(t, "SECRET", site.Token)

	_, err = engine.ResolveSite("unknown", testOptions)
	assert.Error(t, err)
}

func TestResolveSiteWithoutConfig(t *testing.T) {
	engine, _, _ := newTestEngine(t, newFakeClient())
	opts := Options{Scope: config.Scope{ConfigPath: "/nowhere/.voog"}}

	_, err := engine.ResolveSite("test", opts)
	assert.ErrorIs(t, err, config.ErrConfigNotFound)

	opts.Host = "other.voog.com"
	opts.Token = "TOKEN"
	site, err := engine.ResolveSite("other", opts)
	require.NoError(t, err)
	assert.Equal(t, "other.voog.com", site.Host)
}

func TestPushEmptyLayout(t *testing.T) {
	client := newFakeClient()
	client.layouts = []voog.Layout{{ID: 1, Title: "Front page", Body: "old"}}
	engine, fs, _ := newTestEngine(t, client)
	require.NoError(t, afero.WriteFile(fs, "/site/layouts/front_page.tpl", []byte{}, 0644))

	result, err := engine.Push(context.Background(), "test", "layouts/front_page.tpl", testOptions)
	require.NoError(t, err)
	assert.False(t, result.Failed)
	assert.Equal(t, 1, client.Calls("UpdateLayout"))
	assert.Equal(t, "", client.layoutBody(1))
}

func TestPathsOutsideSiteDirectory(t *testing.T) {
	client := newFakeClient()
	client.assets = []voog.LayoutAsset{{ID: 9, Filename: "x.css", AssetType: "stylesheet", Editable: true}}
	engine, fs, _ := newTestEngine(t, client)
	require.NoError(t, afero.WriteFile(fs, "/x.css", []byte("keep me"), 0644))
	ctx := context.Background()

	result, err := engine.RemoveFile(ctx, "test", "../x.css", testOptions)
	require.NoError(t, err)
	assert.True(t, result.Failed)
	assert.Equal(t, MsgNotFound, result.Message)

	result, err = engine.AddFile(ctx, "test", "stylesheets/../../y.css", testOptions)
	require.NoError(t, err)
	assert.True(t, result.Failed)

	result, err = engine.Pull(ctx, "test", "../../x.css", testOptions)
	require.NoError(t, err)
	assert.Equal(t, MsgNotFound, result.Message)

	contents, err := afero.ReadFile(fs, "/x.css")
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(contents))
	exists, err := afero.Exists(fs, "/y.css")
	require.NoError(t, err)
	assert.False(t, exists)

	assert.Equal(t, 0, client.Calls("DeleteLayoutAsset"))
	assert.Equal(t, 0, client.Calls("CreateLayoutAsset"))
	assert.Equal(t, 0, client.Calls("ListAllLayoutAssets"))
}
