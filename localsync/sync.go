package localsync

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/toothbrush/voog-kit/voog"
)

// Pull downloads the remote counterpart of relativePath into the site directory.
func (e *Engine) Pull(ctx context.Context, site string, relativePath string, opts Options) (Result, error) {
	s, err := e.connect(site, opts)
	if err != nil {
		return Result{}, err
	}

	res, err := e.find(ctx, s, relativePath)
	if err != nil {
		return Result{}, err
	}
	if res == nil {
		return failed(relativePath, MsgNotFound), nil
	}

	return e.pullResource(ctx, s, relativePath, res)
}

func (e *Engine) pullResource(ctx context.Context, s *session, relativePath string, res Resource) (Result, error) {
	if !IsLocalPath(relativePath) {
		return failed(relativePath, MsgNotFound), nil
	}
	dest := s.localPath(relativePath)
	log := e.Logger.WithField("file", relativePath)

	switch r := res.(type) {
	case Layout:
		full, err := s.client.GetLayout(ctx, r.ID)
		if err != nil {
			return Result{}, fmt.Errorf("localsync: couldn't fetch layout %d: %w", r.ID, err)
		}
		layout := layoutFromRemote(*full)
		if err := e.writeFile(dest, []byte(layout.Body)); err != nil {
			return Result{}, err
		}
		log.Debug("pulled layout")
		return succeeded(relativePath, layout), nil

	case Asset:
		if r.Editable {
			full, err := s.client.GetLayoutAsset(ctx, r.ID)
			if err != nil {
				return Result{}, fmt.Errorf("localsync: couldn't fetch layout asset %d: %w", r.ID, err)
			}
			asset := assetFromRemote(*full)
			if err := e.writeFile(dest, []byte(asset.Data)); err != nil {
				return Result{}, err
			}
			log.Debug("pulled editable asset")
			return succeeded(relativePath, asset), nil
		}

		err := e.writeStream(dest, func(w io.Writer) error {
			return s.client.Download(ctx, r.PublicURL, w)
		})
		var streamErr *streamError
		if errors.As(err, &streamErr) {
			log.WithError(streamErr.err).Warn("download failed")
			result := failed(relativePath, MsgUnableToDownload)
			result.Resource = r
			result.Err = streamErr.err
			return result, nil
		}
		if err != nil {
			return Result{}, err
		}
		log.Debug("downloaded asset")
		return succeeded(relativePath, r), nil
	}

	return Result{}, fmt.Errorf("localsync: don't know how to pull %T", res)
}

// Push uploads the local file at relativePath over its remote counterpart.
func (e *Engine) Push(ctx context.Context, site string, relativePath string, opts Options) (Result, error) {
	s, err := e.connect(site, opts)
	if err != nil {
		return Result{}, err
	}

	res, err := e.find(ctx, s, relativePath)
	if err != nil {
		return Result{}, err
	}
	if res == nil {
		return failed(relativePath, MsgNotFound), nil
	}

	return e.pushResource(ctx, s, relativePath, res, opts)
}

func (e *Engine) pushResource(ctx context.Context, s *session, relativePath string, res Resource, opts Options) (Result, error) {
	if !IsLocalPath(relativePath) {
		return failed(relativePath, MsgNotFound), nil
	}
	src := s.localPath(relativePath)
	log := e.Logger.WithField("file", relativePath)

	switch r := res.(type) {
	case Layout:
		body, err := afero.ReadFile(e.Fs, src)
		if err != nil {
			return Result{}, fmt.Errorf("localsync: couldn't read %s: %w", src, err)
		}
		updated, err := s.client.UpdateLayout(ctx, r.ID, voog.LayoutPayload{Body: string(body)})
		if err != nil {
			return Result{}, fmt.Errorf("localsync: couldn't update layout %d: %w", r.ID, err)
		}
		r.Body = string(body)
		if updated != nil && updated.ID != 0 {
			r = layoutFromRemote(*updated)
		}
		log.Debug("pushed layout")
		return succeeded(relativePath, r), nil

	case Asset:
		if r.Editable {
			data, err := afero.ReadFile(e.Fs, src)
			if err != nil {
				return Result{}, fmt.Errorf("localsync: couldn't read %s: %w", src, err)
			}
			updated, err := s.client.UpdateLayoutAsset(ctx, r.ID, voog.LayoutAssetPayload{Data: string(data)})
			if err != nil {
				return Result{}, fmt.Errorf("localsync: couldn't update layout asset %d: %w", r.ID, err)
			}
			r.Data = string(data)
			if updated != nil && updated.ID != 0 {
				r = assetFromRemote(*updated)
			}
			log.Debug("pushed editable asset")
			return succeeded(relativePath, r), nil
		}

		if !opts.Overwrite {
			result := failed(relativePath, MsgUnableToUpdate)
			result.Resource = r
			return result, nil
		}

		// Non-editable assets can't be updated in place.  If the upload fails after the
		// delete, the asset is gone remotely until the next successful push.
		f, err := e.Fs.Open(src)
		if err != nil {
			return Result{}, fmt.Errorf("localsync: couldn't open %s: %w", src, err)
		}
		defer f.Close()

		if err := s.client.DeleteLayoutAsset(ctx, r.ID); err != nil {
			return Result{}, fmt.Errorf("localsync: couldn't delete layout asset %d: %w", r.ID, err)
		}
		created, err := s.client.UploadLayoutAsset(ctx, r.Filename, f)
		if err != nil {
			return Result{}, fmt.Errorf("localsync: deleted layout asset %d but couldn't upload its replacement: %w", r.ID, err)
		}
		log.Debug("replaced asset")
		return succeeded(relativePath, assetFromRemote(*created)), nil
	}

	return Result{}, fmt.Errorf("localsync: don't know how to push %T", res)
}

// CreateFile creates a new remote resource out of the local file at relativePath.
func (e *Engine) CreateFile(ctx context.Context, site string, relativePath string, opts Options) (Result, error) {
	s, err := e.connect(site, opts)
	if err != nil {
		return Result{}, err
	}
	return e.createFile(ctx, s, relativePath, opts)
}

func (e *Engine) createFile(ctx context.Context, s *session, relativePath string, opts Options) (Result, error) {
	if !IsLocalPath(relativePath) {
		return failed(relativePath, MsgNotFound), nil
	}
	folder, filename := RelativePathParts(relativePath)
	t, ok := FolderToType(folder)
	if !ok {
		t, ok = ExtensionToType(filename)
	}
	if !ok {
		return failed(relativePath, MsgUnknownType), nil
	}

	src := s.localPath(relativePath)
	contents, err := afero.ReadFile(e.Fs, src)
	if err != nil {
		return Result{}, fmt.Errorf("localsync: couldn't read %s: %w", src, err)
	}
	log := e.Logger.WithField("file", relativePath)

	if t.IsLayout() {
		payload := voog.LayoutPayload{
			Title:       opts.Title,
			Body:        string(contents),
			Component:   t == ComponentType,
			ContentType: opts.ContentType,
			ParentID:    opts.ParentID,
		}
		if payload.Title == "" {
			payload.Title = TitleFromFilename(filename)
		}
		if payload.ContentType == "" {
			payload.ContentType = "page"
			if payload.Component {
				payload.ContentType = "component"
			}
		}
		if payload.ParentID == 0 && opts.ParentTitle != "" {
			parent, err := e.findLayout(ctx, s, NormalizeTitle(opts.ParentTitle), false)
			if err != nil {
				return Result{}, err
			}
			if parent == nil {
				return failed(relativePath, MsgParentNotFound), nil
			}
			payload.ParentID = parent.ID
		}

		created, err := s.client.CreateLayout(ctx, payload)
		if err != nil {
			log.WithError(err).Warn("couldn't create layout")
			result := failed(relativePath, MsgUnableToCreate)
			result.Err = err
			return result, nil
		}
		log.Debug("created layout")
		return succeeded(relativePath, layoutFromRemote(*created)), nil
	}

	var created *voog.LayoutAsset
	if t == StylesheetType || t == JavascriptType {
		created, err = s.client.CreateLayoutAsset(ctx, voog.LayoutAssetPayload{
			Filename:    filename,
			Data:        string(contents),
			ContentType: contentType(filename),
		})
	} else {
		created, err = s.client.UploadLayoutAsset(ctx, filename, bytes.NewReader(contents))
	}
	if err != nil {
		log.WithError(err).Warn("couldn't create layout asset")
		result := failed(relativePath, MsgUnableToCreate)
		result.Err = err
		return result, nil
	}
	log.Debug("created layout asset")
	return succeeded(relativePath, assetFromRemote(*created)), nil
}

// AddFile creates a file both locally (empty, unless it's already there) and remotely.  name
// can be a relative path or just a filename, in which case the extension decides the folder.
func (e *Engine) AddFile(ctx context.Context, site string, name string, opts Options) (Result, error) {
	if !IsLocalPath(name) {
		return failed(name, MsgNotFound), nil
	}
	s, err := e.connect(site, opts)
	if err != nil {
		return Result{}, err
	}

	folder, filename := RelativePathParts(name)
	t, ok := FolderToType(folder)
	if !ok {
		t, ok = ExtensionToType(filename)
	}
	if !ok {
		return failed(name, MsgUnknownType), nil
	}

	if t.IsLayout() {
		if opts.Title == "" {
			opts.Title = TitleFromFilename(filename)
		}
		filename = NormalizeTitle(trimExt(filename)) + ".tpl"
	}
	relativePath := path.Join(TypeToFolder(t), filename)

	dest := s.localPath(relativePath)
	exists, err := afero.Exists(e.Fs, dest)
	if err != nil {
		return Result{}, fmt.Errorf("localsync: couldn't stat %s: %w", dest, err)
	}
	if !exists {
		if err := e.writeFile(dest, nil); err != nil {
			result := failed(relativePath, MsgUnableToCreate)
			result.Err = err
			return result, nil
		}
	}

	return e.createFile(ctx, s, relativePath, opts)
}

// DeleteFile deletes the remote counterpart of relativePath.  The local file is left alone.
func (e *Engine) DeleteFile(ctx context.Context, site string, relativePath string, opts Options) (Result, error) {
	s, err := e.connect(site, opts)
	if err != nil {
		return Result{}, err
	}
	return e.deleteFile(ctx, s, relativePath)
}

func (e *Engine) deleteFile(ctx context.Context, s *session, relativePath string) (Result, error) {
	res, err := e.find(ctx, s, relativePath)
	if err != nil {
		return Result{}, err
	}
	if res == nil {
		return failed(relativePath, MsgNotFound), nil
	}

	switch r := res.(type) {
	case Layout:
		if err := s.client.DeleteLayout(ctx, r.ID); err != nil {
			return Result{}, fmt.Errorf("localsync: couldn't delete layout %d: %w", r.ID, err)
		}
	case Asset:
		if err := s.client.DeleteLayoutAsset(ctx, r.ID); err != nil {
			return Result{}, fmt.Errorf("localsync: couldn't delete layout asset %d: %w", r.ID, err)
		}
	default:
		return Result{}, fmt.Errorf("localsync: don't know how to delete %T", res)
	}

	e.Logger.WithField("file", relativePath).Debug("deleted remote file")
	return succeeded(relativePath, res), nil
}

// RemoveFile is DeleteFile plus removing the local file.  A local file that's already gone
// is not a problem.
func (e *Engine) RemoveFile(ctx context.Context, site string, relativePath string, opts Options) (Result, error) {
	if !IsLocalPath(relativePath) {
		return failed(relativePath, MsgNotFound), nil
	}
	s, err := e.connect(site, opts)
	if err != nil {
		return Result{}, err
	}

	result, err := e.deleteFile(ctx, s, relativePath)
	if err != nil {
		return Result{}, err
	}

	dest := s.localPath(relativePath)
	if err := e.Fs.Remove(dest); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Result{}, fmt.Errorf("localsync: couldn't remove %s: %w", dest, err)
	}

	return result, nil
}

func contentType(filename string) string {
	if t := mime.TypeByExtension(filepath.Ext(filename)); t != "" {
		return t
	}
	return "application/octet-stream"
}
