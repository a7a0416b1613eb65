package localsync

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/toothbrush/voog-kit/config"
	"github.com/toothbrush/voog-kit/voog"
)

// SiteStore is where sites are looked up by name or host.
type SiteStore interface {
	SiteByName(name string, scope config.Scope) (*config.Site, error)
}

// Engine pulls and pushes single files between a site directory and the remote site.
type Engine struct {
	Store     SiteStore
	Fs        afero.Fs
	NewClient func(site config.Site) (Client, error)
	Logger    logrus.FieldLogger

	// PageSize is used for every listing; listings are always walked to the end.
	PageSize int
}

func NewEngine(store SiteStore, fs afero.Fs, logger logrus.FieldLogger) *Engine {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Engine{
		Store:     store,
		Fs:        fs,
		NewClient: NewAPIClient,
		Logger:    logger,
		PageSize:  voog.DefaultPageSize,
	}
}

// session is one resolved site plus a client to talk to it.
type session struct {
	site   config.Site
	client Client
	root   string
}

func (s *session) localPath(relativePath string) string {
	folder, filename := RelativePathParts(relativePath)
	return filepath.Join(s.root, folder, filename)
}

func (e *Engine) pageSize() int {
	if e.PageSize < 1 {
		return voog.DefaultPageSize
	}
	return e.PageSize
}

// ResolveSite looks siteName up in the store and applies the overrides from opts.  A site the
// store doesn't know about is fine as long as opts supplies both host and token.
func (e *Engine) ResolveSite(siteName string, opts Options) (config.Site, error) {
	site := config.Site{Name: siteName}

	if e.Store != nil {
		stored, err := e.Store.SiteByName(siteName, opts.Scope)
		transient := opts.Host != "" && opts.Token != ""
		switch {
		case err != nil && !(errors.Is(err, config.ErrConfigNotFound) && transient):
			return config.Site{}, fmt.Errorf("localsync: couldn't look up site %q: %w", siteName, err)
		case stored != nil:
			site = *stored
		}
	}

	site = site.Merge(config.Site{Host: opts.Host, Token: opts.Token, Dir: opts.Dir})
	if site.Host == "" || site.Token == "" {
		return config.Site{}, fmt.Errorf("localsync: site %q not found, register it or pass host and token", siteName)
	}

	return site, nil
}

func (e *Engine) connect(siteName string, opts Options) (*session, error) {
	site, err := e.ResolveSite(siteName, opts)
	if err != nil {
		return nil, err
	}

	root := "."
	if site.Dir != "" {
		root, err = homedir.Expand(site.Dir)
		if err != nil {
			return nil, fmt.Errorf("localsync: unable to expand homedir: %w", err)
		}
	}

	newClient := e.NewClient
	if newClient == nil {
		newClient = NewAPIClient
	}
	client, err := newClient(site)
	if err != nil {
		return nil, fmt.Errorf("localsync: couldn't instantiate API client for %s: %w", site.Key(), err)
	}

	return &session{site: site, client: client, root: root}, nil
}
