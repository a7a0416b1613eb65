package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
	"github.com/toothbrush/voog-kit/config"
	"github.com/toothbrush/voog-kit/internal/termfmt"
	"github.com/toothbrush/voog-kit/localsync"
	"github.com/toothbrush/voog-kit/voog"
	"golang.org/x/term"
	"gopkg.in/dnaeon/go-vcr.v3/recorder"
)

// app is everything a sync command needs, set up from the persistent flags.
type app struct {
	store  *config.Store
	engine *localsync.Engine
	runner *localsync.BatchRunner

	mu       sync.Mutex
	clients  map[string]localsync.Client
	stoppers []func() error
}

func newApp() *app {
	a := &app{
		store:   config.NewStore(afero.NewOsFs()),
		clients: map[string]localsync.Client{},
	}

	a.engine = localsync.NewEngine(a.store, afero.NewOsFs(), logger)
	a.engine.NewClient = a.newClient
	if PageSize > 0 {
		a.engine.PageSize = PageSize
	}

	a.runner = localsync.NewBatchRunner(a.engine)
	a.runner.Concurrency = Concurrency
	if !Debug && term.IsTerminal(int(os.Stderr.Fd())) {
		a.runner.Progress = os.Stderr
	}

	return a
}

// newClient hands out one API client per site, so that all requests of a run share a cassette
// when recording.
func (a *app) newClient(site config.Site) (localsync.Client, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if client, ok := a.clients[site.Host]; ok {
		return client, nil
	}

	api, err := voog.NewAPI(site.Host, site.Token)
	if err != nil {
		return nil, fmt.Errorf("voog-kit: voog API creation failed: %w", err)
	}

	if WithVCR {
		cassette := filepath.Join("fixtures", "voog-"+site.Key())
		stop, err := api.UseRecorder(cassette, recorder.ModeReplayWithNewEpisodes)
		if err != nil {
			return nil, err
		}
		debugLog("recording %s to %s.yaml\n", site.Host, cassette)
		a.stoppers = append(a.stoppers, stop)
	}

	a.clients[site.Host] = api
	return api, nil
}

// Close flushes any recordings.
func (a *app) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	var errs []error
	for _, stop := range a.stoppers {
		errs = append(errs, stop())
	}
	a.stoppers = nil
	return errors.Join(errs...)
}

func configScope() config.Scope {
	return config.Scope{Global: Global, Local: Local, ConfigPath: ConfigPath}
}

func syncOptions() localsync.Options {
	return localsync.Options{
		Scope: configScope(),
		Host:  Host,
		Token: Token,
		Dir:   Dir,
	}
}

func requireSite() (string, error) {
	switch {
	case SiteName != "":
		return SiteName, nil
	case Host != "":
		return Host, nil
	}
	return "", fmt.Errorf("voog-kit: please provide --site, or --host and --token")
}

// eachTarget runs folderOp for arguments naming one of the known folders and fileOp for
// everything else.  Hard errors stop the run.
func eachTarget(
	ctx context.Context,
	targets []string,
	folderOp func(ctx context.Context, folder string) ([]localsync.Result, error),
	fileOp func(ctx context.Context, relativePath string) (localsync.Result, error),
) ([]localsync.Result, error) {
	results := []localsync.Result{}
	for _, target := range targets {
		if _, ok := localsync.FolderToType(filepath.Clean(target)); ok {
			folderResults, err := folderOp(ctx, filepath.Clean(target))
			if err != nil {
				return results, err
			}
			results = append(results, folderResults...)
			continue
		}

		result, err := fileOp(ctx, target)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}

// printResults reports on every file and returns an error if any of them failed.
func printResults(w io.Writer, verb string, results []localsync.Result) error {
	failures := 0
	for _, r := range results {
		if r.Failed {
			failures++
			fmt.Fprintf(w, "%-8s %s: %s\n", termfmt.Fg(termfmt.Red).V("failed"), r.File, r.Message)
			if r.Err != nil {
				debugLog("%s: %v\n", r.File, r.Err)
			}
			continue
		}
		fmt.Fprintf(w, "%-8s %s\n", termfmt.Fg(termfmt.Green).V(verb), r.File)
	}

	if failures > 0 {
		return fmt.Errorf("voog-kit: %d of %d files failed", failures, len(results))
	}
	return nil
}
