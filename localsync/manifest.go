package localsync

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
)

const ManifestName = "manifest2.json"

// Manifest is a snapshot of what's on the site, for humans to look at.  Nothing reads it back.
type Manifest struct {
	Layouts []ManifestLayout `json:"layouts"`
	Assets  []ManifestAsset  `json:"assets"`
}

type ManifestLayout struct {
	Title       string       `json:"title"`
	Type        ResourceType `json:"type"`
	File        string       `json:"file"`
	ContentType string       `json:"content_type"`
	Component   bool         `json:"component"`
}

type ManifestAsset struct {
	Filename    string       `json:"filename"`
	Type        ResourceType `json:"type"`
	File        string       `json:"file"`
	ContentType string       `json:"content_type"`
}

func BuildManifest(layouts []Layout, assets []Asset) Manifest {
	m := Manifest{
		Layouts: make([]ManifestLayout, 0, len(layouts)),
		Assets:  make([]ManifestAsset, 0, len(assets)),
	}
	for _, l := range layouts {
		m.Layouts = append(m.Layouts, ManifestLayout{
			Title:       l.Title,
			Type:        l.Type(),
			File:        l.RelativePath(),
			ContentType: l.ContentType,
			Component:   l.Component,
		})
	}
	for _, a := range assets {
		m.Assets = append(m.Assets, ManifestAsset{
			Filename:    a.Filename,
			Type:        a.Type(),
			File:        a.RelativePath(),
			ContentType: a.ContentType,
		})
	}
	return m
}

// WriteManifest lists the site and writes manifest2.json into its directory.
func (b *BatchRunner) WriteManifest(ctx context.Context, site string, opts Options) (Manifest, error) {
	s, err := b.Engine.connect(site, opts)
	if err != nil {
		return Manifest{}, err
	}
	l, err := b.listAll(ctx, s)
	if err != nil {
		return Manifest{}, err
	}
	if err := b.Engine.writeManifest(s, l); err != nil {
		return Manifest{}, err
	}
	return BuildManifest(l.layouts, l.assets), nil
}

func (e *Engine) writeManifest(s *session, l listing) error {
	contents, err := json.MarshalIndent(BuildManifest(l.layouts, l.assets), "", "  ")
	if err != nil {
		return fmt.Errorf("localsync: couldn't encode manifest: %w", err)
	}
	return e.writeFile(filepath.Join(s.root, ManifestName), append(contents, '\n'))
}
