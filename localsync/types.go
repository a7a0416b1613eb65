package localsync

import (
	"path"

	"github.com/toothbrush/voog-kit/config"
	"github.com/toothbrush/voog-kit/voog"
)

type ResourceType string

const (
	LayoutType     ResourceType = "layout"
	ComponentType  ResourceType = "component"
	AssetType      ResourceType = "asset"
	ImageType      ResourceType = "image"
	JavascriptType ResourceType = "javascript"
	StylesheetType ResourceType = "stylesheet"
)

// IsLayout is true for both layouts and components, which share an endpoint.
func (t ResourceType) IsLayout() bool {
	return t == LayoutType || t == ComponentType
}

// Resource is something on the remote end that maps onto exactly one local file.  It's either
// a Layout or an Asset; switch on the concrete type.
type Resource interface {
	RemoteID() int
	Type() ResourceType
	RelativePath() string
}

type Layout struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Component   bool   `json:"component"`
	ContentType string `json:"content_type,omitempty"`
	ParentID    int    `json:"parent_id,omitempty"`
	Body        string `json:"-"`
}

func (l Layout) RemoteID() int { return l.ID }

func (l Layout) Type() ResourceType {
	if l.Component {
		return ComponentType
	}
	return LayoutType
}

func (l Layout) RelativePath() string {
	return path.Join(TypeToFolder(l.Type()), NormalizeTitle(l.Title)+".tpl")
}

type Asset struct {
	ID          int    `json:"id"`
	Filename    string `json:"filename"`
	AssetType   string `json:"asset_type"`
	Editable    bool   `json:"editable"`
	ContentType string `json:"content_type,omitempty"`
	PublicURL   string `json:"public_url,omitempty"`
	Data        string `json:"-"`
}

func (a Asset) RemoteID() int { return a.ID }

func (a Asset) Type() ResourceType {
	switch t := ResourceType(a.AssetType); t {
	case StylesheetType, ImageType, JavascriptType:
		return t
	default:
		return AssetType
	}
}

func (a Asset) RelativePath() string {
	return path.Join(TypeToFolder(a.Type()), a.Filename)
}

func layoutFromRemote(l voog.Layout) Layout {
	return Layout{
		ID:          l.ID,
		Title:       l.Title,
		Component:   l.Component,
		ContentType: l.ContentType,
		ParentID:    l.ParentID,
		Body:        l.Body,
	}
}

func assetFromRemote(a voog.LayoutAsset) Asset {
	return Asset{
		ID:          a.ID,
		Filename:    a.Filename,
		AssetType:   a.AssetType,
		Editable:    a.Editable,
		ContentType: a.ContentType,
		PublicURL:   a.PublicURL,
		Data:        a.Data,
	}
}

const (
	MsgNotFound         = "File not found"
	MsgUnableToUpdate   = "Unable to update file!"
	MsgUnableToCreate   = "Unable to create file!"
	MsgUnableToDownload = "Unable to download file!"
	MsgUnknownType      = "Unable to determine file type!"
	MsgParentNotFound   = "Parent layout not found!"
)

// Result is the outcome of one file operation.  Expected per-file problems (the file isn't on
// the remote, we refuse to overwrite it, the server won't create it) come back as a Result with
// Failed set, never as an error.  Err carries the underlying cause when there is one.
type Result struct {
	File     string   `json:"file"`
	Resource Resource `json:"resource,omitempty"`
	Failed   bool     `json:"failed,omitempty"`
	Message  string   `json:"message,omitempty"`
	Err      error    `json:"-"`
}

func succeeded(file string, r Resource) Result {
	return Result{File: file, Resource: r}
}

func failed(file string, message string) Result {
	return Result{File: file, Failed: true, Message: message}
}

// Options carries per-call settings.  Host, Token and Dir override whatever the config store
// says about the site.
type Options struct {
	config.Scope

	Host  string
	Token string
	Dir   string

	// Allow replacing non-editable assets by deleting and re-uploading them.
	Overwrite bool

	// Used when creating layouts.
	Title       string
	ContentType string
	ParentID    int
	ParentTitle string

	// Also write manifest2.json when pulling a whole site.
	WriteManifest bool
}
