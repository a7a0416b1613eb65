package localsync

import (
	"path"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/exp/maps"
)

var folderTypes = map[string]ResourceType{
	"layouts":     LayoutType,
	"components":  ComponentType,
	"assets":      AssetType,
	"images":      ImageType,
	"javascripts": JavascriptType,
	"stylesheets": StylesheetType,
}

// FolderToType maps a top-level folder to the kind of resource it holds.
func FolderToType(folder string) (ResourceType, bool) {
	t, ok := folderTypes[folder]
	return t, ok
}

// TypeToFolder is the inverse of FolderToType.  Asset types we don't know about all end up in
// "assets".
func TypeToFolder(t ResourceType) string {
	switch t {
	case LayoutType:
		return "layouts"
	case ComponentType:
		return "components"
	case ImageType:
		return "images"
	case JavascriptType:
		return "javascripts"
	case StylesheetType:
		return "stylesheets"
	default:
		return "assets"
	}
}

// KnownFolders lists the folders a site directory is made of, sorted.
func KnownFolders() []string {
	folders := maps.Keys(folderTypes)
	slices.Sort(folders)
	return folders
}

// ExtensionToType guesses a type for a file that isn't inside one of the known folders.
// Files without an extension get nothing.
func ExtensionToType(filename string) (ResourceType, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case "":
		return "", false
	case ".js":
		return JavascriptType, true
	case ".css":
		return StylesheetType, true
	case ".jpg", ".jpeg", ".png", ".gif":
		return ImageType, true
	case ".tpl":
		return LayoutType, true
	default:
		return AssetType, true
	}
}

var disallowedTitleChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// NormalizeTitle turns a layout title into the name of its file (minus .tpl).  It's also what
// we compare with when matching a file against remote titles, so it must stay idempotent.
func NormalizeTitle(title string) string {
	return disallowedTitleChars.ReplaceAllString(strings.ToLower(title), "_")
}

// TitleFromFilename makes a best guess at a layout title.  Only the first underscore becomes
// a space, so "main_page_header.tpl" comes back as "main page_header": titles don't survive a
// round trip through NormalizeTitle.
func TitleFromFilename(filename string) string {
	return strings.Replace(trimExt(filename), "_", " ", 1)
}

// RelativePathParts splits "<folder>/<filename>".  Anything nested deeper is ignored; a bare
// filename comes back with an empty folder.
func RelativePathParts(relativePath string) (folder string, filename string) {
	cleaned := path.Clean(filepath.ToSlash(relativePath))
	cleaned = strings.TrimLeft(strings.TrimPrefix(cleaned, "./"), "/")

	parts := strings.Split(cleaned, "/")
	if len(parts) == 1 {
		return "", parts[0]
	}
	return parts[0], parts[1]
}

// IsLocalPath reports whether relativePath stays inside the site directory once cleaned.
func IsLocalPath(relativePath string) bool {
	cleaned := path.Clean(filepath.ToSlash(relativePath))
	return cleaned != ".." && !strings.HasPrefix(cleaned, "../")
}

func trimExt(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}
