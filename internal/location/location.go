// Package location classifies and joins document locations, which are either URLs or file paths.
package location

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// Kind is the kind of a document location.
type Kind int

const (
	KindFilePath Kind = iota
	KindURL
)

// Classification is a classified location.
type Classification struct {
	Kind     Kind
	Original string
	// ParsedURL is set for URLs.
	ParsedURL *url.URL
}

// Classify determines whether loc is a URL or a file path. Windows drive letters are not schemes.
func Classify(loc string) (*Classification, error) {
	u, err := url.Parse(loc)
	if err != nil {
		if isWindowsAbsolutePath(loc) {
			return &Classification{Kind: KindFilePath, Original: loc}, nil
		}
		return nil, fmt.Errorf("invalid location %q: %w", loc, err)
	}
	if len(u.Scheme) > 1 {
		return &Classification{Kind: KindURL, Original: loc, ParsedURL: u}, nil
	}
	return &Classification{Kind: KindFilePath, Original: loc}, nil
}

// IsURL reports whether loc is a URL.
func IsURL(loc string) bool {
	c, err := Classify(loc)
	return err == nil && c.Kind == KindURL
}

// Normalize returns the canonical form of loc. URLs are kept as given, file paths are cleaned and
// use forward slashes.
func Normalize(loc string) string {
	if loc == "" || IsURL(loc) {
		return loc
	}
	return path.Clean(filepath.ToSlash(loc))
}

// JoinWith resolves relative against the classified location. URLs use URL resolution, file
// paths are joined to the directory of the original. Absolute relatives are returned normalized.
func (c *Classification) JoinWith(relative string) (string, error) {
	if relative == "" {
		return c.Original, nil
	}

	if c.Kind == KindURL {
		r, err := url.Parse(relative)
		if err != nil {
			return "", fmt.Errorf("invalid relative location %q: %w", relative, err)
		}
		return c.ParsedURL.ResolveReference(r).String(), nil
	}

	if IsURL(relative) {
		return relative, nil
	}
	rel := filepath.ToSlash(relative)
	if strings.HasPrefix(rel, "/") || isWindowsAbsolutePath(relative) {
		return Normalize(relative), nil
	}
	return path.Join(path.Dir(filepath.ToSlash(c.Original)), rel), nil
}

// Join resolves relative against base. An empty base leaves relative as is.
func Join(base, relative string) (string, error) {
	if base == "" {
		return Normalize(relative), nil
	}
	c, err := Classify(base)
	if err != nil {
		return "", err
	}
	joined, err := c.JoinWith(relative)
	if err != nil {
		return "", err
	}
	return Normalize(joined), nil
}

// isWindowsAbsolutePath matches drive letter paths such as C:\specs and UNC paths such as \\server\share.
func isWindowsAbsolutePath(p string) bool {
	if len(p) >= 3 && p[1] == ':' && (p[2] == '\\' || p[2] == '/') {
		return true
	}
	return strings.HasPrefix(p, `\\`)
}
