package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileFinder walks a configured list of search paths looking for an asset by
// stem and extension group, matching case-insensitively per §6.3.
type FileFinder struct {
	SearchPaths []string
}

// Asset-type extension groups (§6.3).
var (
	ImageFiletypes     = []string{"g00", "pdt", "anm"}
	SoundFiletypes     = []string{"wav", "nwa", "ogg", "mp3"}
	KoeArchiveFiletypes = []string{"ovk", "nwk", "koe"}
	KoeLooseFiletypes  = []string{"ogg"}
)

// NewFileFinder builds a finder from a Gameexe's __GAMEPATH and FOLDNAME.*
// entries, in declaration order (§6.2).
func NewFileFinder(g *Gameexe) *FileFinder {
	var paths []string
	if base := g.Str("__GAMEPATH", ""); base != "" {
		paths = append(paths, base)
	}
	for _, key := range g.FilterPrefix("FOLDNAME") {
		v, _ := g.Get(key)
		if v.IsString() {
			p := v.Str
			if base := g.Str("__GAMEPATH", ""); base != "" && !filepath.IsAbs(p) {
				p = filepath.Join(base, p)
			}
			paths = append(paths, p)
		}
	}
	return &FileFinder{SearchPaths: paths}
}

// Find walks the search paths for stem.ext (any extension in exts, any
// case), returning the first match.
func (f *FileFinder) Find(stem string, exts []string) (string, error) {
	for _, dir := range f.SearchPaths {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, ext := range exts {
			want := strings.ToLower(stem + "." + ext)
			for _, e := range entries {
				if e.IsDir() {
					continue
				}
				if strings.ToLower(e.Name()) == want {
					return filepath.Join(dir, e.Name()), nil
				}
			}
		}
	}
	return "", fmt.Errorf("config: asset %q (%v) not found in any search path", stem, exts)
}
