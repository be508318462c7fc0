package fs

import (
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"
)

// Inferrer resolves the missing extension of a path by inspecting sibling
// files sharing its stem. saga_cmd may write a logical output under several
// related extensions, so the caller cannot always know the suffix up front.
type Inferrer struct{}

// NewInferrer creates an extension inferrer.
func NewInferrer() *Inferrer {
	return &Inferrer{}
}

// Resolve returns path with an inferred extension appended. Priority:
// exactly one of {.shp, .sdat} among same-stem siblings wins; with both or
// neither present the largest sibling's suffix wins; with no siblings the
// path is returned unchanged.
func (i *Inferrer) Resolve(path string) (string, error) {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	dir := filepath.Dir(path)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", zerr.Wrap(err, "failed to list sibling files")
	}

	var siblings []string
	hasShp, hasSdat := false, false
	for _, e := range entries {
		name := e.Name()
		ext := filepath.Ext(name)
		if strings.TrimSuffix(name, ext) != stem {
			continue
		}
		siblings = append(siblings, filepath.Join(dir, name))
		switch ext {
		case ".shp":
			hasShp = true
		case ".sdat":
			hasSdat = true
		}
	}

	switch {
	case len(siblings) == 0:
		return path, nil
	case hasShp && !hasSdat:
		return path + ".shp", nil
	case hasSdat && !hasShp:
		return path + ".sdat", nil
	default:
		return path + largestSuffix(siblings), nil
	}
}

func largestSuffix(paths []string) string {
	var best string
	var bestSize int64 = -1
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			continue
		}
		if info.Size() > bestSize {
			bestSize = info.Size()
			best = filepath.Ext(p)
		}
	}
	return best
}
