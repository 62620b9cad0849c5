// Package corpus locates annotation and raw files in an ACE-style corpus tree.
package corpus

import (
	"io/fs"
	"iter"
	"path/filepath"
	"strings"

	"github.com/ppiankov/acevents/internal/model"
)

// Layout describes a corpus root with one subdirectory per genre
type Layout struct {
	Root             string
	Genres           []model.Genre
	AnnotationSuffix string
	RawSuffix        string
}

// LayoutFromConfig builds a Layout from the corpus section of the configuration
func LayoutFromConfig(cfg model.CorpusConfig) Layout {
	return Layout{
		Root:             cfg.Root,
		Genres:           cfg.GenreList(),
		AnnotationSuffix: cfg.AnnotationSuffix,
		RawSuffix:        cfg.RawSuffix,
	}
}

// GenreDir returns the sub-corpus directory of a genre
func (l Layout) GenreDir(genre model.Genre) string {
	return filepath.Join(l.Root, string(genre))
}

// Annotations yields the annotation files of one genre
func (l Layout) Annotations(genre model.Genre) iter.Seq2[string, error] {
	return Discover(l.GenreDir(genre), l.AnnotationSuffix)
}

// RawDocuments yields the raw source files of one genre
func (l Layout) RawDocuments(genre model.Genre) iter.Seq2[string, error] {
	return Discover(l.GenreDir(genre), l.RawSuffix)
}

// Discover walks dir recursively and yields, in lexical order, every regular
// file whose name ends with suffix. Walk errors are yielded once and end the
// sequence.
func Discover(dir, suffix string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		stopped := false
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(d.Name(), suffix) {
				return nil
			}
			if !yield(path, nil) {
				stopped = true
				return fs.SkipAll
			}
			return nil
		})
		if err != nil && !stopped {
			yield("", err)
		}
	}
}
