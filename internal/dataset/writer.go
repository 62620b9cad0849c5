package dataset

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ppiankov/acevents/internal/listio"
	"github.com/ppiankov/acevents/internal/model"
)

// Split file names inside the output directory
const (
	TrainFile = "train.txt"
	DevFile   = "dev.txt"
	TestFile  = "test.txt"
)

// rename is swapped in tests to simulate failures while committing
var rename = os.Rename

// Extra is a file committed together with the splits, such as a run manifest
type Extra struct {
	Name string
	Data []byte
}

// Writer persists a Dataset as three record files
type Writer struct {
	dir string
}

// NewWriter creates a writer targeting dir, created on demand
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Paths returns the train, dev and test file paths
func (w *Writer) Paths() (train, dev, test string) {
	return filepath.Join(w.dir, TrainFile), filepath.Join(w.dir, DevFile), filepath.Join(w.dir, TestFile)
}

// pending tracks one file through staging and commit
type pending struct {
	target string
	tmp    string
	backup string // Previous target moved aside, restored on rollback
	placed bool
}

// Write stages every split, plus any extras, in temporary files and commits
// them together. Files from an earlier run are moved aside first and put
// back if any rename fails, so the directory holds either the complete new
// output or the previous one.
func (w *Writer) Write(ds *model.Dataset, extras ...Extra) error {
	train, dev, test := w.Paths()
	splits := []struct {
		path    string
		records []model.LabeledRecord
	}{
		{train, ds.Train},
		{dev, ds.Dev},
		{test, ds.Test},
	}

	targets := make([]string, 0, len(splits)+len(extras))
	for _, s := range splits {
		targets = append(targets, s.path)
	}
	for _, e := range extras {
		targets = append(targets, filepath.Join(w.dir, e.Name))
	}
	for _, target := range targets {
		if info, err := os.Lstat(target); err == nil && info.IsDir() {
			return fmt.Errorf("write %s: target is a directory", filepath.Base(target))
		}
	}

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	files := make([]pending, 0, len(targets))
	fail := func(err error) error {
		rollback(files)
		return err
	}

	for _, s := range splits {
		lines := make([]string, len(s.records))
		for i, r := range s.records {
			lines[i] = r.Line()
		}

		tmp, err := stage(w.dir, filepath.Base(s.path), func(path string) error {
			return listio.Save1D(path, lines)
		})
		if tmp != "" {
			files = append(files, pending{target: s.path, tmp: tmp})
		}
		if err != nil {
			return fail(fmt.Errorf("write %s: %w", filepath.Base(s.path), err))
		}
	}

	for _, e := range extras {
		tmp, err := stage(w.dir, e.Name, func(path string) error {
			return os.WriteFile(path, e.Data, 0644)
		})
		if tmp != "" {
			files = append(files, pending{target: filepath.Join(w.dir, e.Name), tmp: tmp})
		}
		if err != nil {
			return fail(fmt.Errorf("write %s: %w", e.Name, err))
		}
	}

	for i := range files {
		f := &files[i]

		if _, err := os.Lstat(f.target); err == nil {
			f.backup = f.tmp + ".bak"
			if err := rename(f.target, f.backup); err != nil {
				f.backup = ""
				return fail(fmt.Errorf("move aside %s: %w", filepath.Base(f.target), err))
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fail(fmt.Errorf("stat %s: %w", filepath.Base(f.target), err))
		}

		if err := rename(f.tmp, f.target); err != nil {
			return fail(fmt.Errorf("rename %s: %w", filepath.Base(f.target), err))
		}
		f.placed = true
	}

	for _, f := range files {
		if f.backup != "" {
			_ = os.Remove(f.backup)
		}
	}
	return nil
}

// rollback undoes a partial commit in reverse order and removes leftovers
func rollback(files []pending) {
	for i := len(files) - 1; i >= 0; i-- {
		f := files[i]
		if f.placed {
			_ = os.Remove(f.target)
		}
		if f.backup != "" {
			_ = rename(f.backup, f.target)
		}
		_ = os.Remove(f.tmp)
	}
}

func stage(dir, name string, write func(path string) error) (string, error) {
	f, err := os.CreateTemp(dir, "."+name+".tmp-*")
	if err != nil {
		return "", err
	}
	tmp := f.Name()
	if err := f.Chmod(0644); err != nil {
		_ = f.Close()
		return tmp, err
	}
	if err := f.Close(); err != nil {
		return tmp, err
	}
	return tmp, write(tmp)
}

// LoadRecords reads a split file back into records
func LoadRecords(path string) ([]model.LabeledRecord, error) {
	lines, err := listio.Load1D(path)
	if err != nil {
		return nil, err
	}

	records := make([]model.LabeledRecord, 0, len(lines))
	var errs []error
	for i, line := range lines {
		r, err := model.ParseRecord(line)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s:%d: %w", path, i+1, err))
			continue
		}
		records = append(records, r)
	}

	return records, errors.Join(errs...)
}
