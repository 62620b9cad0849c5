package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ppiankov/acevents/internal/model"
	"github.com/stretchr/testify/require"
)

func mentionsN(n int) []model.EventMention {
	out := make([]model.EventMention, n)
	for i := range out {
		out[i] = model.EventMention{Text: fmt.Sprintf("事件提及%04d", i), Type: model.EventType(i % 8)}
	}
	return out
}

func negativesN(n int) []model.NegativeExample {
	out := make([]model.NegativeExample, n)
	for i := range out {
		out[i] = model.NegativeExample{Text: fmt.Sprintf("普通句子%04d。", i)}
	}
	return out
}

func seed(v int64) *int64 { return &v }

func TestAssemble_SplitSizes(t *testing.T) {
	ds := NewAssembler(400, seed(7)).Assemble(mentionsN(600), negativesN(1000))

	require.Equal(t, 1000, ds.Len())
	require.Equal(t, model.SplitSizes{Train: 800, Dev: 100, Test: 100}, ds.Sizes())

	counts := model.CountTypes(ds.Train, ds.Dev, ds.Test)
	require.Equal(t, 400, counts[model.NonEvent])
}

func TestAssemble_FewerNegativesThanCap(t *testing.T) {
	ds := NewAssembler(400, seed(1)).Assemble(mentionsN(50), negativesN(350))

	require.Equal(t, 400, ds.Len())
	require.Equal(t, 350, model.CountTypes(ds.Train, ds.Dev, ds.Test)[model.NonEvent])
}

func TestAssemble_UnionAndDisjoint(t *testing.T) {
	mentions := mentionsN(123)
	negatives := negativesN(77)

	want := make(map[model.LabeledRecord]int)
	for _, m := range mentions {
		want[m.Record()]++
	}
	for _, n := range negatives {
		want[n.Record()]++
	}

	ds := NewAssembler(400, seed(3)).Assemble(mentions, negatives)
	require.Equal(t, 20, len(ds.Dev))
	require.Equal(t, 20, len(ds.Test))

	got := make(map[model.LabeledRecord]int)
	for _, split := range [][]model.LabeledRecord{ds.Train, ds.Dev, ds.Test} {
		for _, r := range split {
			got[r]++
		}
	}
	require.Equal(t, want, got)
}

func TestAssemble_SeedReproducible(t *testing.T) {
	a := NewAssembler(10, seed(42)).Assemble(mentionsN(30), negativesN(50))
	b := NewAssembler(10, seed(42)).Assemble(mentionsN(30), negativesN(50))
	require.Equal(t, a, b)

	asm := NewAssembler(10, nil)
	c := NewAssembler(10, seed(asm.Seed())).Assemble(mentionsN(30), negativesN(50))
	require.Equal(t, asm.Assemble(mentionsN(30), negativesN(50)), c)
}

func TestAssemble_ZeroCap(t *testing.T) {
	ds := NewAssembler(0, seed(1)).Assemble(mentionsN(10), negativesN(5))
	require.Equal(t, 10, ds.Len())
	require.Zero(t, model.CountTypes(ds.Train, ds.Dev, ds.Test)[model.NonEvent])
}

func TestSplit_SmallPools(t *testing.T) {
	tests := []struct {
		total int
		want  model.SplitSizes
	}{
		{0, model.SplitSizes{}},
		{9, model.SplitSizes{Train: 9}},
		{10, model.SplitSizes{Train: 8, Dev: 1, Test: 1}},
		{19, model.SplitSizes{Train: 17, Dev: 1, Test: 1}},
		{1005, model.SplitSizes{Train: 805, Dev: 100, Test: 100}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.total), func(t *testing.T) {
			pool := make([]model.LabeledRecord, tt.total)
			require.Equal(t, tt.want, Split(pool).Sizes())
		})
	}
}

func TestWriter_WriteAndLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	ds := NewAssembler(400, seed(5)).Assemble(mentionsN(20), negativesN(10))

	w := NewWriter(dir)
	require.NoError(t, w.Write(ds))

	train, dev, test := w.Paths()
	for path, want := range map[string][]model.LabeledRecord{train: ds.Train, dev: ds.Dev, test: ds.Test} {
		got, err := LoadRecords(path)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	raw, err := os.ReadFile(test)
	require.NoError(t, err)
	require.Equal(t, ds.Test[0].Line()+"\n"+ds.Test[1].Line()+"\n"+ds.Test[2].Line()+"\n", string(raw))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)
}

func TestWriter_OverwritesPreviousRun(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	require.NoError(t, w.Write(NewAssembler(0, seed(1)).Assemble(mentionsN(30), nil)))
	require.NoError(t, w.Write(NewAssembler(0, seed(1)).Assemble(mentionsN(10), nil)))

	train, _, _ := w.Paths()
	got, err := LoadRecords(train)
	require.NoError(t, err)
	require.Len(t, got, 8)
}

func TestWriter_NoPartialOutput(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	err := NewWriter(filepath.Join(blocker, "data")).Write(Split(make([]model.LabeledRecord, 10)))
	require.Error(t, err)

	entries, err := os.ReadDir(base)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestWriter_DirectoryTargetLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, DevFile, "keep"), 0755))

	err := NewWriter(dir).Write(Split(make([]model.LabeledRecord, 10)))
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, DevFile, entries[0].Name())

	_, err = os.Stat(filepath.Join(dir, DevFile, "keep"))
	require.NoError(t, err)
}

// failRenameTo makes renames of a staged file onto name fail for the rest of the test
func failRenameTo(t *testing.T, name string) {
	t.Helper()
	orig := rename
	rename = func(src, dst string) error {
		if filepath.Base(dst) == name && !strings.HasSuffix(src, ".bak") {
			return errors.New("injected rename failure")
		}
		return orig(src, dst)
	}
	t.Cleanup(func() { rename = orig })
}

func TestWriter_FailedCommitRestoresPreviousRun(t *testing.T) {
	tests := []struct {
		name     string
		failOn   string
		manifest bool
	}{
		{name: "third split", failOn: TestFile},
		{name: "manifest", failOn: "manifest.json", manifest: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			w := NewWriter(dir)

			previous := NewAssembler(0, seed(1)).Assemble(mentionsN(30), nil)
			require.NoError(t, w.Write(previous))

			failRenameTo(t, tt.failOn)

			var extras []Extra
			if tt.manifest {
				extras = append(extras, Extra{Name: "manifest.json", Data: []byte("{}\n")})
			}
			err := w.Write(NewAssembler(0, seed(2)).Assemble(mentionsN(50), nil), extras...)
			require.Error(t, err)

			train, dev, test := w.Paths()
			for path, want := range map[string][]model.LabeledRecord{train: previous.Train, dev: previous.Dev, test: previous.Test} {
				got, err := LoadRecords(path)
				require.NoError(t, err)
				require.Equal(t, want, got)
			}

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			require.Len(t, entries, 3)
		})
	}
}

func TestWriter_CommitsExtras(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	require.NoError(t, w.Write(Split(make([]model.LabeledRecord, 0)), Extra{Name: "manifest.json", Data: []byte(`{"total":0}`)}))
	require.NoError(t, w.Write(Split(make([]model.LabeledRecord, 0)), Extra{Name: "manifest.json", Data: []byte(`{"total":1}`)}))

	data, err := os.ReadFile(filepath.Join(dir, "manifest.json"))
	require.NoError(t, err)
	require.Equal(t, `{"total":1}`, string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 4)
}

func TestLoadRecords_ReportsBadLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(path, []byte("好的文本\t0\n坏行\n另一行\t9\n"), 0644))

	records, err := LoadRecords(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "bad.txt:2")
	require.Contains(t, err.Error(), "bad.txt:3")
	require.Equal(t, []model.LabeledRecord{{Text: "好的文本", Type: model.Life}}, records)
}
