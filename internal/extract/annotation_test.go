package extract

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ppiankov/acevents/internal/model"
	"github.com/stretchr/testify/require"
)

const sampleAPF = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE source_file SYSTEM "apf.v5.1.1.dtd">
<source_file URI="CBS20001001.1000.0041.sgm" SOURCE="broadcast news" TYPE="text" AUTHOR="LDC" ENCODING="UTF-8">
<document DOCID="CBS20001001.1000.0041">
  <entity ID="CBS20001001.1000.0041-E1" TYPE="PER" SUBTYPE="Individual" CLASS="SPC">
    <entity_mention ID="CBS20001001.1000.0041-E1-1" TYPE="NAM">
      <extent><charseq START="10" END="11">他</charseq></extent>
    </entity_mention>
  </entity>
  <event ID="CBS20001001.1000.0041-EV1" TYPE="Life" SUBTYPE="Die" MODALITY="Asserted">
    <event_mention ID="CBS20001001.1000.0041-EV1-1">
      <extent><charseq START="10" END="15">他于今天去世</charseq></extent>
      <ldc_scope><charseq START="0" END="20">据报道他于今天去世</charseq></ldc_scope>
      <anchor><charseq START="14" END="15">去世</charseq></anchor>
    </event_mention>
  </event>
  <event ID="CBS20001001.1000.0041-EV2" TYPE="Conflict" SUBTYPE="Attack">
    <event_mention ID="CBS20001001.1000.0041-EV2-1">
      <extent><charseq START="30" END="40">武装分子
	袭击了 车队</charseq></extent>
    </event_mention>
    <event_mention ID="CBS20001001.1000.0041-EV2-2">
      <extent><charseq START="50" END="51">袭击</charseq></extent>
    </event_mention>
  </event>
</document>
</source_file>
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestAnnotationExtractor_SingleLifeMention(t *testing.T) {
	doc := `<source_file><document>
<event TYPE="Life"><event_mention><extent><charseq>他于今天去世</charseq></extent></event_mention></event>
</document></source_file>`

	mentions, err := NewAnnotationExtractor().ExtractReader(strings.NewReader(doc), "inline")
	require.NoError(t, err)
	require.Equal(t, []model.EventMention{{Text: "他于今天去世", Type: model.Life}}, mentions)
}

func TestAnnotationExtractor_DocumentOrderAndNormalization(t *testing.T) {
	path := writeFile(t, t.TempDir(), "CBS20001001.1000.0041.apf.xml", sampleAPF)

	mentions, err := NewAnnotationExtractor().Extract(path)
	require.NoError(t, err)

	want := []model.EventMention{
		{Text: "他于今天去世", Type: model.Life},
		{Text: "武装分子袭击了车队", Type: model.Conflict},
		{Text: "袭击", Type: model.Conflict},
	}
	require.Equal(t, want, mentions)
}

func TestAnnotationExtractor_Deterministic(t *testing.T) {
	path := writeFile(t, t.TempDir(), "doc.apf.xml", sampleAPF)
	extractor := NewAnnotationExtractor()

	first, err := extractor.Extract(path)
	require.NoError(t, err)
	second, err := extractor.Extract(path)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestAnnotationExtractor_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{
			name:    "missing document",
			doc:     `<source_file><event TYPE="Life"/></source_file>`,
			wantErr: ErrMissingNode,
		},
		{
			name:    "unknown type",
			doc:     `<source_file><document><event ID="EV9" TYPE="Weather"><event_mention><extent><charseq>下雨了啊</charseq></extent></event_mention></event></document></source_file>`,
			wantErr: model.ErrUnknownEventType,
		},
		{
			name:    "missing charseq",
			doc:     `<source_file><document><event TYPE="Life"><event_mention ID="M1"><anchor/></event_mention></event></document></source_file>`,
			wantErr: ErrMissingNode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAnnotationExtractor().ExtractReader(strings.NewReader(tt.doc), tt.name)
			require.Error(t, err)
			require.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestAnnotationExtractor_MalformedXML(t *testing.T) {
	_, err := NewAnnotationExtractor().ExtractReader(strings.NewReader("<source_file><document>"), "broken")
	require.Error(t, err)
}

func TestAnnotationExtractor_MissingFile(t *testing.T) {
	_, err := NewAnnotationExtractor().Extract(filepath.Join(t.TempDir(), "absent.apf.xml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestFilterShort(t *testing.T) {
	mentions := []model.EventMention{
		{Text: "袭击", Type: model.Conflict},
		{Text: "他于今天去世", Type: model.Life},
		{Text: "袭击", Type: model.Conflict},
		{Text: "开会", Type: model.Contact},
		{Text: "武装分子袭击了车队", Type: model.Conflict},
		{Text: "辞职", Type: model.Personnel},
	}

	kept, dropped := FilterShort(mentions)
	require.Equal(t, 4, dropped)
	require.Equal(t, []model.EventMention{
		{Text: "他于今天去世", Type: model.Life},
		{Text: "武装分子袭击了车队", Type: model.Conflict},
	}, kept)

	for _, m := range kept {
		require.Greater(t, model.TextLen(m.Text), 2)
		require.True(t, m.Type.Valid())
	}
}

func TestNormalizeMention(t *testing.T) {
	require.Equal(t, "abc", NormalizeMention(" a\tb\r\nc "))
	require.Equal(t, "a\tb", NormalizeRaw(" a\tb\n"))
}
