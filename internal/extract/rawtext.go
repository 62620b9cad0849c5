package extract

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/ppiankov/acevents/internal/model"
	"golang.org/x/net/html/charset"
)

const (
	postDateClose = "</POSTDATE>"
	postClose     = "</POST>"
)

// RawTextLoader recovers the narrative text of ACE source documents.
// Each genre stores its text differently, see Load.
type RawTextLoader struct {
	encoding string
	logger   *slog.Logger
}

// NewRawTextLoader creates a loader decoding files with the given charset label
func NewRawTextLoader(encoding string, logger *slog.Logger) *RawTextLoader {
	if encoding == "" {
		encoding = "utf-8"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RawTextLoader{encoding: encoding, logger: logger}
}

// Load returns the plain text of the document at path:
//   - bn: the TURN elements under the first child of BODY, concatenated
//   - nw: the text of BODY/TEXT
//   - wl: the raw characters between the first </POSTDATE> and the first </POST>
//
// Spaces and newlines are removed in every case. An unknown genre or a weblog
// without both markers yields empty text and a warning, not an error.
func (l *RawTextLoader) Load(path string, genre model.Genre) (string, error) {
	switch genre {
	case model.GenreBroadcastNews, model.GenreNewswire, model.GenreWeblog:
	default:
		l.logger.Warn("unknown genre, document skipped",
			slog.String("path", path),
			slog.String("genre", string(genre)))
		return "", nil
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open raw document: %w", err)
	}
	defer func() { _ = f.Close() }()

	r, err := charset.NewReaderLabel(l.encoding, f)
	if err != nil {
		return "", fmt.Errorf("decode %s as %s: %w", path, l.encoding, err)
	}

	if genre == model.GenreWeblog {
		data, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("read raw document: %w", err)
		}
		text, ok := ExtractWeblogText(string(data))
		if !ok {
			l.logger.Warn("weblog post markers not found",
				slog.String("path", path))
		}
		return text, nil
	}

	return parseStructured(r, path, genre)
}

// LoadDocument is Load wrapped into a RawDocument
func (l *RawTextLoader) LoadDocument(path string, genre model.Genre) (model.RawDocument, error) {
	text, err := l.Load(path, genre)
	if err != nil {
		return model.RawDocument{}, err
	}
	return model.RawDocument{Genre: genre, Text: text, Path: path}, nil
}

// ExtractWeblogText scans raw weblog content for the first post body.
// It reports false when either marker is missing or they are out of order.
func ExtractWeblogText(raw string) (string, bool) {
	raw = lineBreaks.Replace(raw)

	start := strings.Index(raw, postDateClose)
	end := strings.Index(raw, postClose)
	if start == -1 || end == -1 {
		return "", false
	}

	start += len(postDateClose)
	if end < start {
		return "", false
	}

	return NormalizeRaw(raw[start:end]), true
}

func parseStructured(r io.Reader, path string, genre model.Genre) (string, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return "", fmt.Errorf("parse raw document %s: %w", path, err)
	}

	root := firstElement(doc)
	if root == nil {
		return "", &MissingNodeError{Path: path, Node: "root"}
	}

	bodies := childElements(root, "BODY")
	if len(bodies) == 0 {
		return "", &MissingNodeError{Path: path, Node: root.Data + "/BODY"}
	}
	body := bodies[0]

	if genre == model.GenreNewswire {
		texts := childElements(body, "TEXT")
		if len(texts) == 0 {
			return "", &MissingNodeError{Path: path, Node: root.Data + "/BODY/TEXT"}
		}
		return NormalizeRaw(leadingText(texts[0])), nil
	}

	// Broadcast news keeps its turns one level down, usually BODY/TEXT/TURN
	container := firstElement(body)
	if container == nil {
		return "", &MissingNodeError{Path: path, Node: root.Data + "/BODY/*"}
	}

	var b strings.Builder
	for _, turn := range childElements(container, "TURN") {
		b.WriteString(NormalizeRaw(leadingText(turn)))
	}
	return b.String(), nil
}
