package extract

import (
	"fmt"
	"io"
	"os"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"github.com/ppiankov/acevents/internal/model"
)

// Compiled once; all are relative to the node they are evaluated on.
var (
	documentExpr = xpath.MustCompile("document")
	eventExpr    = xpath.MustCompile("event")
	mentionExpr  = xpath.MustCompile("event_mention")
	charseqExpr  = xpath.MustCompile("extent/charseq")
)

// AnnotationExtractor reads event mentions from ACE annotation files
// (root → document → event[TYPE] → event_mention → extent → charseq).
type AnnotationExtractor struct{}

// NewAnnotationExtractor creates a new annotation extractor
func NewAnnotationExtractor() *AnnotationExtractor {
	return &AnnotationExtractor{}
}

// Extract parses the annotation file at path and returns its mentions in document order
func (e *AnnotationExtractor) Extract(path string) ([]model.EventMention, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open annotation: %w", err)
	}
	defer func() { _ = f.Close() }()

	return e.ExtractReader(f, path)
}

// ExtractReader parses an annotation document from r; name is used in errors
func (e *AnnotationExtractor) ExtractReader(r io.Reader, name string) ([]model.EventMention, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse annotation %s: %w", name, err)
	}

	root := firstElement(doc)
	if root == nil {
		return nil, &MissingNodeError{Path: name, Node: "root"}
	}

	document := xmlquery.QuerySelector(root, documentExpr)
	if document == nil {
		return nil, &MissingNodeError{Path: name, Node: root.Data + "/document"}
	}

	var mentions []model.EventMention
	for _, event := range xmlquery.QuerySelectorAll(document, eventExpr) {
		eventType, err := model.ParseEventType(event.SelectAttr("TYPE"))
		if err != nil {
			return nil, fmt.Errorf("%s: event %s: %w", name, event.SelectAttr("ID"), err)
		}

		for _, mention := range xmlquery.QuerySelectorAll(event, mentionExpr) {
			charseq := xmlquery.QuerySelector(mention, charseqExpr)
			if charseq == nil {
				return nil, &MissingNodeError{Path: name, Node: "event_mention[" + mention.SelectAttr("ID") + "]/extent/charseq"}
			}

			mentions = append(mentions, model.EventMention{
				Text: NormalizeMention(charseq.InnerText()),
				Type: eventType,
			})
		}
	}

	return mentions, nil
}

// FilterShort drops, across the whole accumulated corpus, every mention value
// whose text is two characters or shorter. Removal is by value: all records
// equal to a short (text, type) pair go, wherever they occur.
func FilterShort(mentions []model.EventMention) (kept []model.EventMention, dropped int) {
	short := make(map[model.EventMention]struct{})
	for _, m := range mentions {
		if model.TextLen(m.Text) <= 2 {
			short[m] = struct{}{}
		}
	}

	kept = make([]model.EventMention, 0, len(mentions))
	for _, m := range mentions {
		if _, drop := short[m]; drop {
			dropped++
			continue
		}
		kept = append(kept, m)
	}

	return kept, dropped
}

// firstElement returns the first element child of n
func firstElement(n *xmlquery.Node) *xmlquery.Node {
	if n == nil {
		return nil
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			return child
		}
	}
	return nil
}

// childElements returns the element children of n named name
func childElements(n *xmlquery.Node, name string) []*xmlquery.Node {
	var children []*xmlquery.Node
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode && child.Data == name {
			children = append(children, child)
		}
	}
	return children
}

// leadingText returns the character data of n that precedes its first child element
func leadingText(n *xmlquery.Node) string {
	var text string
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case xmlquery.ElementNode:
			return text
		case xmlquery.TextNode, xmlquery.CharDataNode:
			text += child.Data
		}
	}
	return text
}
