package model

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// EventType is the ACE event category of a labeled record
type EventType int

const (
	Life        EventType = 0
	Transaction EventType = 1
	Movement    EventType = 2
	Business    EventType = 3
	Conflict    EventType = 4
	Contact     EventType = 5
	Personnel   EventType = 6
	Justice     EventType = 7
	NonEvent    EventType = 8 // Sentences with no annotated event
)

// eventTypeNames maps codes to the TYPE attribute values used in ACE annotations
var eventTypeNames = [...]string{
	Life:        "Life",
	Transaction: "Transaction",
	Movement:    "Movement",
	Business:    "Business",
	Conflict:    "Conflict",
	Contact:     "Contact",
	Personnel:   "Personnel",
	Justice:     "Justice",
	NonEvent:    "Non-event",
}

var eventTypesByName = func() map[string]EventType {
	m := make(map[string]EventType, len(eventTypeNames))
	for code, name := range eventTypeNames {
		m[name] = EventType(code)
	}
	return m
}()

// AllEventTypes returns every event type in code order
func AllEventTypes() []EventType {
	types := make([]EventType, len(eventTypeNames))
	for i := range eventTypeNames {
		types[i] = EventType(i)
	}
	return types
}

// ParseEventType resolves an ACE TYPE attribute value
func ParseEventType(name string) (EventType, error) {
	if t, ok := eventTypesByName[name]; ok {
		return t, nil
	}
	return 0, &UnknownEventTypeError{Value: name}
}

// EventTypeFromCode resolves a persisted type code
func EventTypeFromCode(code int) (EventType, error) {
	t := EventType(code)
	if !t.Valid() {
		return 0, &UnknownEventTypeError{Value: strconv.Itoa(code)}
	}
	return t, nil
}

// Valid reports whether t is one of the nine known codes
func (t EventType) Valid() bool {
	return t >= Life && t <= NonEvent
}

// Code returns the integer label written to dataset files
func (t EventType) Code() int {
	return int(t)
}

func (t EventType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("EventType(%d)", int(t))
	}
	return eventTypeNames[t]
}

// EventMention is an annotated span describing one event occurrence
type EventMention struct {
	Text string    `json:"text"`
	Type EventType `json:"type"`
}

// Record converts the mention into its persisted form
func (m EventMention) Record() LabeledRecord {
	return LabeledRecord{Text: m.Text, Type: m.Type}
}

// NegativeExample is a sentence that mentions no annotated event
type NegativeExample struct {
	Text string `json:"text"`
}

// Record converts the example into its persisted form
func (n NegativeExample) Record() LabeledRecord {
	return LabeledRecord{Text: n.Text, Type: NonEvent}
}

// LabeledRecord is one line of a dataset split
type LabeledRecord struct {
	Text string
	Type EventType
}

// Line renders the record as "<text>\t<code>"
func (r LabeledRecord) Line() string {
	return r.Text + "\t" + strconv.Itoa(r.Type.Code())
}

// ParseRecord parses a line produced by Line
func ParseRecord(line string) (LabeledRecord, error) {
	idx := strings.LastIndexByte(line, '\t')
	if idx < 0 {
		return LabeledRecord{}, fmt.Errorf("record %q: missing tab separator", line)
	}

	code, err := strconv.Atoi(line[idx+1:])
	if err != nil {
		return LabeledRecord{}, fmt.Errorf("record %q: bad type code: %w", line, err)
	}

	t, err := EventTypeFromCode(code)
	if err != nil {
		return LabeledRecord{}, fmt.Errorf("record %q: %w", line, err)
	}

	return LabeledRecord{Text: line[:idx], Type: t}, nil
}

// TextLen counts the code points of s; every length rule in the dataset is
// expressed in characters, not bytes.
func TextLen(s string) int {
	return utf8.RuneCountInString(s)
}
