package model

import (
	"fmt"
	"strings"
)

// Genre is the ACE source category of a raw document
type Genre string

const (
	GenreBroadcastNews Genre = "bn" // Broadcast news transcripts, text split into TURNs
	GenreNewswire      Genre = "nw" // Newswire, text in BODY/TEXT
	GenreWeblog        Genre = "wl" // Weblog posts, delimited by POSTDATE/POST markers
)

// AllGenres returns the genres in corpus traversal order
func AllGenres() []Genre {
	return []Genre{GenreBroadcastNews, GenreNewswire, GenreWeblog}
}

// ParseGenre resolves a genre tag from configuration or the command line
func ParseGenre(s string) (Genre, error) {
	g := Genre(strings.ToLower(strings.TrimSpace(s)))
	switch g {
	case GenreBroadcastNews, GenreNewswire, GenreWeblog:
		return g, nil
	default:
		return "", fmt.Errorf("%w: %q (supported: bn, nw, wl)", ErrUnknownGenre, s)
	}
}

// RawDocument is the recovered plain text of one source document
type RawDocument struct {
	Genre Genre
	Text  string
	Path  string
}
