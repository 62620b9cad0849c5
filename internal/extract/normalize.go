package extract

import "strings"

// mentionStripper removes the layout characters ACE keeps inside charseq spans
var mentionStripper = strings.NewReplacer("\n", "", "\t", "", "\r", "", " ", "")

// rawStripper removes spaces and newlines from recovered document text
var rawStripper = strings.NewReplacer(" ", "", "\n", "")

// lineBreaks removes line terminators from an unparsed weblog stream
var lineBreaks = strings.NewReplacer("\r\n", "", "\r", "", "\n", "")

// NormalizeMention strips newline, tab, carriage return and space characters
func NormalizeMention(s string) string {
	return mentionStripper.Replace(s)
}

// NormalizeRaw strips spaces and newlines
func NormalizeRaw(s string) string {
	return rawStripper.Replace(s)
}
