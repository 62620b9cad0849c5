// Package listio persists string lists as line-oriented UTF-8 text files.
package listio

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"
)

// maxLineBytes bounds a single line; corpus sentences stay far below it
const maxLineBytes = 16 << 20

// Save1D writes one item per line, each line newline-terminated.
// Load1D reproduces every item that contains no newline, carriage returns included.
func Save1D(path string, items []string) error {
	return writeLines(path, func(w *bufio.Writer) error {
		for _, item := range items {
			if _, err := w.WriteString(item); err != nil {
				return err
			}
			if err := w.WriteByte('\n'); err != nil {
				return err
			}
		}
		return nil
	})
}

// Load1D reads a file written by Save1D
func Load1D(path string) ([]string, error) {
	var items []string
	err := readLines(path, func(line string) {
		items = append(items, line)
	})
	return items, err
}

// Save2D writes one row per line with every token followed by a single space.
// Loading reproduces rows exactly only if no token contains a space or newline.
func Save2D(path string, rows [][]string) error {
	return writeLines(path, func(w *bufio.Writer) error {
		for _, row := range rows {
			for _, token := range row {
				if _, err := w.WriteString(token); err != nil {
					return err
				}
				if err := w.WriteByte(' '); err != nil {
					return err
				}
			}
			if err := w.WriteByte('\n'); err != nil {
				return err
			}
		}
		return nil
	})
}

// Load2D reads a file written by Save2D
func Load2D(path string) ([][]string, error) {
	var rows [][]string
	err := readLines(path, func(line string) {
		tokens := strings.Split(line, " ")
		// The trailing separator leaves an empty last token
		if tokens[len(tokens)-1] == "" {
			tokens = tokens[:len(tokens)-1]
		}
		rows = append(rows, tokens)
	})
	return rows, err
}

func writeLines(path string, write func(*bufio.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, closeErr)
		}
	}()

	w := bufio.NewWriter(f)
	if err := write(w); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}

func readLines(path string, fn func(line string)) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	scanner.Split(scanNewlines)
	for scanner.Scan() {
		fn(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan %s: %w", path, err)
	}
	return nil
}

// scanNewlines splits on '\n' only; unlike bufio.ScanLines it keeps a trailing '\r'
func scanNewlines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
