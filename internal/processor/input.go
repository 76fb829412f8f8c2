package processor

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"
)

var (
	errNotUTF8  = errors.New("transcript is not valid UTF-8")
	errNotAFile = errors.New("not a regular file")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// readTranscript reads a transcript file once and returns its text.
func readTranscript(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat transcript: %w", err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%s: %w", path, errNotAFile)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read transcript: %w", err)
	}
	return decodeTranscript(data)
}

func decodeTranscript(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return "", errNotUTF8
	}
	return string(data), nil
}
