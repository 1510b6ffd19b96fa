package source

import (
	"fmt"
	"io"
	"os"
)

// ReadContent reads r to EOF and returns it as text.
func ReadContent(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ReadFile opens path and reads its full content as text.
func ReadFile(path string) (text string, err error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("error opening file %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("error closing file %s: %w", path, cerr)
		}
	}()

	text, err = ReadContent(file)
	if err != nil {
		return "", fmt.Errorf("error reading file %s: %w", path, err)
	}
	return text, nil
}
