package org

import (
	"fmt"
	"io"
	"os"
)

// AppendToFile appends text at the end of the file, creating it if
// needed. When the existing content does not end with a newline, one
// is inserted first so the appended entry starts on its own line.
func AppendToFile(path, text string) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s for appending: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	needsNewline := false
	if info.Size() > 0 {
		last := make([]byte, 1)
		if _, err := f.ReadAt(last, info.Size()-1); err != nil {
			return err
		}
		needsNewline = last[0] != '\n'
	}

	if _, err := f.Seek(0, io.SeekEnd); err != nil {
		return err
	}
	if needsNewline {
		if _, err := f.WriteString("\n"); err != nil {
			return err
		}
	}
	if _, err := f.WriteString(text); err != nil {
		return fmt.Errorf("failed to append to %s: %w", path, err)
	}
	return nil
}
