package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/spf13/afero"
)

// ReadLog parses every record in the journal at path, oldest first. A
// missing journal yields no records and no error.
func ReadLog(fsys afero.Fs, path string) ([]LogRecord, error) {
	f, err := fsys.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open event log: %w", err)
	}
	defer f.Close()

	var records []LogRecord
	dec := json.NewDecoder(f)
	for {
		var rec LogRecord
		if err := dec.Decode(&rec); err != nil {
			if errors.Is(err, io.EOF) {
				return records, nil
			}
			return records, fmt.Errorf("failed to decode event %d: %w", len(records), err)
		}
		records = append(records, rec)
	}
}
