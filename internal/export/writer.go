package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/teemow/calexport/internal/events"
)

// WriteFile encodes evs in the requested format and writes them to path.
// It returns ErrNoEvents without touching the filesystem when evs is empty.
func WriteFile(path string, evs []events.Event, opts Options) (*Result, error) {
	if len(evs) == 0 {
		return nil, ErrNoEvents
	}

	format := opts.Format
	if format == "" {
		format = FormatCSV
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	result := &Result{Path: path}

	var buf bytes.Buffer
	switch format {
	case FormatCSV:
		header, err := Header(opts.HeaderLang)
		if err != nil {
			return nil, err
		}
		if err := EncodeCSV(&buf, evs, header); err != nil {
			return nil, fmt.Errorf("failed to encode csv: %w", err)
		}
		result.Written = len(evs)

	case FormatICS:
		written, skipped, err := EncodeICS(&buf, evs, now())
		if err != nil {
			return nil, fmt.Errorf("failed to encode ics: %w", err)
		}
		if written == 0 {
			return nil, ErrNoEvents
		}
		result.Written, result.Skipped = written, skipped

	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}

	if err := writeAtomic(path, buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}

	return result, nil
}

// writeAtomic writes data to a temporary file next to path and renames it
// into place. The temporary file is removed on any failure.
func writeAtomic(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Chmod(0o644); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
