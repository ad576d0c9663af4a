// Package migration copies the persisted history from one storage backend
// to another, for example when switching from JSON files to SQLite.
package migration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/EHLuC/ecotrip/internal/history"
	"github.com/EHLuC/ecotrip/internal/logging"
	"github.com/EHLuC/ecotrip/internal/storage"
)

type constError string

func (e constError) Error() string { return string(e) }

// ErrDestinationExists is returned when the destination already holds the
// key and overwriting was not requested.
const ErrDestinationExists = constError("destination already has history")

// Result describes a completed copy.
type Result struct {
	Key     string
	Entries int

	// Copied is false when the source had nothing to copy.
	Copied bool
}

// Copy copies the value stored under key from src to dst. The source is
// left untouched. A missing source key is not an error. The value must decode
// as a history log; corrupted data is refused with history.ErrCorrupted.
func Copy(ctx context.Context, src, dst storage.Store, key string, overwrite bool) (Result, error) {
	log := logging.FromContext(ctx)
	res := Result{Key: key}

	data, err := src.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return res, nil
	}
	if err != nil {
		return res, fmt.Errorf("reading source: %w", err)
	}

	var entries []history.Entry
	if strings.TrimSpace(string(data)) != "" {
		if err = json.Unmarshal(data, &entries); err != nil {
			return res, fmt.Errorf("%w: %w", history.ErrCorrupted, err)
		}
	}

	if !overwrite {
		_, getErr := dst.Get(ctx, key)
		if getErr == nil {
			return res, ErrDestinationExists
		}
		if !errors.Is(getErr, storage.ErrNotFound) {
			return res, fmt.Errorf("reading destination: %w", getErr)
		}
	}

	if err = dst.Set(ctx, key, data); err != nil {
		return res, fmt.Errorf("writing destination: %w", err)
	}

	res.Entries = len(entries)
	res.Copied = true

	log.Info().
		Ctx(ctx).
		Str("component", "migration").
		Str("key", key).
		Int("entries", res.Entries).
		Bool("overwrite", overwrite).
		Msg("history copied")

	return res, nil
}

// Confirm asks a yes/no question on out and reads the answer from in.
// Anything other than "y" or "yes" (including a read error) is a no.
func Confirm(out io.Writer, in io.Reader, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)

	var response string
	if _, err := fmt.Fscanln(in, &response); err != nil {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
