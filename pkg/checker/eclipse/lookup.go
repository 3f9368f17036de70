package eclipse

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

var (
	ErrKeyNotFound     = errors.New("key not found")
	ErrInvalidDocument = errors.New("invalid json document")
)

// Lookup walks doc along a dot separated path, one key at a time, so that
// keys like "java-package" or "64" are never interpreted as gjson syntax.
// An empty path returns the whole document.
func Lookup(doc []byte, path string) (gjson.Result, error) {
	if !gjson.ValidBytes(doc) {
		return gjson.Result{}, errors.WithStack(ErrInvalidDocument)
	}

	current := gjson.ParseBytes(doc)

	if path == "" {
		return current, nil
	}

	keys := strings.Split(path, ".")

	for i, key := range keys {
		if !current.IsObject() {
			return gjson.Result{}, errors.Wrapf(ErrKeyNotFound, "'%s': parent is not an object", strings.Join(keys[:i+1], "."))
		}

		next := current.Get(gjson.Escape(key))
		if !next.Exists() {
			return gjson.Result{}, errors.Wrapf(ErrKeyNotFound, "'%s'", strings.Join(keys[:i+1], "."))
		}

		current = next
	}

	return current, nil
}
