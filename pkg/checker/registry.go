package checker

import (
	"slices"
	"sync"

	"github.com/gobwas/glob"
	"github.com/gosimple/slug"
	"github.com/pkg/errors"
)

var ErrUnknownChecker = errors.New("unknown checker")

// Factory creates a fresh Source. Sources are cheap and stateless.
type Factory func() Source

var (
	registryLock sync.RWMutex
	registry     = map[string]Factory{}
)

// Register makes a checker available by its short name. It panics if the
// short name is not a valid slug or is already registered.
func Register(factory Factory) {
	shortName := factory().ShortName()

	if !slug.IsSlug(shortName) {
		panic(errors.Errorf("checker short name '%s' is not a valid slug", shortName))
	}

	registryLock.Lock()
	defer registryLock.Unlock()

	if _, exists := registry[shortName]; exists {
		panic(errors.Errorf("checker '%s' already registered", shortName))
	}

	registry[shortName] = factory
}

// New creates the checker registered under shortName.
func New(shortName string, funcs ...OptionFunc) (*Checker, error) {
	registryLock.RLock()
	factory, exists := registry[shortName]
	registryLock.RUnlock()

	if !exists {
		return nil, errors.Wrapf(ErrUnknownChecker, "'%s'", shortName)
	}

	return NewChecker(factory(), funcs...), nil
}

// Names returns the sorted short names of every registered checker.
func Names() []string {
	registryLock.RLock()
	defer registryLock.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Sources returns a fresh source for every registered checker, sorted by short name.
func Sources() []Source {
	names := Names()

	registryLock.RLock()
	defer registryLock.RUnlock()

	sources := make([]Source, 0, len(names))
	for _, name := range names {
		sources = append(sources, registry[name]())
	}

	return sources
}

// Match returns the sorted short names matching any of the given glob
// patterns. A pattern without any match is an error.
func Match(patterns ...string) ([]string, error) {
	names := Names()

	matched := make([]string, 0)
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid checker pattern '%s'", pattern)
		}

		found := false
		for _, name := range names {
			if !g.Match(name) {
				continue
			}

			found = true

			if !slices.Contains(matched, name) {
				matched = append(matched, name)
			}
		}

		if !found {
			return nil, errors.Wrapf(ErrUnknownChecker, "no checker matches '%s'", pattern)
		}
	}

	slices.Sort(matched)

	return matched, nil
}
