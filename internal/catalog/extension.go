package catalog

import (
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/AdamMil/BirdhouseManor/internal/document"
	apperrors "github.com/AdamMil/BirdhouseManor/internal/errors"
)

// Extension holds catalog entries contributed by Go code rather than the game document. A
// document opts in by naming the extension; its entries are compiled like the document's own
// and appended after them.
type Extension struct {
	Skills     []document.Skill
	Encounters []document.ActionCard
	Treasures  []document.ActionCard
	Powers     []document.ActionCard
	Heroes     []document.Hero
	Monsters   []document.Monster
	Villains   []document.Monster
}

var (
	extensionsMu sync.RWMutex
	extensions   = make(map[string]Extension)
)

// RegisterExtension makes an extension available under the given path. It is meant to be
// called from an init function and panics if the path is taken or not relative.
func RegisterExtension(name string, ext Extension) {
	key, err := extensionKey(name)
	if err != nil {
		panic("catalog: " + err.Error())
	}
	extensionsMu.Lock()
	defer extensionsMu.Unlock()
	if _, ok := extensions[key]; ok {
		panic("catalog: extension registered twice: " + key)
	}
	extensions[key] = ext
}

// Extensions returns the names of the registered extensions, sorted.
func Extensions() []string {
	extensionsMu.RLock()
	defer extensionsMu.RUnlock()
	names := make([]string, 0, len(extensions))
	for name := range extensions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupExtension finds the extension a document refers to. The path must be relative.
func LookupExtension(name string) (Extension, error) {
	key, err := extensionKey(name)
	if err != nil {
		return Extension{}, err
	}
	extensionsMu.RLock()
	ext, ok := extensions[key]
	extensionsMu.RUnlock()
	if !ok {
		return Extension{}, apperrors.Newf(apperrors.CodeUndefinedReference, "unknown extension: %s", name).
			With("extension", name).At("extension")
	}
	return ext, nil
}

// extensionKey normalizes an extension path so equivalent spellings find the same entry.
func extensionKey(name string) (string, error) {
	if filepath.IsAbs(name) || path.IsAbs(filepath.ToSlash(name)) {
		return "", apperrors.Newf(apperrors.CodeInvalidConfiguration, "extension path must be relative: %s", name).
			With("extension", name).At("extension")
	}
	key := path.Clean(filepath.ToSlash(strings.TrimSpace(name)))
	if key == "." || key == ".." || strings.HasPrefix(key, "../") {
		return "", apperrors.Newf(apperrors.CodeInvalidConfiguration, "extension path must stay inside the game directory: %s", name).
			With("extension", name).At("extension")
	}
	return key, nil
}
