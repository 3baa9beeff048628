package squares

import (
	apperrors "github.com/AdamMil/BirdhouseManor/internal/errors"
	"github.com/AdamMil/BirdhouseManor/internal/geometry"
)

// SymbolIndex maps each grid symbol to the square versions it may render as. All versions
// sharing a symbol belong to the same type and have the same footprint.
type SymbolIndex struct {
	catalog      *Catalog
	bySymbol     map[rune][]Version
	continuation rune
}

// IndexSymbols builds the symbol index for c, checking symbol consistency across every type.
// It fails if a symbol is used by two types or with two footprint sizes, or if more than one
// symbol maps to the continuation type.
func IndexSymbols(c *Catalog) (*SymbolIndex, error) {
	idx := &SymbolIndex{catalog: c, bySymbol: make(map[rune][]Version)}
	for _, t := range c.Types {
		for _, v := range t.Versions {
			versions, seen := idx.bySymbol[v.Symbol]
			if seen {
				if versions[0].Type != v.Type {
					return nil, symbolError("square symbol %q was defined for multiple square types", v.Symbol)
				}
				if versions[0].Size != v.Size {
					return nil, symbolError("square symbol %q was defined with different sizes", v.Symbol)
				}
			}

			if t.Name == ContinuationName {
				if idx.continuation != 0 && idx.continuation != v.Symbol {
					return nil, symbolError("the continuation square symbol was defined multiple times (second: %q)", v.Symbol)
				}
				idx.continuation = v.Symbol
			}

			idx.bySymbol[v.Symbol] = append(versions, v)
		}
	}
	return idx, nil
}

func symbolError(format string, symbol rune) error {
	return apperrors.Newf(apperrors.CodeDuplicateDefinition, format, symbol).
		With("symbol", string(symbol)).At("squares")
}

// Continuation returns the continuation symbol, or 0 if none was defined.
func (idx *SymbolIndex) Continuation() rune {
	return idx.continuation
}

// Lookup returns the versions a symbol may render as.
func (idx *SymbolIndex) Lookup(symbol rune) ([]Version, bool) {
	v, ok := idx.bySymbol[symbol]
	return v, ok
}

// Resolve is Lookup that reports an undefined symbol as an error.
func (idx *SymbolIndex) Resolve(symbol rune) ([]Version, error) {
	v, ok := idx.bySymbol[symbol]
	if !ok {
		return nil, apperrors.Newf(apperrors.CodeUndefinedReference, "undefined square symbol %q", symbol).
			With("symbol", string(symbol))
	}
	return v, nil
}

// TypeName returns the name of the type a symbol maps to.
func (idx *SymbolIndex) TypeName(versions []Version) string {
	return idx.catalog.TypeOf(versions[0]).Name
}

// Footprint returns the footprint shared by the versions of a symbol.
func (idx *SymbolIndex) Footprint(versions []Version) geometry.Size {
	return versions[0].Size
}

// Symbols returns the number of distinct symbols.
func (idx *SymbolIndex) Symbols() int {
	return len(idx.bySymbol)
}
