package squares

import (
	"github.com/AdamMil/BirdhouseManor/internal/document"
	apperrors "github.com/AdamMil/BirdhouseManor/internal/errors"
)

// TokenType is a kind of marker placed on the board, such as a condition on a hero.
type TokenType struct {
	Name        string `cbor:"name"`
	Description string `cbor:"description"`
	// IsCondition reports whether the token represents a tangible condition affecting an
	// entity, such as being immobilized.
	IsCondition bool   `cbor:"is_condition"`
	IconImage   string `cbor:"icon_image"`
	TokenImage  string `cbor:"token_image"`
}

// BuildTokens builds the token registry. Unlike square types, an empty registry is valid.
func BuildTokens(records []document.Token) ([]TokenType, error) {
	seen := make(map[string]bool, len(records))
	tokens := make([]TokenType, 0, len(records))
	for _, rec := range records {
		if seen[rec.Name] {
			return nil, apperrors.Newf(apperrors.CodeDuplicateDefinition, "token type was defined multiple times: %s", rec.Name).
				With("token", rec.Name).At("tokens")
		}
		seen[rec.Name] = true
		tokens = append(tokens, TokenType{
			Name:        rec.Name,
			Description: rec.Description,
			IsCondition: rec.IsCondition,
			IconImage:   rec.IconImage,
			TokenImage:  rec.TokenImage,
		})
	}
	return tokens, nil
}
