package config

// Limits carries field-length caps, pagination bounds and the query-parameter
// names used by the recipe list filters. It is injected at startup instead of
// living as package-level globals.
type Limits struct {
	MaxUsernameLen   int
	MaxEmailLen      int
	MaxNameLen       int
	MaxRecipeNameLen int
	MaxIngredientLen int

	DefaultPageSize int
	MaxPageSize     int

	// Query-parameter names for the recipe list filters
	QueryTags      string
	QueryAuthor    string
	QueryFavorited string
	QueryInCart    string
	QueryName      string
	QueryPage      string
	QueryLimit     string
}

// DefaultLimits returns the limits used in every environment
func DefaultLimits() Limits {
	return Limits{
		MaxUsernameLen:   150,
		MaxEmailLen:      254,
		MaxNameLen:       150,
		MaxRecipeNameLen: 255,
		MaxIngredientLen: 200,

		DefaultPageSize: 6,
		MaxPageSize:     100,

		QueryTags:      "tags",
		QueryAuthor:    "author",
		QueryFavorited: "favorited",
		QueryInCart:    "in_cart",
		QueryName:      "name",
		QueryPage:      "page",
		QueryLimit:     "limit",
	}
}
