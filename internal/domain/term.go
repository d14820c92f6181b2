package domain

import "context"

// AllTypes is the type id meaning "no type filter". No stored term uses it.
const AllTypes = 0

// Term is a category in the event-type taxonomy.
// swagger:model Term
type Term struct {
	ID   int    `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// TermRepository reads taxonomy terms.
type TermRepository interface {
	// ListTerms returns every term of taxonomy, including terms with no events.
	ListTerms(ctx context.Context, taxonomy string) ([]*Term, error)
}

// TermIDs returns the ids of terms, in order.
func TermIDs(terms []*Term) []int {
	ids := make([]int, 0, len(terms))
	for _, t := range terms {
		ids = append(ids, t.ID)
	}
	return ids
}
