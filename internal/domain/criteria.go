package domain

// Timing selects events relative to the request's current moment.
type Timing string

const (
	TimingUpcoming Timing = "upcoming"
	TimingPrior    Timing = "prior"
)

// VisibilityFilter selects events by visibility; VisibilityBoth applies no filter.
type VisibilityFilter string

const (
	VisibilityFilterPublic  VisibilityFilter = "public"
	VisibilityFilterPrivate VisibilityFilter = "private"
	VisibilityFilterBoth    VisibilityFilter = "both"
)

// SortOrder is ASC or DESC. The empty order leaves ordering to the store (ascending).
type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// CompareType tells the store how to compare a field's stored string.
type CompareType string

const (
	CompareString   CompareType = ""
	CompareDateTime CompareType = "DATETIME"
)

// Operator is a predicate comparison.
type Operator string

const (
	OpEq  Operator = "="
	OpGte Operator = ">="
	OpLte Operator = "<="
)

// Predicate compares one event field against a value.
type Predicate struct {
	Field string      `json:"field"`
	Op    Operator    `json:"op"`
	Value string      `json:"value"`
	Type  CompareType `json:"type,omitempty"`
}

// SortSpec orders a listing by one field.
type SortSpec struct {
	Field string      `json:"field"`
	Order SortOrder   `json:"order,omitempty"`
	Type  CompareType `json:"type,omitempty"`
}

// Query is what a record store executes: ANDed predicates, an optional term slug
// in Taxonomy, an ordering and an optional page.
type Query struct {
	Predicates []Predicate       `json:"predicates"`
	TermSlug   string            `json:"term_slug,omitempty"`
	Sort       SortSpec          `json:"sort"`
	Page       *PaginationParams `json:"page,omitempty"`
}

// Selection holds the raw listing parameters of a request, before validation.
type Selection struct {
	Timing     string
	Visibility string
	Type       string
	OrderBy    string
	Order      string
}

// FilterCriteria is a validated Selection. It lives for one request.
type FilterCriteria struct {
	Timing     Timing           `json:"timing"`
	Visibility VisibilityFilter `json:"visibility"`
	TypeSlug   string           `json:"type_slug,omitempty"`
	SortField  string           `json:"sort_field,omitempty"`
	SortOrder  SortOrder        `json:"sort_order,omitempty"`
}
