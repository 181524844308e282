// Package query holds the storage-agnostic package filter predicate: a small
// tree of AND / OR groups, field comparisons and relation quantifiers, the
// builder that derives it from listing query parameters, and the backends
// that execute it (gorm WHERE clauses and in-memory matching).
package query

type Kind int

const (
	KindAnd Kind = iota
	KindOr
	KindLeaf
	// KindSome matches when at least one related row satisfies Where.
	KindSome
	// KindNone matches when no related row satisfies Where (or no rows exist
	// at all when Where is nil).
	KindNone
)

type Op string

const (
	OpEq       Op = "eq"
	OpGte      Op = "gte"
	OpLte      Op = "lte"
	OpContains Op = "contains" // case-insensitive substring
	OpNotNull  Op = "not_null"
)

type Field string

// Package fields.
const (
	FieldTitle         Field = "title"
	FieldDescription   Field = "description"
	FieldCategory      Field = "category"
	FieldIsSpecial     Field = "is_special"
	FieldIsActive      Field = "is_active"
	FieldIsFeatured    Field = "is_featured"
	FieldIsPopular     Field = "is_popular"
	FieldDurationDays  Field = "duration_days"
	FieldStartingPrice Field = "starting_price"
)

// Fields reachable through RelPrices.
const (
	FieldPrice           Field = "price"
	FieldDiscountedPrice Field = "discounted_price"
	FieldCurrencyCode    Field = "currency_code"
)

// Fields reachable through RelDestinations.
const (
	FieldDestinationSlug Field = "destination_slug"
	FieldDestinationName Field = "destination_name"
)

type Relation string

const (
	RelPrices       Relation = "prices"
	RelDestinations Relation = "destinations"
)

// Predicate is one node of a filter tree. Which fields are meaningful depends
// on Kind: Children for And/Or, Field/Op/Value for Leaf, Relation/Where for
// Some/None.
type Predicate struct {
	Kind     Kind        `json:"kind"`
	Children []Predicate `json:"children,omitempty"`
	Field    Field       `json:"field,omitempty"`
	Op       Op          `json:"op,omitempty"`
	Value    any         `json:"value,omitempty"`
	Relation Relation    `json:"relation,omitempty"`
	Where    *Predicate  `json:"where,omitempty"`
}

// And groups predicates that must all hold. Empty AND groups among the
// arguments are dropped and a single remaining child is returned as is.
func And(ps ...Predicate) Predicate {
	children := compact(ps)
	if len(children) == 1 {
		return children[0]
	}
	return Predicate{Kind: KindAnd, Children: children}
}

// Or groups alternatives of which at least one must hold.
func Or(ps ...Predicate) Predicate {
	if len(ps) == 1 {
		return ps[0]
	}
	return Predicate{Kind: KindOr, Children: ps}
}

func Leaf(field Field, op Op, value any) Predicate {
	return Predicate{Kind: KindLeaf, Field: field, Op: op, Value: value}
}

func Eq(field Field, value any) Predicate { return Leaf(field, OpEq, value) }
func Gte(field Field, value float64) Predicate { return Leaf(field, OpGte, value) }
func Lte(field Field, value float64) Predicate { return Leaf(field, OpLte, value) }
func Contains(field Field, term string) Predicate { return Leaf(field, OpContains, term) }
func NotNull(field Field) Predicate { return Leaf(field, OpNotNull, nil) }

func Some(rel Relation, where Predicate) Predicate {
	return Predicate{Kind: KindSome, Relation: rel, Where: &where}
}

func None(rel Relation) Predicate {
	return Predicate{Kind: KindNone, Relation: rel}
}

// IsEmpty reports whether p places no constraint at all.
func (p Predicate) IsEmpty() bool {
	return p.Kind == KindAnd && len(p.Children) == 0
}

// References reports whether field appears in any leaf of the tree.
func (p Predicate) References(field Field) bool {
	found := false
	p.Walk(func(n Predicate) {
		if n.Kind == KindLeaf && n.Field == field {
			found = true
		}
	})
	return found
}

// Walk visits p and every descendant depth first.
func (p Predicate) Walk(fn func(Predicate)) {
	fn(p)
	for _, c := range p.Children {
		c.Walk(fn)
	}
	if p.Where != nil {
		p.Where.Walk(fn)
	}
}

func compact(ps []Predicate) []Predicate {
	out := make([]Predicate, 0, len(ps))
	for _, p := range ps {
		if p.IsEmpty() {
			continue
		}
		out = append(out, p)
	}
	return out
}
