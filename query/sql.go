package query

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// relation subqueries correlate on packages.id, so the outer statement must
// select from the packages table.
var relationSQL = map[Relation]struct {
	from    string
	columns map[Field]string
}{
	RelPrices: {
		from: "FROM package_prices pp JOIN currencies cur ON cur.id = pp.currency_id WHERE pp.package_id = packages.id",
		columns: map[Field]string{
			FieldPrice:           "pp.price",
			FieldDiscountedPrice: "pp.discounted_price",
			FieldCurrencyCode:    "cur.code",
		},
	},
	RelDestinations: {
		from: "FROM package_destinations pd JOIN destinations d ON d.id = pd.destination_id WHERE pd.package_id = packages.id",
		columns: map[Field]string{
			FieldDestinationSlug: "d.slug",
			FieldDestinationName: "d.name",
		},
	},
}

var packageColumns = map[Field]string{
	FieldTitle:         "packages.title",
	FieldDescription:   "packages.description",
	FieldCategory:      "packages.category",
	FieldIsSpecial:     "packages.is_special",
	FieldIsActive:      "packages.is_active",
	FieldIsFeatured:    "packages.is_featured",
	FieldIsPopular:     "packages.is_popular",
	FieldDurationDays:  "packages.duration_days",
	FieldStartingPrice: "packages.starting_price",
}

// Apply adds p to db as a WHERE clause. An empty predicate leaves db
// untouched; a malformed one is recorded on db as an error.
func Apply(db *gorm.DB, p Predicate) *gorm.DB {
	clause, args, err := Compile(p)
	if err != nil {
		_ = db.AddError(err)
		return db
	}
	if clause == "" {
		return db
	}
	return db.Where(clause, args...)
}

// Compile renders p as a SQL boolean expression over the packages table
// with positional placeholders. The SQL is portable across MySQL and SQLite.
func Compile(p Predicate) (string, []any, error) {
	if p.IsEmpty() {
		return "", nil, nil
	}
	c := &compiler{columns: packageColumns}
	clause, err := c.compile(p)
	if err != nil {
		return "", nil, err
	}
	return clause, c.args, nil
}

type compiler struct {
	columns map[Field]string
	args    []any
}

func (c *compiler) compile(p Predicate) (string, error) {
	switch p.Kind {
	case KindAnd:
		return c.group(p.Children, " AND ", "1 = 1")
	case KindOr:
		return c.group(p.Children, " OR ", "1 = 0")
	case KindLeaf:
		return c.leaf(p)
	case KindSome, KindNone:
		return c.relation(p)
	}
	return "", fmt.Errorf("query: unknown predicate kind %d", p.Kind)
}

func (c *compiler) group(children []Predicate, sep, empty string) (string, error) {
	if len(children) == 0 {
		return empty, nil
	}
	parts := make([]string, 0, len(children))
	for _, child := range children {
		s, err := c.compile(child)
		if err != nil {
			return "", err
		}
		parts = append(parts, "("+s+")")
	}
	return strings.Join(parts, sep), nil
}

func (c *compiler) leaf(p Predicate) (string, error) {
	col, ok := c.columns[p.Field]
	if !ok {
		return "", fmt.Errorf("query: field %q is not available here", p.Field)
	}
	switch p.Op {
	case OpEq:
		c.args = append(c.args, p.Value)
		return col + " = ?", nil
	case OpGte:
		c.args = append(c.args, p.Value)
		return col + " >= ?", nil
	case OpLte:
		c.args = append(c.args, p.Value)
		return col + " <= ?", nil
	case OpContains:
		term, _ := p.Value.(string)
		c.args = append(c.args, LikePattern(term))
		return "LOWER(" + col + ") LIKE ? ESCAPE '!'", nil
	case OpNotNull:
		return col + " IS NOT NULL", nil
	}
	return "", fmt.Errorf("query: unknown operator %q", p.Op)
}

func (c *compiler) relation(p Predicate) (string, error) {
	rel, ok := relationSQL[p.Relation]
	if !ok {
		return "", fmt.Errorf("query: unknown relation %q", p.Relation)
	}

	keyword := "EXISTS"
	if p.Kind == KindNone {
		keyword = "NOT EXISTS"
	}

	sub := keyword + " (SELECT 1 " + rel.from
	if p.Where != nil {
		inner := &compiler{columns: rel.columns, args: c.args}
		s, err := inner.compile(*p.Where)
		if err != nil {
			return "", err
		}
		c.args = inner.args
		sub += " AND (" + s + ")"
	}
	return sub + ")", nil
}

// LikePattern turns a search term into a lower-cased substring pattern for
// "LIKE ? ESCAPE '!'".
func LikePattern(term string) string {
	return "%" + escapeLike(strings.ToLower(strings.TrimSpace(term))) + "%"
}

// escapeLike protects LIKE wildcards with '!' as the escape character, which
// both MySQL and SQLite accept in an explicit ESCAPE clause.
func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}
