package query

import (
	"strings"

	"travel-backend/models"
)

// Matches evaluates p against an in-memory package with its Prices and
// Destinations loaded. It mirrors the SQL produced by Compile.
func Matches(p Predicate, pkg models.Package) bool {
	return eval(p, packageRecord{pkg})
}

type record interface {
	value(Field) (any, bool)
	related(Relation) []record
}

func eval(p Predicate, r record) bool {
	switch p.Kind {
	case KindAnd:
		for _, c := range p.Children {
			if !eval(c, r) {
				return false
			}
		}
		return true
	case KindOr:
		for _, c := range p.Children {
			if eval(c, r) {
				return true
			}
		}
		return false
	case KindLeaf:
		return evalLeaf(p, r)
	case KindSome, KindNone:
		found := false
		for _, rel := range r.related(p.Relation) {
			if p.Where == nil || eval(*p.Where, rel) {
				found = true
				break
			}
		}
		if p.Kind == KindNone {
			return !found
		}
		return found
	}
	return false
}

func evalLeaf(p Predicate, r record) bool {
	v, ok := r.value(p.Field)
	if !ok {
		return false
	}
	if p.Op == OpNotNull {
		return v != nil
	}
	if v == nil {
		return false
	}

	switch p.Op {
	case OpEq:
		if a, isNum := toFloat(v); isNum {
			b, _ := toFloat(p.Value)
			return a == b
		}
		return v == p.Value
	case OpGte, OpLte:
		a, okA := toFloat(v)
		b, okB := toFloat(p.Value)
		if !okA || !okB {
			return false
		}
		if p.Op == OpGte {
			return a >= b
		}
		return a <= b
	case OpContains:
		s, _ := v.(string)
		term, _ := p.Value.(string)
		return strings.Contains(strings.ToLower(s), strings.ToLower(term))
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case *float64:
		if n == nil {
			return 0, false
		}
		return *n, true
	case int:
		return float64(n), true
	case uint:
		return float64(n), true
	}
	return 0, false
}

type packageRecord struct{ pkg models.Package }

func (r packageRecord) value(f Field) (any, bool) {
	switch f {
	case FieldTitle:
		return r.pkg.Title, true
	case FieldDescription:
		return r.pkg.Description, true
	case FieldCategory:
		return r.pkg.Category, true
	case FieldIsSpecial:
		return r.pkg.IsSpecial, true
	case FieldIsActive:
		return r.pkg.IsActive, true
	case FieldIsFeatured:
		return r.pkg.IsFeatured, true
	case FieldIsPopular:
		return r.pkg.IsPopular, true
	case FieldDurationDays:
		return r.pkg.DurationDays, true
	case FieldStartingPrice:
		return r.pkg.StartingPrice, true
	}
	return nil, false
}

func (r packageRecord) related(rel Relation) []record {
	var out []record
	switch rel {
	case RelPrices:
		for _, pp := range r.pkg.Prices {
			out = append(out, priceRecord{pp})
		}
	case RelDestinations:
		for _, pd := range r.pkg.Destinations {
			out = append(out, destinationRecord{pd.Destination})
		}
	}
	return out
}

type priceRecord struct{ price models.PackagePrice }

func (r priceRecord) value(f Field) (any, bool) {
	switch f {
	case FieldPrice:
		return r.price.Price, true
	case FieldDiscountedPrice:
		if r.price.DiscountedPrice == nil {
			return nil, true
		}
		return *r.price.DiscountedPrice, true
	case FieldCurrencyCode:
		return r.price.Currency.Code, true
	}
	return nil, false
}

func (priceRecord) related(Relation) []record { return nil }

type destinationRecord struct{ dest models.Destination }

func (r destinationRecord) value(f Field) (any, bool) {
	switch f {
	case FieldDestinationSlug:
		return r.dest.Slug, true
	case FieldDestinationName:
		return r.dest.Name, true
	}
	return nil, false
}

func (destinationRecord) related(Relation) []record { return nil }
