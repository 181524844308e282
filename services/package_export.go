package services

import (
	"context"
	"sort"

	"travel-backend/models"
)

type PolicyGroup struct {
	Type     string                 `json:"type"`
	Policies []models.PackagePolicy `json:"policies"`
}

// PackageExport is everything the brochure renderer needs for one package,
// with inclusions split from exclusions and policies grouped by type.
type PackageExport struct {
	Package      models.Package              `json:"package"`
	Pricing      PriceView                   `json:"pricing"`
	Destinations []string                    `json:"destinations"`
	Itinerary    []models.ItineraryDay       `json:"itinerary"`
	Hotels       []models.PackageHotel       `json:"hotels"`
	Meals        []models.PackageMeal        `json:"meals"`
	Transfers    []models.PackageTransfer    `json:"transfers"`
	Sightseeing  []models.PackageSightseeing `json:"sightseeing"`
	Activities   []models.OptionalActivity   `json:"activities"`
	Inclusions   []string                    `json:"inclusions"`
	Exclusions   []string                    `json:"exclusions"`
	Policies     []PolicyGroup               `json:"policies"`
}

// Export assembles the brochure data for a package. Policy groups keep the
// order in which their first policy appears.
func (s *PackageService) Export(ctx context.Context, id uint) (*PackageExport, error) {
	pkg, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	out := &PackageExport{
		Pricing:      ProjectPrice(*pkg),
		Destinations: []string{},
		Itinerary:    pkg.Itinerary,
		Hotels:       pkg.Hotels,
		Meals:        pkg.Meals,
		Transfers:    pkg.Transfers,
		Sightseeing:  pkg.Sightseeing,
		Activities:   pkg.Activities,
		Inclusions:   []string{},
		Exclusions:   []string{},
		Policies:     []PolicyGroup{},
	}
	for _, link := range pkg.Destinations {
		out.Destinations = append(out.Destinations, link.Destination.Name)
	}

	items := append([]models.PackageInclusion(nil), pkg.Inclusions...)
	sort.SliceStable(items, func(i, j int) bool { return items[i].SortOrder < items[j].SortOrder })
	for _, item := range items {
		if item.Type == models.InclusionTypeExclusion {
			out.Exclusions = append(out.Exclusions, item.Text)
		} else {
			out.Inclusions = append(out.Inclusions, item.Text)
		}
	}

	index := map[string]int{}
	for _, p := range pkg.Policies {
		i, ok := index[p.Type]
		if !ok {
			i = len(out.Policies)
			index[p.Type] = i
			out.Policies = append(out.Policies, PolicyGroup{Type: p.Type})
		}
		out.Policies[i].Policies = append(out.Policies[i].Policies, p)
	}

	pkg.Prices, pkg.Destinations, pkg.Itinerary, pkg.Hotels, pkg.Meals = nil, nil, nil, nil, nil
	pkg.Transfers, pkg.Sightseeing, pkg.Inclusions, pkg.Policies, pkg.Activities = nil, nil, nil, nil, nil
	out.Package = *pkg
	return out, nil
}
