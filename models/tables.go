package models

// Tables lists every model in migration order (parents before children).
var Tables = []interface{}{
	&Admin{},
	&Currency{},
	&Destination{},
	&Package{},
	&PackagePrice{},
	&PackageDestination{},
	&ItineraryDay{},
	&PackageHotel{},
	&PackageMeal{},
	&PackageTransfer{},
	&PackageSightseeing{},
	&PackageInclusion{},
	&PackagePolicy{},
	&OptionalActivity{},
	&Enquiry{},
	&Blog{},
	&Review{},
	&FAQ{},
	&Service{},
	&SeoMeta{},
}
