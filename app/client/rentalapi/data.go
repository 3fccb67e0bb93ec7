package rentalapi

import (
	"net/url"
	"strconv"
)

const (
	PlatformLianjia = "链家"
	PlatformAnjuke  = "安居客"
	Platform58      = "58同城"
)

// ListOptions are the pagination and platform-scoping parameters shared by
// the list endpoints.
type ListOptions struct {
	ListingPlatform string
	Page            int
	PageSize        int
}

func (o ListOptions) values() url.Values {
	params := url.Values{}
	if o.ListingPlatform != "" {
		params.Set("listing_platform", o.ListingPlatform)
	}
	if o.Page > 0 {
		params.Set("page", strconv.Itoa(o.Page))
	}
	if o.PageSize > 0 {
		params.Set("page_size", strconv.Itoa(o.PageSize))
	}
	return params
}

// PlatformFilter is the full filter set of the by_platform listing search.
// Zero values mean "not set" and are omitted from the query.
type PlatformFilter struct {
	ListingPlatform     string
	District            string
	Area                string
	MinPrice            int
	MaxPrice            int
	Bedrooms            string
	RentalType          string
	Decoration          string
	Orientation         string
	Elevator            string
	MinArea             int
	MaxArea             int
	PropertyType        string
	SubwayLine          string
	MaxSubwayDist       int
	SubwayStation       string
	UtilitiesType       string
	AvailableFromBefore string
	CommuteToXierqiMax  int
	SortBy              string
	SortOrder           string
	Page                int
	PageSize            int
}

func (f PlatformFilter) values() url.Values {
	params := url.Values{}

	setStr := func(key, value string) {
		if value != "" {
			params.Set(key, value)
		}
	}
	setInt := func(key string, value int) {
		if value > 0 {
			params.Set(key, strconv.Itoa(value))
		}
	}

	setStr("listing_platform", f.ListingPlatform)
	setStr("district", f.District)
	setStr("area", f.Area)
	setInt("min_price", f.MinPrice)
	setInt("max_price", f.MaxPrice)
	setStr("bedrooms", f.Bedrooms)
	setStr("rental_type", f.RentalType)
	setStr("decoration", f.Decoration)
	setStr("orientation", f.Orientation)
	setStr("elevator", f.Elevator)
	setInt("min_area", f.MinArea)
	setInt("max_area", f.MaxArea)
	setStr("property_type", f.PropertyType)
	setStr("subway_line", f.SubwayLine)
	setInt("max_subway_dist", f.MaxSubwayDist)
	setStr("subway_station", f.SubwayStation)
	setStr("utilities_type", f.UtilitiesType)
	setStr("available_from_before", f.AvailableFromBefore)
	setInt("commute_to_xierqi_max", f.CommuteToXierqiMax)
	setStr("sort_by", f.SortBy)
	setStr("sort_order", f.SortOrder)
	setInt("page", f.Page)
	setInt("page_size", f.PageSize)

	return params
}
