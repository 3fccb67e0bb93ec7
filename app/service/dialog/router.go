package dialog

import (
	"context"
	"strings"

	"rentagent/app/client/rentalapi"
	"rentagent/app/service/extract"
)

const (
	defaultPageSize       = 20
	defaultNearbyDistance = 2000
)

// runQuery picks the listing endpoint matching the accumulated conditions.
// Community lookup wins over landmark proximity, which wins over the
// general multi-filter search.
func (s *Service) runQuery(ctx context.Context, conditions extract.Conditions) (rentalapi.Result, error) {
	if community := conditions.Str("community"); community != "" {
		return s.api.HousesByCommunity(ctx, community, rentalapi.ListOptions{PageSize: defaultPageSize})
	}

	if landmark := conditions.Str("landmark_nearby"); landmark != "" {
		id := s.resolveLandmark(ctx, landmark)
		return s.api.HousesNearby(ctx, id, defaultNearbyDistance, rentalapi.ListOptions{PageSize: defaultPageSize})
	}

	filter := rentalapi.PlatformFilter{
		District:           conditions.Str("district"),
		MinPrice:           conditions.Int("min_price"),
		MaxPrice:           conditions.Int("max_price"),
		Bedrooms:           conditions.Str("bedrooms"),
		RentalType:         conditions.Str("rental_type"),
		Decoration:         conditions.Str("decoration"),
		Orientation:        conditions.Str("orientation"),
		Elevator:           conditions.Str("elevator"),
		MinArea:            conditions.Int("min_area"),
		MaxArea:            conditions.Int("max_area"),
		MaxSubwayDist:      conditions.Int("max_subway_dist"),
		SubwayStation:      conditions.Str("subway_station"),
		CommuteToXierqiMax: conditions.Int("commute_to_xierqi_max"),
		PageSize:           defaultPageSize,
	}
	if conditions.Str("landmark_nearby") == "" {
		filter.Area = conditions.Str("area")
	}

	return s.api.HousesByPlatform(ctx, filter)
}

// resolveLandmark maps a spoken landmark name to its id: exact name first,
// retrying with a 站 suffix for names that lack one, then fuzzy search. A
// name that resolves nowhere is returned as-is, the nearby endpoint also
// accepts names.
func (s *Service) resolveLandmark(ctx context.Context, landmark string) string {
	if id, ok := landmarkID(s.api.LandmarkByName(ctx, landmark)); ok {
		return id
	}

	if !strings.Contains(landmark, "站") {
		if id, ok := landmarkID(s.api.LandmarkByName(ctx, landmark+"站")); ok {
			return id
		}
	}

	if id, ok := landmarkID(s.api.SearchLandmarks(ctx, landmark)); ok {
		return id
	}

	return landmark
}

func landmarkID(res rentalapi.Result, err error) (string, bool) {
	if err != nil || res.ErrorMessage() != "" {
		return "", false
	}
	return res.ID()
}
