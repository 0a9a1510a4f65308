package airports

import (
	"errors"

	"github.com/skypies/geo"
)

// ErrNoReferenceData indicates the resolver was invoked with an empty
// airport reference set.
var ErrNoReferenceData = errors.New("no airport reference data loaded")

// Nearest returns the airport minimizing great-circle distance from the
// given coordinate, along with that distance in kilometers. Ties go to the
// first airport in table order.
func (s *Store) Nearest(lat, lon float64) (Airport, float64, error) {
	if len(s.airports) == 0 {
		return Airport{}, 0, ErrNoReferenceData
	}

	pos := geo.Latlong{Lat: lat, Long: lon}

	best := s.airports[0]
	bestDist := pos.DistKM(geo.Latlong{Lat: best.Lat, Long: best.Lon})
	for _, ap := range s.airports[1:] {
		d := pos.DistKM(geo.Latlong{Lat: ap.Lat, Long: ap.Lon})
		if d < bestDist {
			best = ap
			bestDist = d
		}
	}

	return best, bestDist, nil
}
