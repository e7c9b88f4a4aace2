package solar

import (
	"fmt"

	"github.com/reusecanada/roofline/internal/model"
)

const (
	staticMapBaseURL  = "https://maps.googleapis.com/maps/api/staticmap"
	streetViewBaseURL = "https://maps.googleapis.com/maps/api/streetview"
)

// ImageryURLs builds the satellite and four-heading street-view links
// embedded in reports. These are display links for the report reader, not
// API calls made by this process.
func ImageryURLs(lat, lng float64, key string) model.ImageryLinks {
	sv := func(heading int) string {
		return fmt.Sprintf("%s?size=600x400&location=%v,%v&heading=%d&pitch=25&fov=90&key=%s",
			streetViewBaseURL, lat, lng, heading, key)
	}
	return model.ImageryLinks{
		Satellite: fmt.Sprintf("%s?center=%v,%v&zoom=20&size=600x400&maptype=satellite&key=%s",
			staticMapBaseURL, lat, lng, key),
		North: sv(0),
		South: sv(180),
		East:  sv(90),
		West:  sv(270),
	}
}
