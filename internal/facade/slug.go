package facade

import "strings"

const venueMarker = "venues/"

// ExtractVenueSlug returns what follows "venues/" in a reservation page URL,
// up to the first '?' or the end. It returns "" when the marker is absent.
//
//	https://resy.com/cities/ny/venues/abc-bistro?date=2024-01-01 -> abc-bistro
func ExtractVenueSlug(url string) string {
	start := strings.Index(url, venueMarker)
	if start < 0 {
		return ""
	}
	rest := url[start+len(venueMarker):]
	if end := strings.IndexByte(rest, '?'); end >= 0 {
		return rest[:end]
	}
	return rest
}
