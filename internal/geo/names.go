package geo

import "strings"

// SafeName turns a human region label ("Houston Ship Channel, USA") into
// a file and asset friendly slug ("houston_ship_channel_usa").
func SafeName(region string) string {
	s := strings.ToLower(region)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, ".", "")
	return s
}
