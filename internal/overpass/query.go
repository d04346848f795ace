package overpass

import "fmt"

// BuildQuery renders the storage-tank query for a bbox in Overpass
// south,west,north,east order. The union covers both ways and relations
// tagged man_made=storage_tank.
func BuildQuery(timeoutSec int, bbox string) string {
	return fmt.Sprintf(`[out:json][timeout:%d];
(
  way["man_made"="storage_tank"](%s);
  relation["man_made"="storage_tank"](%s);
);
out body;
>;
out skel qt;
`, timeoutSec, bbox, bbox)
}
