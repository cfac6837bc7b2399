package upstream

// point is a (lon, lat) pair, matching the WKT coordinate order (x=lon, y=lat).
type point struct {
	lon, lat float64
}

// nowcastCoverage is the Fennoscandia + adjacent seas polygon the nowcast
// API covers. Taken from the upstream provider's published coverage area,
// simplified and shrunk with a negative buffer so the edges are
// conservative (never claims coverage the API doesn't actually have).
var nowcastCoverage = []point{
	{2.547779705832076, 53.30271492607023},
	{-2.905815348621908, 64.65327205671177},
	{-9.497201603182553, 71.32483641294951},
	{15.01761974015538, 72.85721223563839},
	{39.50028754686385, 71.32462086941165},
	{32.90812282213389, 64.65301564004723},
	{27.45389690417179, 53.30251807369419},
	{2.547779705832076, 53.30271492607023},
}

// InNowcastCoverage reports whether (lat, lon) falls inside the nowcast
// coverage polygon, via a standard ray-casting point-in-polygon test. No
// geometry library in the retrieved dependency pool offers WKT polygon
// containment, so this is hand-rolled.
func InNowcastCoverage(lat, lon float64) bool {
	return pointInPolygon(point{lon: lon, lat: lat}, nowcastCoverage)
}

func pointInPolygon(p point, poly []point) bool {
	inside := false
	n := len(poly)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := poly[i], poly[j]
		if (pi.lat > p.lat) != (pj.lat > p.lat) {
			xIntersect := (pj.lon-pi.lon)*(p.lat-pi.lat)/(pj.lat-pi.lat) + pi.lon
			if p.lon < xIntersect {
				inside = !inside
			}
		}
	}
	return inside
}
