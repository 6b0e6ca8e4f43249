package entities

// RegionMatcherFunc decides whether a vendor serves any of the requested
// regions. Real geofence matching is an external collaborator; the default
// is plain set intersection over precomputed region identifiers.
type RegionMatcherFunc func(vendor VendorProfile, regions []string) bool

func DefaultRegionMatch(vendor VendorProfile, regions []string) bool {
	return intersects(vendor.Regions, regions)
}

// SelectVendors filters the vendor pool down to the eligible, truncated set
// for one distribution round. Order of the pool is preserved. The result
// never exceeds maxVendors; callers clamp maxVendors to [1,5] beforehand.
func SelectVendors(
	pool []VendorProfile,
	filters SelectionFilters,
	budget int64,
	maxVendors int,
	serves RegionMatcherFunc,
) []VendorProfile {
	if serves == nil {
		serves = DefaultRegionMatch
	}
	ceiling := budget
	if filters.MinTicket != nil {
		ceiling = *filters.MinTicket
	}

	selected := make([]VendorProfile, 0, maxVendors)
	for _, vendor := range pool {
		if !vendor.Verified {
			continue
		}
		if len(filters.Specialties) > 0 && !intersects(vendor.Specialties, filters.Specialties) {
			continue
		}
		if vendor.MinTicket > ceiling {
			continue
		}
		if len(filters.Regions) > 0 && !serves(vendor, filters.Regions) {
			continue
		}
		selected = append(selected, vendor)
		if len(selected) == maxVendors {
			break
		}
	}
	return selected
}

func intersects(left []string, right []string) bool {
	if len(left) == 0 || len(right) == 0 {
		return false
	}
	seen := make(map[string]struct{}, len(left))
	for _, value := range left {
		seen[value] = struct{}{}
	}
	for _, value := range right {
		if _, ok := seen[value]; ok {
			return true
		}
	}
	return false
}
