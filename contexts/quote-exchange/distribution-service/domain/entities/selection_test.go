package entities

import "testing"

func vendorPool() []VendorProfile {
	return []VendorProfile{
		{VendorID: "v-verified-tile", Verified: true, Specialties: []string{"타일"}, MinTicket: 1_000_000, Regions: []string{"seoul"}},
		{VendorID: "v-unverified", Verified: false, Specialties: []string{"타일"}, MinTicket: 0, Regions: []string{"seoul"}},
		{VendorID: "v-paint", Verified: true, Specialties: []string{"도배"}, MinTicket: 500_000, Regions: []string{"busan"}},
		{VendorID: "v-expensive", Verified: true, Specialties: []string{"타일"}, MinTicket: 90_000_000, Regions: []string{"seoul"}},
		{VendorID: "v-anywhere", Verified: true, Specialties: []string{"타일", "도배"}, MinTicket: 0, Regions: []string{"seoul", "busan"}},
	}
}

func TestSelectVendorsFiltersUnverified(t *testing.T) {
	selected := SelectVendors(vendorPool(), SelectionFilters{}, 10_000_000, 5, nil)
	for _, vendor := range selected {
		if vendor.VendorID == "v-unverified" {
			t.Fatalf("unverified vendor selected")
		}
	}
}

func TestSelectVendorsBudgetCeiling(t *testing.T) {
	selected := SelectVendors(vendorPool(), SelectionFilters{}, 10_000_000, 5, nil)
	for _, vendor := range selected {
		if vendor.VendorID == "v-expensive" {
			t.Fatalf("vendor above budget ceiling selected")
		}
	}
	if len(selected) != 3 {
		t.Fatalf("selected = %d, want 3", len(selected))
	}
}

func TestSelectVendorsMinTicketOverridesBudget(t *testing.T) {
	ceiling := int64(100_000_000)
	selected := SelectVendors(vendorPool(), SelectionFilters{MinTicket: &ceiling}, 10_000_000, 5, nil)
	found := false
	for _, vendor := range selected {
		if vendor.VendorID == "v-expensive" {
			found = true
		}
	}
	if !found {
		t.Fatalf("min_ticket filter did not override the budget ceiling")
	}
}

func TestSelectVendorsSpecialtyFilter(t *testing.T) {
	selected := SelectVendors(vendorPool(), SelectionFilters{Specialties: []string{"도배"}}, 10_000_000, 5, nil)
	if len(selected) != 2 {
		t.Fatalf("selected = %d, want 2", len(selected))
	}
	for _, vendor := range selected {
		if vendor.VendorID != "v-paint" && vendor.VendorID != "v-anywhere" {
			t.Fatalf("unexpected vendor %s", vendor.VendorID)
		}
	}
}

func TestSelectVendorsRegionFilter(t *testing.T) {
	selected := SelectVendors(vendorPool(), SelectionFilters{Regions: []string{"busan"}}, 10_000_000, 5, nil)
	for _, vendor := range selected {
		if vendor.VendorID == "v-verified-tile" {
			t.Fatalf("vendor outside requested region selected")
		}
	}
	if len(selected) != 2 {
		t.Fatalf("selected = %d, want 2", len(selected))
	}
}

func TestSelectVendorsTruncatesToMax(t *testing.T) {
	selected := SelectVendors(vendorPool(), SelectionFilters{}, 10_000_000, 2, nil)
	if len(selected) != 2 {
		t.Fatalf("selected = %d, want 2", len(selected))
	}
	// Pool order is preserved, so truncation keeps the earliest entries.
	if selected[0].VendorID != "v-verified-tile" || selected[1].VendorID != "v-paint" {
		t.Fatalf("unexpected truncation order: %s, %s", selected[0].VendorID, selected[1].VendorID)
	}
}

func TestSelectVendorsCustomRegionMatcher(t *testing.T) {
	matchNone := func(VendorProfile, []string) bool { return false }
	selected := SelectVendors(vendorPool(), SelectionFilters{Regions: []string{"seoul"}}, 10_000_000, 5, matchNone)
	if len(selected) != 0 {
		t.Fatalf("selected = %d, want 0 with rejecting matcher", len(selected))
	}
}
