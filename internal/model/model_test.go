package model

import (
	"math"
	"testing"
)

func TestParseShingleType(t *testing.T) {
	cases := []struct {
		in   string
		want ShingleType
	}{
		{"architectural", ShingleArchitectural},
		{"Architectural", ShingleArchitectural},
		{"arch", ShingleArchitectural},
		{"3tab", Shingle3Tab},
		{"3-tab", Shingle3Tab},
		{" 3Tab ", Shingle3Tab},
	}
	for _, c := range cases {
		got, err := ParseShingleType(c.in)
		if err != nil {
			t.Errorf("ParseShingleType(%q) returned error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseShingleType(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseShingleTypeUnknown(t *testing.T) {
	if _, err := ParseShingleType("cedar shake"); err == nil {
		t.Error("expected error for unknown shingle type")
	}
	if _, err := ParseShingleType(""); err == nil {
		t.Error("expected error for empty shingle type")
	}
}

func TestBundlePrice(t *testing.T) {
	pb := DefaultPriceBook()

	arch, err := pb.BundlePrice(ShingleArchitectural)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if arch != 42.00 {
		t.Errorf("expected 42.00 for architectural bundle, got %.2f", arch)
	}

	tab, err := pb.BundlePrice(Shingle3Tab)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tab != 32.00 {
		t.Errorf("expected 32.00 for 3tab bundle, got %.2f", tab)
	}

	if _, err := pb.BundlePrice(ShingleType("slate")); err == nil {
		t.Error("expected error for shingle type not in price book")
	}
}

func TestDefaultPriceBookRegion(t *testing.T) {
	pb := DefaultPriceBook()
	if pb.Currency != "CAD" {
		t.Errorf("expected CAD, got %s", pb.Currency)
	}
	if pb.Region != "Alberta" {
		t.Errorf("expected Alberta, got %s", pb.Region)
	}
}

func TestYieldTableRates(t *testing.T) {
	yt := DefaultYieldTable()

	oilRates := yt.RatesFor(RecoveryBinderOil)
	if math.Abs(oilRates.Oil-0.32) > 1e-9 {
		t.Errorf("expected binder_oil oil rate 0.32, got %v", oilRates.Oil)
	}

	granuleRates := yt.RatesFor(RecoveryGranule)
	if math.Abs(granuleRates.Granule-0.40) > 1e-9 {
		t.Errorf("expected granule granule rate 0.40, got %v", granuleRates.Granule)
	}

	// Unknown class falls back to mixed processing
	fallback := yt.RatesFor(RecoveryClass("unknown"))
	if math.Abs(fallback.Oil-0.28) > 1e-9 {
		t.Errorf("expected mixed fallback oil rate 0.28, got %v", fallback.Oil)
	}
}

func TestSquareWeight(t *testing.T) {
	yt := DefaultYieldTable()

	w, err := yt.SquareWeight(ShingleArchitectural)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w != 250 {
		t.Errorf("expected 250 lbs/square for architectural, got %v", w)
	}

	w, err = yt.SquareWeight(Shingle3Tab)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w != 230 {
		t.Errorf("expected 230 lbs/square for 3tab, got %v", w)
	}

	if _, err := yt.SquareWeight(ShingleType("metal")); err == nil {
		t.Error("expected error for shingle type not in yield table")
	}
}

func TestNewReportID(t *testing.T) {
	id := NewReportID()
	if len(id) != 8 {
		t.Errorf("expected 8-char report ID, got %q", id)
	}
	if id == NewReportID() {
		t.Error("expected unique report IDs")
	}
}
