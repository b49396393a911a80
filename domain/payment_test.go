package domain

import "testing"

func TestCreditPackageByTier(t *testing.T) {
	tests := []struct {
		tier        string
		wantOK      bool
		wantPrice   float64
		wantCredits int
	}{
		{tier: "basic", wantOK: true, wantPrice: 35, wantCredits: 200},
		{tier: "pro", wantOK: true, wantPrice: 99, wantCredits: 800},
		{tier: "studio", wantOK: true, wantPrice: 199, wantCredits: 2000},
		{tier: "platinum", wantOK: false},
		{tier: "", wantOK: false},
	}

	for _, tt := range tests {
		pkg, ok := CreditPackageByTier(tt.tier)
		if ok != tt.wantOK {
			t.Fatalf("CreditPackageByTier(%q) ok = %v, want %v", tt.tier, ok, tt.wantOK)
		}
		if !ok {
			continue
		}
		if pkg.PriceUSD != tt.wantPrice || pkg.Credits != tt.wantCredits {
			t.Fatalf("CreditPackageByTier(%q) = $%.2f/%d credits, want $%.2f/%d",
				tt.tier, pkg.PriceUSD, pkg.Credits, tt.wantPrice, tt.wantCredits)
		}
	}
}

func TestCreditPackagesIsACopy(t *testing.T) {
	packages := CreditPackages()
	packages[0].Credits = 999999

	if pkg, _ := CreditPackageByTier("basic"); pkg.Credits != 200 {
		t.Fatal("mutating the returned slice must not change the canonical table")
	}
}
