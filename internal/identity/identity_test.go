package identity

import "testing"

func TestSellerNamePrefersConfigured(t *testing.T) {
	if got := SellerName("Layla Hassan"); got != "Layla Hassan" {
		t.Errorf("SellerName() = %q", got)
	}
}

func TestSellerNameTrimsWhitespace(t *testing.T) {
	if got := SellerName("  Omar  "); got != "Omar" {
		t.Errorf("SellerName() = %q", got)
	}
}

func TestSellerNameFallbackNeverEmpty(t *testing.T) {
	if got := SellerName("   "); got == "" {
		t.Error("SellerName() returned empty for blank config")
	}
}
