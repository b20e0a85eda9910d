package products

import (
	"testing"

	"github.com/slotpress/slotpress/internal/pkg/entitlements"
)

func TestGetProductByPaymentID(t *testing.T) {
	p := GetProductByPaymentID("prod_interview_standard")
	if p == nil {
		t.Fatal("expected interview product")
	}
	if p.Grants[0] != entitlements.CapabilityInterview {
		t.Fatalf("unexpected grant: %v", p.Grants)
	}

	if GetProductByPaymentID("prod_does_not_exist") != nil {
		t.Fatal("unknown payment id must return nil")
	}
}

func TestGetProductBySlotSlugFamilies(t *testing.T) {
	a := GetProductBySlotSlug("interview")
	b := GetProductBySlotSlug("featured-interview")
	if a.PaymentProductID != b.PaymentProductID {
		t.Fatalf("interview family must map to one product: %s vs %s", a.PaymentProductID, b.PaymentProductID)
	}

	m := GetProductBySlotSlug("music-placement")
	if m.PaymentProductID != "prod_music_placement" {
		t.Fatalf("unexpected product for music-placement: %s", m.PaymentProductID)
	}
}

func TestGetProductBySlotSlugDefaultsToSubmission(t *testing.T) {
	p := GetProductBySlotSlug("some-unknown-slug")
	if p.PaymentProductID != "prod_submission" {
		t.Fatalf("unknown slug must fall back to submission, got %s", p.PaymentProductID)
	}
	if len(p.Grants) == 0 {
		t.Fatal("fallback product must grant a capability")
	}
}
