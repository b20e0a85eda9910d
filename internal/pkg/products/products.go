package products

import "github.com/slotpress/slotpress/internal/pkg/entitlements"

// Product associates a payment-provider product with the capabilities it
// grants and an optional fixed price used when a slot carries none of its own.
type Product struct {
	PaymentProductID string
	Name             string
	Grants           []string
	PriceCents       int64
	ValidityDays     int // 0 = permanent grant
}

// The catalog is static by design: payment products change rarely and a
// deploy is an acceptable way to change them.
var catalog = []Product{
	{
		PaymentProductID: "prod_interview_standard",
		Name:             "Interview Feature",
		Grants:           []string{entitlements.CapabilityInterview},
		PriceCents:       14900,
		ValidityDays:     0,
	},
	{
		PaymentProductID: "prod_music_placement",
		Name:             "Music Placement",
		Grants:           []string{entitlements.CapabilityMusicPlacement},
		PriceCents:       9900,
		ValidityDays:     30,
	},
	{
		PaymentProductID: "prod_submission",
		Name:             "Submission",
		Grants:           []string{entitlements.CapabilitySubmission},
		PriceCents:       2900,
		ValidityDays:     0,
	},
}

// GetProductByPaymentID returns the catalog entry for a provider product id,
// or nil when the id is unknown. Linear scan, first match wins.
func GetProductByPaymentID(id string) *Product {
	for i := range catalog {
		if catalog[i].PaymentProductID == id {
			return &catalog[i]
		}
	}
	return nil
}

// GetProductBySlotSlug maps a slot slug to the product that unlocks it. Only
// a small fixed set of slugs is recognized; anything else falls back to the
// generic submission product, so the lookup never comes back empty.
func GetProductBySlotSlug(slug string) Product {
	switch slug {
	case "interview", "featured-interview", "interview-premium":
		return *GetProductByPaymentID("prod_interview_standard")
	case "music-placement", "music-placement-rotation":
		return *GetProductByPaymentID("prod_music_placement")
	default:
		return *GetProductByPaymentID("prod_submission")
	}
}

// Catalog returns a copy of the full product table, mainly for the admin UI.
func Catalog() []Product {
	out := make([]Product, len(catalog))
	copy(out, catalog)
	return out
}
