package domain

// DetectedMaterial is one material reported by the vision model.
type DetectedMaterial struct {
	Material   string  `json:"material"`
	Confidence float64 `json:"confidence"`
}

// VisionResult is the structured classification returned by the vision model.
type VisionResult struct {
	WasteType         string             `json:"waste_type"`
	Condition         string             `json:"condition"`
	UsabilityScore    float64            `json:"usability_score"`
	MaterialsDetected []DetectedMaterial `json:"materials_detected"`
}

// PriceBreakdown exposes the inputs of a price estimate.
type PriceBreakdown struct {
	BasePrice       float64 `json:"base_price"`
	GradeMultiplier float64 `json:"grade_multiplier"`
	MaterialBonus   float64 `json:"material_bonus"`
}

// PricingResult is the output of the pricing function.
type PricingResult struct {
	Price     float64        `json:"price"`
	Range     [2]float64     `json:"range"`
	Breakdown PriceBreakdown `json:"breakdown"`
}

// Pricing is the price section of a valuation response.
type Pricing struct {
	PricePerKg float64    `json:"price_per_kg"`
	PriceRange [2]float64 `json:"price_range"`
}

// ValuationResponse is the full result of analyzing one image.
type ValuationResponse struct {
	WasteType         string             `json:"waste_type"`
	Condition         string             `json:"condition"`
	UsabilityScore    float64            `json:"usability_score"`
	QualityGrade      Grade              `json:"quality_grade"`
	MaterialsDetected []DetectedMaterial `json:"materials_detected"`
	Pricing           Pricing            `json:"pricing"`
	PricingBreakdown  PriceBreakdown     `json:"pricing_breakdown"`
	VendorTrustScore  float64            `json:"vendor_trust_score"`
	RecommendedBuyers []string           `json:"recommended_buyers"`
	AIVerified        bool               `json:"ai_verified"`
}
