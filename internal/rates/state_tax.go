package rates

import "strings"

// StateTaxConfig holds the per-state inputs for the deterministic property-tax
// formula. SeniorDiscount is overloaded the same way the upstream data is: a
// value above 100 is a fixed dollar exemption, a value of 100 or below is a
// percentage discount applied after dollar exemptions.
type StateTaxConfig struct {
	AverageRate        float64
	HomesteadExemption float64
	SeniorDiscount     float64
	VeteranExemption   float64
	HasSpecialFormula  bool
}

// SeniorDiscountIsDollar reports whether the senior benefit is a fixed dollar
// exemption rather than a percentage discount.
func (c StateTaxConfig) SeniorDiscountIsDollar() bool {
	return c.SeniorDiscount > 100
}

// DefaultStateTaxConfig is applied for states without an explicit entry.
// The 1.07% rate is the national average effective rate.
var DefaultStateTaxConfig = StateTaxConfig{
	AverageRate:        1.07,
	HomesteadExemption: 0,
	SeniorDiscount:     0,
	VeteranExemption:   0,
}

// stateTaxConfigs maps 2-letter state codes to their tax configuration.
// Loaded once at process start; never mutated.
var stateTaxConfigs = map[string]StateTaxConfig{
	"AL": {AverageRate: 0.41, HomesteadExemption: 4000, SeniorDiscount: 100, VeteranExemption: 0},
	"AZ": {AverageRate: 0.62, HomesteadExemption: 0, SeniorDiscount: 0, VeteranExemption: 4188},
	"CA": {AverageRate: 0.75, HomesteadExemption: 7000, SeniorDiscount: 0, VeteranExemption: 4000, HasSpecialFormula: true},
	"CO": {AverageRate: 0.51, HomesteadExemption: 0, SeniorDiscount: 50, VeteranExemption: 0},
	"CT": {AverageRate: 1.79, HomesteadExemption: 0, SeniorDiscount: 0, VeteranExemption: 1500},
	"FL": {AverageRate: 0.86, HomesteadExemption: 50000, SeniorDiscount: 50000, VeteranExemption: 5000},
	"GA": {AverageRate: 0.90, HomesteadExemption: 2000, SeniorDiscount: 4000, VeteranExemption: 0},
	"HI": {AverageRate: 0.29, HomesteadExemption: 100000, SeniorDiscount: 40000, VeteranExemption: 0},
	"IA": {AverageRate: 1.52, HomesteadExemption: 4850, SeniorDiscount: 3250, VeteranExemption: 1852},
	"IL": {AverageRate: 2.08, HomesteadExemption: 10000, SeniorDiscount: 8000, VeteranExemption: 2500},
	"IN": {AverageRate: 0.84, HomesteadExemption: 48000, SeniorDiscount: 14000, VeteranExemption: 14000},
	"KS": {AverageRate: 1.34, HomesteadExemption: 0, SeniorDiscount: 0, VeteranExemption: 0},
	"LA": {AverageRate: 0.56, HomesteadExemption: 7500, SeniorDiscount: 0, VeteranExemption: 0},
	"MA": {AverageRate: 1.14, HomesteadExemption: 0, SeniorDiscount: 1000, VeteranExemption: 400},
	"MD": {AverageRate: 1.05, HomesteadExemption: 0, SeniorDiscount: 0, VeteranExemption: 0},
	"MI": {AverageRate: 1.38, HomesteadExemption: 0, SeniorDiscount: 0, VeteranExemption: 0},
	"MO": {AverageRate: 0.98, HomesteadExemption: 0, SeniorDiscount: 0, VeteranExemption: 0},
	"NC": {AverageRate: 0.80, HomesteadExemption: 0, SeniorDiscount: 25000, VeteranExemption: 45000},
	"NE": {AverageRate: 1.54, HomesteadExemption: 0, SeniorDiscount: 40, VeteranExemption: 0},
	"NH": {AverageRate: 1.93, HomesteadExemption: 0, SeniorDiscount: 0, VeteranExemption: 0},
	"NJ": {AverageRate: 2.23, HomesteadExemption: 0, SeniorDiscount: 250, VeteranExemption: 250},
	"NV": {AverageRate: 0.55, HomesteadExemption: 0, SeniorDiscount: 0, VeteranExemption: 0},
	"NY": {AverageRate: 1.40, HomesteadExemption: 0, SeniorDiscount: 50, VeteranExemption: 0},
	"OH": {AverageRate: 1.59, HomesteadExemption: 25000, SeniorDiscount: 25000, VeteranExemption: 50000},
	"OK": {AverageRate: 0.89, HomesteadExemption: 1000, SeniorDiscount: 0, VeteranExemption: 0},
	"OR": {AverageRate: 0.93, HomesteadExemption: 0, SeniorDiscount: 0, VeteranExemption: 24793},
	"PA": {AverageRate: 1.49, HomesteadExemption: 0, SeniorDiscount: 0, VeteranExemption: 0},
	"SC": {AverageRate: 0.56, HomesteadExemption: 0, SeniorDiscount: 50000, VeteranExemption: 0},
	"TN": {AverageRate: 0.67, HomesteadExemption: 0, SeniorDiscount: 0, VeteranExemption: 0},
	"TX": {AverageRate: 1.60, HomesteadExemption: 100000, SeniorDiscount: 10000, VeteranExemption: 12000, HasSpecialFormula: true},
	"UT": {AverageRate: 0.58, HomesteadExemption: 0, SeniorDiscount: 0, VeteranExemption: 0, HasSpecialFormula: true},
	"VA": {AverageRate: 0.82, HomesteadExemption: 0, SeniorDiscount: 0, VeteranExemption: 0},
	"WA": {AverageRate: 0.87, HomesteadExemption: 0, SeniorDiscount: 60, VeteranExemption: 0},
	"WI": {AverageRate: 1.61, HomesteadExemption: 0, SeniorDiscount: 0, VeteranExemption: 0},
}

// StateTax returns the tax configuration for a 2-letter state code, falling
// back to DefaultStateTaxConfig for unmapped states.
func StateTax(state string) StateTaxConfig {
	if cfg, ok := stateTaxConfigs[strings.ToUpper(strings.TrimSpace(state))]; ok {
		return cfg
	}
	return DefaultStateTaxConfig
}
