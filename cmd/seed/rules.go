package main

import "impactcore/internal/service"

func rule(code, name, rate, status string, cert bool) service.StateTaxRuleRequest {
	return service.StateTaxRuleRequest{
		StateCode:           code,
		StateName:           name,
		BaseRate:            rate,
		Status:              status,
		RequiresCertificate: cert,
		Notes:               "platform default",
	}
}

// defaultTaxRules is the state table the platform ships with. Rates are the
// statewide base rate only; local add-ons are not modelled.
var defaultTaxRules = []service.StateTaxRuleRequest{
	rule("AL", "Alabama", "4.00", "exempt_limited", true),
	rule("AK", "Alaska", "0", "no_state_tax", false),
	rule("AZ", "Arizona", "5.60", "non_exempt", false),
	rule("AR", "Arkansas", "6.50", "non_exempt", false),
	rule("CA", "California", "7.25", "non_exempt", false),
	rule("CO", "Colorado", "2.90", "exempt", true),
	rule("CT", "Connecticut", "6.35", "exempt", true),
	rule("DE", "Delaware", "0", "no_state_tax", false),
	rule("DC", "District of Columbia", "6.00", "exempt", true),
	rule("FL", "Florida", "6.00", "exempt", true),
	rule("GA", "Georgia", "4.00", "exempt_limited", true),
	rule("HI", "Hawaii", "4.00", "non_exempt", false),
	rule("ID", "Idaho", "6.00", "exempt_limited", true),
	rule("IL", "Illinois", "6.25", "exempt", true),
	rule("IN", "Indiana", "7.00", "exempt", false),
	rule("IA", "Iowa", "6.00", "exempt_limited", true),
	rule("KS", "Kansas", "6.50", "exempt_limited", true),
	rule("KY", "Kentucky", "6.00", "exempt", true),
	rule("LA", "Louisiana", "4.45", "non_exempt", false),
	rule("ME", "Maine", "5.50", "exempt_limited", true),
	rule("MD", "Maryland", "6.00", "exempt", true),
	rule("MA", "Massachusetts", "6.25", "exempt", true),
	rule("MI", "Michigan", "6.00", "exempt", false),
	rule("MN", "Minnesota", "6.875", "exempt", true),
	rule("MS", "Mississippi", "7.00", "non_exempt", false),
	rule("MO", "Missouri", "4.225", "exempt", true),
	rule("MT", "Montana", "0", "no_state_tax", false),
	rule("NE", "Nebraska", "5.50", "exempt_limited", true),
	rule("NV", "Nevada", "6.85", "exempt", true),
	rule("NH", "New Hampshire", "0", "no_state_tax", false),
	rule("NJ", "New Jersey", "6.625", "exempt", true),
	rule("NM", "New Mexico", "4.875", "exempt_limited", true),
	rule("NY", "New York", "4.00", "exempt", true),
	rule("NC", "North Carolina", "4.75", "refund_based", false),
	rule("ND", "North Dakota", "5.00", "non_exempt", false),
	rule("OH", "Ohio", "5.75", "exempt", false),
	rule("OK", "Oklahoma", "4.50", "exempt_limited", true),
	rule("OR", "Oregon", "0", "no_state_tax", false),
	rule("PA", "Pennsylvania", "6.00", "exempt", true),
	rule("RI", "Rhode Island", "7.00", "exempt", true),
	rule("SC", "South Carolina", "6.00", "non_exempt", false),
	rule("SD", "South Dakota", "4.20", "exempt_limited", true),
	rule("TN", "Tennessee", "7.00", "exempt", true),
	rule("TX", "Texas", "6.25", "exempt", true),
	rule("UT", "Utah", "4.85", "exempt", false),
	rule("VT", "Vermont", "6.00", "exempt", true),
	rule("VA", "Virginia", "5.30", "exempt_limited", true),
	rule("WA", "Washington", "6.50", "non_exempt", false),
	rule("WV", "West Virginia", "6.00", "exempt_limited", true),
	rule("WI", "Wisconsin", "5.00", "exempt", true),
	rule("WY", "Wyoming", "4.00", "exempt_limited", true),
}
