package staterules

// Common prohibited-category groups shared by many jurisdictions.
var (
	viceCategories = []string{"gambling", "alcohol", "tobacco", "vaping", "adult_entertainment"}
	viceAndDrugs   = []string{"gambling", "alcohol", "tobacco", "vaping", "adult_entertainment", "cannabis"}
	viceAndArms    = []string{"gambling", "alcohol", "tobacco", "vaping", "adult_entertainment", "firearms"}
	strictVice     = []string{"gambling", "alcohol", "tobacco", "vaping", "adult_entertainment", "cannabis", "firearms", "pharmaceuticals"}
)

func rule(code, name string, hs bool, prohibited []string) StateNILRules {
	return StateNILRules{
		StateCode:            code,
		StateName:            name,
		AllowsNIL:            true,
		HighSchoolAllowed:    hs,
		CollegeAllowed:       true,
		ProhibitedCategories: prohibited,
		DisclosureRequired:   true,
	}
}

// defaultRules is the seeded reference table. Administered data can
// override it through a database-backed registry.
var defaultRules = func() map[string]StateNILRules {
	list := []StateNILRules{
		rule("AL", "Alabama", false, viceCategories),
		rule("AK", "Alaska", true, viceCategories),
		rule("AZ", "Arizona", true, viceAndDrugs),
		rule("AR", "Arkansas", false, viceAndArms),
		rule("CA", "California", true, viceCategories),
		rule("CO", "Colorado", true, viceCategories),
		rule("CT", "Connecticut", true, viceAndDrugs),
		rule("DE", "Delaware", true, viceCategories),
		rule("DC", "District of Columbia", true, viceCategories),
		rule("FL", "Florida", true, strictVice),
		rule("GA", "Georgia", true, viceAndArms),
		rule("HI", "Hawaii", true, viceCategories),
		rule("ID", "Idaho", false, viceAndDrugs),
		rule("IL", "Illinois", false, viceAndDrugs),
		rule("IN", "Indiana", true, viceCategories),
		rule("IA", "Iowa", true, viceCategories),
		rule("KS", "Kansas", true, viceAndDrugs),
		rule("KY", "Kentucky", true, viceCategories),
		rule("LA", "Louisiana", true, viceAndArms),
		rule("ME", "Maine", true, viceCategories),
		rule("MD", "Maryland", true, viceCategories),
		rule("MA", "Massachusetts", true, viceCategories),
		rule("MI", "Michigan", true, viceAndDrugs),
		rule("MN", "Minnesota", true, viceCategories),
		rule("MS", "Mississippi", false, viceAndArms),
		rule("MO", "Missouri", true, viceCategories),
		rule("MT", "Montana", false, viceCategories),
		rule("NE", "Nebraska", true, viceCategories),
		rule("NV", "Nevada", true, viceAndDrugs),
		rule("NH", "New Hampshire", true, viceCategories),
		rule("NJ", "New Jersey", true, strictVice),
		rule("NM", "New Mexico", true, viceCategories),
		rule("NY", "New York", true, viceAndDrugs),
		rule("NC", "North Carolina", true, viceCategories),
		rule("ND", "North Dakota", true, viceCategories),
		rule("OH", "Ohio", true, viceCategories),
		rule("OK", "Oklahoma", true, viceAndArms),
		rule("OR", "Oregon", true, viceCategories),
		rule("PA", "Pennsylvania", true, viceAndDrugs),
		rule("RI", "Rhode Island", true, viceCategories),
		rule("SC", "South Carolina", false, viceAndArms),
		rule("SD", "South Dakota", true, viceCategories),
		rule("TN", "Tennessee", true, viceCategories),
		rule("TX", "Texas", false, strictVice),
		rule("UT", "Utah", true, viceAndDrugs),
		rule("VT", "Vermont", true, viceCategories),
		rule("VA", "Virginia", true, viceCategories),
		rule("WA", "Washington", true, viceCategories),
		rule("WV", "West Virginia", true, viceCategories),
		rule("WI", "Wisconsin", true, viceCategories),
		rule("WY", "Wyoming", true, viceCategories),
	}

	// Jurisdiction-specific tightening beyond the shared defaults.
	byCode := make(map[string]StateNILRules, len(list))
	for _, r := range list {
		byCode[r.StateCode] = r
	}

	ca := byCode["CA"]
	ca.SchoolApprovalRequired = true
	ca.AgentRegistrationRequired = true
	byCode["CA"] = ca

	fl := byCode["FL"]
	fl.SchoolApprovalRequired = true
	fl.FinancialLiteracyRequired = true
	fl.Restrictions = []string{"Deals may not conflict with institutional sponsorship agreements."}
	byCode["FL"] = fl

	tx := byCode["TX"]
	tx.SchoolApprovalRequired = true
	tx.FinancialLiteracyRequired = true
	tx.Restrictions = []string{"No NIL activity during official team activities."}
	byCode["TX"] = tx

	ny := byCode["NY"]
	ny.AgentRegistrationRequired = true
	byCode["NY"] = ny

	nj := byCode["NJ"]
	nj.AgentRegistrationRequired = true
	byCode["NJ"] = nj

	al := byCode["AL"]
	al.SchoolApprovalRequired = true
	byCode["AL"] = al

	la := byCode["LA"]
	la.FinancialLiteracyRequired = true
	byCode["LA"] = la

	il := byCode["IL"]
	il.Restrictions = []string{"High school participation pending state association rulemaking."}
	byCode["IL"] = il

	return byCode
}()
