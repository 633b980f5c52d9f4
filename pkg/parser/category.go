package parser

import (
	"strings"

	"github.com/Dineshd5/BudgetSMS/pkg/database"
)

type categoryRule struct {
	keywords []string
	category string
}

// merchant-name rules run before full-body rules; first hit wins
var merchantRules = []categoryRule{
	{[]string{"zomato", "swiggy", "eats"}, database.CategoryFood},
	{[]string{"uber", "ola", "rapido"}, database.CategoryTravel},
	{[]string{"amazon", "flipkart", "myntra", "ajio"}, database.CategoryShopping},
}

var bodyRules = []categoryRule{
	{[]string{"food", "restaurant", "dining"}, database.CategoryFood},
	{[]string{"fuel", "petrol", "taxi"}, database.CategoryTravel},
	{[]string{"recharge", "bill", "electricity", "broadband"}, database.CategoryUtilities},
	{[]string{"movie", "netflix", "cinema"}, database.CategoryEntertainment},
	{[]string{"medical", "hospital", "pharmacy"}, database.CategoryHealth},
	{[]string{"grocery", "mart", "supermarket"}, database.CategoryGroceries},
}

// AssignCategory maps a message to the closed spending-category set. Rules
// are evaluated in a fixed order, not by specificity.
func AssignCategory(text string, merchant string) string {
	t := strings.ToLower(text)
	m := strings.ToLower(merchant)

	for _, rule := range merchantRules {
		if containsAny(m, rule.keywords) {
			return rule.category
		}
	}

	for _, rule := range bodyRules {
		if containsAny(t, rule.keywords) {
			return rule.category
		}
	}

	if strings.Contains(m, "@") || strings.Contains(t, "transfer") {
		return database.CategoryTransfers
	}

	return database.CategoryGeneral
}

func containsAny(haystack string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}

	return false
}
