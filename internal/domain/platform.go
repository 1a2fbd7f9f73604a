package domain

import "strings"

// Platform is a gig platform a worker earns from
type Platform string

const (
	PlatformZomato Platform = "Zomato"
	PlatformSwiggy Platform = "Swiggy"
	PlatformUber   Platform = "Uber"
	PlatformOla    Platform = "Ola"
)

// Platforms lists every supported platform in display order
var Platforms = []Platform{PlatformZomato, PlatformSwiggy, PlatformUber, PlatformOla}

// IsValid reports whether p is one of the supported platforms
func (p Platform) IsValid() bool {
	for _, known := range Platforms {
		if p == known {
			return true
		}
	}
	return false
}

// ExpenseCategory classifies a work expense
type ExpenseCategory string

const (
	ExpenseCategoryPetrol     ExpenseCategory = "Petrol"
	ExpenseCategoryBikeRepair ExpenseCategory = "Bike Repair"
	ExpenseCategoryOther      ExpenseCategory = "Other"
)

// ExpenseCategories lists every expense category in display order
var ExpenseCategories = []ExpenseCategory{ExpenseCategoryPetrol, ExpenseCategoryBikeRepair, ExpenseCategoryOther}

// IsValid reports whether c is one of the supported categories
func (c ExpenseCategory) IsValid() bool {
	for _, known := range ExpenseCategories {
		if c == known {
			return true
		}
	}
	return false
}

// ParsePlatform resolves a platform name case-insensitively
func ParsePlatform(name string) (Platform, error) {
	key := normalizeName(name)
	for _, p := range Platforms {
		if normalizeName(string(p)) == key {
			return p, nil
		}
	}
	return "", ErrUnknownPlatform
}

// ParseExpenseCategory resolves a category name case-insensitively.
// "bike-repair", "bike_repair" and "Bike Repair" all resolve to the same category.
func ParseExpenseCategory(name string) (ExpenseCategory, error) {
	key := normalizeName(name)
	for _, c := range ExpenseCategories {
		if normalizeName(string(c)) == key {
			return c, nil
		}
	}
	return "", ErrUnknownExpenseCategory
}

func normalizeName(name string) string {
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
