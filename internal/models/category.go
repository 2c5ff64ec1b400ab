// ABOUTME: Category and MealType enums plus calendar-day helpers.
// ABOUTME: Categories namespace records in the remote store by date bucket.
package models

import "time"

// Category identifies one of the four tracked record namespaces.
type Category string

const (
	CategorySleep   Category = "sleep"
	CategoryWorkout Category = "workout"
	CategoryWater   Category = "water"
	CategoryDiet    Category = "diet"
)

// AllCategories returns all valid categories.
var AllCategories = []Category{
	CategorySleep, CategoryWorkout, CategoryWater, CategoryDiet,
}

// CountableCategories are the categories whose records carry an integer
// magnitude and aggregate generically.
var CountableCategories = []Category{
	CategoryWorkout, CategoryWater, CategoryDiet,
}

// IsValidCategory checks if a string is a valid category.
func IsValidCategory(s string) bool {
	for _, c := range AllCategories {
		if string(c) == s {
			return true
		}
	}
	return false
}

// IsCountable reports whether records of this category satisfy the
// Countable capability.
func (c Category) IsCountable() bool {
	return c == CategoryWorkout || c == CategoryWater || c == CategoryDiet
}

// Unit returns the display unit for a category's magnitude.
func (c Category) Unit() string {
	switch c {
	case CategorySleep:
		return "hrs"
	case CategoryWorkout:
		return "mins"
	case CategoryWater:
		return "oz"
	case CategoryDiet:
		return "calories"
	}
	return ""
}

// MealType classifies a diet entry.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealBrunch    MealType = "brunch"
	MealSnack     MealType = "snack"
	MealFruit     MealType = "fruit"
)

// AllMealTypes returns all valid meal types.
var AllMealTypes = []MealType{
	MealBreakfast, MealLunch, MealDinner, MealBrunch, MealSnack, MealFruit,
}

// IsValidMealType checks if a string is a valid meal type.
func IsValidMealType(s string) bool {
	for _, mt := range AllMealTypes {
		if string(mt) == s {
			return true
		}
	}
	return false
}

// DateKey formats a timestamp as the calendar-day bucket key used in the
// remote store. Time of day is irrelevant to bucketing.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// SameDay reports whether two timestamps fall on the same calendar day,
// regardless of time-of-day component.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DaysBefore returns the timestamp n days before t.
func DaysBefore(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, -n)
}
