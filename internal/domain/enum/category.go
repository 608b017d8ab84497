package enum

// Category is the closed set of item categories carried by the store.
type Category string

const (
	CategoryGroceries    Category = "Groceries"
	CategoryDairy        Category = "Dairy"
	CategoryBeverages    Category = "Beverages"
	CategorySnacks       Category = "Snacks"
	CategoryFrozen       Category = "Frozen"
	CategoryBakery       Category = "Bakery"
	CategoryHousehold    Category = "Household"
	CategoryPersonalCare Category = "Personal Care"
)

// Categories lists all valid categories, in display order.
func Categories() []Category {
	return []Category{
		CategoryGroceries,
		CategoryDairy,
		CategoryBeverages,
		CategorySnacks,
		CategoryFrozen,
		CategoryBakery,
		CategoryHousehold,
		CategoryPersonalCare,
	}
}

// Valid reports whether c is a member of the closed category set.
func (c Category) Valid() bool {
	for _, v := range Categories() {
		if c == v {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	return string(c)
}
