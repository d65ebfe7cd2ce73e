package model

// Category is a service category code.
type Category string

const (
	CategoryPlumbing        Category = "plumbing"
	CategoryElectrical      Category = "electrical"
	CategoryCarpentry       Category = "carpentry"
	CategoryPainting        Category = "painting"
	CategoryCleaning        Category = "cleaning"
	CategoryLandscaping     Category = "landscaping"
	CategoryHVAC            Category = "hvac"
	CategoryRoofing         Category = "roofing"
	CategoryApplianceRepair Category = "appliance_repair"
	CategoryMoving          Category = "moving"
)

// categories keeps picker order. Must match the enumeration the database accepts.
var categories = []Category{
	CategoryPlumbing,
	CategoryElectrical,
	CategoryCarpentry,
	CategoryPainting,
	CategoryCleaning,
	CategoryLandscaping,
	CategoryHVAC,
	CategoryRoofing,
	CategoryApplianceRepair,
	CategoryMoving,
}

var categoryLabels = map[Category]string{
	CategoryPlumbing:        "Plumbing",
	CategoryElectrical:      "Electrical",
	CategoryCarpentry:       "Carpentry",
	CategoryPainting:        "Painting",
	CategoryCleaning:        "Cleaning",
	CategoryLandscaping:     "Landscaping",
	CategoryHVAC:            "HVAC",
	CategoryRoofing:         "Roofing",
	CategoryApplianceRepair: "Appliance Repair",
	CategoryMoving:          "Moving",
}

// Categories returns every category in display order. The slice is a copy.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Label returns the human readable name, or the raw code for unknown categories.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// Valid reports whether c belongs to the closed enumeration.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// ParseCategory converts a raw code into a Category.
func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	return c, c.Valid()
}
