package domain

// Product categories. No other value is valid anywhere in the system.
const (
	CategoryCourse   = "course"
	CategoryVideo    = "video"
	CategoryEbook    = "ebook"
	CategoryTemplate = "template"

	// CategoryAll is the storefront filter sentinel, not a product category.
	CategoryAll = "all"
)

// Product is a creator-submitted digital good. Records are immutable after
// creation; the only lifecycle transition is deletion by the owning creator.
type Product struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"` // USD main units; converted to cents only at the checkout boundary
	ImageURL    string  `json:"imageUrl,omitempty"`
	FileURL     string  `json:"fileUrl,omitempty"`
	CreatorID   string  `json:"creatorId"`
	CreatedAt   string  `json:"createdAt"` // RFC3339
	Category    string  `json:"category"`
	Featured    bool    `json:"featured"`
}

// CategoryInfo pairs a category id with its storefront display label.
type CategoryInfo struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Categories returns the fixed category set in display order, with the "all"
// sentinel first the way the storefront renders its filter bar.
func Categories() []CategoryInfo {
	return []CategoryInfo{
		{ID: CategoryAll, Label: "All Products"},
		{ID: CategoryCourse, Label: "Courses"},
		{ID: CategoryVideo, Label: "Videos"},
		{ID: CategoryEbook, Label: "E-books"},
		{ID: CategoryTemplate, Label: "Templates"},
	}
}

// ValidCategory reports whether v is one of the four product categories.
func ValidCategory(v string) bool {
	switch v {
	case CategoryCourse, CategoryVideo, CategoryEbook, CategoryTemplate:
		return true
	}
	return false
}
