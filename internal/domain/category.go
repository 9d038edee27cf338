package domain

// CategoryAll is the "no filter" value offered next to the real categories.
const CategoryAll = "All"

// categories is the closed set of legal Business categories. Both the
// validator and the metadata listing read it through the functions below.
var categories = [...]string{
	"Retail",
	"Technology",
	"Food & Beverage",
	"Healthcare",
	"Professional Services",
	"Other",
}

// Categories returns the closed category set in display order.
func Categories() []string {
	out := make([]string, len(categories))
	copy(out, categories[:])
	return out
}

// CategoryOptions returns the closed set prefixed with CategoryAll.
func CategoryOptions() []string {
	return append([]string{CategoryAll}, categories[:]...)
}

// IsCategory reports whether s is a member of the closed set. CategoryAll is not.
func IsCategory(s string) bool {
	for _, c := range categories {
		if c == s {
			return true
		}
	}
	return false
}
