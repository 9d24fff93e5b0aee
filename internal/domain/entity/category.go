package entity

import "fmt"

// Category is one of the six nen categories. Their order forms a ring:
// neighbours on the ring are closely related.
type Category string

const (
	Enhancement    Category = "強化系"
	Transmutation  Category = "変化系"
	Conjuration    Category = "具現化系"
	Specialization Category = "特質系"
	Manipulation   Category = "操作系"
	Emission       Category = "放出系"
)

// CategoryCount is the size of the ring.
const CategoryCount = 6

// SpecialistIndex is the slot whose score always comes from the independent
// specialist intensity, never from ring distance.
const SpecialistIndex = 3

// Categories lists every category in ring order. Position encodes meaning in
// every AffinityVector, so this order must never change.
var Categories = [CategoryCount]Category{
	Enhancement,
	Transmutation,
	Conjuration,
	Specialization,
	Manipulation,
	Emission,
}

// Index returns the ring position of c, or -1 if c is not a known category.
func (c Category) Index() int {
	for i, known := range Categories {
		if c == known {
			return i
		}
	}
	return -1
}

// Valid reports whether c is one of the six categories.
func (c Category) Valid() bool {
	return c.Index() >= 0
}

func (c Category) String() string {
	return string(c)
}

// ParseCategory converts a label into a Category.
func ParseCategory(label string) (Category, error) {
	c := Category(label)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, label)
	}
	return c, nil
}

// AffinityVector holds one score in [0, 100] per category, in Categories order.
type AffinityVector [CategoryCount]int

// Floats converts the vector for use as a search vector.
func (v AffinityVector) Floats() []float32 {
	out := make([]float32, len(v))
	for i, s := range v {
		out[i] = float32(s)
	}
	return out
}
