package catalog

// SeedConcept describes a concept in the default catalog. Prerequisites
// refer to other seed concepts by position.
type SeedConcept struct {
	Name          string
	Description   string
	Prerequisites []int
}

// DefaultSeed returns the starter catalog for an introductory Python course.
func DefaultSeed() []SeedConcept {
	return []SeedConcept{
		{Name: "Python Basics", Description: "Introduction to Python programming language"},
		{Name: "Data Structures", Description: "Lists, dictionaries, sets, and tuples in Python", Prerequisites: []int{0}},
		{Name: "Algorithms", Description: "Basic algorithms and complexity analysis", Prerequisites: []int{1}},
		{Name: "Object-Oriented Programming", Description: "Classes, objects, inheritance, and polymorphism", Prerequisites: []int{0}},
		{Name: "Database Design", Description: "Relational database design and SQL", Prerequisites: []int{1}},
	}
}
