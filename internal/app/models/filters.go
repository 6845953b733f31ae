package models

// Page is an offset/limit window computed from the page and size query params.
type Page struct {
	Offset uint64
	Limit  int
}

// StudentFilter narrows student listings.
type StudentFilter struct {
	GroupID *int64
}

// TestFilter narrows test listings.
type TestFilter struct {
	SubjectID  *int64
	TeacherID  *int64
	OnlyActive bool
}

// ResultFilter narrows result listings.
type ResultFilter struct {
	TestID    *int64
	StudentID *int64
}
