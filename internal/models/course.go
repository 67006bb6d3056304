package models

import "fmt"

// Weekday is the symbolic meeting day used by the catalog backend.
type Weekday string

const (
	Sunday    Weekday = "SUNDAY"
	Monday    Weekday = "MONDAY"
	Tuesday   Weekday = "TUESDAY"
	Wednesday Weekday = "WEDNESDAY"
	Thursday  Weekday = "THURSDAY"
	Friday    Weekday = "FRIDAY"
	Saturday  Weekday = "SATURDAY"
)

var weekdayIndex = map[Weekday]int{
	Sunday:    0,
	Monday:    1,
	Tuesday:   2,
	Wednesday: 3,
	Thursday:  4,
	Friday:    5,
	Saturday:  6,
}

// Index returns the 0-based day number (Sunday = 0). An unrecognized symbol
// is a hard validation error so a malformed section can never produce an
// undefined time ordering.
func (d Weekday) Index() (int, error) {
	idx, ok := weekdayIndex[d]
	if !ok {
		return 0, fmt.Errorf("unknown weekday %q", string(d))
	}
	return idx, nil
}

// Meeting is a single weekly class meeting. Start and End are times of day
// in "HH:MM:SS" (seconds optional) as delivered by the catalog backend.
type Meeting struct {
	Day   Weekday `json:"day" validate:"required"`
	Start string  `json:"start" validate:"required"`
	End   string  `json:"end" validate:"required"`
}

// Section is one concrete offering of a course, identified globally by NRC.
type Section struct {
	NRC            string    `json:"nrc" validate:"required"`
	SectionID      string    `json:"sectionId"`
	Term           string    `json:"term"`
	PTRM           string    `json:"ptrm"`
	Campus         string    `json:"campus"`
	Meetings       []Meeting `json:"meetings"`
	Professors     []string  `json:"professors"`
	AvailableSeats int       `json:"availableSeats" validate:"gte=0"`
	TotalSeats     int       `json:"totalSeats" validate:"gte=0"`
}

// Course groups the sections offered under one catalog code. A code ending
// in "T" denotes the lab variant of the base code.
type Course struct {
	Code     string    `json:"code" validate:"required"`
	Title    string    `json:"title"`
	Credits  float64   `json:"credits"`
	Sections []Section `json:"sections"`
}

const labSuffix = "T"

// IsLabCode reports whether the code names a lab variant.
func IsLabCode(code string) bool {
	return len(code) > 1 && code[len(code)-1:] == labSuffix
}

// BaseCode strips the lab marker, returning the code unchanged for base codes.
func BaseCode(code string) string {
	if IsLabCode(code) {
		return code[:len(code)-1]
	}
	return code
}

// LabCode derives the lab variant code for a base code. Lab codes map to
// themselves.
func LabCode(code string) string {
	if IsLabCode(code) {
		return code
	}
	return code + labSuffix
}
