// file: internals/constants/academics.go
package constants

// Academic calendar & grid enumerations. Every boundary validation of the
// timetable API goes through these sets.

const (
	SemesterOdd  = "odd"
	SemesterEven = "even"
)

const (
	DayHalfFirst  = "first_half"
	DayHalfSecond = "second_half"
)

const (
	RoomTypeClassroom = "Classroom"
	RoomTypeLab       = "Lab"
)

var SemesterTypes = []string{SemesterOdd, SemesterEven}

var DayHalves = []string{DayHalfFirst, DayHalfSecond}

var Days = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// Ten fixed 55-minute bands, 8:00 through 17:55.
var TimeSlots = []string{
	"8:00-8:55",
	"9:00-9:55",
	"10:00-10:55",
	"11:00-11:55",
	"12:00-12:55",
	"13:00-13:55",
	"14:00-14:55",
	"15:00-15:55",
	"16:00-16:55",
	"17:00-17:55",
}

var Branches = []string{
	"CSE", "CSE-AIML", "CSE-DS", "CSE-HCIOT", "ECE", "ECE-IoT",
}

var Sections = []string{"A", "B", "C"}

// Labs split a section into two batches.
var LabSections = []string{
	"A", "B", "C", "A1", "A2", "B1", "B2", "C1", "C2",
}

func InSet(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// SlotIndex returns the position of a time slot in the grid, -1 if unknown.
func SlotIndex(slot string) int {
	for i, s := range TimeSlots {
		if s == slot {
			return i
		}
	}
	return -1
}

// DayHalfForSlot maps a slot to the half of day its allocation covers:
// slots starting before 13:00 belong to the first half.
func DayHalfForSlot(slot string) string {
	if i := SlotIndex(slot); i >= 0 && i < 5 {
		return DayHalfFirst
	}
	return DayHalfSecond
}
