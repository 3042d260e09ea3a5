package domain

import (
	"fmt"
	"time"
)

// Split is the dataset partition a user belongs to.
type Split string

const (
	SplitTrain Split = "Train"
	SplitTest  Split = "Test"
)

// ParseSplit validates a split label.
func ParseSplit(s string) (Split, error) {
	switch Split(s) {
	case SplitTrain, SplitTest:
		return Split(s), nil
	default:
		return "", fmt.Errorf("unrecognised split label [%s]: %w", s, ErrInvalidArgument)
	}
}

// Location is the part of a user or job record used for geocoding.
type Location struct {
	City    string
	State   string
	Country string
	Zip     *int
}

type User struct {
	Token                int
	WindowID             int
	Split                Split
	Location             Location
	DegreeType           string
	Major                string
	GraduationDate       *time.Time
	WorkHistoryCount     int
	TotalYearsExperience *float64
	CurrentlyEmployed    string
	ManagedOthers        string
	ManagedHowMany       int
}

// EmploymentFlag encodes CurrentlyEmployed as 1 (yes), 0 (no) or -1 (unknown).
func (u User) EmploymentFlag() float64 {
	switch u.CurrentlyEmployed {
	case "Yes":
		return 1
	case "No":
		return 0
	default:
		return -1
	}
}

type Job struct {
	Token        int
	WindowID     int
	Title        string
	Description  string
	Requirements string
	Location     Location
	StartDate    time.Time
	EndDate      time.Time
}

type Application struct {
	UserToken       int
	WindowID        int
	Split           Split
	ApplicationDate time.Time
	JobToken        int
}

// Users holds parsed user records keyed by token.
type Users map[int]User

// Get returns the user with the given token.
func (u Users) Get(token int) (User, error) {
	user, ok := u[token]
	if !ok {
		return User{}, fmt.Errorf("user %d: %w", token, ErrNotFound)
	}
	return user, nil
}

// Jobs holds parsed job records keyed by token.
type Jobs map[int]Job

// Get returns the job with the given token.
func (j Jobs) Get(token int) (Job, error) {
	job, ok := j[token]
	if !ok {
		return Job{}, fmt.Errorf("job %d: %w", token, ErrNotFound)
	}
	return job, nil
}
