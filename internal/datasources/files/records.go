package files

import (
	"fmt"
	"io"

	"github.com/jbeshir/job-recommender/internal/domain"
)

// Users TSV columns.
const (
	userColID = iota
	userColWindowID
	userColSplit
	userColCity
	userColState
	userColCountry
	userColZip
	userColDegreeType
	userColMajor
	userColGraduationDate
	userColWorkHistoryCount
	userColTotalYearsExperience
	userColCurrentlyEmployed
	userColManagedOthers
	userColManagedHowMany
)

// Jobs TSV columns.
const (
	jobColID = iota
	jobColWindowID
	jobColTitle
	jobColDescription
	jobColRequirements
	jobColCity
	jobColState
	jobColCountry
	jobColZip
	jobColStartDate
	jobColEndDate
)

// Applications TSV columns.
const (
	appColUserID = iota
	appColWindowID
	appColSplit
	appColApplicationDate
	appColJobID
)

// ReadUsers parses a users TSV with a header line.
func ReadUsers(r io.Reader) (domain.Users, error) {
	users := make(domain.Users)
	err := scanTSV(r, true, func(_ int, f []string) error {
		token, err := requiredInt(f, userColID, "user id")
		if err != nil {
			return err
		}
		windowID, err := requiredInt(f, userColWindowID, "window id")
		if err != nil {
			return err
		}
		split, err := domain.ParseSplit(field(f, userColSplit))
		if err != nil {
			return err
		}

		users[token] = domain.User{
			Token:    token,
			WindowID: windowID,
			Split:    split,
			Location: domain.Location{
				City:    field(f, userColCity),
				State:   field(f, userColState),
				Country: field(f, userColCountry),
				Zip:     parseZip(field(f, userColZip)),
			},
			DegreeType:           field(f, userColDegreeType),
			Major:                field(f, userColMajor),
			GraduationDate:       optionalTime(field(f, userColGraduationDate)),
			WorkHistoryCount:     optionalInt(f, userColWorkHistoryCount),
			TotalYearsExperience: optionalFloat(f, userColTotalYearsExperience),
			CurrentlyEmployed:    field(f, userColCurrentlyEmployed),
			ManagedOthers:        field(f, userColManagedOthers),
			ManagedHowMany:       optionalInt(f, userColManagedHowMany),
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing users: %w", err)
	}
	return users, nil
}

// ReadJobs parses a jobs TSV with a header line.
func ReadJobs(r io.Reader) (domain.Jobs, error) {
	jobs := make(domain.Jobs)
	err := scanTSV(r, true, func(_ int, f []string) error {
		token, err := requiredInt(f, jobColID, "job id")
		if err != nil {
			return err
		}
		windowID, err := requiredInt(f, jobColWindowID, "window id")
		if err != nil {
			return err
		}
		start, err := parseTime(field(f, jobColStartDate))
		if err != nil {
			return fmt.Errorf("start date: %w", err)
		}
		end, err := parseTime(field(f, jobColEndDate))
		if err != nil {
			return fmt.Errorf("end date: %w", err)
		}

		jobs[token] = domain.Job{
			Token:        token,
			WindowID:     windowID,
			Title:        field(f, jobColTitle),
			Description:  field(f, jobColDescription),
			Requirements: field(f, jobColRequirements),
			Location: domain.Location{
				City:    field(f, jobColCity),
				State:   field(f, jobColState),
				Country: field(f, jobColCountry),
				Zip:     parseZip(field(f, jobColZip)),
			},
			StartDate: start,
			EndDate:   end,
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing jobs: %w", err)
	}
	return jobs, nil
}

// ReadApplications parses an applications TSV with a header line, in file order.
func ReadApplications(r io.Reader) ([]domain.Application, error) {
	var apps []domain.Application
	err := scanTSV(r, true, func(_ int, f []string) error {
		user, err := requiredInt(f, appColUserID, "user id")
		if err != nil {
			return err
		}
		windowID, err := requiredInt(f, appColWindowID, "window id")
		if err != nil {
			return err
		}
		split, err := domain.ParseSplit(field(f, appColSplit))
		if err != nil {
			return err
		}
		job, err := requiredInt(f, appColJobID, "job id")
		if err != nil {
			return err
		}
		applied, err := parseTime(field(f, appColApplicationDate))
		if err != nil {
			return fmt.Errorf("application date: %w", err)
		}

		apps = append(apps, domain.Application{
			UserToken:       user,
			WindowID:        windowID,
			Split:           split,
			ApplicationDate: applied,
			JobToken:        job,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing applications: %w", err)
	}
	return apps, nil
}

func ReadUsersFile(path string) (domain.Users, error) {
	return readFile(path, ReadUsers)
}

func ReadJobsFile(path string) (domain.Jobs, error) {
	return readFile(path, ReadJobs)
}

func ReadApplicationsFile(path string) ([]domain.Application, error) {
	return readFile(path, ReadApplications)
}

// TokenizeUsersFile assigns user indices in order of appearance in a users TSV.
func TokenizeUsersFile(path string) (domain.TokenIndex, error) {
	return TokenizeColumnFile(path, userColID)
}

// TokenizeJobsFile assigns job indices in order of appearance in a jobs TSV.
func TokenizeJobsFile(path string) (domain.TokenIndex, error) {
	return TokenizeColumnFile(path, jobColID)
}
