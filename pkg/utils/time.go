package utils

import "time"

const dateLayout = "2006-01-02"

// CalculateAge returns completed years between a person's birth date and
// either their death date or now. Returns nil when dob is absent or
// unparseable.
func CalculateAge(dob, dod *string, now time.Time) *int {
	if dob == nil {
		return nil
	}
	birth, err := time.Parse(dateLayout, *dob)
	if err != nil {
		return nil
	}
	end := now
	if dod != nil {
		if d, err := time.Parse(dateLayout, *dod); err == nil {
			end = d
		}
	}
	if end.Before(birth) {
		return nil
	}
	years := end.Year() - birth.Year()
	// Not yet reached this year's birthday
	if end.Month() < birth.Month() ||
		(end.Month() == birth.Month() && end.Day() < birth.Day()) {
		years--
	}
	return &years
}

// DeriveDOBFromAge infers a year-only birth date from a stated age,
// anchored on the death date when one exists. Day and month default to
// January 1st since only the year is actually known.
func DeriveDOBFromAge(age int, dod *string, now time.Time) string {
	targetYear := now.Year()
	if dod != nil {
		if d, err := time.Parse(dateLayout, *dod); err == nil {
			targetYear = d.Year()
		}
	}
	return time.Date(targetYear-age, time.January, 1, 0, 0, 0, 0, time.UTC).Format(dateLayout)
}
