package models

import "time"

// Education levels stored in user_profile.education_level.
const (
	EducationSchool = "school"
	EducationBTech  = "btech"
)

// Profile is one user_profile row, keyed by the auth user id.
// Nil pointers are stored as null.
type Profile struct {
	UserID              string    `bson:"user_id" json:"user_id"`
	EducationLevel      *string   `bson:"education_level" json:"education_level"`
	SchoolYear          *string   `bson:"school_year" json:"school_year"`
	BTechYear           *string   `bson:"btech_year" json:"btech_year"`
	Stream              *string   `bson:"stream" json:"stream"`
	Interests           []string  `bson:"interests" json:"interests"`
	ExtraInterests      string    `bson:"extra_interests" json:"extra_interests"`
	CompletedOnboarding bool      `bson:"completed_onboarding" json:"completed_onboarding"`
	UpdatedAt           time.Time `bson:"updated_at" json:"updated_at"`
}

// Clone returns a deep copy so callers can't alias stored slices or pointers.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	c := *p
	c.EducationLevel = clonePtr(p.EducationLevel)
	c.SchoolYear = clonePtr(p.SchoolYear)
	c.BTechYear = clonePtr(p.BTechYear)
	c.Stream = clonePtr(p.Stream)
	if p.Interests != nil {
		c.Interests = append([]string(nil), p.Interests...)
	}
	return &c
}

// Ptr returns a pointer to s, or nil for the empty string.
func Ptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Value dereferences p, treating nil as "".
func Value(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func clonePtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Contains reports whether v is in set.
func Contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
