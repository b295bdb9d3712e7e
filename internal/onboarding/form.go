// Package onboarding models the questionnaire: field rules, the persisted
// payload and seeding from an existing profile.
package onboarding

import (
	"net/url"
	"strings"
	"time"

	"learnpath-web/internal/apperr"
	"learnpath-web/internal/models"
)

// Form field names, shared by the validator, the HTML form and errors.
const (
	FieldTrack          = "track"
	FieldBTechYear      = "btechYear"
	FieldStream         = "stream"
	FieldInterests      = "interests"
	FieldExtraInterests = "extraInterests"
)

const (
	msgTrack     = "Select your current year or BTech."
	msgBTechYear = "Choose your BTech year."
	msgStream    = "Choose your stream."
)

// Form is the in-progress questionnaire. Interests behaves as an
// insertion-ordered set.
type Form struct {
	Track          string
	BTechYear      string
	Stream         string
	Interests      []string
	ExtraInterests string
}

// FromValues reads a submitted form. ExtraInterests is kept verbatim.
func FromValues(v url.Values) Form {
	f := Form{
		Track:          strings.TrimSpace(v.Get(FieldTrack)),
		BTechYear:      strings.TrimSpace(v.Get(FieldBTechYear)),
		Stream:         strings.TrimSpace(v.Get(FieldStream)),
		ExtraInterests: v.Get(FieldExtraInterests),
	}
	for _, i := range v[FieldInterests] {
		f.Toggle(i, true)
	}
	return f
}

// FromProfile seeds a form from a stored profile so editing resumes.
func FromProfile(p *models.Profile) Form {
	if p == nil {
		return Form{}
	}
	f := Form{
		BTechYear:      models.Value(p.BTechYear),
		Stream:         models.Value(p.Stream),
		ExtraInterests: p.ExtraInterests,
	}
	if models.Value(p.EducationLevel) == models.EducationBTech {
		f.Track = TrackBTech
	} else {
		f.Track = models.Value(p.SchoolYear)
	}
	for _, i := range p.Interests {
		f.Toggle(i, true)
	}
	return f
}

// Selected reports whether option is in the interests set.
func (f Form) Selected(option string) bool {
	return models.Contains(f.Interests, option)
}

// Toggle adds or removes option from the interests set.
func (f *Form) Toggle(option string, on bool) {
	option = strings.TrimSpace(option)
	if option == "" {
		return
	}
	idx := -1
	for i, v := range f.Interests {
		if v == option {
			idx = i
			break
		}
	}
	switch {
	case on && idx < 0:
		f.Interests = append(f.Interests, option)
	case !on && idx >= 0:
		f.Interests = append(f.Interests[:idx:idx], f.Interests[idx+1:]...)
	}
}

// Validate applies the field rules together and returns a validation
// error carrying one message per failing field.
func (f Form) Validate() error {
	errs := map[string]string{}

	switch f.Track {
	case Track11, Track12:
	case TrackBTech:
		if !hasOption(BTechYears, f.BTechYear) {
			errs[FieldBTechYear] = msgBTechYear
		}
		if !hasOption(Streams, f.Stream) {
			errs[FieldStream] = msgStream
		}
	default:
		errs[FieldTrack] = msgTrack
	}

	return apperr.Validation("onboarding.Validate", errs)
}

// Payload builds the row to upsert. School tracks always persist null
// btech_year and stream.
func (f Form) Payload(userID string, now time.Time) models.Profile {
	p := models.Profile{
		UserID:              userID,
		Interests:           f.AllInterests(),
		ExtraInterests:      f.ExtraInterests,
		CompletedOnboarding: true,
		UpdatedAt:           now.UTC(),
	}
	if f.Track == TrackBTech {
		p.EducationLevel = models.Ptr(models.EducationBTech)
		p.BTechYear = models.Ptr(f.BTechYear)
		p.Stream = models.Ptr(f.Stream)
	} else {
		p.EducationLevel = models.Ptr(models.EducationSchool)
		if f.Track == Track11 || f.Track == Track12 {
			p.SchoolYear = models.Ptr(f.Track)
		}
	}
	return p
}

// AllInterests is the selected set unioned with the parsed extras.
func (f Form) AllInterests() []string {
	all := Form{Interests: append([]string(nil), f.Interests...)}
	for _, e := range ParseExtras(f.ExtraInterests) {
		all.Toggle(e, true)
	}
	if all.Interests == nil {
		return []string{}
	}
	return all.Interests
}

// ParseExtras splits a comma-separated string, trimming entries and
// dropping empty ones.
func ParseExtras(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// OtherInterests lists selected interests that are not predefined options
// of either track, i.e. typed extras carried over from a stored profile.
func (f Form) OtherInterests() []string {
	var out []string
	for _, i := range f.Interests {
		if !hasOption(SchoolInterests, i) && !hasOption(BTechInterests, i) {
			out = append(out, i)
		}
	}
	return out
}
