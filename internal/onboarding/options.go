package onboarding

import "strings"

// Option is one selectable choice in the questionnaire.
type Option struct {
	ID    string
	Label string
}

// Track values.
const (
	Track11    = "11"
	Track12    = "12"
	TrackBTech = "btech"
)

var (
	Tracks = []Option{
		{ID: Track11, Label: "11th"},
		{ID: Track12, Label: "12th"},
		{ID: TrackBTech, Label: "BTech"},
	}
	BTechYears = []Option{
		{ID: "1", Label: "1st Year"},
		{ID: "2", Label: "2nd Year"},
		{ID: "3", Label: "3rd Year"},
		{ID: "4", Label: "4th Year"},
	}
	Streams = []Option{
		{ID: "Mechanical", Label: "Mechanical"},
		{ID: "CSE", Label: "CSE"},
		{ID: "Electronics", Label: "Electronics"},
	}
	SchoolInterests = []Option{
		{ID: "JEE", Label: "JEE"},
		{ID: "Coding", Label: "Coding"},
	}
	BTechInterests = []Option{
		{ID: "GATE", Label: "GATE"},
		{ID: "Parallel degree", Label: "Parallel degree"},
	}
)

func hasOption(opts []Option, id string) bool {
	for _, o := range opts {
		if o.ID == id {
			return true
		}
	}
	return false
}

func optionLabel(opts []Option, id string) string {
	for _, o := range opts {
		if o.ID == id {
			return o.Label
		}
	}
	return id
}

// StageLabel describes the selected track for display, e.g. "BTech, 2nd Year, CSE".
func (f Form) StageLabel() string {
	switch f.Track {
	case "":
		return ""
	case TrackBTech:
		parts := []string{optionLabel(Tracks, TrackBTech)}
		if f.BTechYear != "" {
			parts = append(parts, optionLabel(BTechYears, f.BTechYear))
		}
		if f.Stream != "" {
			parts = append(parts, optionLabel(Streams, f.Stream))
		}
		return strings.Join(parts, ", ")
	default:
		return optionLabel(Tracks, f.Track)
	}
}
