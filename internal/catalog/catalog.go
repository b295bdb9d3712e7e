// Package catalog is the static subject and topic content of the Learn pages.
package catalog

import "strings"

type Topic struct {
	Name string
	Slug string
}

type Section struct {
	Name   string
	Topics []Topic
}

type Subject struct {
	Name     string
	Slug     string
	Sections []Section
}

// Slug lowercases name and turns spaces and commas into dashes.
func Slug(name string) string {
	return strings.NewReplacer(" ", "-", ",", "-").Replace(strings.ToLower(name))
}

func section(name string, topics ...string) Section {
	s := Section{Name: name, Topics: make([]Topic, 0, len(topics))}
	for _, t := range topics {
		s.Topics = append(s.Topics, Topic{Name: t, Slug: Slug(t)})
	}
	return s
}

var subjects = []Subject{
	{
		Name: "Physics",
		Slug: "physics",
		Sections: []Section{
			section("General Physics",
				"Units and Dimensions",
				"Physical World and Measurement",
				"Kinematics",
				"Laws of Motion",
				"Work, Energy and Power",
				"Rotational Motion",
				"Gravitation",
				"Properties of Matter",
				"Thermodynamics",
				"Kinetic Theory of Gases",
				"Oscillations and Waves",
			),
			section("Mechanics & Heat",
				"System of Particles and Rotational Motion",
				"Gravitation",
				"Mechanical Properties of Solids",
				"Mechanical Properties of Fluids",
				"Thermal Properties of Matter",
				"Thermodynamics",
				"Kinetic Theory",
			),
			section("Electrodynamics",
				"Electrostatics",
				"Current Electricity",
				"Magnetic Effects of Current and Magnetism",
				"Electromagnetic Induction and Alternating Currents",
				"Electromagnetic Waves",
			),
			section("Modern Physics",
				"Dual Nature of Matter and Radiation",
				"Atoms",
				"Nuclei",
				"Semiconductor Electronics",
			),
		},
	},
	{Name: "Chemistry", Slug: "chemistry"},
	{Name: "Math", Slug: "math"},
}

// Subjects lists every subject in display order.
func Subjects() []Subject {
	return subjects
}

// Find looks a subject up by slug.
func Find(slug string) (Subject, bool) {
	for _, s := range subjects {
		if s.Slug == slug {
			return s, true
		}
	}
	return Subject{}, false
}

// Topic resolves a topic slug within the subject. A topic listed in more
// than one section resolves to its first listing.
func (s Subject) Topic(slug string) (Topic, Section, bool) {
	for _, sec := range s.Sections {
		for _, t := range sec.Topics {
			if t.Slug == slug {
				return t, sec, true
			}
		}
	}
	return Topic{}, Section{}, false
}
