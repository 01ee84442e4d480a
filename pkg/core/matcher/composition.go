package matcher

// Shortfall is a team composition rule a roster fails to meet
type Shortfall string

const (
	ShortfallNoTrackA          Shortfall = "no MBA student"
	ShortfallNoTrackB          Shortfall = "no MEng student"
	ShortfallNoStrongCoder     Shortfall = "no student with coding ability 3 or 4"
	ShortfallNoBusinessAbility Shortfall = "no student with business ability 3 or 4"
	ShortfallNoWorkExperience  Shortfall = "no student with work experience 3 or 4"
)

// StrongAttribute is the lowest self-assessment counted as strong
const StrongAttribute = 3

// Shortfalls returns every composition rule the team fails, checked
// independently. An empty roster fails all five.
func (p *Project) Shortfalls() []Shortfall {
	var hasTrackA, hasTrackB, hasCoder, hasBusiness, hasExperience bool

	for _, s := range p.Roster {
		switch s.Track {
		case TrackA:
			hasTrackA = true
		case TrackB:
			hasTrackB = true
		}
		if s.CodingAbility >= StrongAttribute {
			hasCoder = true
		}
		if s.BusinessAbility >= StrongAttribute {
			hasBusiness = true
		}
		if s.WorkExperience >= StrongAttribute {
			hasExperience = true
		}
	}

	var shortfalls []Shortfall
	if !hasTrackA {
		shortfalls = append(shortfalls, ShortfallNoTrackA)
	}
	if !hasTrackB {
		shortfalls = append(shortfalls, ShortfallNoTrackB)
	}
	if !hasCoder {
		shortfalls = append(shortfalls, ShortfallNoStrongCoder)
	}
	if !hasBusiness {
		shortfalls = append(shortfalls, ShortfallNoBusinessAbility)
	}
	if !hasExperience {
		shortfalls = append(shortfalls, ShortfallNoWorkExperience)
	}
	return shortfalls
}
