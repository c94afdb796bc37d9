package week

// DaysPerWeek is the number of day cells every habit and metric row carries, Monday first.
const DaysPerWeek = 7

// Record is the planning data of one Monday-to-Sunday week.
type Record struct {
	Id              string          `json:"id"`    // ISO date of the Monday, immutable
	Title           string          `json:"title"` // derived on creation, editable afterwards
	StartDate       string          `json:"startDate"`
	EndDate         string          `json:"endDate"`
	BigEvents       []BigEvent      `json:"bigEvents"`
	HabitCategories []HabitCategory `json:"habitCategories"`
	Metrics         []MetricItem    `json:"metrics"`
	Review          Review          `json:"review"`
}

type BigEvent struct {
	Id      string `json:"id"`
	Type    string `json:"type"` // fixed label, only Content and Status are edited
	Content string `json:"content"`
	Status  string `json:"status"`
}

type HabitCategory struct {
	Name  string      `json:"name"`
	Items []HabitItem `json:"items"`
}

type HabitItem struct {
	Id      string            `json:"id"`
	Name    string            `json:"name"`
	Target  int               `json:"target"`
	Days    [DaysPerWeek]bool `json:"days"`
	Remarks string            `json:"remarks"`
}

type MetricItem struct {
	Id      string                   `json:"id"`
	Name    string                   `json:"name"`
	Target  float64                  `json:"target"`
	Days    [DaysPerWeek]MetricValue `json:"days"`
	Remarks string                   `json:"remarks"`
}

type Review struct {
	Input   string `json:"input"`
	Output  string `json:"output"`
	Keep    string `json:"keep"`
	Improve string `json:"improve"`
}

// Clone returns a deep copy, so edits on the copy never leak into the original.
func (r Record) Clone() Record {
	clone := r
	if r.BigEvents != nil {
		clone.BigEvents = append([]BigEvent(nil), r.BigEvents...)
	}
	if r.HabitCategories != nil {
		clone.HabitCategories = make([]HabitCategory, len(r.HabitCategories))
		for i, category := range r.HabitCategories {
			clone.HabitCategories[i] = HabitCategory{Name: category.Name}
			if category.Items != nil {
				clone.HabitCategories[i].Items = append([]HabitItem(nil), category.Items...)
			}
		}
	}
	if r.Metrics != nil {
		clone.Metrics = append([]MetricItem(nil), r.Metrics...)
	}
	return clone
}
