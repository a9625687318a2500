package passenger

import (
	"fmt"
)

// Summary is the aggregate snapshot over a passenger collection.
type Summary struct {
	Total        int            `json:"total"`
	Survived     int            `json:"survived"`
	SurvivalRate string         `json:"survival_rate"`
	ByClass      ClassBreakdown `json:"by_class"`
	BySex        SexBreakdown   `json:"by_sex"`
}

// ClassBreakdown counts passengers per class.
type ClassBreakdown struct {
	First  int `json:"1"`
	Second int `json:"2"`
	Third  int `json:"3"`
}

// SexBreakdown counts passengers per sex.
type SexBreakdown struct {
	Male   int `json:"male"`
	Female int `json:"female"`
}

// Summarize computes the aggregate in a single pass.
func Summarize(ps []Passenger) Summary {
	s := Summary{Total: len(ps)}
	for _, p := range ps {
		if p.SurvivedFlag() {
			s.Survived++
		}
		switch p.Class {
		case 1:
			s.ByClass.First++
		case 2:
			s.ByClass.Second++
		case 3:
			s.ByClass.Third++
		}
		switch p.Sex {
		case SexMale:
			s.BySex.Male++
		case SexFemale:
			s.BySex.Female++
		}
	}
	s.SurvivalRate = FormatRate(s.Survived, s.Total)
	return s
}

// FormatRate renders part/total as a percentage with two decimals.
// An empty total renders as "0.00%".
func FormatRate(part, total int) string {
	if total == 0 {
		return "0.00%"
	}
	return fmt.Sprintf("%.2f%%", float64(part)*100/float64(total))
}

// SurvivalLabel is the localized label for a survival flag.
func SurvivalLabel(status int) string {
	if status == 1 {
		return "Sobrevivió"
	}
	return "No sobrevivió"
}
