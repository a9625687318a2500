package scoring

import "strings"

// Features are descriptive labels. They never feed back into the score.
type Features struct {
	Gender         string `json:"gender"`
	Class          string `json:"class"`
	AgeGroup       string `json:"age_group"`
	Family         string `json:"family"`
	FareCategory   string `json:"fare_category"`
	TravelingAlone bool   `json:"traveling_alone"`
	Title          string `json:"title,omitempty"`
}

// Explain derives the labels for in.
func Explain(in Input) Features {
	f := Features{
		Gender:         genderLabel(in.Sex),
		Class:          classLabel(in.Pclass),
		AgeGroup:       ageGroup(in.Age),
		Family:         "Solo",
		FareCategory:   fareCategory(in.Fare),
		TravelingAlone: in.FamilySize() == 0,
		Title:          Title(in.Name),
	}
	if in.FamilySize() > 0 {
		f.Family = "Con familia"
	}
	return f
}

func genderLabel(sex string) string {
	switch sex {
	case "female":
		return "Mujer"
	case "male":
		return "Hombre"
	default:
		return "Desconocido"
	}
}

func classLabel(class int) string {
	switch class {
	case 1:
		return "Primera clase"
	case 2:
		return "Segunda clase"
	case 3:
		return "Tercera clase"
	default:
		return "Desconocida"
	}
}

func ageGroup(age float64) string {
	switch {
	case age <= 12:
		return "Niño"
	case age <= 25:
		return "Joven"
	case age > 60:
		return "Adulto mayor"
	default:
		return "Adulto"
	}
}

func fareCategory(fare float64) string {
	switch {
	case fare <= 25:
		return "Baja"
	case fare <= 100:
		return "Media"
	default:
		return "Alta"
	}
}

var titles = map[string]string{
	"Mr": "Mr", "Mrs": "Mrs", "Miss": "Miss", "Master": "Master",
	"Mlle": "Miss", "Ms": "Miss", "Mme": "Mrs",
	"Dr": "Professional", "Rev": "Professional",
	"Col": "Military", "Major": "Military", "Capt": "Military",
	"Lady": "Nobility", "Countess": "Nobility", "Sir": "Nobility",
	"Don": "Nobility", "Dona": "Nobility", "Jonkheer": "Nobility",
}

// Title extracts the honorific from a "Surname, Title. Given names" name and
// groups it. Names without that shape yield "".
func Title(name string) string {
	_, rest, ok := strings.Cut(name, ", ")
	if !ok {
		return ""
	}
	raw, _, ok := strings.Cut(rest, ".")
	if !ok {
		return ""
	}
	if t, found := titles[strings.TrimSpace(raw)]; found {
		return t
	}
	return "Other"
}

// Message is the human readable verdict for a result.
func Message(r Result) string {
	if r.Survived {
		return "El pasajero probablemente habría sobrevivido"
	}
	return "El pasajero probablemente no habría sobrevivido"
}
