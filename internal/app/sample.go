package service

import "github.com/okian/titanic/internal/domain/passenger"

// Sample returns the fixed records behind the predictor's static stats.
// They are the first rows of the bundled dataset and take no part in scoring.
func Sample() []passenger.Passenger {
	return []passenger.Passenger{
		{ID: 1, Survived: 0, Class: 3, Name: "Braund, Mr. Owen Harris", Sex: passenger.SexMale},
		{ID: 2, Survived: 1, Class: 1, Name: "Cumings, Mrs. John Bradley (Florence Briggs Thayer)", Sex: passenger.SexFemale},
		{ID: 3, Survived: 1, Class: 3, Name: "Heikkinen, Miss. Laina", Sex: passenger.SexFemale},
		{ID: 4, Survived: 1, Class: 1, Name: "Futrelle, Mrs. Jacques Heath (Lily May Peel)", Sex: passenger.SexFemale},
		{ID: 5, Survived: 0, Class: 3, Name: "Allen, Mr. William Henry", Sex: passenger.SexMale},
		{ID: 6, Survived: 0, Class: 3, Name: "Moran, Mr. James", Sex: passenger.SexMale},
		{ID: 7, Survived: 0, Class: 1, Name: "McCarthy, Mr. Timothy J", Sex: passenger.SexMale},
		{ID: 8, Survived: 0, Class: 3, Name: "Palsson, Master. Gosta Leonard", Sex: passenger.SexMale},
		{ID: 9, Survived: 1, Class: 3, Name: "Johnson, Mrs. Oscar W (Elisabeth Vilhelmina Berg)", Sex: passenger.SexFemale},
	}
}
