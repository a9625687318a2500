package scoring

import (
	"context"
	"errors"
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// neutral scores zero on every rule.
var neutral = Input{Pclass: 0, Sex: "other", Age: 40, SibSp: 0, Parch: 0, Fare: 10, Embarked: "S"}

func TestScoreFixture(t *testing.T) {
	Convey("Given the first-class female fixture", t, func() {
		in := Input{Pclass: 1, Sex: "female", Age: 29, SibSp: 0, Parch: 0, Fare: 211.34, Embarked: "S"}
		r := Score(in)

		Convey("Then the score should be 7 and the passenger survives", func() {
			So(r.Score, ShouldEqual, 7)
			So(r.Probability, ShouldAlmostEqual, 1/(1+math.Exp(-2.1)), 1e-12)
			So(r.Probability, ShouldAlmostEqual, 0.8909, 1e-4)
			So(r.Survived, ShouldBeTrue)
			So(r.Features.Gender, ShouldEqual, "Mujer")
			So(r.Features.Class, ShouldEqual, "Primera clase")
			So(r.Features.AgeGroup, ShouldEqual, "Adulto")
			So(r.Features.Family, ShouldEqual, "Solo")
			So(r.Features.FareCategory, ShouldEqual, "Alta")
			So(r.Features.TravelingAlone, ShouldBeTrue)
		})
	})
}

func TestRawScoreRules(t *testing.T) {
	Convey("Given a neutral passenger", t, func() {
		So(RawScore(neutral), ShouldEqual, 0)

		with := func(mut func(*Input)) int {
			in := neutral
			mut(&in)
			return RawScore(in)
		}

		Convey("Sex adjusts the score", func() {
			So(with(func(i *Input) { i.Sex = "female" }), ShouldEqual, 3)
			So(with(func(i *Input) { i.Sex = "male" }), ShouldEqual, -1)
			So(with(func(i *Input) { i.Sex = "Female" }), ShouldEqual, 0)
		})

		Convey("Class adjusts the score", func() {
			So(with(func(i *Input) { i.Pclass = 1 }), ShouldEqual, 2)
			So(with(func(i *Input) { i.Pclass = 2 }), ShouldEqual, 1)
			So(with(func(i *Input) { i.Pclass = 3 }), ShouldEqual, -1)
			So(with(func(i *Input) { i.Pclass = 4 }), ShouldEqual, 0)
		})

		Convey("Age brackets adjust the score", func() {
			So(with(func(i *Input) { i.Age = 0.5 }), ShouldEqual, 2)
			So(with(func(i *Input) { i.Age = 12 }), ShouldEqual, 2)
			So(with(func(i *Input) { i.Age = 12.5 }), ShouldEqual, 1)
			So(with(func(i *Input) { i.Age = 25 }), ShouldEqual, 1)
			So(with(func(i *Input) { i.Age = 26 }), ShouldEqual, 0)
			So(with(func(i *Input) { i.Age = 60 }), ShouldEqual, 0)
			So(with(func(i *Input) { i.Age = 61 }), ShouldEqual, -1)
		})

		Convey("Family size adjusts the score", func() {
			So(with(func(i *Input) { i.SibSp = 1 }), ShouldEqual, 1)
			So(with(func(i *Input) { i.SibSp, i.Parch = 1, 1 }), ShouldEqual, 1)
			So(with(func(i *Input) { i.Parch = 3 }), ShouldEqual, 0)
			So(with(func(i *Input) { i.SibSp, i.Parch = 2, 2 }), ShouldEqual, 0)
			So(with(func(i *Input) { i.SibSp, i.Parch = 3, 2 }), ShouldEqual, -1)
		})

		Convey("Fare adjusts the score", func() {
			So(with(func(i *Input) { i.Fare = 20 }), ShouldEqual, 0)
			So(with(func(i *Input) { i.Fare = 20.01 }), ShouldEqual, 1)
			So(with(func(i *Input) { i.Fare = 50 }), ShouldEqual, 1)
			So(with(func(i *Input) { i.Fare = 50.01 }), ShouldEqual, 2)
		})

		Convey("Only Cherbourg adjusts the score", func() {
			So(with(func(i *Input) { i.Embarked = "C" }), ShouldEqual, 1)
			So(with(func(i *Input) { i.Embarked = "Q" }), ShouldEqual, 0)
			So(with(func(i *Input) { i.Embarked = "c" }), ShouldEqual, 0)
		})
	})
}

func TestProbability(t *testing.T) {
	Convey("Given scores around zero", t, func() {
		So(Probability(0), ShouldEqual, 0.5)
		So(Score(neutral).Survived, ShouldBeFalse)
		So(Probability(1), ShouldBeGreaterThan, Threshold)
		So(Probability(-1), ShouldBeLessThan, Threshold)
		So(Probability(-5), ShouldBeGreaterThan, 0)
		So(Probability(10), ShouldBeLessThan, 1)
	})
}

func TestScoreIsPure(t *testing.T) {
	Convey("Given the same input scored twice", t, func() {
		in := Input{Pclass: 3, Sex: "male", Age: 22, SibSp: 1, Fare: 7.25, Embarked: "S", Name: "Braund, Mr. Owen Harris"}
		So(Score(in), ShouldResemble, Score(in))
	})
}

func TestHeuristicScorer(t *testing.T) {
	Convey("Given a heuristic scorer", t, func() {
		s := NewHeuristicScorer()

		Convey("When the context is live", func() {
			r, err := s.Score(context.Background(), neutral)
			So(err, ShouldBeNil)
			So(r, ShouldResemble, Score(neutral))
		})

		Convey("When the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := s.Score(ctx, neutral)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}

func TestExplain(t *testing.T) {
	Convey("Given inputs across brackets", t, func() {
		child := Explain(Input{Pclass: 3, Sex: "male", Age: 4, SibSp: 1, Parch: 1, Fare: 30})
		So(child.Gender, ShouldEqual, "Hombre")
		So(child.Class, ShouldEqual, "Tercera clase")
		So(child.AgeGroup, ShouldEqual, "Niño")
		So(child.Family, ShouldEqual, "Con familia")
		So(child.FareCategory, ShouldEqual, "Media")
		So(child.TravelingAlone, ShouldBeFalse)

		senior := Explain(Input{Pclass: 2, Sex: "x", Age: 70})
		So(senior.Gender, ShouldEqual, "Desconocido")
		So(senior.Class, ShouldEqual, "Segunda clase")
		So(senior.AgeGroup, ShouldEqual, "Adulto mayor")

		So(Explain(Input{Age: 20}).AgeGroup, ShouldEqual, "Joven")
		So(Explain(Input{Pclass: 9}).Class, ShouldEqual, "Desconocida")
	})
}

func TestTitle(t *testing.T) {
	Convey("Given passenger names", t, func() {
		So(Title("Braund, Mr. Owen Harris"), ShouldEqual, "Mr")
		So(Title("Cumings, Mrs. John Bradley (Florence Briggs Thayer)"), ShouldEqual, "Mrs")
		So(Title("Heikkinen, Miss. Laina"), ShouldEqual, "Miss")
		So(Title("Uruchurtu, Don. Manuel E"), ShouldEqual, "Nobility")
		So(Title("Byles, Rev. Thomas Roussel Davids"), ShouldEqual, "Professional")
		So(Title("Crosby, Capt. Edward Gifford"), ShouldEqual, "Military")
		So(Title("Someone, Herr. X"), ShouldEqual, "Other")
		So(Title("Jane Doe"), ShouldEqual, "")
		So(Title(""), ShouldEqual, "")
	})
}

func TestMessage(t *testing.T) {
	Convey("Given both outcomes", t, func() {
		So(Message(Result{Survived: true}), ShouldContainSubstring, "habría sobrevivido")
		So(Message(Result{Survived: false}), ShouldContainSubstring, "no habría")
	})
}

func TestRules(t *testing.T) {
	Convey("Given the documented rules", t, func() {
		rules := Rules()
		So(rules, ShouldHaveLength, 6)
		So(rules[0].Feature, ShouldEqual, "sex")
	})
}
