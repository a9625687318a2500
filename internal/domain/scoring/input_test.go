package scoring

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDecodeInput(t *testing.T) {
	Convey("Given a complete request body", t, func() {
		in, err := DecodeInput([]byte(`{"name":"Cumings, Mrs. John Bradley","pclass":1,"sex":"female","age":38,"sibsp":1,"parch":0,"fare":71.2833,"embarked":"C"}`))

		Convey("Then every field should be decoded", func() {
			So(err, ShouldBeNil)
			So(in, ShouldResemble, Input{
				Pclass: 1, Sex: "female", Age: 38, SibSp: 1, Parch: 0,
				Fare: 71.2833, Embarked: "C", Name: "Cumings, Mrs. John Bradley",
			})
		})
	})

	Convey("Given bodies with missing fields", t, func() {
		cases := []struct {
			body  string
			field string
		}{
			{`{}`, "pclass"},
			{`{"pclass":1}`, "sex"},
			{`{"pclass":1,"sex":"male","sibsp":0}`, "age"},
			{`{"pclass":1,"sex":"male","age":null,"sibsp":0}`, "age"},
			{`{"pclass":1,"sex":"male","age":3,"sibsp":0,"parch":0,"fare":1}`, "embarked"},
			{`{"embarked":"S","fare":1,"parch":0,"sibsp":0,"age":3,"sex":"male"}`, "pclass"},
		}
		for _, c := range cases {
			_, err := DecodeInput([]byte(c.body))
			var fe *FieldError
			So(errors.As(err, &fe), ShouldBeTrue)
			So(fe.Field, ShouldEqual, c.field)
			So(errors.Is(err, ErrMissingField), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "Campo requerido faltante: "+c.field)
		}
	})

	Convey("Given a body with a value of the wrong type", t, func() {
		_, err := DecodeInput([]byte(`{"pclass":"first","sex":"male","age":3,"sibsp":0,"parch":0,"fare":1,"embarked":"S"}`))
		var fe *FieldError
		So(errors.As(err, &fe), ShouldBeTrue)
		So(fe.Field, ShouldEqual, "pclass")
		So(errors.Is(err, ErrInvalidField), ShouldBeTrue)
	})

	Convey("Given malformed bodies", t, func() {
		for _, body := range []string{``, `{`, `null`, `[1]`} {
			_, err := DecodeInput([]byte(body))
			So(errors.Is(err, ErrMalformedInput), ShouldBeTrue)
		}
	})

	Convey("Given a non-string name", t, func() {
		in, err := DecodeInput([]byte(`{"name":42,"pclass":1,"sex":"male","age":3,"sibsp":0,"parch":0,"fare":1,"embarked":"S"}`))
		So(err, ShouldBeNil)
		So(in.Name, ShouldEqual, "")
	})
}
