package repository

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/okian/titanic/internal/domain/passenger"
	. "github.com/smartystreets/goconvey/convey"
)

func fixture() []passenger.Passenger {
	return []passenger.Passenger{
		{ID: 1, Survived: 0, Class: 3, Name: "Braund, Mr. Owen Harris", Sex: "male"},
		{ID: 2, Survived: 1, Class: 1, Name: "Cumings, Mrs. John Bradley", Sex: "female"},
		{ID: 3, Survived: 1, Class: 3, Name: "Heikkinen, Miss. Laina", Sex: "female"},
		{ID: 4, Survived: 1, Class: 1, Name: "Futrelle, Mrs. Jacques Heath", Sex: "female"},
		{ID: 5, Survived: 0, Class: 3, Name: "Allen, Mr. William Henry", Sex: "male"},
		{ID: 10, Survived: 1, Class: 2, Name: "Nasser, Mrs. Nicholas", Sex: "female"},
		{ID: 5, Survived: 1, Class: 2, Name: "Duplicate, Mr. Five", Sex: "male"},
	}
}

func ids(ps []passenger.Passenger) []int {
	out := make([]int, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func stores() map[string]*MemoryStore {
	return map[string]*MemoryStore{
		"indexed": NewMemoryStore(fixture()),
		"scan":    NewMemoryStore(fixture(), WithoutIndexes()),
	}
}

func TestMemoryStoreList(t *testing.T) {
	ctx := context.Background()

	Convey("Given a store with seven passengers", t, func() {
		s := NewMemoryStore(fixture())

		Convey("When listing the first page of three", func() {
			p, err := s.List(ctx, 1, 3)
			So(err, ShouldBeNil)
			So(p.Total, ShouldEqual, 7)
			So(p.Page, ShouldEqual, 1)
			So(p.Limit, ShouldEqual, 3)
			So(ids(p.Data), ShouldResemble, []int{1, 2, 3})
		})

		Convey("When listing the last partial page", func() {
			p, err := s.List(ctx, 3, 3)
			So(err, ShouldBeNil)
			So(ids(p.Data), ShouldResemble, []int{5})
		})

		Convey("When listing out of range pages", func() {
			for _, pg := range []int{4, 100, 0, -2} {
				p, err := s.List(ctx, pg, 3)
				So(err, ShouldBeNil)
				So(p.Data, ShouldNotBeNil)
				So(p.Data, ShouldBeEmpty)
				So(p.Total, ShouldEqual, 7)
			}
		})

		Convey("When the page is large enough to overflow the offset", func() {
			cases := [][2]int{
				{(1 << 62) + 1, 4},
				{math.MaxInt, 3},
				{math.MaxInt / 2, math.MaxInt},
				{2, math.MaxInt},
			}
			for _, c := range cases {
				p, err := s.List(ctx, c[0], c[1])
				So(err, ShouldBeNil)
				So(p.Data, ShouldBeEmpty)
				So(p.Page, ShouldEqual, c[0])
			}

			p, err := s.List(ctx, 1, math.MaxInt)
			So(err, ShouldBeNil)
			So(ids(p.Data), ShouldResemble, ids(fixture()))
		})

		Convey("When the limit is zero or negative", func() {
			p, _ := s.List(ctx, 1, 0)
			So(p.Data, ShouldBeEmpty)
			p, _ = s.List(ctx, 2, -3)
			So(p.Data, ShouldBeEmpty)
		})

		Convey("Then every page matches the deterministic slice", func() {
			all := fixture()
			for limit := 1; limit <= 8; limit++ {
				for page := 1; page <= 8; page++ {
					p, err := s.List(ctx, page, limit)
					So(err, ShouldBeNil)
					So(len(p.Data), ShouldBeLessThanOrEqualTo, limit)
					start, end := (page-1)*limit, page*limit
					if start > len(all) {
						start = len(all)
					}
					if end > len(all) {
						end = len(all)
					}
					So(ids(p.Data), ShouldResemble, ids(all[start:end]))
				}
			}
		})

		Convey("Then mutating a page does not touch the store", func() {
			p, _ := s.List(ctx, 1, 1)
			p.Data[0].Name = "changed"
			q, _ := s.List(ctx, 1, 1)
			So(q.Data[0].Name, ShouldEqual, "Braund, Mr. Owen Harris")
		})
	})
}

func TestMemoryStoreQueries(t *testing.T) {
	ctx := context.Background()

	for name, s := range stores() {
		Convey(fmt.Sprintf("Given the %s store", name), t, func() {
			Convey("Lookup by id finds every present id", func() {
				for _, want := range []int{1, 2, 3, 4, 10} {
					p, err := s.ByID(ctx, want)
					So(err, ShouldBeNil)
					So(p.ID, ShouldEqual, want)
				}
			})

			Convey("Lookup by a duplicated id returns the first occurrence", func() {
				p, err := s.ByID(ctx, 5)
				So(err, ShouldBeNil)
				So(p.Name, ShouldEqual, "Allen, Mr. William Henry")
			})

			Convey("Lookup by an absent id is not found", func() {
				_, err := s.ByID(ctx, 999)
				So(errors.Is(err, ErrNotFound), ShouldBeTrue)
			})

			Convey("Class filter preserves order", func() {
				ps, err := s.ByClass(ctx, 3)
				So(err, ShouldBeNil)
				So(ids(ps), ShouldResemble, []int{1, 3, 5})
				again, _ := s.ByClass(ctx, 3)
				So(ids(again), ShouldResemble, ids(ps))
				none, _ := s.ByClass(ctx, 7)
				So(none, ShouldNotBeNil)
				So(none, ShouldBeEmpty)
			})

			Convey("Survival filter preserves order", func() {
				ps, err := s.BySurvival(ctx, 1)
				So(err, ShouldBeNil)
				So(ids(ps), ShouldResemble, []int{2, 3, 4, 10, 5})
				dead, _ := s.BySurvival(ctx, 0)
				So(ids(dead), ShouldResemble, []int{1, 5})
			})

			Convey("Name search ignores case", func() {
				ps, err := s.SearchName(ctx, "MRS.")
				So(err, ShouldBeNil)
				So(ids(ps), ShouldResemble, []int{2, 4, 10})
				ps, _ = s.SearchName(ctx, "heikkinen")
				So(ids(ps), ShouldResemble, []int{3})
				ps, _ = s.SearchName(ctx, "zzz")
				So(ps, ShouldBeEmpty)
				ps, _ = s.SearchName(ctx, "")
				So(ps, ShouldHaveLength, 7)
			})

			Convey("Summary partitions sum to the total", func() {
				sum, err := s.Summary(ctx)
				So(err, ShouldBeNil)
				So(sum.Total, ShouldEqual, 7)
				So(sum.Survived, ShouldEqual, 5)
				So(sum.SurvivalRate, ShouldEqual, "71.43%")
				So(sum.ByClass.First+sum.ByClass.Second+sum.ByClass.Third, ShouldEqual, sum.Total)
				So(sum.BySex.Male+sum.BySex.Female, ShouldEqual, sum.Total)
				So(s.Count(ctx), ShouldEqual, 7)
			})
		})
	}
}

func TestMemoryStoreCancelled(t *testing.T) {
	Convey("Given a cancelled context", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		s := NewMemoryStore(fixture())

		_, err := s.List(ctx, 1, 1)
		So(errors.Is(err, context.Canceled), ShouldBeTrue)
		_, err = s.ByID(ctx, 1)
		So(errors.Is(err, context.Canceled), ShouldBeTrue)
		_, err = s.ByClass(ctx, 1)
		So(errors.Is(err, context.Canceled), ShouldBeTrue)
		_, err = s.BySurvival(ctx, 1)
		So(errors.Is(err, context.Canceled), ShouldBeTrue)
		_, err = s.SearchName(ctx, "a")
		So(errors.Is(err, context.Canceled), ShouldBeTrue)
		_, err = s.Summary(ctx)
		So(errors.Is(err, context.Canceled), ShouldBeTrue)
	})
}

func TestNewMemoryStoreCopies(t *testing.T) {
	Convey("Given a caller that reuses its slice", t, func() {
		ps := fixture()
		s := NewMemoryStore(ps)
		ps[0].Name = "mutated"
		p, err := s.ByID(context.Background(), 1)
		So(err, ShouldBeNil)
		So(p.Name, ShouldEqual, "Braund, Mr. Owen Harris")
	})
}
