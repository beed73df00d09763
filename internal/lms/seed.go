package lms

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

// Fixtures describes catalog entities to load, typically from a TOML file:
//
//	[[course]]
//	idnumber = "CRS1"
//	shortname = "crs1"
//	fullname = "Course One"
//	page = "Induction"
//
//	[[user]]
//	username = "alice"
type Fixtures struct {
	Courses []CourseFixture `toml:"course"`
	Users   []UserFixture   `toml:"user"`
}

type CourseFixture struct {
	IDNumber  string `toml:"idnumber"`
	ShortName string `toml:"shortname"`
	FullName  string `toml:"fullname"`
	// Page, when set, creates the course's page activity under the course idnumber.
	Page string `toml:"page"`
}

type UserFixture struct {
	Username  string `toml:"username"`
	FirstName string `toml:"firstname"`
	LastName  string `toml:"lastname"`
	Email     string `toml:"email"`
}

// SeedResult counts what Seed created and what already existed.
type SeedResult struct {
	CoursesAdded   int
	CoursesSkipped int
	PagesAdded     int
	UsersAdded     int
	UsersSkipped   int
}

// DecodeFixtures parses TOML fixtures.
func DecodeFixtures(r io.Reader) (*Fixtures, error) {
	var f Fixtures
	if _, err := toml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}
	return &f, nil
}

// Seed loads fixtures in one transaction. Courses whose idnumber already
// exists and users whose username is taken are left untouched.
func (s *Store) Seed(ctx context.Context, f *Fixtures) (*SeedResult, error) {
	tx, err := s.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	res := &SeedResult{}
	for _, cf := range f.Courses {
		if cf.IDNumber == "" || cf.FullName == "" {
			return nil, fmt.Errorf("course fixture %q: idnumber and fullname are required", cf.ShortName)
		}
		existing, err := tx.CoursesByIDNumber(ctx, cf.IDNumber)
		if err != nil {
			return nil, err
		}
		if len(existing) > 0 {
			res.CoursesSkipped++
			continue
		}

		shortname := cf.ShortName
		if shortname == "" {
			shortname = cf.IDNumber
		}
		c := &Course{IDNumber: cf.IDNumber, ShortName: shortname, FullName: cf.FullName}
		if err := tx.AddCourse(ctx, c); err != nil {
			return nil, err
		}
		res.CoursesAdded++

		if cf.Page != "" {
			m := &Module{CourseID: c.ID, Module: ModulePage, IDNumber: c.IDNumber, Name: cf.Page}
			if err := tx.AddModule(ctx, m); err != nil {
				return nil, err
			}
			res.PagesAdded++
		}
	}

	for _, uf := range f.Users {
		if uf.Username == "" {
			return nil, errors.New("user fixture: username is required")
		}
		u := &User{Username: uf.Username, FirstName: uf.FirstName, LastName: uf.LastName, Email: uf.Email}
		if err := tx.AddUser(ctx, u); err != nil {
			if errors.Is(err, ErrDuplicate) {
				res.UsersSkipped++
				continue
			}
			return nil, err
		}
		res.UsersAdded++
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return res, nil
}
