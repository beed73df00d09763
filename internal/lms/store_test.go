package lms

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_CoursesByIDNumber(t *testing.T) {
	ctx := context.Background()
	store := NewStore(setupTestDB(t))

	crs1 := mustAddCourse(t, store, "CRS1", "Course One")
	mustAddCourse(t, store, "CRS2", "Course Two")

	got, err := store.CoursesByIDNumber(ctx, "CRS1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, crs1.ID, got[0].ID)
	assert.Equal(t, "Course One", got[0].FullName)
	assert.False(t, got[0].CreatedAt.IsZero())

	got, err = store.CoursesByIDNumber(ctx, "UNKNOWN")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_CoursesByIDNumber_Duplicates(t *testing.T) {
	ctx := context.Background()
	store := NewStore(setupTestDB(t))

	first := mustAddCourse(t, store, "DUP", "First")
	second := mustAddCourse(t, store, "DUP", "Second")

	got, err := store.CoursesByIDNumber(ctx, "DUP")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, first.ID, got[0].ID)
	assert.Equal(t, second.ID, got[1].ID)
}

func TestStore_GetCourse_NotFound(t *testing.T) {
	store := NewStore(setupTestDB(t))

	_, err := store.GetCourse(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_UserByUsername(t *testing.T) {
	ctx := context.Background()
	store := NewStore(setupTestDB(t))
	alice := mustAddUser(t, store, "alice")

	got, err := store.UserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)

	_, err = store.UserByUsername(ctx, "bob")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_AddUser_Duplicate(t *testing.T) {
	store := NewStore(setupTestDB(t))
	mustAddUser(t, store, "alice")

	err := store.AddUser(context.Background(), &User{Username: "alice"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestStore_AddModule_UnknownCourse(t *testing.T) {
	store := NewStore(setupTestDB(t))

	err := store.AddModule(context.Background(), &Module{CourseID: 42, Module: ModulePage, IDNumber: "X"})
	assert.ErrorIs(t, err, ErrConstraint)
}

func TestStore_RoleByShortName_Seeded(t *testing.T) {
	store := NewStore(setupTestDB(t))

	role, err := store.RoleByShortName(context.Background(), "student")
	require.NoError(t, err)
	assert.Equal(t, "Student", role.Name)

	_, err = store.RoleByShortName(context.Background(), "manager")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_PageForCourse(t *testing.T) {
	ctx := context.Background()
	store := NewStore(setupTestDB(t))
	course := mustAddCourse(t, store, "CRS1", "Course One")

	// Pages under other idnumbers and non-page modules never match.
	addPage(t, store, course, "OTHER")
	quiz := &Module{CourseID: course.ID, Module: "quiz", IDNumber: "CRS1"}
	require.NoError(t, store.AddModule(ctx, quiz))

	_, err := store.PageForCourse(ctx, course)
	require.ErrorIs(t, err, ErrNotFound)

	page := addPage(t, store, course, "CRS1")
	addPage(t, store, course, "CRS1")

	got, err := store.PageForCourse(ctx, course)
	require.NoError(t, err)
	assert.Equal(t, page.ID, got.ID, "first matching page wins")
}

func TestStore_Enrol_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := NewStore(setupTestDB(t))
	course := mustAddCourse(t, store, "CRS1", "Course One")
	user := mustAddUser(t, store, "alice")
	role, err := store.RoleByShortName(ctx, "student")
	require.NoError(t, err)

	added, err := store.Enrol(ctx, course.ID, user.ID, role.ID)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = store.Enrol(ctx, course.ID, user.ID, role.ID)
	require.NoError(t, err)
	assert.False(t, added, "second enrolment is a no-op")

	e, err := store.GetEnrolment(ctx, course.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, role.ID, e.RoleID)
}

func TestStore_MarkViewed(t *testing.T) {
	ctx := context.Background()
	store := NewStore(setupTestDB(t))
	course := mustAddCourse(t, store, "CRS1", "Course One")
	page := addPage(t, store, course, "CRS1")
	user := mustAddUser(t, store, "alice")

	_, err := store.GetCompletion(ctx, page.ID, user.ID)
	require.ErrorIs(t, err, ErrNotFound)

	res, err := store.MarkViewed(ctx, page.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, NewlyViewed, res)

	c, err := store.GetCompletion(ctx, page.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, c.Viewed)

	res, err = store.MarkViewed(ctx, page.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, AlreadyViewed, res)
}

func TestStore_MarkViewed_UpgradesUnviewedRow(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	store := NewStore(db)
	course := mustAddCourse(t, store, "CRS1", "Course One")
	page := addPage(t, store, course, "CRS1")
	user := mustAddUser(t, store, "alice")

	_, err := db.Exec(`INSERT INTO completions (module_id, user_id, viewed, updated_at)
		VALUES (?, ?, 0, ?)`, page.ID, user.ID, time.Now())
	require.NoError(t, err)

	res, err := store.MarkViewed(ctx, page.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, NewlyViewed, res)
}

func TestViewResult_String(t *testing.T) {
	assert.Equal(t, "newly-viewed", NewlyViewed.String())
	assert.Equal(t, "already-viewed", AlreadyViewed.String())
}

func TestStore_Seed(t *testing.T) {
	ctx := context.Background()
	store := NewStore(setupTestDB(t))
	mustAddUser(t, store, "bob")

	f, err := DecodeFixtures(strings.NewReader(`
[[course]]
idnumber = "CRS1"
fullname = "Course One"
page = "Induction"

[[course]]
idnumber = "CRS2"
shortname = "c2"
fullname = "Course Two"

[[user]]
username = "alice"
firstname = "Alice"

[[user]]
username = "bob"
`))
	require.NoError(t, err)

	res, err := store.Seed(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, &SeedResult{CoursesAdded: 2, PagesAdded: 1, UsersAdded: 1, UsersSkipped: 1}, res)

	courses, err := store.CoursesByIDNumber(ctx, "CRS1")
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "CRS1", courses[0].ShortName)

	page, err := store.PageForCourse(ctx, courses[0])
	require.NoError(t, err)
	assert.Equal(t, "Induction", page.Name)

	// Seeding again leaves existing courses alone.
	res, err = store.Seed(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, 2, res.CoursesSkipped)
	assert.Equal(t, 0, res.CoursesAdded)
	assert.Equal(t, 2, res.UsersSkipped)
}

func TestStore_Seed_RejectsIncompleteCourse(t *testing.T) {
	store := NewStore(setupTestDB(t))

	_, err := store.Seed(context.Background(), &Fixtures{Courses: []CourseFixture{{IDNumber: "X"}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}
