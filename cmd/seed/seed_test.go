package main

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jessevdk/go-flags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "specialties/internal/errors"
	"specialties/internal/model"
)

func TestOptions_Defaults(t *testing.T) {
	opts := &Options{}
	parser := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)
	_, err := parser.ParseArgs([]string{})
	require.NoError(t, err)

	assert.Equal(t, "demo@example.com", opts.Email)
	assert.Equal(t, []string{"plumbing:5", "electrical:3"}, opts.Specialties)
	assert.False(t, opts.Reset)
}

func TestOptions_RepeatedSpecialty(t *testing.T) {
	opts := &Options{}
	parser := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)
	_, err := parser.ParseArgs([]string{"-s", "hvac:12", "--specialty", "moving", "--reset"})
	require.NoError(t, err)

	assert.Equal(t, []string{"hvac:12", "moving"}, opts.Specialties)
	assert.True(t, opts.Reset)
}

func TestParseSpecialties(t *testing.T) {
	rows, err := parseSpecialties([]string{"hvac:12", "moving", " roofing:0 ", "hvac:3"})
	require.NoError(t, err)
	assert.Equal(t, []seedSpecialty{
		{Category: model.CategoryHVAC, Years: 12},
		{Category: model.CategoryMoving, Years: 0},
		{Category: model.CategoryRoofing, Years: 0},
	}, rows)

	_, err = parseSpecialties([]string{"welding:2"})
	assert.Error(t, err)

	_, err = parseSpecialties([]string{"plumbing:-1"})
	assert.Error(t, err)

	_, err = parseSpecialties([]string{"plumbing:lots"})
	assert.Error(t, err)
}

type fakeStore struct {
	owner   uuid.UUID
	rows    []model.Specialty
	failOn  model.Category
	present map[model.Category]bool
}

func (s *fakeStore) Owner() uuid.UUID { return s.owner }

func (s *fakeStore) Create(_ context.Context, sp *model.Specialty) error {
	if sp.Category == s.failOn {
		return errors.New("connection reset")
	}
	if s.present[sp.Category] {
		return apperrors.ErrDuplicateCategory
	}
	s.rows = append(s.rows, *sp)
	return nil
}

func TestSeedSpecialties(t *testing.T) {
	store := &fakeStore{owner: uuid.New(), present: map[model.Category]bool{model.CategoryPlumbing: true}}

	created, skipped, err := seedSpecialties(context.Background(), store, []seedSpecialty{
		{Category: model.CategoryPlumbing, Years: 5},
		{Category: model.CategoryElectrical, Years: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, created)
	assert.Equal(t, 1, skipped)
	require.Len(t, store.rows, 1)
	assert.Equal(t, store.owner, store.rows[0].UserID)
	assert.Equal(t, 3, store.rows[0].ExperienceYears)

	store.failOn = model.CategoryMoving
	_, _, err = seedSpecialties(context.Background(), store, []seedSpecialty{{Category: model.CategoryMoving}})
	assert.Error(t, err)
}
