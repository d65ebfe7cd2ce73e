package panel

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"specialties/internal/model"
)

func TestBuildView_VerifiedBadge(t *testing.T) {
	rows := []model.Specialty{
		{ID: uuid.New(), Category: model.CategoryApplianceRepair, ExperienceYears: 11, IsVerified: true},
		{ID: uuid.New(), Category: model.CategoryPainting, ExperienceYears: 0},
	}

	v := BuildView(rows, Form{Experience: "0"}, false)

	assert.False(t, v.Empty)
	assert.Empty(t, v.Placeholder)
	assert.Equal(t, "Appliance Repair (11 years)", v.Badges[0].Text)
	assert.True(t, v.Badges[0].Verified)
	assert.Equal(t, "Painting (0 years)", v.Badges[1].Text)
	assert.False(t, v.Badges[1].Verified)
}

func TestBuildView_CanSubmit(t *testing.T) {
	assert.False(t, BuildView(nil, Form{}, false).CanSubmit)
	assert.True(t, BuildView(nil, Form{Category: "hvac"}, false).CanSubmit)
	assert.False(t, BuildView(nil, Form{Category: "hvac"}, true).CanSubmit)
}

func TestAvailableCategories(t *testing.T) {
	rows := []model.Specialty{
		{Category: model.CategoryMoving},
		{Category: model.CategoryPlumbing},
	}

	got := AvailableCategories(rows)

	assert.Len(t, got, 8)
	assert.Equal(t, model.CategoryElectrical, got[0], "enumeration order kept")
	assert.NotContains(t, got, model.CategoryMoving)
	assert.NotContains(t, got, model.CategoryPlumbing)
	assert.Equal(t, model.Categories(), AvailableCategories(nil))
}
