package panel

import (
	"fmt"

	"github.com/google/uuid"

	"specialties/internal/model"
)

// Placeholder is shown instead of the badge list when it is empty.
const Placeholder = "No specialties added yet. Add your first specialty below."

// Badge is one displayed specialty.
type Badge struct {
	ID              uuid.UUID      `json:"id"`
	Category        model.Category `json:"category"`
	Label           string         `json:"label"`
	ExperienceYears int            `json:"experience_years"`
	Text            string         `json:"text"`
	Verified        bool           `json:"verified"`
}

// Option is one entry of the category picker.
type Option struct {
	Value model.Category `json:"value"`
	Label string         `json:"label"`
}

// View is the render model of a panel.
type View struct {
	Badges      []Badge  `json:"badges"`
	Empty       bool     `json:"empty"`
	Placeholder string   `json:"placeholder,omitempty"`
	Options     []Option `json:"options"`
	Form        Form     `json:"form"`
	Busy        bool     `json:"busy"`
	CanSubmit   bool     `json:"can_submit"`
}

// BuildView derives the render model from panel state.
func BuildView(specialties []model.Specialty, form Form, busy bool) View {
	v := View{
		Badges:    make([]Badge, 0, len(specialties)),
		Form:      form,
		Busy:      busy,
		CanSubmit: form.Category != "" && !busy,
	}
	for _, s := range specialties {
		label := s.Category.Label()
		v.Badges = append(v.Badges, Badge{
			ID:              s.ID,
			Category:        s.Category,
			Label:           label,
			ExperienceYears: s.ExperienceYears,
			Text:            fmt.Sprintf("%s (%d years)", label, s.ExperienceYears),
			Verified:        s.IsVerified,
		})
	}
	if len(v.Badges) == 0 {
		v.Empty = true
		v.Placeholder = Placeholder
	}

	available := AvailableCategories(specialties)
	v.Options = make([]Option, 0, len(available))
	for _, c := range available {
		v.Options = append(v.Options, Option{Value: c, Label: c.Label()})
	}
	return v
}

// AvailableCategories is the category enumeration minus the categories already
// present in specialties, in enumeration order.
func AvailableCategories(specialties []model.Specialty) []model.Category {
	taken := make(map[model.Category]struct{}, len(specialties))
	for _, s := range specialties {
		taken[s.Category] = struct{}{}
	}
	var out []model.Category
	for _, c := range model.Categories() {
		if _, ok := taken[c]; !ok {
			out = append(out, c)
		}
	}
	return out
}
