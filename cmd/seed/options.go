package main

import (
	"fmt"
	"strconv"
	"strings"

	"specialties/internal/model"
)

// Options are the seed command line flags, parsed by go-flags.
type Options struct {
	Email       string   `short:"e" long:"email" description:"provider email" default:"demo@example.com"`
	Password    string   `short:"p" long:"password" description:"provider password" default:"demo1234"`
	Name        string   `short:"n" long:"name" description:"provider display name" default:"Demo Provider"`
	Specialties []string `short:"s" long:"specialty" description:"category[:years], repeatable" default:"plumbing:5" default:"electrical:3"`
	Reset       bool     `long:"reset" description:"drop tables before migrating"`
}

type seedSpecialty struct {
	Category model.Category
	Years    int
}

// parseSpecialties turns "category[:years]" values into seed rows. Years
// default to 0; repeated categories are kept once.
func parseSpecialties(values []string) ([]seedSpecialty, error) {
	seen := make(map[model.Category]struct{}, len(values))
	out := make([]seedSpecialty, 0, len(values))
	for _, v := range values {
		code, years, _ := strings.Cut(strings.TrimSpace(v), ":")
		category, ok := model.ParseCategory(code)
		if !ok {
			return nil, fmt.Errorf("unknown category %q", code)
		}
		n := 0
		if years != "" {
			var err error
			if n, err = strconv.Atoi(years); err != nil || n < 0 {
				return nil, fmt.Errorf("invalid years %q for %s", years, code)
			}
		}
		if _, dup := seen[category]; dup {
			continue
		}
		seen[category] = struct{}{}
		out = append(out, seedSpecialty{Category: category, Years: n})
	}
	return out, nil
}
