package models

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidEnum = errors.New("invalid enum value")

type Platform string

const (
	PlatformInstagram Platform = "INSTAGRAM"
	PlatformTikTok    Platform = "TIKTOK"
)

var Platforms = []Platform{PlatformInstagram, PlatformTikTok}

func (p Platform) Valid() bool {
	switch p {
	case PlatformInstagram, PlatformTikTok:
		return true
	default:
		return false
	}
}

// ParsePlatform resolves a platform by name, ignoring case.
func ParsePlatform(s string) (Platform, error) {
	p := Platform(strings.ToUpper(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("%w: platform %q", ErrInvalidEnum, s)
	}
	return p, nil
}

// PlatformFromValue accepts only the exact stored value.
func PlatformFromValue(s string) (Platform, error) {
	p := Platform(s)
	if !p.Valid() {
		return "", fmt.Errorf("%w: platform %q", ErrInvalidEnum, s)
	}
	return p, nil
}

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	default:
		return false
	}
}

// ParseGender resolves a gender by its upper-case name (MALE, FEMALE, OTHER), ignoring case.
func ParseGender(s string) (Gender, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "MALE":
		return GenderMale, nil
	case "FEMALE":
		return GenderFemale, nil
	case "OTHER":
		return GenderOther, nil
	default:
		return "", fmt.Errorf("%w: gender %q", ErrInvalidEnum, s)
	}
}

type Category string

const (
	CategoryFitness   Category = "FITNESS"
	CategoryFashion   Category = "FASHION"
	CategoryTravel    Category = "TRAVEL"
	CategoryBeauty    Category = "BEAUTY"
	CategoryLifestyle Category = "LIFESTYLE"
	CategoryFood      Category = "FOOD"
	CategoryTech      Category = "TECH"
	CategoryGaming    Category = "GAMING"
	CategoryPolitics  Category = "POLITICS"
	CategoryMusic     Category = "MUSIC"
	CategoryAthletes  Category = "ATHLETES"
	CategoryComedy    Category = "COMEDY"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryFitness, CategoryFashion, CategoryTravel, CategoryBeauty,
		CategoryLifestyle, CategoryFood, CategoryTech, CategoryGaming,
		CategoryPolitics, CategoryMusic, CategoryAthletes, CategoryComedy:
		return true
	default:
		return false
	}
}

func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: category %q", ErrInvalidEnum, s)
	}
	return c, nil
}

// ParseCategories splits a comma separated list, skipping blank entries.
// The first unknown entry is returned alongside the error.
func ParseCategories(list string) ([]Category, string, error) {
	var out []Category
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		c, err := ParseCategory(part)
		if err != nil {
			return nil, strings.ToUpper(part), err
		}
		out = append(out, c)
	}
	return out, "", nil
}
