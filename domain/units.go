package domain

import "time"

type Unit struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Abbr string `json:"abbr"`
}

const (
	UnitPiece      = 0
	UnitGram       = 1
	UnitDekagram   = 2
	UnitKilogram   = 3
	UnitMilliliter = 4
	UnitDeciliter  = 5
	UnitLiter      = 6
	UnitCup        = 100
)

var Units = []Unit{
	{UnitPiece, "piece", "pc"},
	{UnitGram, "gram", "g"},
	{UnitDekagram, "dekagram", "dkg"},
	{UnitKilogram, "kilogram", "kg"},
	{UnitMilliliter, "mililiter", "ml"},
	{UnitDeciliter, "deciliter", "dl"},
	{UnitLiter, "liter", "l"},
	{UnitCup, "cup", "cup"},
}

func UnitByID(id int) (Unit, bool) {
	for _, u := range Units {
		if u.ID == id {
			return u, true
		}
	}
	return Unit{}, false
}

type Choice struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

var PricingChoices = []Choice{
	{1, "Cheapest"},
	{2, "Cheaper"},
	{3, "Standard price"},
	{4, "Expensive"},
	{5, "Most Expensive"},
}

var DifficultyChoices = []Choice{
	{1, "Easy"},
	{3, "Standard difficulty"},
	{5, "Difficult"},
}

func IsValidChoice(choices []Choice, v int) bool {
	for _, c := range choices {
		if c.Value == v {
			return true
		}
	}
	return false
}

var WeekDays = []Choice{
	{1, "Monday"},
	{2, "Tuesday"},
	{3, "Wednesday"},
	{4, "Thursday"},
	{5, "Friday"},
	{6, "Saturday"},
	{7, "Sunday"},
}

const (
	OrderBySlug    = "slug"
	OrderByTitle   = "title"
	OrderByCreated = "-created"
	OrderByRating  = "by_rating"
)

var CategoryOrdering = map[string]string{
	OrderBySlug:    "by ranking",
	OrderByTitle:   "by alphabet",
	OrderByCreated: "by date",
	OrderByRating:  "by rating",
}

var CategoryPhotoOptions = []string{"all", "photos"}

// DateOf truncates t to midnight UTC of its calendar day.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
