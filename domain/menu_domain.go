package domain

import "time"

var (
	MessageSuccessSetWeekMenu = "week menu saved successfully"
	MessageSuccessGetDayMenu  = "success get day menu"
	MessageFailedSetWeekMenu  = "failed to save week menu"
	MessageFailedGetDayMenu   = "failed to get day menu"
)

// MenuCourses are the dish slots of one day, in display order.
var MenuCourses = []string{"soup", "meal", "dessert"}

type (
	SetWeekMenuRequest struct {
		Day       int    `json:"day" validate:"required,min=1,max=7"`
		EvenWeek  bool   `json:"even_week"`
		SoupID    string `json:"soup_id" validate:"omitempty,uuid"`
		MealID    string `json:"meal_id" validate:"omitempty,uuid"`
		DessertID string `json:"dessert_id" validate:"omitempty,uuid"`
	}

	Recommendation struct {
		ID      string     `json:"id"`
		DayFrom time.Time  `json:"day_from"`
		DayTo   *time.Time `json:"day_to,omitempty"`
		Recipe  Recipe     `json:"recipe"`
	}

	// MenuDish is one course of the day menu. A missing course is an empty
	// object.
	MenuDish struct {
		Title string `json:"title,omitempty"`
		Link  string `json:"link,omitempty"`
		Image string `json:"image,omitempty"`
	}

	// DayMenu maps ISO weekdays 1..7 to their courses. Days without a menu
	// entry map to an empty object.
	DayMenu map[int]map[string]MenuDish
)
