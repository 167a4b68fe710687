package domain

import "errors"

var (
	MessageSuccessGetIngredientNames = "success get ingredient names"
	MessageSuccessCreateIngredient   = "ingredient created successfully"
	MessageSuccessSaveConversion     = "unit conversion saved successfully"

	MessageFailedGetIngredientNames = "failed to get ingredient names"
	MessageFailedCreateIngredient   = "failed to create ingredient"
	MessageFailedSaveConversion     = "failed to save unit conversion"

	ErrNoConversion = errors.New("units are not convertible")
	ErrInvalidRatio = errors.New("conversion ratio must be positive")
)

type (
	CreateIngredientRequest struct {
		Name        string `json:"name" validate:"required,max=128"`
		Slug        string `json:"slug" validate:"omitempty,slug,max=64"`
		Genitive    string `json:"genitive" validate:"max=128"`
		GroupID     string `json:"group_id" validate:"omitempty,uuid"`
		DefaultUnit *int   `json:"default_unit"`
		NDBNo       *int   `json:"ndb_no" validate:"omitempty,min=0"`
		IsApproved  *bool  `json:"is_approved"`
	}

	SaveConversionRequest struct {
		FromUnit int     `json:"from_unit"`
		ToUnit   int     `json:"to_unit"`
		Ratio    float64 `json:"ratio" validate:"gt=0"`
	}
)
