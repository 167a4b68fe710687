package domain

import (
	"errors"
)

var (
	MessageSuccessCreateCategory    = "category created successfully"
	MessageSuccessUpdateCategory    = "category updated successfully"
	MessageSuccessGetCategory       = "success get category"
	MessageSuccessGetCategories     = "success get categories"
	MessageSuccessRebuildCategories = "category paths rebuilt successfully"
	MessageFailedCreateCategory     = "failed to create category"
	MessageFailedUpdateCategory     = "failed to update category"
	MessageFailedGetCategory        = "failed to get category"
	MessageFailedGetCategories      = "failed to get categories"

	ErrSelfParent       = errors.New("parent category must be different than child")
	ErrCyclicAncestry   = errors.New("a parent can't be a descendant of this category")
	ErrDuplicatePath    = errors.New("path is not unique, change category title or slug")
	ErrBadCategoryTree  = errors.New("bad category structure, check category parent")
	ErrCategoryNotFound = errors.New("category not found")
)

type (
	CreateCategoryRequest struct {
		ParentID    string `json:"parent_id" validate:"omitempty,uuid"`
		Title       string `json:"title" validate:"required,max=128"`
		Slug        string `json:"slug" validate:"required,slug,max=64"`
		PhotoID     string `json:"photo_id" validate:"omitempty,uuid"`
		Description string `json:"description"`
	}

	UpdateCategoryRequest struct {
		ParentID    *string `json:"parent_id" validate:"omitempty,uuid"`
		Title       *string `json:"title" validate:"omitempty,max=128"`
		Slug        *string `json:"slug" validate:"omitempty,slug,max=64"`
		PhotoID     *string `json:"photo_id" validate:"omitempty,uuid"`
		Description *string `json:"description"`
		// DetachParent turns the category into a root.
		DetachParent bool `json:"detach_parent"`
	}

	Category struct {
		ID           string `json:"id"`
		ParentID     string `json:"parent_id,omitempty"`
		Title        string `json:"title"`
		Slug         string `json:"slug"`
		Path         string `json:"path"`
		Level        int    `json:"level"`
		URL          string `json:"url"`
		ChainedTitle string `json:"chained_title,omitempty"`
		RecipeCount  int64  `json:"recipe_count"`
	}
)
