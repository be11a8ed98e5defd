package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/familyllc/recipe-manager/backend/internal/apperr"
	"github.com/familyllc/recipe-manager/backend/internal/types"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldErrors converts validator output into apperr field errors.
func fieldErrors(err error) []apperr.FieldError {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []apperr.FieldError{{Field: "body", Message: err.Error()}}
	}
	fields := make([]apperr.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperr.FieldError{Field: fieldPath(fe), Message: fieldMessage(fe)})
	}
	return fields
}

// fieldPath drops the struct name from the namespace: "RecipeCreateRequest.ingredients[0].name" -> "ingredients[0].name".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be blank"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "url":
		return "must be a valid URL"
	default:
		return fmt.Sprintf("failed the %q check", fe.Tag())
	}
}

// normalizeRecipe returns a copy of req with every free-text field trimmed.
func normalizeRecipe(req *types.RecipeCreateRequest) *types.RecipeCreateRequest {
	out := *req
	out.Title = strings.TrimSpace(req.Title)
	out.Description = strings.TrimSpace(req.Description)
	out.Category = strings.TrimSpace(req.Category)
	out.ImageURL = strings.TrimSpace(req.ImageURL)

	out.Ingredients = make([]types.IngredientInput, len(req.Ingredients))
	for i, ing := range req.Ingredients {
		out.Ingredients[i] = types.IngredientInput{
			Name:     strings.TrimSpace(ing.Name),
			Quantity: strings.TrimSpace(ing.Quantity),
			Unit:     strings.TrimSpace(ing.Unit),
		}
	}
	out.Instructions = make([]types.InstructionInput, len(req.Instructions))
	for i, ins := range req.Instructions {
		out.Instructions[i] = types.InstructionInput{
			StepNumber:  ins.StepNumber,
			Description: strings.TrimSpace(ins.Description),
		}
	}
	return &out
}

// duplicateSteps reports every instruction whose step number was already used.
func duplicateSteps(instructions []types.InstructionInput) []apperr.FieldError {
	var fields []apperr.FieldError
	seen := make(map[int]bool, len(instructions))
	for i, ins := range instructions {
		if seen[ins.StepNumber] {
			fields = append(fields, apperr.FieldError{
				Field:   fmt.Sprintf("instructions[%d].stepNumber", i),
				Message: fmt.Sprintf("step %d is used more than once", ins.StepNumber),
			})
		}
		seen[ins.StepNumber] = true
	}
	return fields
}
