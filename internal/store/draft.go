package store

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"notes/internal/types"
)

var validate = validator.New()

type draftPayload struct {
	Title string   `validate:"required"`
	Body  string
	Tags  []string
}

// PrepareDraft validates a draft and returns the body to send. Blank tags are
// dropped; title, body and the remaining tags are sent as typed.
func PrepareDraft(draft types.Draft) (types.NoteInput, error) {
	payload := draftPayload{
		Title: strings.TrimSpace(draft.Title),
		Body:  draft.Body,
		Tags:  CleanTags(draft.Tags),
	}
	if err := validate.Struct(payload); err != nil {
		return types.NoteInput{}, validationFailure(err)
	}
	return types.NoteInput{
		Title: draft.Title,
		Body:  draft.Body,
		Tags:  payload.Tags,
	}, nil
}

// CleanTags drops blank entries and keeps the rest unchanged, in order.
func CleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if strings.TrimSpace(tag) == "" {
			continue
		}
		out = append(out, tag)
	}
	return out
}

func validationFailure(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		if fieldErrs[0].StructField() == "Title" {
			return &ValidationError{Message: MsgTitleRequired}
		}
		return &ValidationError{Message: fieldErrs[0].Error()}
	}
	return &ValidationError{Message: err.Error()}
}
