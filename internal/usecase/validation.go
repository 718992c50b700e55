package usecase

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationFailure agrega os erros de campo de um input rejeitado. Nunca
// persiste nada; o ator corrige e reenvia.
type ValidationFailure struct {
	Errors []ValidationError
}

func (e *ValidationFailure) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, v := range e.Errors {
		msgs = append(msgs, v.Field+" ("+v.Message+")")
	}
	return "validation failed: " + strings.Join(msgs, ", ")
}

func IsValidationFailure(err error) bool {
	_, ok := err.(*ValidationFailure)
	return ok
}

func ValidateLeadInput(input LeadInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Type) == "" {
		errors = append(errors, ValidationError{"type", "is required"})
	}

	if strings.TrimSpace(input.Location) == "" {
		errors = append(errors, ValidationError{"location", "is required"})
	}

	if strings.TrimSpace(input.Description) == "" {
		errors = append(errors, ValidationError{"description", "is required"})
	}

	if strings.TrimSpace(input.Address) == "" {
		errors = append(errors, ValidationError{"address", "is required"})
	}

	if strings.TrimSpace(input.ContactName) == "" {
		errors = append(errors, ValidationError{"contact_name", "is required"})
	}

	if strings.TrimSpace(input.ContactEmail) == "" {
		errors = append(errors, ValidationError{"contact_email", "is required"})
	} else if _, err := mail.ParseAddress(input.ContactEmail); err != nil {
		errors = append(errors, ValidationError{"contact_email", "is invalid"})
	}

	if !isValidZipCode(input.ZipCode) {
		errors = append(errors, ValidationError{"zip_code", "must be a valid zip code"})
	}

	// Entrada numérica inválida é falha de validação, nunca coerção pra 0.
	if input.Price == nil {
		errors = append(errors, ValidationError{"price", "is required and must be a number"})
	} else if *input.Price <= 0 {
		errors = append(errors, ValidationError{"price", "must be a positive number"})
	}

	if input.QualityRating != 0 && (input.QualityRating < 1 || input.QualityRating > 5) {
		errors = append(errors, ValidationError{"quality_rating", "must be between 1 and 5"})
	}

	switch input.ConfirmationStatus {
	case "confirmed":
		// Lead confirmado exige o horário combinado com o cliente final.
		if strings.TrimSpace(input.AppointmentDate) == "" {
			errors = append(errors, ValidationError{"appointment_date", "is required for confirmed leads"})
		}
		if strings.TrimSpace(input.AppointmentSlot) == "" {
			errors = append(errors, ValidationError{"appointment_slot", "is required for confirmed leads"})
		}
	case "unconfirmed", "":
	default:
		errors = append(errors, ValidationError{"confirmation_status", "must be confirmed or unconfirmed"})
	}

	return errors
}

func isValidZipCode(zipcode string) bool {
	cleaned := regexp.MustCompile(`\D`).ReplaceAllString(zipcode, "")
	return len(cleaned) == 5 || len(cleaned) == 8
}
