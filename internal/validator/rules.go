package validator

import (
	"log"

	"jobportal_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует все кастомные функции валидации в
// переданном экземпляре валидатора.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// -----------------------------------------------------------------
	// ➡️ Правила, основанные на 'statuses.go'
	// -----------------------------------------------------------------
	mustRegister("is-user-role", enumRule(func(s string) bool { return models.UserRole(s).IsValid() }))
	mustRegister("is-company-status", enumRule(func(s string) bool { return models.CompanyStatus(s).IsValid() }))
	mustRegister("is-application-status", enumRule(func(s string) bool { return models.ApplicationStatus(s).IsValid() }))
	mustRegister("is-job-type", enumRule(func(s string) bool { return models.JobType(s).IsValid() }))
	mustRegister("is-experience", enumRule(func(s string) bool { return models.ExperienceLevel(s).IsValid() }))
}

// enumRule - пустое значение пропускается, для этого есть 'required'
func enumRule(valid func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		return valid(value)
	}
}
