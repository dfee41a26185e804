package validator

import (
	"log"
	"regexp"

	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/models"

	"github.com/go-playground/validator/v10"
)

var hhmmPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// enumValues - допустимые значения для сообщений об ошибках
var enumValues = map[string][]string{
	"is-job-status":         {"DRAFT", "ACTIVE", "CLOSED", "ON_HOLD"},
	"is-job-type":           {"FULL_TIME", "PART_TIME", "CONTRACT", "TEMPORARY", "INTERNSHIP"},
	"is-experience-level":   {"ENTRY_LEVEL", "MID_LEVEL", "SENIOR", "EXECUTIVE"},
	"is-salary-period":      {"HOURLY", "MONTHLY", "YEARLY"},
	"is-application-status": {"APPLIED", "SCREENED", "SCREENING", "INTERVIEW_SCHEDULED", "PROCEED_TO_NEXT_ROUND", "HIRED", "REJECTED"},
	"is-application-source": {"WEBSITE", "REFERRAL", "LINKEDIN", "JOB_BOARD", "AGENCY", "OTHER"},
	"is-interview-type":     {"PHONE", "VIDEO", "IN_PERSON", "TECHNICAL"},
	"is-interview-status":   {"Scheduled", "Completed", "Cancelled", "Rescheduled"},
}

// registerCustomRules регистрирует доменные теги; ошибка регистрации фатальна
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-job-status", enumRule(func(s string) bool { return models.JobPositionStatus(s).IsValid() }))
	mustRegister("is-job-type", enumRule(func(s string) bool { return models.JobType(s).IsValid() }))
	mustRegister("is-experience-level", enumRule(func(s string) bool { return models.ExperienceLevel(s).IsValid() }))
	mustRegister("is-salary-period", enumRule(func(s string) bool { return models.SalaryPeriod(s).IsValid() }))
	mustRegister("is-application-status", enumRule(func(s string) bool { return models.ApplicationStatus(s).IsValid() }))
	mustRegister("is-application-source", enumRule(func(s string) bool { return models.ApplicationSource(s).IsValid() }))
	mustRegister("is-interview-type", enumRule(func(s string) bool { return models.InterviewType(s).IsValid() }))
	mustRegister("is-interview-status", enumRule(func(s string) bool { return models.InterviewStatus(s).IsValid() }))

	// 'hhmm': время интервью "10:30"
	mustRegister("hhmm", enumRule(hhmmPattern.MatchString))
}

// enumRule пропускает пустые значения, для них есть 'required'
func enumRule(valid func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		return valid(value)
	}
}
