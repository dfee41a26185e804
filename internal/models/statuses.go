package models

type JobPositionStatus string
type JobType string
type ExperienceLevel string
type SalaryPeriod string
type ApplicationStatus string
type ApplicationSource string
type InterviewType string
type InterviewStatus string

const (
	JobPositionStatusDraft  JobPositionStatus = "DRAFT"
	JobPositionStatusActive JobPositionStatus = "ACTIVE"
	JobPositionStatusClosed JobPositionStatus = "CLOSED"
	JobPositionStatusOnHold JobPositionStatus = "ON_HOLD"

	JobTypeFullTime   JobType = "FULL_TIME"
	JobTypePartTime   JobType = "PART_TIME"
	JobTypeContract   JobType = "CONTRACT"
	JobTypeTemporary  JobType = "TEMPORARY"
	JobTypeInternship JobType = "INTERNSHIP"

	ExperienceLevelEntry     ExperienceLevel = "ENTRY_LEVEL"
	ExperienceLevelMid       ExperienceLevel = "MID_LEVEL"
	ExperienceLevelSenior    ExperienceLevel = "SENIOR"
	ExperienceLevelExecutive ExperienceLevel = "EXECUTIVE"

	SalaryPeriodHourly  SalaryPeriod = "HOURLY"
	SalaryPeriodMonthly SalaryPeriod = "MONTHLY"
	SalaryPeriodYearly  SalaryPeriod = "YEARLY"

	ApplicationStatusApplied            ApplicationStatus = "APPLIED"
	ApplicationStatusScreened           ApplicationStatus = "SCREENED"
	ApplicationStatusScreening          ApplicationStatus = "SCREENING" // legacy, хранится как SCREENED
	ApplicationStatusInterviewScheduled ApplicationStatus = "INTERVIEW_SCHEDULED"
	ApplicationStatusProceedToNextRound ApplicationStatus = "PROCEED_TO_NEXT_ROUND"
	ApplicationStatusHired              ApplicationStatus = "HIRED"
	ApplicationStatusRejected           ApplicationStatus = "REJECTED"

	ApplicationSourceWebsite  ApplicationSource = "WEBSITE"
	ApplicationSourceReferral ApplicationSource = "REFERRAL"
	ApplicationSourceLinkedIn ApplicationSource = "LINKEDIN"
	ApplicationSourceJobBoard ApplicationSource = "JOB_BOARD"
	ApplicationSourceAgency   ApplicationSource = "AGENCY"
	ApplicationSourceOther    ApplicationSource = "OTHER"

	InterviewTypePhone     InterviewType = "PHONE"
	InterviewTypeVideo     InterviewType = "VIDEO"
	InterviewTypeInPerson  InterviewType = "IN_PERSON"
	InterviewTypeTechnical InterviewType = "TECHNICAL"

	InterviewStatusScheduled   InterviewStatus = "Scheduled"
	InterviewStatusCompleted   InterviewStatus = "Completed"
	InterviewStatusCancelled   InterviewStatus = "Cancelled"
	InterviewStatusRescheduled InterviewStatus = "Rescheduled"
)

func (s JobPositionStatus) IsValid() bool {
	switch s {
	case JobPositionStatusDraft, JobPositionStatusActive, JobPositionStatusClosed, JobPositionStatusOnHold:
		return true
	}
	return false
}

func (t JobType) IsValid() bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeTemporary, JobTypeInternship:
		return true
	}
	return false
}

func (l ExperienceLevel) IsValid() bool {
	switch l {
	case ExperienceLevelEntry, ExperienceLevelMid, ExperienceLevelSenior, ExperienceLevelExecutive:
		return true
	}
	return false
}

func (p SalaryPeriod) IsValid() bool {
	switch p {
	case SalaryPeriodHourly, SalaryPeriodMonthly, SalaryPeriodYearly:
		return true
	}
	return false
}

func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationStatusApplied, ApplicationStatusScreened, ApplicationStatusScreening,
		ApplicationStatusInterviewScheduled, ApplicationStatusProceedToNextRound,
		ApplicationStatusHired, ApplicationStatusRejected:
		return true
	}
	return false
}

// Canonical сворачивает legacy-алиас SCREENING в SCREENED
func (s ApplicationStatus) Canonical() ApplicationStatus {
	if s == ApplicationStatusScreening {
		return ApplicationStatusScreened
	}
	return s
}

// IsTerminal - из HIRED и REJECTED переходов нет
func (s ApplicationStatus) IsTerminal() bool {
	return s == ApplicationStatusHired || s == ApplicationStatusRejected
}

// IsSchedulable - можно ли назначить интервью по заявке в этом статусе
func (s ApplicationStatus) IsSchedulable() bool {
	switch s.Canonical() {
	case ApplicationStatusApplied, ApplicationStatusScreened,
		ApplicationStatusInterviewScheduled, ApplicationStatusProceedToNextRound:
		return true
	}
	return false
}

func (s ApplicationSource) IsValid() bool {
	switch s {
	case ApplicationSourceWebsite, ApplicationSourceReferral, ApplicationSourceLinkedIn,
		ApplicationSourceJobBoard, ApplicationSourceAgency, ApplicationSourceOther:
		return true
	}
	return false
}

func (t InterviewType) IsValid() bool {
	switch t {
	case InterviewTypePhone, InterviewTypeVideo, InterviewTypeInPerson, InterviewTypeTechnical:
		return true
	}
	return false
}

func (s InterviewStatus) IsValid() bool {
	switch s {
	case InterviewStatusScheduled, InterviewStatusCompleted, InterviewStatusCancelled, InterviewStatusRescheduled:
		return true
	}
	return false
}
