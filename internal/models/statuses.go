package models

type UserRole string
type CompanyStatus string
type ApplicationStatus string
type JobType string
type ExperienceLevel string
type NotificationType string

const (
	UserRoleAdmin     UserRole = "admin"
	UserRoleCompany   UserRole = "company"
	UserRoleJobSeeker UserRole = "jobseeker"

	CompanyStatusPending  CompanyStatus = "pending"
	CompanyStatusApproved CompanyStatus = "approved"
	CompanyStatusRejected CompanyStatus = "rejected"

	ApplicationStatusSubmitted          ApplicationStatus = "submitted"
	ApplicationStatusUnderReview        ApplicationStatus = "under_review"
	ApplicationStatusShortlisted        ApplicationStatus = "shortlisted"
	ApplicationStatusInterviewScheduled ApplicationStatus = "interview_scheduled"
	ApplicationStatusAccepted           ApplicationStatus = "accepted"
	ApplicationStatusRejected           ApplicationStatus = "rejected"

	JobTypeFullTime   JobType = "full-time"
	JobTypePartTime   JobType = "part-time"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"

	Experience0To1 ExperienceLevel = "0-1"
	Experience1To3 ExperienceLevel = "1-3"
	Experience3To5 ExperienceLevel = "3-5"
	Experience5    ExperienceLevel = "5+"

	NotificationTypeApproval          NotificationType = "approval"
	NotificationTypeRejection         NotificationType = "rejection"
	NotificationTypeNewApplication    NotificationType = "new_application"
	NotificationTypeApplicationStatus NotificationType = "application_status"
)

var (
	UserRoles           = []UserRole{UserRoleAdmin, UserRoleCompany, UserRoleJobSeeker}
	CompanyStatuses     = []CompanyStatus{CompanyStatusPending, CompanyStatusApproved, CompanyStatusRejected}
	ApplicationStatuses = []ApplicationStatus{
		ApplicationStatusSubmitted,
		ApplicationStatusUnderReview,
		ApplicationStatusShortlisted,
		ApplicationStatusInterviewScheduled,
		ApplicationStatusAccepted,
		ApplicationStatusRejected,
	}
	JobTypes         = []JobType{JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship}
	ExperienceLevels = []ExperienceLevel{Experience0To1, Experience1To3, Experience3To5, Experience5}
)

func (r UserRole) IsValid() bool {
	for _, v := range UserRoles {
		if v == r {
			return true
		}
	}
	return false
}

func (s CompanyStatus) IsValid() bool {
	for _, v := range CompanyStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func (s ApplicationStatus) IsValid() bool {
	for _, v := range ApplicationStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func (t JobType) IsValid() bool {
	for _, v := range JobTypes {
		if v == t {
			return true
		}
	}
	return false
}

func (e ExperienceLevel) IsValid() bool {
	for _, v := range ExperienceLevels {
		if v == e {
			return true
		}
	}
	return false
}

// Label - человекочитаемое название статуса для писем и уведомлений
func (s ApplicationStatus) Label() string {
	switch s {
	case ApplicationStatusSubmitted:
		return "Submitted"
	case ApplicationStatusUnderReview:
		return "Under Review"
	case ApplicationStatusShortlisted:
		return "Shortlisted"
	case ApplicationStatusInterviewScheduled:
		return "Interview Scheduled"
	case ApplicationStatusAccepted:
		return "Accepted"
	case ApplicationStatusRejected:
		return "Rejected"
	}
	return string(s)
}
