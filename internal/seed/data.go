package seed

import "jobportal_backend/internal/models"

const (
	AdminUsername   = "admin"
	AdminPassword   = "admin123"
	AdminEmail      = "admin@jobportal.com"
	CompanyPassword = "company123"
	SeekerPassword  = "jobseeker123"

	jobsPerCompany        = 3
	applicationsPerSeeker = 2
	applicationJobPool    = 5
	deadlineDays          = 30
)

type companySeed struct {
	Username           string
	Email              string
	CompanyName        string
	RegistrationNumber string
	Phone              string
	City               string
	State              string
	Description        string
	Status             models.CompanyStatus
}

type jobSeed struct {
	Title            string
	Description      string
	Requirements     string
	Responsibilities string
	Location         string
	JobType          models.JobType
	Category         string
	SalaryMin        float64
	SalaryMax        float64
	Experience       models.ExperienceLevel
	Vacancies        int
}

type seekerSeed struct {
	Username   string
	Email      string
	FullName   string
	Phone      string
	City       string
	Skills     string
	Education  string
	Experience string
}

var companies = []companySeed{
	{
		Username:           "securecorp",
		Email:              "hr@securecorp.com",
		CompanyName:        "SecureCorp Ltd",
		RegistrationNumber: "REG001",
		Phone:              "+44 123 456 7890",
		City:               "London",
		State:              "England",
		Description:        "Leading security services provider with over 20 years of experience.",
		Status:             models.CompanyStatusApproved,
	},
	{
		Username:           "guardpro",
		Email:              "info@guardpro.co.uk",
		CompanyName:        "GuardPro Security",
		RegistrationNumber: "REG002",
		Phone:              "+44 987 654 3210",
		City:               "Manchester",
		State:              "England",
		Description:        "Professional security guard services for commercial and residential properties.",
		Status:             models.CompanyStatusApproved,
	},
	{
		Username:           "elitesecurity",
		Email:              "contact@elitesecurity.com",
		CompanyName:        "Elite Security Services",
		RegistrationNumber: "REG003",
		Phone:              "+44 555 123 4567",
		City:               "Edinburgh",
		State:              "Scotland",
		Description:        "Elite security solutions for high-profile clients and events.",
		Status:             models.CompanyStatusPending,
	},
}

var jobTemplates = []jobSeed{
	{
		Title:            "Security Guard - Night Shift",
		Description:      "We are looking for a reliable and experienced security guard for night shift duties. The role involves monitoring premises, conducting patrols, and ensuring the safety of the property.",
		Requirements:     "- Minimum 2 years experience\n- SIA License required\n- Good communication skills\n- Ability to work night shifts",
		Responsibilities: "- Monitor CCTV systems\n- Conduct regular patrols\n- Check identification of visitors\n- Report any suspicious activities\n- Maintain security logs",
		Location:         "Central London",
		JobType:          models.JobTypeFullTime,
		Category:         "Security Guard",
		SalaryMin:        25000,
		SalaryMax:        30000,
		Experience:       models.Experience1To3,
		Vacancies:        3,
	},
	{
		Title:            "Security Manager",
		Description:      "Seeking an experienced Security Manager to oversee our security operations. The ideal candidate will have strong leadership skills and extensive experience in security management.",
		Requirements:     "- 5+ years in security management\n- Excellent leadership skills\n- SIA Advanced License\n- First Aid certified",
		Responsibilities: "- Manage security team\n- Develop security protocols\n- Conduct risk assessments\n- Train security staff\n- Liaise with management",
		Location:         "Manchester City Centre",
		JobType:          models.JobTypeFullTime,
		Category:         "Security Manager",
		SalaryMin:        40000,
		SalaryMax:        55000,
		Experience:       models.Experience5,
		Vacancies:        1,
	},
	{
		Title:            "Security Officer - Retail",
		Description:      "Security Officer needed for busy retail environment. Must be customer-friendly while maintaining security standards.",
		Requirements:     "- SIA License\n- Retail security experience preferred\n- Customer service skills\n- Conflict resolution abilities",
		Responsibilities: "- Monitor store premises\n- Prevent theft and shoplifting\n- Handle incidents professionally\n- Assist customers when needed\n- Report to management",
		Location:         "Shopping Centre, Manchester",
		JobType:          models.JobTypePartTime,
		Category:         "Security Officer",
		SalaryMin:        12,
		SalaryMax:        15,
		Experience:       models.Experience0To1,
		Vacancies:        5,
	},
	{
		Title:            "Event Security Coordinator",
		Description:      "Coordinate security for large-scale events. Experience in event management and crowd control essential.",
		Requirements:     "- Event security experience\n- Crowd management skills\n- SIA License\n- Excellent communication\n- Driving license",
		Responsibilities: "- Plan event security\n- Coordinate security teams\n- Manage crowd control\n- Liaise with event organizers\n- Handle emergencies",
		Location:         "Various Locations",
		JobType:          models.JobTypeContract,
		Category:         "Security Coordinator",
		SalaryMin:        35000,
		SalaryMax:        45000,
		Experience:       models.Experience3To5,
		Vacancies:        2,
	},
	{
		Title:            "CCTV Operator",
		Description:      "CCTV Operator needed to monitor surveillance systems. Must have sharp observation skills and attention to detail.",
		Requirements:     "- CCTV operation experience\n- SIA CCTV License\n- Good observation skills\n- Report writing abilities\n- Computer literate",
		Responsibilities: "- Monitor CCTV systems\n- Identify suspicious activities\n- Record incidents\n- Communicate with security teams\n- Maintain equipment",
		Location:         "Control Room, London",
		JobType:          models.JobTypeFullTime,
		Category:         "CCTV Operator",
		SalaryMin:        23000,
		SalaryMax:        28000,
		Experience:       models.Experience1To3,
		Vacancies:        2,
	},
}

var seekers = []seekerSeed{
	{
		Username:   "john_doe",
		Email:      "john.doe@email.com",
		FullName:   "John Doe",
		Phone:      "+44 7700 900123",
		City:       "London",
		Skills:     "Security operations, CCTV monitoring, First Aid, Conflict resolution",
		Education:  "Secondary School Certificate\nSecurity Training Course - 2020",
		Experience: "Security Guard at Mall Security Ltd (2020-2023)\n- Conducted regular patrols\n- Monitored CCTV systems\n- Handled incidents professionally",
	},
	{
		Username:   "sarah_smith",
		Email:      "sarah.smith@email.com",
		FullName:   "Sarah Smith",
		Phone:      "+44 7700 900456",
		City:       "Manchester",
		Skills:     "Team management, Risk assessment, Emergency response, Customer service",
		Education:  "Bachelor in Security Management\nAdvanced SIA License",
		Experience: "Security Supervisor at SecureNow Ltd (2018-2024)\n- Managed team of 10 guards\n- Conducted security audits\n- Implemented new protocols",
	},
	{
		Username:   "mike_johnson",
		Email:      "mike.johnson@email.com",
		FullName:   "Mike Johnson",
		Phone:      "+44 7700 900789",
		City:       "Birmingham",
		Skills:     "Access control, Patrol operations, Report writing, Communication",
		Education:  "High School Diploma\nSIA Door Supervisor License",
		Experience: "Door Supervisor at Various Venues (2021-Present)\n- Managed venue entry\n- Checked IDs\n- Maintained order",
	},
}

// статусы демо-откликов по порядковому номеру отклика соискателя
var applicationStatuses = []models.ApplicationStatus{
	models.ApplicationStatusSubmitted,
	models.ApplicationStatusUnderReview,
	models.ApplicationStatusShortlisted,
}
