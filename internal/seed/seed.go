// Package seed наполняет базу демонстрационными данными.
// Повторный запуск ничего не дублирует: каждая запись пропускается,
// если пользователь, вакансия (компания, название) или отклик (вакансия, соискатель) уже есть.
package seed

import (
	"errors"
	"fmt"
	"time"

	"jobportal_backend/internal/auth"
	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"

	"gorm.io/gorm"
)

// Report - сколько записей создано и пропущено
type Report struct {
	Created map[string]int
	Skipped map[string]int
}

func newReport() *Report {
	return &Report{Created: map[string]int{}, Skipped: map[string]int{}}
}

func (r *Report) created(kind string) { r.Created[kind]++ }
func (r *Report) skipped(kind string) { r.Skipped[kind]++ }

type Seeder struct {
	userRepo         repositories.UserRepository
	companyRepo      repositories.CompanyRepository
	jobRepo          repositories.JobRepository
	seekerRepo       repositories.JobSeekerRepository
	applicationRepo  repositories.ApplicationRepository
	notificationRepo repositories.NotificationRepository
	now              func() time.Time
}

func NewSeeder() *Seeder {
	return &Seeder{
		userRepo:         repositories.NewUserRepository(),
		companyRepo:      repositories.NewCompanyRepository(),
		jobRepo:          repositories.NewJobRepository(),
		seekerRepo:       repositories.NewJobSeekerRepository(),
		applicationRepo:  repositories.NewApplicationRepository(),
		notificationRepo: repositories.NewNotificationRepository(),
		now:              time.Now,
	}
}

// Run создаёт администратора, компании, вакансии, соискателей, отклики и уведомления об одобрении
func (s *Seeder) Run(db *gorm.DB) (*Report, error) {
	report := newReport()

	steps := []struct {
		name string
		fn   func(*gorm.DB, *Report) error
	}{
		{"admin", s.seedAdmin},
		{"companies", s.seedCompanies},
		{"jobs", s.seedJobs},
		{"seekers", s.seedSeekers},
		{"applications", s.seedApplications},
		{"notifications", s.seedNotifications},
	}
	for _, step := range steps {
		if err := step.fn(db, report); err != nil {
			return report, fmt.Errorf("seed %s: %w", step.name, err)
		}
	}
	return report, nil
}

// ============================================================================

func (s *Seeder) seedAdmin(db *gorm.DB, report *Report) error {
	_, created, err := s.ensureUser(db, AdminUsername, AdminEmail, AdminPassword, models.UserRoleAdmin)
	if err != nil {
		return err
	}
	if created {
		logger.Info("Admin user created", "username", AdminUsername)
		report.created("users")
	} else {
		logger.Warn("Admin user already exists", "username", AdminUsername)
		report.skipped("users")
	}
	return nil
}

func (s *Seeder) seedCompanies(db *gorm.DB, report *Report) error {
	for _, data := range companies {
		err := db.Transaction(func(tx *gorm.DB) error {
			user, created, err := s.ensureUser(tx, data.Username, data.Email, CompanyPassword, models.UserRoleCompany)
			if err != nil {
				return err
			}
			if !created {
				logger.Warn("Company already exists", "username", data.Username)
				report.skipped("companies")
				return nil
			}

			now := s.now()
			company := &models.Company{
				UserID:             user.ID,
				CompanyName:        data.CompanyName,
				RegistrationNumber: data.RegistrationNumber,
				Email:              data.Email,
				Phone:              data.Phone,
				Address:            data.CompanyName + " Headquarters",
				City:               data.City,
				State:              data.State,
				Description:        data.Description,
				Status:             models.CompanyStatusPending,
				SubmittedAt:        now,
			}
			if data.Status == models.CompanyStatusApproved {
				company.Approve(now)
			}
			if err := s.companyRepo.Create(tx, company); err != nil {
				return err
			}
			logger.Info("Created company", "company", data.CompanyName, "status", company.Status)
			report.created("users")
			report.created("companies")
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// seedJobs раскладывает шаблоны по одобренным компаниям: компании i достаются
// шаблоны i*3, i*3+1, i*3+2 по кругу
func (s *Seeder) seedJobs(db *gorm.DB, report *Report) error {
	approved, err := s.approvedCompanies(db)
	if err != nil {
		return err
	}

	now := s.now()
	deadline := now.AddDate(0, 0, deadlineDays)
	for i, company := range approved {
		for j := 0; j < jobsPerCompany && j < len(jobTemplates); j++ {
			tpl := jobTemplates[(i*jobsPerCompany+j)%len(jobTemplates)]

			_, err := s.jobRepo.FindByCompanyAndTitle(db, company.ID, tpl.Title)
			if err == nil {
				report.skipped("jobs")
				continue
			}
			if !errors.Is(err, repositories.ErrJobNotFound) {
				return err
			}

			salaryMin, salaryMax := tpl.SalaryMin, tpl.SalaryMax
			jobDeadline := deadline
			job := &models.Job{
				CompanyID:          company.ID,
				Title:              tpl.Title,
				Description:        tpl.Description,
				Requirements:       tpl.Requirements,
				Responsibilities:   tpl.Responsibilities,
				Location:           tpl.Location,
				City:               company.City,
				JobType:            tpl.JobType,
				Category:           tpl.Category,
				SalaryMin:          &salaryMin,
				SalaryMax:          &salaryMax,
				ExperienceRequired: tpl.Experience,
				Vacancies:          tpl.Vacancies,
				IsActive:           true,
				PostedAt:           now.AddDate(0, 0, -j),
				Deadline:           &jobDeadline,
			}
			if err := s.jobRepo.Create(db, job); err != nil {
				return err
			}
			logger.Info("Created job", "title", job.Title, "company", company.CompanyName)
			report.created("jobs")
		}
	}
	return nil
}

func (s *Seeder) seedSeekers(db *gorm.DB, report *Report) error {
	for _, data := range seekers {
		err := db.Transaction(func(tx *gorm.DB) error {
			user, created, err := s.ensureUser(tx, data.Username, data.Email, SeekerPassword, models.UserRoleJobSeeker)
			if err != nil {
				return err
			}
			if !created {
				logger.Warn("Job seeker already exists", "username", data.Username)
				report.skipped("seekers")
				return nil
			}

			seeker := &models.JobSeeker{
				UserID:     user.ID,
				FullName:   data.FullName,
				Email:      data.Email,
				Phone:      data.Phone,
				Address:    data.FullName + " Address",
				City:       data.City,
				Skills:     data.Skills,
				Education:  data.Education,
				Experience: data.Experience,
			}
			if err := s.seekerRepo.Create(tx, seeker); err != nil {
				return err
			}
			logger.Info("Created job seeker", "full_name", data.FullName)
			report.created("users")
			report.created("seekers")
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// seedApplications - каждый демо-соискатель откликается на две первые видимые вакансии
func (s *Seeder) seedApplications(db *gorm.DB, report *Report) error {
	jobs, err := s.jobRepo.Featured(db, applicationJobPool)
	if err != nil {
		return err
	}
	if len(jobs) > applicationsPerSeeker {
		jobs = jobs[:applicationsPerSeeker]
	}

	for _, data := range seekers {
		user, err := s.userRepo.FindByUsername(db, data.Username)
		if err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				continue
			}
			return err
		}
		seeker, err := s.seekerRepo.FindByUserID(db, user.ID)
		if err != nil {
			if errors.Is(err, repositories.ErrJobSeekerNotFound) {
				continue
			}
			return err
		}

		for i, job := range jobs {
			exists, err := s.applicationRepo.Exists(db, job.ID, seeker.ID)
			if err != nil {
				return err
			}
			if exists {
				report.skipped("applications")
				continue
			}

			companyName := ""
			if job.Company != nil {
				companyName = job.Company.CompanyName
			}
			application := &models.Application{
				JobID:       job.ID,
				ApplicantID: seeker.ID,
				CoverLetter: coverLetter(job.Title, companyName),
				Status:      applicationStatuses[i%len(applicationStatuses)],
				AppliedAt:   s.now(),
			}
			if err := s.applicationRepo.Create(db, application); err != nil {
				return err
			}
			logger.Info("Created application", "username", data.Username, "job", job.Title)
			report.created("applications")
		}
	}
	return nil
}

func (s *Seeder) seedNotifications(db *gorm.DB, report *Report) error {
	approved, err := s.approvedCompanies(db)
	if err != nil {
		return err
	}
	for _, company := range approved {
		exists, err := s.notificationRepo.ExistsForUser(db, company.UserID, models.NotificationTypeApproval)
		if err != nil {
			return err
		}
		if exists {
			report.skipped("notifications")
			continue
		}
		notification := &models.Notification{
			UserID:  company.UserID,
			Type:    models.NotificationTypeApproval,
			Title:   "Company Approved",
			Message: fmt.Sprintf("Congratulations! Your company %q has been approved. You can now post jobs.", company.CompanyName),
		}
		if err := s.notificationRepo.Create(db, notification); err != nil {
			return err
		}
		report.created("notifications")
	}
	return nil
}

// ============================================================================

// ensureUser возвращает существующего пользователя или создаёт нового. created=false, если он уже был.
func (s *Seeder) ensureUser(db *gorm.DB, username, email, password string, role models.UserRole) (*models.User, bool, error) {
	user, err := s.userRepo.FindByUsername(db, username)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, false, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, false, err
	}
	user = &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	if err := s.userRepo.Create(db, user); err != nil {
		return nil, false, err
	}
	return user, true, nil
}

// approvedCompanies - одобренные демо-компании в порядке набора данных
func (s *Seeder) approvedCompanies(db *gorm.DB) ([]*models.Company, error) {
	var result []*models.Company
	for _, data := range companies {
		company, err := s.companyRepo.FindByRegistrationNumber(db, data.RegistrationNumber)
		if err != nil {
			if errors.Is(err, repositories.ErrCompanyNotFound) {
				continue
			}
			return nil, err
		}
		if company.IsApproved() {
			result = append(result, company)
		}
	}
	return result, nil
}

func coverLetter(title, companyName string) string {
	return fmt.Sprintf("I am writing to express my interest in the %s position at %s. "+
		"With my experience and skills in security services, I believe I would be a valuable addition to your team. "+
		"I am passionate about maintaining safety and security, and I am confident in my ability to contribute effectively to your organization.",
		title, companyName)
}
