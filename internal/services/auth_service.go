package services

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"jobportal_backend/internal/access"
	"jobportal_backend/internal/auth"
	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService interface {
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Refresh(db *gorm.DB, refreshToken string) (*dto.AuthResponse, error)
	Logout(db *gorm.DB, refreshToken string) error
	Me(db *gorm.DB, userID string) (*dto.MeResponse, error)
	RegisterJobSeeker(db *gorm.DB, req *dto.RegisterJobSeekerRequest) (*dto.AuthResponse, error)
	RegisterCompany(db *gorm.DB, req *dto.RegisterCompanyRequest) (*dto.AuthResponse, error)

	// LoadPrincipal строит Principal для пользователя из JWT
	LoadPrincipal(db *gorm.DB, userID string) (access.Principal, error)
}

type authService struct {
	userRepo         repositories.UserRepository
	companyRepo      repositories.CompanyRepository
	seekerRepo       repositories.JobSeekerRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	tokens           *auth.TokenManager
	refreshTTL       time.Duration
	files            *FileService
}

func NewAuthService(
	userRepo repositories.UserRepository,
	companyRepo repositories.CompanyRepository,
	seekerRepo repositories.JobSeekerRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	tokens *auth.TokenManager,
	refreshTTL time.Duration,
	files *FileService,
) AuthService {
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &authService{
		userRepo:         userRepo,
		companyRepo:      companyRepo,
		seekerRepo:       seekerRepo,
		refreshTokenRepo: refreshTokenRepo,
		tokens:           tokens,
		refreshTTL:       refreshTTL,
		files:            files,
	}
}

// Login - аутентификация по username/password
func (s *authService) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByUsername(db, strings.TrimSpace(req.Username))
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperrors.ErrUserInactive
	}

	resp, err := s.issueTokens(db, user)
	if err != nil {
		return nil, err
	}
	logger.CtxInfo(ctxFrom(db), "user logged in", "user_id", user.ID, "role", user.Role)
	return resp, nil
}

// Refresh - ротация refresh-токена: старый удаляется, выдаётся новая пара
func (s *authService) Refresh(db *gorm.DB, refreshToken string) (*dto.AuthResponse, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	token, err := s.refreshTokenRepo.FindByToken(tx, refreshToken)
	if err != nil {
		if apperrors.Is(err, repositories.ErrRefreshTokenNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.refreshTokenRepo.DeleteByToken(tx, refreshToken); err != nil {
		if apperrors.Is(err, repositories.ErrRefreshTokenNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.InternalError(err)
	}

	if token.Expired(time.Now()) {
		// удаление просроченного токена всё равно фиксируем
		if err := tx.Commit().Error; err != nil {
			return nil, apperrors.InternalError(err)
		}
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(tx, token.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	if !user.IsActive {
		return nil, apperrors.ErrUserInactive
	}

	resp, err := s.issueTokens(tx, user)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return resp, nil
}

// Logout - удаление refresh-токена. Неизвестный токен не считается ошибкой.
func (s *authService) Logout(db *gorm.DB, refreshToken string) error {
	err := s.refreshTokenRepo.DeleteByToken(db, refreshToken)
	if err != nil && !apperrors.Is(err, repositories.ErrRefreshTokenNotFound) {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *authService) Me(db *gorm.DB, userID string) (*dto.MeResponse, error) {
	user, err := s.userRepo.FindWithProfile(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	ctx := ctxFrom(db)
	resp := &dto.MeResponse{User: dto.NewUserDTO(user)}
	if user.Company != nil {
		company := dto.NewCompanyResponse(user.Company, s.files.URL(ctx, user.Company.LogoKey))
		resp.Company = &company
	}
	if user.JobSeeker != nil {
		profile := dto.NewJobSeekerProfile(user.JobSeeker, s.files.URL(ctx, user.JobSeeker.ResumeKey))
		resp.JobSeeker = &profile
	}
	return resp, nil
}

// RegisterJobSeeker - пользователь и профиль соискателя создаются в одной транзакции
func (s *authService) RegisterJobSeeker(db *gorm.DB, req *dto.RegisterJobSeekerRequest) (*dto.AuthResponse, error) {
	if err := checkPasswords(req.Password, req.PasswordConfirm); err != nil {
		return nil, err
	}
	dob, err := parseDate("date_of_birth", req.DateOfBirth)
	if err != nil {
		return nil, err
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	user, err := s.createUser(tx, req.Username, req.Password, req.Email, req.Phone, models.UserRoleJobSeeker)
	if err != nil {
		return nil, err
	}

	seeker := &models.JobSeeker{
		UserID:      user.ID,
		FullName:    strings.TrimSpace(req.FullName),
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		City:        req.City,
		DateOfBirth: dob,
	}
	if err := s.seekerRepo.Create(tx, seeker); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp, err := s.issueTokens(tx, user)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp.Message = "Registration successful"
	logger.CtxInfo(ctxFrom(db), "job seeker registered", "user_id", user.ID)
	return resp, nil
}

// RegisterCompany - пользователь и компания со статусом pending в одной транзакции
func (s *authService) RegisterCompany(db *gorm.DB, req *dto.RegisterCompanyRequest) (*dto.AuthResponse, error) {
	if err := checkPasswords(req.Password, req.PasswordConfirm); err != nil {
		return nil, err
	}
	regNumber := strings.TrimSpace(req.RegistrationNumber)

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	exists, err := s.companyRepo.RegistrationNumberExists(tx, regNumber)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if exists {
		return nil, apperrors.ErrDuplicateRegistration
	}

	user, err := s.createUser(tx, req.Username, req.Password, req.Email, req.Phone, models.UserRoleCompany)
	if err != nil {
		return nil, err
	}

	company := &models.Company{
		UserID:             user.ID,
		CompanyName:        strings.TrimSpace(req.CompanyName),
		RegistrationNumber: regNumber,
		Email:              req.Email,
		Phone:              req.Phone,
		Address:            req.Address,
		City:               req.City,
		State:              req.State,
		Website:            req.Website,
		Description:        req.Description,
		Status:             models.CompanyStatusPending,
		SubmittedAt:        time.Now(),
	}
	if err := s.companyRepo.Create(tx, company); err != nil {
		if apperrors.Is(err, repositories.ErrRegistrationNumberExists) {
			return nil, apperrors.ErrDuplicateRegistration
		}
		return nil, apperrors.InternalError(err)
	}

	resp, err := s.issueTokens(tx, user)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp.Message = "Registration successful! Your account is pending approval."
	logger.CtxInfo(ctxFrom(db), "company registered", "user_id", user.ID, "company_id", company.ID)
	return resp, nil
}

func (s *authService) LoadPrincipal(db *gorm.DB, userID string) (access.Principal, error) {
	user, err := s.userRepo.FindWithProfile(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrLoginRequired
		}
		return nil, apperrors.InternalError(err)
	}
	if !user.IsActive {
		return nil, apperrors.ErrUserInactive
	}
	p := access.FromUser(user)
	if p == nil {
		return nil, apperrors.ErrWrongRole
	}
	return p, nil
}

// --- Helper functions ---

func (s *authService) createUser(tx *gorm.DB, username, password, email, phone string, role models.UserRole) (*models.User, error) {
	username = strings.TrimSpace(username)
	if err := auth.ValidatePassword(password); err != nil {
		return nil, apperrors.FieldError("password", err.Error())
	}

	taken, err := s.userRepo.UsernameExists(tx, username)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if taken {
		return nil, apperrors.ErrUsernameTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Phone:        phone,
		IsActive:     true,
	}
	if err := s.userRepo.Create(tx, user); err != nil {
		if apperrors.Is(err, repositories.ErrUsernameExists) {
			return nil, apperrors.ErrUsernameTaken
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

// issueTokens выдаёт access-токен и сохраняет новый refresh-токен
func (s *authService) issueTokens(db *gorm.DB, user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refreshToken, err := generateRandomToken()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.refreshTokenRepo.Create(db, &models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(s.refreshTTL),
	}); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(s.tokens.TTL()),
		Redirect:     auth.LandingFor(user.Role),
		User:         dto.NewUserDTO(user),
	}, nil
}

func checkPasswords(password, confirm string) error {
	if password != confirm {
		return apperrors.ErrPasswordMismatch
	}
	return nil
}

// parseDate разбирает YYYY-MM-DD; пустая строка - nil
func parseDate(field, value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, apperrors.FieldError(field, "must be a date in YYYY-MM-DD format")
	}
	return &t, nil
}

func generateRandomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
