package service

import (
	"errors"
	"time"

	"github.com/pizzeria-next/internal/config"
	"github.com/pizzeria-next/internal/logger"
	"github.com/pizzeria-next/internal/models"
	"github.com/pizzeria-next/internal/repository"

	"github.com/golang-jwt/jwt/v5"
)

// StaffAuthService 员工认证服务
type StaffAuthService struct {
	cfg       *config.Config
	staffRepo repository.StaffRepository
}

// NewStaffAuthService 创建员工认证服务
func NewStaffAuthService(cfg *config.Config, staffRepo repository.StaffRepository) *StaffAuthService {
	return &StaffAuthService{
		cfg:       cfg,
		staffRepo: staffRepo,
	}
}

// StaffClaims JWT 声明
type StaffClaims struct {
	StaffID  uint   `json:"staff_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateJWT 生成员工 JWT
func (s *StaffAuthService) GenerateJWT(staff *models.Staff) (string, time.Time, error) {
	expiresAt := time.Now().Add(time.Duration(s.cfg.JWT.ExpireHours) * time.Hour)

	claims := StaffClaims{
		StaffID:  staff.ID,
		Username: staff.Username,
		Role:     staff.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// ParseJWT 解析员工 JWT
func (s *StaffAuthService) ParseJWT(tokenString string) (*StaffClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &StaffClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*StaffClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// Login 员工登录
func (s *StaffAuthService) Login(username, password string) (*models.Staff, string, time.Time, error) {
	staff, err := s.staffRepo.GetByUsername(username)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if staff == nil || !staff.CheckPassword(password) {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if !staff.IsActive {
		return nil, "", time.Time{}, ErrStaffDisabled
	}

	token, expiresAt, err := s.GenerateJWT(staff)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	if err := s.staffRepo.TouchLastLogin(staff.ID, time.Now()); err != nil {
		logger.Warnw("staff_last_login_update_failed", "staff_id", staff.ID, "error", err)
	}
	logger.Infow("staff_login", "staff_id", staff.ID, "username", staff.Username)
	return staff, token, expiresAt, nil
}

// ResolveActor 根据声明解析操作者（账号被禁用或删除时报错）
func (s *StaffAuthService) ResolveActor(claims *StaffClaims) (Actor, error) {
	if claims == nil {
		return Actor{}, ErrInvalidCredentials
	}
	staff, err := s.staffRepo.GetByID(claims.StaffID)
	if err != nil {
		return Actor{}, err
	}
	if staff == nil {
		return Actor{}, ErrInvalidCredentials
	}
	if !staff.IsActive {
		return Actor{}, ErrStaffDisabled
	}
	return ActorFromStaff(staff), nil
}
