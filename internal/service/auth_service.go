package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"smart-rw-svc/internal/apperr"
	"smart-rw-svc/internal/authz"
	"smart-rw-svc/internal/models"
	"smart-rw-svc/internal/repository"
	"smart-rw-svc/pkg/logger"
)

// RegisterInput carries resident self-registration data
type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	NIK      string `json:"nik" binding:"required,len=16"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	RTNumber string `json:"rt_number" binding:"required"`
	RWNumber string `json:"rw_number" binding:"required"`
}

// TokenClaims is the JWT payload; territory and family are re-resolved from
// the store per request, so the token only pins identity and role.
type TokenClaims struct {
	UserID uint        `json:"user_id"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// AuthService interface defines authentication operations
type AuthService interface {
	Register(input RegisterInput) (*models.User, error)
	Login(email, password string) (string, *models.User, error)
	ActorFromToken(tokenString string) (authz.Actor, error)
	ResolveActor(user *models.User) (authz.Actor, error)
}

// authService implements AuthService interface
type authService struct {
	userRepo      repository.UserRepository
	residentRepo  repository.ResidentRepository
	territoryRepo repository.TerritoryRepository
	jwtSecret     string
	jwtExpiry     time.Duration
	logger        *logger.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	residentRepo repository.ResidentRepository,
	territoryRepo repository.TerritoryRepository,
	jwtSecret string,
	jwtExpiryHours int,
	logger *logger.Logger,
) AuthService {
	return &authService{
		userRepo:      userRepo,
		residentRepo:  residentRepo,
		territoryRepo: territoryRepo,
		jwtSecret:     jwtSecret,
		jwtExpiry:     time.Duration(jwtExpiryHours) * time.Hour,
		logger:        logger,
	}
}

// Register creates a WARGA account together with an unverified resident
// profile. Verification is a separate RT action.
func (s *authService) Register(input RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	exists, err := s.userRepo.EmailExists(email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.New(apperr.KindEmailTaken, "email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     input.Name,
		Email:    email,
		Password: string(hash),
		Role:     models.RoleWarga,
	}
	resident := &models.Resident{
		NIK:        input.NIK,
		FullName:   input.Name,
		Phone:      input.Phone,
		Address:    input.Address,
		RTNumber:   input.RTNumber,
		RWNumber:   input.RWNumber,
		IsVerified: false,
	}

	if err := s.userRepo.CreateWithResident(user, resident); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Wrap(apperr.KindEmailTaken, "email or NIK already registered", err)
		}
		s.logger.WithError(err).WithField("email", email).Error("Failed to register user")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": user.ID,
		"email":   email,
		"rt":      input.RTNumber,
		"rw":      input.RWNumber,
	}).Info("Resident registered successfully")

	return user, nil
}

// Login verifies credentials and issues a signed JWT
func (s *authService) Login(email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, apperr.New(apperr.KindAuthRequired, "invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apperr.New(apperr.KindAuthRequired, "invalid email or password")
	}

	now := time.Now()
	claims := TokenClaims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiry)),
			Subject:   fmt.Sprintf("%d", user.ID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": user.ID,
		"role":    user.Role,
	}).Info("User logged in")

	return signed, user, nil
}

// ActorFromToken parses and verifies a JWT and resolves the current actor
// from the store
func (s *authService) ActorFromToken(tokenString string) (authz.Actor, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return authz.Actor{}, apperr.New(apperr.KindAuthRequired, "invalid or expired token")
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok {
		return authz.Actor{}, apperr.New(apperr.KindAuthRequired, "invalid token claims")
	}

	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		return authz.Actor{}, err
	}
	if user == nil {
		return authz.Actor{}, apperr.New(apperr.KindAuthRequired, "account no longer exists")
	}

	return s.ResolveActor(user)
}

// ResolveActor builds the authorization actor for a user, attaching the
// territorial assignment and family from the current store state
func (s *authService) ResolveActor(user *models.User) (authz.Actor, error) {
	actor := authz.Actor{
		UserID: user.ID,
		Role:   user.Role,
	}

	switch user.Role {
	case models.RoleRW:
		if user.RWID != nil {
			rw, err := s.territoryRepo.GetRWByID(*user.RWID)
			if err != nil {
				return authz.Actor{}, err
			}
			if rw != nil {
				actor.Territory = &authz.Territory{RWNumber: rw.Number}
			}
		}
	case models.RoleRT:
		if user.RTID != nil {
			rt, err := s.territoryRepo.GetRTByID(*user.RTID)
			if err != nil {
				return authz.Actor{}, err
			}
			if rt != nil {
				actor.Territory = &authz.Territory{RTNumber: rt.Number, RWNumber: rt.RWNumber}
			}
		}
	case models.RoleWarga:
		resident, err := s.residentRepo.GetByUserID(user.ID)
		if err != nil {
			return authz.Actor{}, err
		}
		if resident != nil {
			actor.ResidentID = &resident.ID
			actor.FamilyID = resident.FamilyID
			actor.Territory = &authz.Territory{RTNumber: resident.RTNumber, RWNumber: resident.RWNumber}
		}
	}

	return actor, nil
}
