package service

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"smart-rw-svc/internal/apperr"
	"smart-rw-svc/internal/authz"
	"smart-rw-svc/internal/models"
	"smart-rw-svc/internal/repository"
	"smart-rw-svc/pkg/logger"
)

var rtNumberPattern = regexp.MustCompile(`^\d{3}$`)

// ProvisionRTInput carries RT provisioning data
type ProvisionRTInput struct {
	Number   string `json:"number" binding:"required"`
	RWNumber string `json:"rw_number"`
	Chairman string `json:"chairman" binding:"required"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Email    string `json:"email"`
}

// ProvisionRWInput carries RW provisioning data
type ProvisionRWInput struct {
	Number   string `json:"number" binding:"required"`
	Chairman string `json:"chairman" binding:"required"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Email    string `json:"email"`
}

// Credentials is the generated login returned exactly once at provisioning.
// Only the bcrypt hash is persisted; the plaintext is never retrievable again.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProvisionRTResult is the RT creation response
type ProvisionRTResult struct {
	RT          *models.RT  `json:"rt"`
	Credentials Credentials `json:"credentials"`
}

// ProvisionRWResult is the RW creation response
type ProvisionRWResult struct {
	RW          *models.RW  `json:"rw"`
	Credentials Credentials `json:"credentials"`
}

// TerritoryService interface defines RT/RW provisioning and management
type TerritoryService interface {
	ProvisionRT(actor authz.Actor, input ProvisionRTInput) (*ProvisionRTResult, error)
	ProvisionRW(actor authz.Actor, input ProvisionRWInput) (*ProvisionRWResult, error)
	GetRT(actor authz.Actor, id uint) (*models.RT, error)
	GetRW(actor authz.Actor, id uint) (*models.RW, error)
	ListRTs(actor authz.Actor, rwNumber string) ([]*repository.RTSummary, error)
	ListRWs(actor authz.Actor) ([]*repository.RWSummary, error)
	UpdateRT(actor authz.Actor, id uint, chairman, phone, address string) (*models.RT, error)
	UpdateRW(actor authz.Actor, id uint, chairman, phone, address string) (*models.RW, error)
	DeactivateRT(actor authz.Actor, id uint) error
	DeactivateRW(actor authz.Actor, id uint) error
}

// territoryService implements TerritoryService interface
type territoryService struct {
	territoryRepo repository.TerritoryRepository
	userRepo      repository.UserRepository
	emailDomain   string
	logger        *logger.Logger
}

// NewTerritoryService creates a new territory service
func NewTerritoryService(
	territoryRepo repository.TerritoryRepository,
	userRepo repository.UserRepository,
	emailDomain string,
	logger *logger.Logger,
) TerritoryService {
	return &territoryService{
		territoryRepo: territoryRepo,
		userRepo:      userRepo,
		emailDomain:   emailDomain,
		logger:        logger,
	}
}

// ProvisionRT creates an RT territorial record together with its login
// account, atomically. RW creates RTs inside its own RW; ADMIN creates RTs
// anywhere (rw_number required in the input).
func (s *territoryService) ProvisionRT(actor authz.Actor, input ProvisionRTInput) (*ProvisionRTResult, error) {
	if d := authz.RequireRole(actor, models.RoleRW, models.RoleAdmin); !d.Allowed {
		return nil, d.Err()
	}

	number := strings.TrimSpace(input.Number)
	if !rtNumberPattern.MatchString(number) {
		return nil, apperr.New(apperr.KindInvalidInput, "RT number must be a 3-digit string")
	}

	rwNumber := strings.TrimSpace(input.RWNumber)
	if actor.Role == models.RoleRW {
		if actor.Territory == nil {
			return nil, apperr.New(apperr.KindForbidden, "RW account has no territory assignment")
		}
		rwNumber = actor.Territory.RWNumber
	}
	if rwNumber == "" {
		return nil, apperr.New(apperr.KindInvalidInput, "rw_number is required")
	}

	// Best-effort pre-checks. The unique constraints inside the provisioning
	// transaction are the authoritative duplicate signals.
	existing, err := s.territoryRepo.GetRTByNumber(number, rwNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.New(apperr.KindDuplicateNumber, "RT number already registered in this RW")
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		email = fmt.Sprintf("rt%s@%s", number, s.emailDomain)
	}
	taken, err := s.userRepo.EmailExists(email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.New(apperr.KindEmailTaken, "email already registered")
	}

	password := fmt.Sprintf("RT%s@%d", number, time.Now().Year())
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	actorID := actor.UserID
	rt := &models.RT{
		Number:      number,
		RWNumber:    rwNumber,
		Chairman:    input.Chairman,
		Phone:       input.Phone,
		Address:     input.Address,
		IsActive:    true,
		CreatedByID: &actorID,
	}
	account := &models.User{
		Name:     input.Chairman,
		Email:    email,
		Password: string(hash),
		Role:     models.RoleRT,
	}

	if err := s.territoryRepo.CreateRTWithAccount(rt, account); err != nil {
		s.logger.WithError(err).WithFields(map[string]interface{}{
			"rt_number": number,
			"rw_number": rwNumber,
		}).Error("Failed to provision RT")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"rt_id":     rt.ID,
		"rt_number": number,
		"rw_number": rwNumber,
		"user_id":   account.ID,
	}).Info("RT provisioned successfully")

	return &ProvisionRTResult{
		RT:          rt,
		Credentials: Credentials{Email: email, Password: password},
	}, nil
}

// ProvisionRW creates an RW territorial record together with its login
// account, atomically. ADMIN only.
func (s *territoryService) ProvisionRW(actor authz.Actor, input ProvisionRWInput) (*ProvisionRWResult, error) {
	if d := authz.RequireRole(actor, models.RoleAdmin); !d.Allowed {
		return nil, d.Err()
	}

	number := strings.TrimSpace(input.Number)
	if number == "" {
		return nil, apperr.New(apperr.KindInvalidInput, "RW number is required")
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		email = fmt.Sprintf("rw%s@%s", number, s.emailDomain)
	}
	taken, err := s.userRepo.EmailExists(email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.New(apperr.KindEmailTaken, "email already registered")
	}

	password := fmt.Sprintf("RW%s@%d", number, time.Now().Year())
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	actorID := actor.UserID
	rw := &models.RW{
		Number:      number,
		Chairman:    input.Chairman,
		Phone:       input.Phone,
		Address:     input.Address,
		IsActive:    true,
		CreatedByID: &actorID,
	}
	account := &models.User{
		Name:     input.Chairman,
		Email:    email,
		Password: string(hash),
		Role:     models.RoleRW,
	}

	if err := s.territoryRepo.CreateRWWithAccount(rw, account); err != nil {
		s.logger.WithError(err).WithField("rw_number", number).Error("Failed to provision RW")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"rw_id":     rw.ID,
		"rw_number": number,
		"user_id":   account.ID,
	}).Info("RW provisioned successfully")

	return &ProvisionRWResult{
		RW:          rw,
		Credentials: Credentials{Email: email, Password: password},
	}, nil
}

// GetRT retrieves an RT record
func (s *territoryService) GetRT(actor authz.Actor, id uint) (*models.RT, error) {
	if !actor.Authenticated() {
		return nil, apperr.New(apperr.KindAuthRequired, "authentication required")
	}
	rt, err := s.territoryRepo.GetRTByID(id)
	if err != nil {
		return nil, err
	}
	if rt == nil {
		return nil, apperr.New(apperr.KindNotFound, "RT not found")
	}
	return rt, nil
}

// GetRW retrieves an RW record
func (s *territoryService) GetRW(actor authz.Actor, id uint) (*models.RW, error) {
	if !actor.Authenticated() {
		return nil, apperr.New(apperr.KindAuthRequired, "authentication required")
	}
	rw, err := s.territoryRepo.GetRWByID(id)
	if err != nil {
		return nil, err
	}
	if rw == nil {
		return nil, apperr.New(apperr.KindNotFound, "RW not found")
	}
	return rw, nil
}

// ListRTs lists RT records with dependent counts. RW actors are scoped to
// their own RW.
func (s *territoryService) ListRTs(actor authz.Actor, rwNumber string) ([]*repository.RTSummary, error) {
	if d := authz.RequireRole(actor, models.RoleRT, models.RoleRW, models.RoleAdmin); !d.Allowed {
		return nil, d.Err()
	}
	if actor.Role == models.RoleRW && actor.Territory != nil {
		rwNumber = actor.Territory.RWNumber
	}
	return s.territoryRepo.ListRTs(rwNumber)
}

// ListRWs lists RW records with dependent counts. ADMIN only.
func (s *territoryService) ListRWs(actor authz.Actor) ([]*repository.RWSummary, error) {
	if d := authz.RequireRole(actor, models.RoleAdmin); !d.Allowed {
		return nil, d.Err()
	}
	return s.territoryRepo.ListRWs()
}

// UpdateRT updates the RT chairman profile
func (s *territoryService) UpdateRT(actor authz.Actor, id uint, chairman, phone, address string) (*models.RT, error) {
	if d := authz.RequireRole(actor, models.RoleRW, models.RoleAdmin); !d.Allowed {
		return nil, d.Err()
	}

	rt, err := s.territoryRepo.GetRTByID(id)
	if err != nil {
		return nil, err
	}
	if rt == nil {
		return nil, apperr.New(apperr.KindNotFound, "RT not found")
	}

	if chairman != "" {
		rt.Chairman = chairman
	}
	if phone != "" {
		rt.Phone = phone
	}
	if address != "" {
		rt.Address = address
	}

	if err := s.territoryRepo.UpdateRT(rt); err != nil {
		return nil, err
	}
	return rt, nil
}

// UpdateRW updates the RW chairman profile. ADMIN only.
func (s *territoryService) UpdateRW(actor authz.Actor, id uint, chairman, phone, address string) (*models.RW, error) {
	if d := authz.RequireRole(actor, models.RoleAdmin); !d.Allowed {
		return nil, d.Err()
	}

	rw, err := s.territoryRepo.GetRWByID(id)
	if err != nil {
		return nil, err
	}
	if rw == nil {
		return nil, apperr.New(apperr.KindNotFound, "RW not found")
	}

	if chairman != "" {
		rw.Chairman = chairman
	}
	if phone != "" {
		rw.Phone = phone
	}
	if address != "" {
		rw.Address = address
	}

	if err := s.territoryRepo.UpdateRW(rw); err != nil {
		return nil, err
	}
	return rw, nil
}

// DeactivateRT soft-deletes an RT. Rejected with HAS_DEPENDENTS while any
// resident is still attached; repeated attempts produce the same error
// without side effects. The row is never removed, only isActive flips.
func (s *territoryService) DeactivateRT(actor authz.Actor, id uint) error {
	if d := authz.RequireRole(actor, models.RoleRW, models.RoleAdmin); !d.Allowed {
		return d.Err()
	}

	rt, err := s.territoryRepo.GetRTByID(id)
	if err != nil {
		return err
	}
	if rt == nil {
		return apperr.New(apperr.KindNotFound, "RT not found")
	}

	count, err := s.territoryRepo.CountResidentsInRT(rt.Number, rt.RWNumber)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperr.Newf(apperr.KindHasDependents, "RT still has %d residents; reassign them first", count)
	}

	if !rt.IsActive {
		return nil
	}

	rt.IsActive = false
	if err := s.territoryRepo.UpdateRT(rt); err != nil {
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"rt_id":     rt.ID,
		"rt_number": rt.Number,
		"rw_number": rt.RWNumber,
	}).Info("RT deactivated")

	return nil
}

// DeactivateRW soft-deletes an RW with the same dependent guard as RTs
func (s *territoryService) DeactivateRW(actor authz.Actor, id uint) error {
	if d := authz.RequireRole(actor, models.RoleAdmin); !d.Allowed {
		return d.Err()
	}

	rw, err := s.territoryRepo.GetRWByID(id)
	if err != nil {
		return err
	}
	if rw == nil {
		return apperr.New(apperr.KindNotFound, "RW not found")
	}

	count, err := s.territoryRepo.CountResidentsInRW(rw.Number)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperr.Newf(apperr.KindHasDependents, "RW still has %d residents; reassign them first", count)
	}

	if !rw.IsActive {
		return nil
	}

	rw.IsActive = false
	if err := s.territoryRepo.UpdateRW(rw); err != nil {
		return err
	}

	s.logger.WithField("rw_number", rw.Number).Info("RW deactivated")

	return nil
}
