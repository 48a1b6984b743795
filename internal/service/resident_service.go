package service

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"smart-rw-svc/internal/apperr"
	"smart-rw-svc/internal/authz"
	"smart-rw-svc/internal/models"
	"smart-rw-svc/internal/repository"
	"smart-rw-svc/pkg/logger"
)

// CreateResidentInput carries an RT-assisted resident entry
type CreateResidentInput struct {
	NIK      string `json:"nik" binding:"required"`
	FullName string `json:"full_name" binding:"required"`
	Gender   string `json:"gender"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	RTNumber string `json:"rt_number"`
	RWNumber string `json:"rw_number"`
	FamilyID *uint  `json:"family_id"`
}

// UpdateResidentInput carries resident profile changes
type UpdateResidentInput struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Gender   string `json:"gender"`
	FamilyID *uint  `json:"family_id"`
}

// ResidentService interface defines resident operations
type ResidentService interface {
	Create(actor authz.Actor, input CreateResidentInput) (*models.Resident, error)
	Get(actor authz.Actor, id uint) (*models.Resident, error)
	List(actor authz.Actor, filter repository.ResidentFilter) ([]*models.Resident, int64, error)
	Update(actor authz.Actor, id uint, input UpdateResidentInput) (*models.Resident, error)
	Verify(actor authz.Actor, id uint) (*models.Resident, error)
	ExportToExcel(actor authz.Actor, filter repository.ResidentFilter) ([]byte, string, error)
}

// residentService implements ResidentService interface
type residentService struct {
	residentRepo repository.ResidentRepository
	logger       *logger.Logger
}

// NewResidentService creates a new resident service
func NewResidentService(residentRepo repository.ResidentRepository, logger *logger.Logger) ResidentService {
	return &residentService{
		residentRepo: residentRepo,
		logger:       logger,
	}
}

func residentSubject(r *models.Resident) authz.Subject {
	return authz.Subject{
		OwnerUserID: r.UserID,
		FamilyID:    r.FamilyID,
		Territory:   &authz.Territory{RTNumber: r.RTNumber, RWNumber: r.RWNumber},
	}
}

// Create registers a resident on behalf of someone without an account.
// RT only enters residents of its own territorial pair; ADMIN and RW may
// enter anywhere. The entry is created unverified like self-registration.
func (s *residentService) Create(actor authz.Actor, input CreateResidentInput) (*models.Resident, error) {
	if d := authz.RequireRole(actor, models.RoleRT, models.RoleRW, models.RoleAdmin); !d.Allowed {
		return nil, d.Err()
	}

	rtNumber := input.RTNumber
	rwNumber := input.RWNumber
	if actor.Role == models.RoleRT {
		if actor.Territory == nil {
			return nil, apperr.New(apperr.KindForbidden, "RT account has no territory assignment")
		}
		rtNumber = actor.Territory.RTNumber
		rwNumber = actor.Territory.RWNumber
	}
	if rtNumber == "" || rwNumber == "" {
		return nil, apperr.New(apperr.KindInvalidInput, "rt_number and rw_number are required")
	}

	if input.FamilyID != nil {
		family, err := s.residentRepo.GetFamilyByID(*input.FamilyID)
		if err != nil {
			return nil, err
		}
		if family == nil {
			return nil, apperr.New(apperr.KindNotFound, "family not found")
		}
	}

	resident := &models.Resident{
		NIK:      input.NIK,
		FullName: input.FullName,
		Gender:   input.Gender,
		Phone:    input.Phone,
		Address:  input.Address,
		RTNumber: rtNumber,
		RWNumber: rwNumber,
		FamilyID: input.FamilyID,
	}

	if err := s.residentRepo.Create(resident); err != nil {
		s.logger.WithError(err).WithField("nik", input.NIK).Error("Failed to create resident")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"resident_id": resident.ID,
		"created_by":  actor.UserID,
		"rt":          resident.RTNumber,
		"rw":          resident.RWNumber,
	}).Info("Resident created")

	return resident, nil
}

// Get retrieves a resident the actor is allowed to see
func (s *residentService) Get(actor authz.Actor, id uint) (*models.Resident, error) {
	resident, err := s.residentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if resident == nil {
		return nil, apperr.New(apperr.KindNotFound, "resident not found")
	}

	if d := authz.CanRead(actor, residentSubject(resident)); !d.Allowed {
		return nil, d.Err()
	}

	return resident, nil
}

// List retrieves residents scoped to the actor's role: RT sees its own
// territorial pair, WARGA sees only own family, RW/ADMIN see everything the
// filter asks for.
func (s *residentService) List(actor authz.Actor, filter repository.ResidentFilter) ([]*models.Resident, int64, error) {
	if !actor.Authenticated() {
		return nil, 0, apperr.New(apperr.KindAuthRequired, "authentication required")
	}

	switch actor.Role {
	case models.RoleRT:
		if actor.Territory == nil {
			return nil, 0, apperr.New(apperr.KindForbidden, "RT account has no territory assignment")
		}
		filter.RTNumber = actor.Territory.RTNumber
		filter.RWNumber = actor.Territory.RWNumber
	case models.RoleWarga:
		if actor.FamilyID == nil {
			return nil, 0, apperr.New(apperr.KindForbidden, "no family record linked to your profile")
		}
		filter.FamilyID = actor.FamilyID
		filter.RTNumber = ""
		filter.RWNumber = ""
	}

	return s.residentRepo.List(filter)
}

// Update changes a resident profile, subject to ownership and territory rules
func (s *residentService) Update(actor authz.Actor, id uint, input UpdateResidentInput) (*models.Resident, error) {
	resident, err := s.residentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if resident == nil {
		return nil, apperr.New(apperr.KindNotFound, "resident not found")
	}

	if d := authz.CanMutate(actor, residentSubject(resident)); !d.Allowed {
		return nil, d.Err()
	}

	if input.FullName != "" {
		resident.FullName = input.FullName
	}
	if input.Phone != "" {
		resident.Phone = input.Phone
	}
	if input.Address != "" {
		resident.Address = input.Address
	}
	if input.Gender != "" {
		resident.Gender = input.Gender
	}
	if input.FamilyID != nil {
		family, err := s.residentRepo.GetFamilyByID(*input.FamilyID)
		if err != nil {
			return nil, err
		}
		if family == nil {
			return nil, apperr.New(apperr.KindNotFound, "family not found")
		}
		resident.FamilyID = input.FamilyID
	}

	if err := s.residentRepo.Update(resident); err != nil {
		return nil, err
	}

	return resident, nil
}

// Verify marks a resident verified. RT only, within its own territorial
// pair; ADMIN and RW may verify anywhere. Verification is one-way: an
// already verified resident is left untouched.
func (s *residentService) Verify(actor authz.Actor, id uint) (*models.Resident, error) {
	if d := authz.RequireRole(actor, models.RoleRT, models.RoleRW, models.RoleAdmin); !d.Allowed {
		return nil, d.Err()
	}

	resident, err := s.residentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if resident == nil {
		return nil, apperr.New(apperr.KindNotFound, "resident not found")
	}

	if actor.Role == models.RoleRT {
		target := authz.Territory{RTNumber: resident.RTNumber, RWNumber: resident.RWNumber}
		if actor.Territory == nil || !actor.Territory.Equal(target) {
			return nil, apperr.New(apperr.KindForbidden, "outside your RT")
		}
	}

	if resident.IsVerified {
		return resident, nil
	}

	now := time.Now()
	verifier := actor.UserID
	resident.IsVerified = true
	resident.VerifiedBy = &verifier
	resident.VerifiedAt = &now

	if err := s.residentRepo.Update(resident); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"resident_id": resident.ID,
		"verified_by": actor.UserID,
		"rt":          resident.RTNumber,
		"rw":          resident.RWNumber,
	}).Info("Resident verified")

	return resident, nil
}

// ExportToExcel exports residents to an Excel file, scoped like List.
// WARGA cannot export.
func (s *residentService) ExportToExcel(actor authz.Actor, filter repository.ResidentFilter) ([]byte, string, error) {
	if d := authz.RequireRole(actor, models.RoleRT, models.RoleRW, models.RoleAdmin); !d.Allowed {
		return nil, "", d.Err()
	}
	if actor.Role == models.RoleRT {
		if actor.Territory == nil {
			return nil, "", apperr.New(apperr.KindForbidden, "RT account has no territory assignment")
		}
		filter.RTNumber = actor.Territory.RTNumber
		filter.RWNumber = actor.Territory.RWNumber
	}

	filter.Page = 1
	filter.Limit = 100
	var all []*models.Resident
	for {
		residents, total, err := s.residentRepo.List(filter)
		if err != nil {
			return nil, "", fmt.Errorf("failed to get resident data: %w", err)
		}
		all = append(all, residents...)
		if int64(len(all)) >= total || len(residents) == 0 {
			break
		}
		filter.Page++
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.WithError(err).Error("Failed to close Excel file")
		}
	}()

	sheetName := "Data Warga"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headers := []string{"No", "NIK", "Nama Lengkap", "Jenis Kelamin", "Telepon", "Alamat", "RT", "RW", "Terverifikasi"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#D3D3D3"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err == nil {
		f.SetCellStyle(sheetName, "A1", "I1", headerStyle)
	}

	for i, resident := range all {
		row := i + 2

		verified := "Belum"
		if resident.IsVerified {
			verified = "Ya"
		}

		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), i+1)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), resident.NIK)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), resident.FullName)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), resident.Gender)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), resident.Phone)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), resident.Address)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), resident.RTNumber)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), resident.RWNumber)
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), verified)
	}

	for i := 1; i <= len(headers); i++ {
		col, _ := excelize.ColumnNumberToName(i)
		f.SetColWidth(sheetName, col, col, 18)
	}

	if f.GetSheetName(0) == "Sheet1" && sheetName != "Sheet1" {
		f.DeleteSheet("Sheet1")
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("data_warga_%s.xlsx", timestamp)

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to write Excel file: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"count":    len(all),
		"filename": filename,
	}).Info("Residents exported to Excel")

	return buffer.Bytes(), filename, nil
}
