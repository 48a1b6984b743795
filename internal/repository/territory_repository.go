package repository

import (
	"errors"

	"gorm.io/gorm"

	"smart-rw-svc/internal/apperr"
	"smart-rw-svc/internal/models"
)

// RTSummary is an RT row with its dependent counts
type RTSummary struct {
	models.RT
	ResidentCount int64 `json:"resident_count"`
	FamilyCount   int64 `json:"family_count"`
}

// RWSummary is an RW row with its dependent counts
type RWSummary struct {
	models.RW
	RTCount       int64 `json:"rt_count"`
	ResidentCount int64 `json:"resident_count"`
}

// TerritoryRepository defines the interface for RT/RW data operations.
// The provisioning creates are transactional: account and territory row are
// written all-or-nothing, and the store's unique constraints are the
// authoritative duplicate signal.
type TerritoryRepository interface {
	CreateRTWithAccount(rt *models.RT, account *models.User) error
	CreateRWWithAccount(rw *models.RW, account *models.User) error
	GetRTByID(id uint) (*models.RT, error)
	GetRWByID(id uint) (*models.RW, error)
	GetRTByNumber(number, rwNumber string) (*models.RT, error)
	ListRTs(rwNumber string) ([]*RTSummary, error)
	ListRWs() ([]*RWSummary, error)
	UpdateRT(rt *models.RT) error
	UpdateRW(rw *models.RW) error
	CountResidentsInRT(rtNumber, rwNumber string) (int64, error)
	CountResidentsInRW(rwNumber string) (int64, error)
}

// territoryRepository implements TerritoryRepository
type territoryRepository struct {
	db *gorm.DB
}

// NewTerritoryRepository creates a new instance of TerritoryRepository
func NewTerritoryRepository(db *gorm.DB) TerritoryRepository {
	return &territoryRepository{
		db: db,
	}
}

// CreateRTWithAccount creates the RT row and its login account in a single
// transaction. A duplicate territory number maps to DUPLICATE_NUMBER and a
// duplicate account email to EMAIL_TAKEN; either failure rolls back both rows.
func (r *territoryRepository) CreateRTWithAccount(rt *models.RT, account *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rt).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Wrap(apperr.KindDuplicateNumber, "RT number already registered in this RW", err)
			}
			return err
		}

		account.RTID = &rt.ID
		if err := tx.Create(account).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Wrap(apperr.KindEmailTaken, "email already registered", err)
			}
			return err
		}

		return nil
	})
}

// CreateRWWithAccount creates the RW row and its login account in a single
// transaction, with the same duplicate mapping as CreateRTWithAccount.
func (r *territoryRepository) CreateRWWithAccount(rw *models.RW, account *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rw).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Wrap(apperr.KindDuplicateNumber, "RW number already registered", err)
			}
			return err
		}

		account.RWID = &rw.ID
		if err := tx.Create(account).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Wrap(apperr.KindEmailTaken, "email already registered", err)
			}
			return err
		}

		return nil
	})
}

// GetRTByID retrieves an RT by primary key; returns (nil, nil) when missing
func (r *territoryRepository) GetRTByID(id uint) (*models.RT, error) {
	var rt models.RT
	err := r.db.First(&rt, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

// GetRWByID retrieves an RW by primary key; returns (nil, nil) when missing
func (r *territoryRepository) GetRWByID(id uint) (*models.RW, error) {
	var rw models.RW
	err := r.db.First(&rw, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rw, nil
}

// GetRTByNumber retrieves an RT by its territorial pair, active or not
func (r *territoryRepository) GetRTByNumber(number, rwNumber string) (*models.RT, error) {
	var rt models.RT
	err := r.db.Where("number = ? AND rw_number = ?", number, rwNumber).First(&rt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

// ListRTs retrieves RT rows with resident and family counts, optionally
// filtered to a single RW
func (r *territoryRepository) ListRTs(rwNumber string) ([]*RTSummary, error) {
	var summaries []*RTSummary

	query := `
		SELECT rts.*,
			   COUNT(DISTINCT res.id) AS resident_count,
			   COUNT(DISTINCT res.family_id) AS family_count
		FROM rts
		LEFT JOIN residents res
			ON res.rt_number = rts.number
		   AND res.rw_number = rts.rw_number
	`

	var args []interface{}
	if rwNumber != "" {
		query += " WHERE rts.rw_number = ?"
		args = append(args, rwNumber)
	}

	query += " GROUP BY rts.id ORDER BY rts.rw_number, rts.number"

	err := r.db.Raw(query, args...).Scan(&summaries).Error
	if err != nil {
		return nil, err
	}

	return summaries, nil
}

// ListRWs retrieves RW rows with RT and resident counts
func (r *territoryRepository) ListRWs() ([]*RWSummary, error) {
	var summaries []*RWSummary

	query := `
		SELECT rws.*,
			   COUNT(DISTINCT rts.id) AS rt_count,
			   COUNT(DISTINCT res.id) AS resident_count
		FROM rws
		LEFT JOIN rts
			ON rts.rw_number = rws.number
		LEFT JOIN residents res
			ON res.rw_number = rws.number
		GROUP BY rws.id
		ORDER BY rws.number
	`

	err := r.db.Raw(query).Scan(&summaries).Error
	if err != nil {
		return nil, err
	}

	return summaries, nil
}

// UpdateRT saves RT changes
func (r *territoryRepository) UpdateRT(rt *models.RT) error {
	return r.db.Save(rt).Error
}

// UpdateRW saves RW changes
func (r *territoryRepository) UpdateRW(rw *models.RW) error {
	return r.db.Save(rw).Error
}

// CountResidentsInRT counts residents attached to the RT's territorial pair
func (r *territoryRepository) CountResidentsInRT(rtNumber, rwNumber string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Resident{}).
		Where("rt_number = ? AND rw_number = ?", rtNumber, rwNumber).
		Count(&count).Error
	return count, err
}

// CountResidentsInRW counts residents attached to the RW
func (r *territoryRepository) CountResidentsInRW(rwNumber string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Resident{}).
		Where("rw_number = ?", rwNumber).
		Count(&count).Error
	return count, err
}
