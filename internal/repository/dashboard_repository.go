package repository

import (
	"gorm.io/gorm"
)

// DashboardStatistics aggregates per-territory counts for the dashboard
type DashboardStatistics struct {
	TotalResidents      int64 `json:"total_residents"`
	VerifiedResidents   int64 `json:"verified_residents"`
	TotalFamilies       int64 `json:"total_families"`
	PendingDocuments    int64 `json:"pending_documents"`
	CompletedDocuments  int64 `json:"completed_documents"`
	OpenComplaints      int64 `json:"open_complaints"`
	ResolvedComplaints  int64 `json:"resolved_complaints"`
	UpcomingEvents      int64 `json:"upcoming_events"`
}

// DashboardRepository defines the interface for dashboard data operations
type DashboardRepository interface {
	GetStatistics(rtNumber, rwNumber string) (*DashboardStatistics, error)
}

// dashboardRepository implements DashboardRepository
type dashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository creates a new instance of DashboardRepository
func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{
		db: db,
	}
}

// GetStatistics retrieves aggregate counts, optionally scoped to a territory.
// Empty rtNumber widens the scope to the whole RW; both empty covers all.
func (r *dashboardRepository) GetStatistics(rtNumber, rwNumber string) (*DashboardStatistics, error) {
	var stats DashboardStatistics

	scope := ""
	var args []interface{}
	if rtNumber != "" && rwNumber != "" {
		scope = " WHERE rt_number = ? AND rw_number = ?"
		args = []interface{}{rtNumber, rwNumber}
	} else if rwNumber != "" {
		scope = " WHERE rw_number = ?"
		args = []interface{}{rwNumber}
	}

	residentQuery := `
		SELECT COUNT(*) AS total_residents,
			   COUNT(*) FILTER (WHERE is_verified) AS verified_residents,
			   COUNT(DISTINCT family_id) AS total_families
		FROM residents` + scope

	if err := r.db.Raw(residentQuery, args...).Scan(&stats).Error; err != nil {
		return nil, err
	}

	documentQuery := `
		SELECT COUNT(*) FILTER (WHERE status NOT IN ('SELESAI', 'DITOLAK')) AS pending_documents,
			   COUNT(*) FILTER (WHERE status = 'SELESAI') AS completed_documents
		FROM documents` + scope

	var docStats DashboardStatistics
	if err := r.db.Raw(documentQuery, args...).Scan(&docStats).Error; err != nil {
		return nil, err
	}
	stats.PendingDocuments = docStats.PendingDocuments
	stats.CompletedDocuments = docStats.CompletedDocuments

	complaintQuery := `
		SELECT COUNT(*) FILTER (WHERE status NOT IN ('SELESAI', 'DITOLAK')) AS open_complaints,
			   COUNT(*) FILTER (WHERE status = 'SELESAI') AS resolved_complaints
		FROM complaints` + scope

	var complaintStats DashboardStatistics
	if err := r.db.Raw(complaintQuery, args...).Scan(&complaintStats).Error; err != nil {
		return nil, err
	}
	stats.OpenComplaints = complaintStats.OpenComplaints
	stats.ResolvedComplaints = complaintStats.ResolvedComplaints

	eventQuery := `SELECT COUNT(*) AS upcoming_events FROM events`
	eventArgs := args
	if scope != "" {
		eventQuery += scope + " AND start_time >= NOW()"
	} else {
		eventQuery += " WHERE start_time >= NOW()"
	}

	var eventStats DashboardStatistics
	if err := r.db.Raw(eventQuery, eventArgs...).Scan(&eventStats).Error; err != nil {
		return nil, err
	}
	stats.UpcomingEvents = eventStats.UpcomingEvents

	return &stats, nil
}
