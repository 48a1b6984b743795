package service

import (
	"smart-rw-svc/internal/models"
	"smart-rw-svc/internal/repository"
	"smart-rw-svc/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.NewLogger("error", "text")
}

// fakeResidentRepo is an in-memory ResidentRepository
type fakeResidentRepo struct {
	residents map[uint]*models.Resident
	families  map[uint]*models.Family
	updated   []*models.Resident
}

func newFakeResidentRepo(residents ...*models.Resident) *fakeResidentRepo {
	repo := &fakeResidentRepo{
		residents: make(map[uint]*models.Resident),
		families:  make(map[uint]*models.Family),
	}
	for _, r := range residents {
		repo.residents[r.ID] = r
	}
	return repo
}

func (f *fakeResidentRepo) Create(resident *models.Resident) error {
	f.residents[resident.ID] = resident
	return nil
}

func (f *fakeResidentRepo) GetByID(id uint) (*models.Resident, error) {
	return f.residents[id], nil
}

func (f *fakeResidentRepo) GetByUserID(userID uint) (*models.Resident, error) {
	for _, r := range f.residents {
		if r.UserID == userID {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeResidentRepo) Update(resident *models.Resident) error {
	f.residents[resident.ID] = resident
	f.updated = append(f.updated, resident)
	return nil
}

func (f *fakeResidentRepo) List(filter repository.ResidentFilter) ([]*models.Resident, int64, error) {
	var out []*models.Resident
	for _, r := range f.residents {
		if filter.RTNumber != "" && r.RTNumber != filter.RTNumber {
			continue
		}
		if filter.RWNumber != "" && r.RWNumber != filter.RWNumber {
			continue
		}
		if filter.FamilyID != nil && (r.FamilyID == nil || *r.FamilyID != *filter.FamilyID) {
			continue
		}
		out = append(out, r)
	}
	return out, int64(len(out)), nil
}

func (f *fakeResidentRepo) ListUserIDsByTerritory(rtNumber, rwNumber string) ([]uint, error) {
	var ids []uint
	for _, r := range f.residents {
		if rtNumber != "" && r.RTNumber != rtNumber {
			continue
		}
		if rwNumber != "" && r.RWNumber != rwNumber {
			continue
		}
		ids = append(ids, r.UserID)
	}
	return ids, nil
}

func (f *fakeResidentRepo) GetFamilyByID(id uint) (*models.Family, error) {
	return f.families[id], nil
}

// fakeDocumentRepo is an in-memory DocumentRepository
type fakeDocumentRepo struct {
	documents map[uint]*models.Document
	nextID    uint
}

func newFakeDocumentRepo(documents ...*models.Document) *fakeDocumentRepo {
	repo := &fakeDocumentRepo{documents: make(map[uint]*models.Document), nextID: 1}
	for _, d := range documents {
		repo.documents[d.ID] = d
		if d.ID >= repo.nextID {
			repo.nextID = d.ID + 1
		}
	}
	return repo
}

func (f *fakeDocumentRepo) Create(document *models.Document) error {
	document.ID = f.nextID
	f.nextID++
	f.documents[document.ID] = document
	return nil
}

func (f *fakeDocumentRepo) GetByID(id uint) (*models.Document, error) {
	return f.documents[id], nil
}

func (f *fakeDocumentRepo) Update(document *models.Document) error {
	f.documents[document.ID] = document
	return nil
}

func (f *fakeDocumentRepo) List(filter repository.DocumentFilter) ([]*models.Document, int64, error) {
	var out []*models.Document
	for _, d := range f.documents {
		if filter.RTNumber != "" && d.RTNumber != filter.RTNumber {
			continue
		}
		if filter.RWNumber != "" && d.RWNumber != filter.RWNumber {
			continue
		}
		if filter.RequesterID != nil && d.RequesterID != *filter.RequesterID {
			continue
		}
		out = append(out, d)
	}
	return out, int64(len(out)), nil
}

// fakeNotificationRepo records created notifications
type fakeNotificationRepo struct {
	created []*models.Notification
}

func (f *fakeNotificationRepo) Create(notification *models.Notification) error {
	f.created = append(f.created, notification)
	return nil
}

func (f *fakeNotificationRepo) CreateBatch(notifications []*models.Notification) error {
	f.created = append(f.created, notifications...)
	return nil
}

func (f *fakeNotificationRepo) ListByUser(userID uint, unreadOnly bool, page, limit int) ([]*models.Notification, int64, error) {
	var out []*models.Notification
	for _, n := range f.created {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeNotificationRepo) MarkRead(id, userID uint) error { return nil }

func (f *fakeNotificationRepo) MarkAllRead(userID uint) error { return nil }

// fakeTerritoryRepo is an in-memory TerritoryRepository with injectable
// errors for the transactional creates
type fakeTerritoryRepo struct {
	rts           map[uint]*models.RT
	rws           map[uint]*models.RW
	accounts      []*models.User
	createRTErr   error
	createRWErr   error
	residentCount int64
	nextID        uint
	updatedRTs    int
	updatedRWs    int
}

func newFakeTerritoryRepo() *fakeTerritoryRepo {
	return &fakeTerritoryRepo{
		rts:    make(map[uint]*models.RT),
		rws:    make(map[uint]*models.RW),
		nextID: 1,
	}
}

func (f *fakeTerritoryRepo) CreateRTWithAccount(rt *models.RT, account *models.User) error {
	if f.createRTErr != nil {
		return f.createRTErr
	}
	rt.ID = f.nextID
	account.ID = f.nextID + 1000
	f.nextID++
	f.rts[rt.ID] = rt
	f.accounts = append(f.accounts, account)
	return nil
}

func (f *fakeTerritoryRepo) CreateRWWithAccount(rw *models.RW, account *models.User) error {
	if f.createRWErr != nil {
		return f.createRWErr
	}
	rw.ID = f.nextID
	account.ID = f.nextID + 1000
	f.nextID++
	f.rws[rw.ID] = rw
	f.accounts = append(f.accounts, account)
	return nil
}

func (f *fakeTerritoryRepo) GetRTByID(id uint) (*models.RT, error) {
	return f.rts[id], nil
}

func (f *fakeTerritoryRepo) GetRWByID(id uint) (*models.RW, error) {
	return f.rws[id], nil
}

func (f *fakeTerritoryRepo) GetRTByNumber(number, rwNumber string) (*models.RT, error) {
	for _, rt := range f.rts {
		if rt.Number == number && rt.RWNumber == rwNumber {
			return rt, nil
		}
	}
	return nil, nil
}

func (f *fakeTerritoryRepo) ListRTs(rwNumber string) ([]*repository.RTSummary, error) {
	var out []*repository.RTSummary
	for _, rt := range f.rts {
		if rwNumber != "" && rt.RWNumber != rwNumber {
			continue
		}
		out = append(out, &repository.RTSummary{RT: *rt})
	}
	return out, nil
}

func (f *fakeTerritoryRepo) ListRWs() ([]*repository.RWSummary, error) {
	var out []*repository.RWSummary
	for _, rw := range f.rws {
		out = append(out, &repository.RWSummary{RW: *rw})
	}
	return out, nil
}

func (f *fakeTerritoryRepo) UpdateRT(rt *models.RT) error {
	f.rts[rt.ID] = rt
	f.updatedRTs++
	return nil
}

func (f *fakeTerritoryRepo) UpdateRW(rw *models.RW) error {
	f.rws[rw.ID] = rw
	f.updatedRWs++
	return nil
}

func (f *fakeTerritoryRepo) CountResidentsInRT(rtNumber, rwNumber string) (int64, error) {
	return f.residentCount, nil
}

func (f *fakeTerritoryRepo) CountResidentsInRW(rwNumber string) (int64, error) {
	return f.residentCount, nil
}

// fakeUserRepo is an in-memory UserRepository
type fakeUserRepo struct {
	users  map[uint]*models.User
	emails map[string]bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:  make(map[uint]*models.User),
		emails: make(map[string]bool),
	}
}

func (f *fakeUserRepo) Create(user *models.User) error {
	f.users[user.ID] = user
	f.emails[user.Email] = true
	return nil
}

func (f *fakeUserRepo) CreateWithResident(user *models.User, resident *models.Resident) error {
	f.users[user.ID] = user
	f.emails[user.Email] = true
	return nil
}

func (f *fakeUserRepo) GetByID(id uint) (*models.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) EmailExists(email string) (bool, error) {
	return f.emails[email], nil
}

func (f *fakeUserRepo) Update(user *models.User) error {
	f.users[user.ID] = user
	return nil
}

// fakeComplaintRepo is an in-memory ComplaintRepository
type fakeComplaintRepo struct {
	complaints map[uint]*models.Complaint
	nextID     uint
}

func newFakeComplaintRepo(complaints ...*models.Complaint) *fakeComplaintRepo {
	repo := &fakeComplaintRepo{complaints: make(map[uint]*models.Complaint), nextID: 1}
	for _, c := range complaints {
		repo.complaints[c.ID] = c
		if c.ID >= repo.nextID {
			repo.nextID = c.ID + 1
		}
	}
	return repo
}

func (f *fakeComplaintRepo) Create(complaint *models.Complaint) error {
	complaint.ID = f.nextID
	f.nextID++
	f.complaints[complaint.ID] = complaint
	return nil
}

func (f *fakeComplaintRepo) GetByID(id uint) (*models.Complaint, error) {
	return f.complaints[id], nil
}

func (f *fakeComplaintRepo) Update(complaint *models.Complaint) error {
	f.complaints[complaint.ID] = complaint
	return nil
}

func (f *fakeComplaintRepo) List(filter repository.ComplaintFilter) ([]*models.Complaint, int64, error) {
	var out []*models.Complaint
	for _, c := range f.complaints {
		if filter.RTNumber != "" && c.RTNumber != filter.RTNumber {
			continue
		}
		if filter.RWNumber != "" && c.RWNumber != filter.RWNumber {
			continue
		}
		if filter.CreatedBy != nil && c.CreatedBy != *filter.CreatedBy {
			continue
		}
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}
