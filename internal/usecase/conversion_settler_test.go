package usecase

import (
	"testing"
	"time"

	"convenio-backend/internal/domain/entity"
	"convenio-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// --- Mock repositories ---

type mockAffiliateRepo struct {
	affiliates map[uuid.UUID]*entity.AffiliateProfile
}

func (m *mockAffiliateRepo) Create(db *gorm.DB, affiliate *entity.AffiliateProfile) error {
	m.affiliates[affiliate.UserID] = affiliate
	return nil
}

func (m *mockAffiliateRepo) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.AffiliateProfile, error) {
	return m.affiliates[userID], nil
}

func (m *mockAffiliateRepo) FindByReferralCode(db *gorm.DB, code string) (*entity.AffiliateProfile, error) {
	for _, a := range m.affiliates {
		if a.ReferralCode == code {
			return a, nil
		}
	}
	return nil, nil
}

func (m *mockAffiliateRepo) FindAll(db *gorm.DB) ([]entity.AffiliateProfile, error) {
	return nil, nil
}

func (m *mockAffiliateRepo) Update(db *gorm.DB, affiliate *entity.AffiliateProfile) error {
	m.affiliates[affiliate.UserID] = affiliate
	return nil
}

type mockReferralRepo struct {
	events   []entity.ReferralEvent
	referred map[uuid.UUID]*entity.ReferredUser
}

func (m *mockReferralRepo) CreateEvent(db *gorm.DB, event *entity.ReferralEvent) error {
	m.events = append(m.events, *event)
	return nil
}

func (m *mockReferralRepo) FindFirstClickByVisitor(db *gorm.DB, visitorID string) (*entity.ReferralEvent, error) {
	for i := range m.events {
		if m.events[i].VisitorID == visitorID && m.events[i].Stage == entity.ReferralStageClick {
			return &m.events[i], nil
		}
	}
	return nil, nil
}

func (m *mockReferralRepo) HasRegistrationForVisitor(db *gorm.DB, visitorID string) (bool, error) {
	for i := range m.events {
		if m.events[i].VisitorID == visitorID && m.events[i].Stage == entity.ReferralStageRegistration {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockReferralRepo) HasConversionForUser(db *gorm.DB, userID uuid.UUID) (bool, error) {
	for i := range m.events {
		if m.events[i].Stage == entity.ReferralStageConversion &&
			m.events[i].LinkedUserID != nil && *m.events[i].LinkedUserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockReferralRepo) CountByAffiliateAndStage(db *gorm.DB, affiliateID uuid.UUID, stage entity.ReferralStage, start, end time.Time) (int64, error) {
	var count int64
	for i := range m.events {
		if m.events[i].AffiliateID == affiliateID && m.events[i].Stage == stage {
			count++
		}
	}
	return count, nil
}

func (m *mockReferralRepo) CreateReferredUser(db *gorm.DB, referred *entity.ReferredUser) error {
	m.referred[referred.UserID] = referred
	return nil
}

func (m *mockReferralRepo) FindReferredUser(db *gorm.DB, userID uuid.UUID) (*entity.ReferredUser, error) {
	return m.referred[userID], nil
}

func (m *mockReferralRepo) ListReferredUsers(db *gorm.DB, affiliateID uuid.UUID) ([]entity.ReferredUser, error) {
	return nil, nil
}

type mockCommissionRepo struct {
	commissions []entity.Commission
}

func (m *mockCommissionRepo) Create(db *gorm.DB, commission *entity.Commission) error {
	commission.ID = uuid.New()
	m.commissions = append(m.commissions, *commission)
	return nil
}

func (m *mockCommissionRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Commission, error) {
	for i := range m.commissions {
		if m.commissions[i].ID == id {
			return &m.commissions[i], nil
		}
	}
	return nil, nil
}

func (m *mockCommissionRepo) FindByAffiliateAndSource(db *gorm.DB, affiliateID, sourceUserID uuid.UUID) (*entity.Commission, error) {
	for i := range m.commissions {
		if m.commissions[i].AffiliateID == affiliateID && m.commissions[i].SourceUserID == sourceUserID {
			return &m.commissions[i], nil
		}
	}
	return nil, nil
}

func (m *mockCommissionRepo) FindByAffiliate(db *gorm.DB, affiliateID uuid.UUID, status *entity.CommissionStatus) ([]entity.Commission, error) {
	return nil, nil
}

func (m *mockCommissionRepo) FindByPeriod(db *gorm.DB, start, end time.Time, status *entity.CommissionStatus) ([]entity.Commission, error) {
	return nil, nil
}

func (m *mockCommissionRepo) Update(db *gorm.DB, commission *entity.Commission) error {
	return nil
}

func (m *mockCommissionRepo) MarkPaid(db *gorm.DB, id uuid.UUID, paidBy uuid.UUID, paidMethod string, receiptReference *string, paidAt time.Time) (int64, error) {
	for i := range m.commissions {
		if m.commissions[i].ID == id && m.commissions[i].Status == entity.CommissionStatusPending {
			m.commissions[i].Status = entity.CommissionStatusPaid
			return 1, nil
		}
	}
	return 0, nil
}

func (m *mockCommissionRepo) SummarizeByAffiliate(db *gorm.DB, affiliateID uuid.UUID) (*repository.CommissionSummary, error) {
	return &repository.CommissionSummary{}, nil
}

// --- Tests ---

func newSettlerFixture() (*ConversionSettler, *mockAffiliateRepo, *mockReferralRepo, *mockCommissionRepo) {
	affiliateRepo := &mockAffiliateRepo{affiliates: map[uuid.UUID]*entity.AffiliateProfile{}}
	referralRepo := &mockReferralRepo{referred: map[uuid.UUID]*entity.ReferredUser{}}
	commissionRepo := &mockCommissionRepo{}
	settler := NewConversionSettler(logrus.New(), affiliateRepo, referralRepo, commissionRepo)
	return settler, affiliateRepo, referralRepo, commissionRepo
}

func TestSettleFirstActivationAccruesCommission(t *testing.T) {
	settler, affiliateRepo, referralRepo, commissionRepo := newSettlerFixture()

	affiliateID := uuid.New()
	userID := uuid.New()
	affiliateRepo.affiliates[affiliateID] = &entity.AffiliateProfile{
		UserID:           affiliateID,
		ReferralCode:     "PARCEIRO1",
		Status:           entity.AffiliateStatusActive,
		CommissionAmount: decimal.RequireFromString("75.50"),
	}
	referralRepo.referred[userID] = &entity.ReferredUser{UserID: userID, AffiliateID: affiliateID}

	event := entity.SubscriptionActivated{UserID: userID, FirstActivation: true}
	err := settler.Settle(nil, event)
	assert.NoError(t, err)

	// Conversion event recorded.
	hasConversion, _ := referralRepo.HasConversionForUser(nil, userID)
	assert.True(t, hasConversion)

	// Commission accrued with the affiliate's snapshot amount.
	assert.Len(t, commissionRepo.commissions, 1)
	commission := commissionRepo.commissions[0]
	assert.Equal(t, affiliateID, commission.AffiliateID)
	assert.Equal(t, userID, commission.SourceUserID)
	assert.Equal(t, entity.CommissionStatusPending, commission.Status)
	assert.True(t, decimal.RequireFromString("75.50").Equal(commission.Amount))
}

func TestSettleIsIdempotent(t *testing.T) {
	settler, affiliateRepo, referralRepo, commissionRepo := newSettlerFixture()

	affiliateID := uuid.New()
	userID := uuid.New()
	affiliateRepo.affiliates[affiliateID] = &entity.AffiliateProfile{
		UserID:           affiliateID,
		Status:           entity.AffiliateStatusActive,
		CommissionAmount: decimal.NewFromInt(50),
	}
	referralRepo.referred[userID] = &entity.ReferredUser{UserID: userID, AffiliateID: affiliateID}

	event := entity.SubscriptionActivated{UserID: userID, FirstActivation: true}
	assert.NoError(t, settler.Settle(nil, event))
	assert.NoError(t, settler.Settle(nil, event))

	assert.Len(t, commissionRepo.commissions, 1, "replayed settle must not accrue twice")

	var conversions int
	for _, e := range referralRepo.events {
		if e.Stage == entity.ReferralStageConversion {
			conversions++
		}
	}
	assert.Equal(t, 1, conversions, "replayed settle must not duplicate the conversion event")
}

func TestSettleSkipsRenewals(t *testing.T) {
	settler, affiliateRepo, referralRepo, commissionRepo := newSettlerFixture()

	affiliateID := uuid.New()
	userID := uuid.New()
	affiliateRepo.affiliates[affiliateID] = &entity.AffiliateProfile{
		UserID:           affiliateID,
		CommissionAmount: decimal.NewFromInt(50),
	}
	referralRepo.referred[userID] = &entity.ReferredUser{UserID: userID, AffiliateID: affiliateID}

	event := entity.SubscriptionActivated{UserID: userID, FirstActivation: false}
	assert.NoError(t, settler.Settle(nil, event))

	assert.Empty(t, commissionRepo.commissions)
	assert.Empty(t, referralRepo.events)
}

func TestSettleSkipsUnattributedUsers(t *testing.T) {
	settler, _, referralRepo, commissionRepo := newSettlerFixture()

	event := entity.SubscriptionActivated{UserID: uuid.New(), FirstActivation: true}
	assert.NoError(t, settler.Settle(nil, event))

	assert.Empty(t, commissionRepo.commissions)
	assert.Empty(t, referralRepo.events)
}

func TestSettleAmountSnapshotSurvivesRateChange(t *testing.T) {
	settler, affiliateRepo, referralRepo, commissionRepo := newSettlerFixture()

	affiliateID := uuid.New()
	userID := uuid.New()
	affiliate := &entity.AffiliateProfile{
		UserID:           affiliateID,
		CommissionAmount: decimal.NewFromInt(40),
	}
	affiliateRepo.affiliates[affiliateID] = affiliate
	referralRepo.referred[userID] = &entity.ReferredUser{UserID: userID, AffiliateID: affiliateID}

	event := entity.SubscriptionActivated{UserID: userID, FirstActivation: true}
	assert.NoError(t, settler.Settle(nil, event))

	// Raising the default later never touches accrued rows.
	affiliate.CommissionAmount = decimal.NewFromInt(90)
	assert.True(t, decimal.NewFromInt(40).Equal(commissionRepo.commissions[0].Amount))
}
