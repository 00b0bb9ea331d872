package usecase

import (
	"testing"

	"convenio-backend/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func newPromotionFixture() (*affiliateUsecase, *mockReferralRepo) {
	referralRepo := &mockReferralRepo{referred: map[uuid.UUID]*entity.ReferredUser{}}
	u := &affiliateUsecase{
		log:          logrus.New(),
		referralRepo: referralRepo,
	}
	return u, referralRepo
}

func recordClick(repo *mockReferralRepo, affiliateID uuid.UUID, visitorID string) {
	repo.events = append(repo.events, entity.ReferralEvent{
		AffiliateID: affiliateID,
		VisitorID:   visitorID,
		Stage:       entity.ReferralStageClick,
	})
}

func TestPromoteToRegistrationAttributesToEarliestClick(t *testing.T) {
	u, referralRepo := newPromotionFixture()

	firstAffiliate := uuid.New()
	secondAffiliate := uuid.New()
	userID := uuid.New()
	recordClick(referralRepo, firstAffiliate, "visitor-1")
	recordClick(referralRepo, secondAffiliate, "visitor-1")

	err := u.PromoteToRegistration(nil, "visitor-1", userID)
	assert.NoError(t, err)

	referred := referralRepo.referred[userID]
	assert.NotNil(t, referred)
	assert.Equal(t, firstAffiliate, referred.AffiliateID)

	var registrations []entity.ReferralEvent
	for _, event := range referralRepo.events {
		if event.Stage == entity.ReferralStageRegistration {
			registrations = append(registrations, event)
		}
	}
	assert.Len(t, registrations, 1)
	assert.Equal(t, firstAffiliate, registrations[0].AffiliateID)
	assert.NotNil(t, registrations[0].LinkedUserID)
	assert.Equal(t, userID, *registrations[0].LinkedUserID)
}

func TestPromoteToRegistrationWithoutVisitorIsNoop(t *testing.T) {
	u, referralRepo := newPromotionFixture()

	err := u.PromoteToRegistration(nil, "", uuid.New())
	assert.NoError(t, err)
	assert.Empty(t, referralRepo.events)
	assert.Empty(t, referralRepo.referred)
}

func TestPromoteToRegistrationWithoutClickIsNoop(t *testing.T) {
	u, referralRepo := newPromotionFixture()

	err := u.PromoteToRegistration(nil, "visitor-unknown", uuid.New())
	assert.NoError(t, err)
	assert.Empty(t, referralRepo.events)
	assert.Empty(t, referralRepo.referred)
}

func TestPromoteToRegistrationIsWriteOnce(t *testing.T) {
	u, referralRepo := newPromotionFixture()

	originalAffiliate := uuid.New()
	laterAffiliate := uuid.New()
	userID := uuid.New()
	recordClick(referralRepo, laterAffiliate, "visitor-2")
	referralRepo.referred[userID] = &entity.ReferredUser{
		UserID:      userID,
		AffiliateID: originalAffiliate,
	}

	err := u.PromoteToRegistration(nil, "visitor-2", userID)
	assert.NoError(t, err)

	// Attribution set earlier never changes.
	assert.Equal(t, originalAffiliate, referralRepo.referred[userID].AffiliateID)
}

func TestPromoteToRegistrationReplayRecordsSingleRegistration(t *testing.T) {
	u, referralRepo := newPromotionFixture()

	affiliateID := uuid.New()
	userID := uuid.New()
	recordClick(referralRepo, affiliateID, "visitor-3")

	assert.NoError(t, u.PromoteToRegistration(nil, "visitor-3", userID))
	assert.NoError(t, u.PromoteToRegistration(nil, "visitor-3", userID))

	var registrations int
	for _, event := range referralRepo.events {
		if event.Stage == entity.ReferralStageRegistration {
			registrations++
		}
	}
	assert.Equal(t, 1, registrations)
	assert.Len(t, referralRepo.referred, 1)
}
