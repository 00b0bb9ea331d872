package usecase

import (
	"convenio-backend/internal/domain/entity"
	"convenio-backend/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ConversionSettler consumes SubscriptionActivated events inside the
// caller's transaction. On a member's first activation it records the
// conversion referral event and accrues the affiliate's commission.
//
// Every step is idempotent: the conversion row is unique per user and
// the commission unique per (affiliate, source user), so replays and
// concurrent activations collapse onto the first success.
type ConversionSettler struct {
	log            *logrus.Logger
	affiliateRepo  repository.AffiliateRepository
	referralRepo   repository.ReferralRepository
	commissionRepo repository.CommissionRepository
}

func NewConversionSettler(
	log *logrus.Logger,
	affiliateRepo repository.AffiliateRepository,
	referralRepo repository.ReferralRepository,
	commissionRepo repository.CommissionRepository,
) *ConversionSettler {
	return &ConversionSettler{
		log:            log,
		affiliateRepo:  affiliateRepo,
		referralRepo:   referralRepo,
		commissionRepo: commissionRepo,
	}
}

// Settle runs inside tx; any failure aborts the caller's whole unit, so
// a commission never accrues without its activation committing.
func (s *ConversionSettler) Settle(tx *gorm.DB, event entity.SubscriptionActivated) error {
	if !event.FirstActivation {
		return nil
	}

	referred, err := s.referralRepo.FindReferredUser(tx, event.UserID)
	if err != nil {
		return err
	}
	if referred == nil {
		// Not an attributed signup; nothing to settle.
		return nil
	}

	hasConversion, err := s.referralRepo.HasConversionForUser(tx, event.UserID)
	if err != nil {
		return err
	}
	if !hasConversion {
		userID := event.UserID
		conversion := &entity.ReferralEvent{
			AffiliateID:  referred.AffiliateID,
			VisitorID:    event.UserID.String(),
			Stage:        entity.ReferralStageConversion,
			LinkedUserID: &userID,
		}
		if err := s.referralRepo.CreateEvent(tx, conversion); err != nil {
			// Concurrent settle already inserted the conversion row.
			if !isDuplicateKeyError(err, "referral_events") {
				return err
			}
		}
	}

	affiliate, err := s.affiliateRepo.FindByUserID(tx, referred.AffiliateID)
	if err != nil {
		return err
	}
	if affiliate == nil {
		s.log.Warnf("Attribution points to missing affiliate %s, skipping accrual", referred.AffiliateID)
		return nil
	}

	existing, err := s.commissionRepo.FindByAffiliateAndSource(tx, referred.AffiliateID, event.UserID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	// Amount snapshots the affiliate's current default; later changes to
	// commission_amount never touch accrued rows.
	commission := &entity.Commission{
		AffiliateID:  referred.AffiliateID,
		SourceUserID: event.UserID,
		Amount:       affiliate.CommissionAmount,
		Status:       entity.CommissionStatusPending,
	}
	if err := s.commissionRepo.Create(tx, commission); err != nil {
		if isDuplicateKeyError(err, "commissions") {
			return nil
		}
		return err
	}

	s.log.Infof("Commission accrued: affiliate=%s, source=%s, amount=%s",
		referred.AffiliateID, event.UserID, affiliate.CommissionAmount)
	return nil
}
