package converter

import (
	"convenio-backend/internal/delivery/dto"
	"convenio-backend/internal/domain/entity"
)

func CouponToResponse(coupon *entity.Coupon) *dto.CouponResponse {
	if coupon == nil {
		return nil
	}

	return &dto.CouponResponse{
		ID:            coupon.ID,
		Code:          coupon.Code,
		Target:        coupon.Target,
		FinalPrice:    coupon.FinalPrice,
		DiscountValue: coupon.DiscountValue,
		ValidFrom:     coupon.ValidFrom,
		ValidUntil:    coupon.ValidUntil,
		Description:   coupon.Description,
		Enabled:       coupon.Enabled,
		CreatedAt:     coupon.CreatedAt,
		UpdatedAt:     coupon.UpdatedAt,
	}
}

func CouponsToResponses(coupons []entity.Coupon) []dto.CouponResponse {
	responses := make([]dto.CouponResponse, len(coupons))
	for i := range coupons {
		responses[i] = *CouponToResponse(&coupons[i])
	}
	return responses
}
