package http

import (
	"net/http"

	"convenio-backend/internal/delivery/http/handler"
	"convenio-backend/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router                  *mux.Router
	authHandler             *handler.AuthHandler
	memberHandler           *handler.MemberHandler
	subscriptionHandler     *handler.SubscriptionHandler
	couponHandler           *handler.CouponHandler
	affiliateHandler        *handler.AffiliateHandler
	commissionHandler       *handler.CommissionHandler
	professionalHandler     *handler.ProfessionalHandler
	serviceHandler          *handler.ServiceHandler
	locationHandler         *handler.LocationHandler
	consultationHandler     *handler.ConsultationHandler
	schedulingAccessHandler *handler.SchedulingAccessHandler
	auditLogHandler         *handler.AuditLogHandler
	authMiddleware          *middleware.AuthMiddleware
	corsMiddleware          *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	memberHandler *handler.MemberHandler,
	subscriptionHandler *handler.SubscriptionHandler,
	couponHandler *handler.CouponHandler,
	affiliateHandler *handler.AffiliateHandler,
	commissionHandler *handler.CommissionHandler,
	professionalHandler *handler.ProfessionalHandler,
	serviceHandler *handler.ServiceHandler,
	locationHandler *handler.LocationHandler,
	consultationHandler *handler.ConsultationHandler,
	schedulingAccessHandler *handler.SchedulingAccessHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:                  mux.NewRouter(),
		authHandler:             authHandler,
		memberHandler:           memberHandler,
		subscriptionHandler:     subscriptionHandler,
		couponHandler:           couponHandler,
		affiliateHandler:        affiliateHandler,
		commissionHandler:       commissionHandler,
		professionalHandler:     professionalHandler,
		serviceHandler:          serviceHandler,
		locationHandler:         locationHandler,
		consultationHandler:     consultationHandler,
		schedulingAccessHandler: schedulingAccessHandler,
		auditLogHandler:         auditLogHandler,
		authMiddleware:          authMiddleware,
		corsMiddleware:          corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.RegisterMember).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Referral click tracking (public)
	api.HandleFunc("/referrals/click", r.affiliateHandler.RecordClick).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Member self-service (member reads own profile and dependents;
	// handlers enforce the owner-or-admin check)
	members := api.PathPrefix("/members").Subrouter()
	members.Use(r.authMiddleware.Authenticate)
	members.HandleFunc("/{id}", r.memberHandler.Get).Methods(http.MethodGet)
	members.HandleFunc("/{id}/dependents", r.memberHandler.AddDependent).Methods(http.MethodPost)
	members.HandleFunc("/{id}/dependents", r.memberHandler.ListDependents).Methods(http.MethodGet)
	members.HandleFunc("/{id}/dependents/{dependentId}", r.memberHandler.UpdateDependent).Methods(http.MethodPut)
	members.HandleFunc("/{memberId}/subscription", r.subscriptionHandler.Get).Methods(http.MethodGet)

	// Payment confirmation (payment gateway callback, system role)
	system := api.PathPrefix("/subscriptions").Subrouter()
	system.Use(r.authMiddleware.Authenticate)
	system.Use(middleware.RequireSystem)
	system.HandleFunc("/payment-confirmed", r.subscriptionHandler.PaymentConfirmed).Methods(http.MethodPost)

	// Coupon resolution for checkout (any authenticated user)
	coupons := api.PathPrefix("/coupons").Subrouter()
	coupons.Use(r.authMiddleware.Authenticate)
	coupons.HandleFunc("/resolve", r.couponHandler.Resolve).Methods(http.MethodPost)

	// Affiliate self-view
	affiliate := api.PathPrefix("/affiliate").Subrouter()
	affiliate.Use(r.authMiddleware.Authenticate)
	affiliate.Use(middleware.RequireAffiliate)
	affiliate.HandleFunc("/dashboard", r.affiliateHandler.Dashboard).Methods(http.MethodGet)

	// Affiliate commissions (owner or admin, checked in the handler)
	affiliates := api.PathPrefix("/affiliates").Subrouter()
	affiliates.Use(r.authMiddleware.Authenticate)
	affiliates.HandleFunc("/{id}/commissions", r.affiliateHandler.ListCommissions).Methods(http.MethodGet)

	// Professional routes (professional or admin)
	professional := api.PathPrefix("/professional").Subrouter()
	professional.Use(r.authMiddleware.Authenticate)
	professional.Use(middleware.RequireAdminOrProfessional)
	professional.HandleFunc("/consultations", r.consultationHandler.Create).Methods(http.MethodPost)
	professional.HandleFunc("/consultations", r.consultationHandler.List).Methods(http.MethodGet)
	professional.HandleFunc("/consultations/{id}", r.consultationHandler.Get).Methods(http.MethodGet)
	professional.HandleFunc("/consultations/{id}", r.consultationHandler.Update).Methods(http.MethodPut)
	professional.HandleFunc("/consultations/{id}", r.consultationHandler.Delete).Methods(http.MethodDelete)
	professional.HandleFunc("/locations", r.locationHandler.CreateLocation).Methods(http.MethodPost)
	professional.HandleFunc("/locations", r.locationHandler.ListLocations).Methods(http.MethodGet)
	professional.HandleFunc("/locations/{id}", r.locationHandler.UpdateLocation).Methods(http.MethodPut)
	professional.HandleFunc("/locations/{id}", r.locationHandler.DeleteLocation).Methods(http.MethodDelete)
	professional.HandleFunc("/private-patients", r.locationHandler.CreatePrivatePatient).Methods(http.MethodPost)
	professional.HandleFunc("/private-patients", r.locationHandler.ListPrivatePatients).Methods(http.MethodGet)
	professional.HandleFunc("/private-patients/{id}", r.locationHandler.DeletePrivatePatient).Methods(http.MethodDelete)
	professional.HandleFunc("/scheduling-access/{id}", r.schedulingAccessHandler.Query).Methods(http.MethodGet)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	// Member management (admin)
	admin.HandleFunc("/members", r.memberHandler.GetAll).Methods(http.MethodGet)
	admin.HandleFunc("/subscriptions/activate", r.subscriptionHandler.Activate).Methods(http.MethodPost)

	// Coupon management (admin)
	admin.HandleFunc("/coupons", r.couponHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/coupons", r.couponHandler.GetAll).Methods(http.MethodGet)
	admin.HandleFunc("/coupons/{id}", r.couponHandler.Get).Methods(http.MethodGet)
	admin.HandleFunc("/coupons/{id}", r.couponHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/coupons/{id}/toggle", r.couponHandler.Toggle).Methods(http.MethodPost)
	admin.HandleFunc("/coupons/{id}", r.couponHandler.Delete).Methods(http.MethodDelete)

	// Affiliate management (admin)
	admin.HandleFunc("/affiliates", r.affiliateHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/affiliates", r.affiliateHandler.GetAll).Methods(http.MethodGet)
	admin.HandleFunc("/affiliates/{id}", r.affiliateHandler.Get).Methods(http.MethodGet)
	admin.HandleFunc("/affiliates/{id}", r.affiliateHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/affiliates/{id}/commissions/{cid}/pay", r.affiliateHandler.PayCommission).Methods(http.MethodPut)
	admin.HandleFunc("/affiliates/{id}/commissions/summary", r.commissionHandler.Summary).Methods(http.MethodGet)

	// Commission ledger (admin)
	admin.HandleFunc("/commissions", r.commissionHandler.ListByPeriod).Methods(http.MethodGet)
	admin.HandleFunc("/commissions/{id}", r.commissionHandler.Get).Methods(http.MethodGet)

	// Professional management (admin)
	admin.HandleFunc("/professionals", r.professionalHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/professionals", r.professionalHandler.GetAll).Methods(http.MethodGet)
	admin.HandleFunc("/professionals/{id}", r.professionalHandler.Get).Methods(http.MethodGet)
	admin.HandleFunc("/professionals/{id}", r.professionalHandler.Update).Methods(http.MethodPut)

	// Service catalog (admin)
	admin.HandleFunc("/services", r.serviceHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/services", r.serviceHandler.GetAll).Methods(http.MethodGet)
	admin.HandleFunc("/services/{id}", r.serviceHandler.Get).Methods(http.MethodGet)
	admin.HandleFunc("/services/{id}", r.serviceHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/services/{id}", r.serviceHandler.Delete).Methods(http.MethodDelete)

	// Scheduling access (admin)
	admin.HandleFunc("/scheduling-access/grant", r.schedulingAccessHandler.Grant).Methods(http.MethodPost)
	admin.HandleFunc("/scheduling-access/extend", r.schedulingAccessHandler.Extend).Methods(http.MethodPost)
	admin.HandleFunc("/scheduling-access/revoke", r.schedulingAccessHandler.Revoke).Methods(http.MethodPost)
	admin.HandleFunc("/scheduling-access/{id}", r.schedulingAccessHandler.Query).Methods(http.MethodGet)

	// Reports (admin)
	admin.HandleFunc("/reports/revenue", r.consultationHandler.RevenueReport).Methods(http.MethodGet)

	// Audit trail (admin)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAll).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.Get).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
