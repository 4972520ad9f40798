package handlers

import (
	"prodx/internal/config"
	"prodx/internal/domain"
	applog "prodx/internal/log"
	"prodx/internal/mailer"
	"prodx/internal/repos"
	"prodx/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	Auth             *services.AuthService
	AuthHandler      *AuthHandler
	AdminHandler     *AdminHandler
	AnalyticsHandler *AnalyticsHandler
	CompanyHandler   *CompanyHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, mail mailer.Sender) *Deps {
	prodRepo := repos.NewProductRepo(db)
	noteRepo := repos.NewNotificationRepo(db)
	compRepo := repos.NewCompanyRepo(db)

	authSvc := &services.AuthService{Admins: repos.NewAdminRepo(db)}
	queueSvc := services.NewQueueService(prodRepo)
	reviewSvc := services.NewReviewService(db, prodRepo, noteRepo, mail)
	reportSvc := services.NewReportService(prodRepo, rejectedBucket(cfg.RejectedBucket))
	companySvc := services.NewCompanyService(compRepo)

	return &Deps{
		Auth:             authSvc,
		AuthHandler:      &AuthHandler{Auth: authSvc},
		AdminHandler:     &AdminHandler{Queue: queueSvc, Review: reviewSvc, Reports: reportSvc, Companies: companySvc},
		AnalyticsHandler: &AnalyticsHandler{Reports: reportSvc},
		CompanyHandler:   &CompanyHandler{Companies: companySvc},
	}
}

// rejectedBucket applies STATS_REJECTED_BUCKET; unknown values keep the default.
func rejectedBucket(setting string) domain.BucketMap {
	buckets := domain.DefaultBucketMap()
	if b, ok := domain.ParseBucket(setting); ok {
		buckets.Rejected = b
	} else if setting != "" {
		applog.Warn(nil, "config.rejected_bucket.unknown", nil, map[string]any{
			"value":    setting,
			"fallback": string(buckets.Rejected),
		})
	}
	return buckets
}
