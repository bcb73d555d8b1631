package app

import (
	"gorm.io/gorm"

	"github.com/simucrowd/simucrowd-backend/internal/platform/logger"
	"github.com/simucrowd/simucrowd-backend/internal/repos"
)

type Repos struct {
	User    repos.UserRepo
	Cohort  repos.CohortRepo
	Brief   repos.BriefRepo
	Session repos.SessionRepo
	Payment repos.PaymentRepo
	Article repos.ArticleRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:    repos.NewUserRepo(db, log),
		Cohort:  repos.NewCohortRepo(db, log),
		Brief:   repos.NewBriefRepo(db, log),
		Session: repos.NewSessionRepo(db, log),
		Payment: repos.NewPaymentRepo(db, log),
		Article: repos.NewArticleRepo(db, log),
	}
}
