package services

import (
	"galhub/config"
	"galhub/internal/database"
)

type Service struct {
	Transaction *TransactionService
	Token       *TokenService
	Captcha     *CaptchaService
	Scheduler   *SchedulerService
}

func New(db database.DB, config config.Config) (Service, error) {
	return Service{
		Transaction: NewTransactionService(db),
		Token:       NewTokenService(config),
		Captcha:     NewCaptchaService(db, config),
		Scheduler:   NewSchedulerService(),
	}, nil
}
