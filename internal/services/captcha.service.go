package services

import (
	"context"
	"strings"
	"time"

	"galhub/config"
	"galhub/internal/database"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"github.com/mojocn/base64Captcha"
)

const (
	CAPTCHA_CACHE_PREFIX = "captcha"

	// Confusable characters (0/o, 1/i/l) are excluded from challenges.
	captchaCharset = "23456789abcdefghjkmnpqrstuvwxyz"
	captchaLength  = 4
)

// CaptchaService generates image challenges and keeps their answers in the
// session cache with a TTL. Answers are single use: a successful verify
// consumes the entry, so a multi-instance deployment shares one store and
// nothing lives in process memory.
type CaptchaService struct {
	driver *base64Captcha.DriverString
	cache  database.CacheClient
	ttl    time.Duration
	log    logger.Logger
}

type CaptchaChallenge struct {
	CaptchaID string `json:"captchaId"`
	Image     string `json:"image"`
}

func NewCaptchaService(db database.DB, config config.Config) *CaptchaService {
	driver := &base64Captcha.DriverString{
		Height:          60,
		Width:           200,
		NoiseCount:      2,
		ShowLineOptions: base64Captcha.OptionShowHollowLine,
		Length:          captchaLength,
		Source:          captchaCharset,
		Fonts:           []string{"wqy-microhei.ttc"},
	}

	return &CaptchaService{
		driver: driver.ConvertFonts(),
		cache:  db.Cache.Session,
		ttl:    time.Duration(config.CaptchaTTLMinutes) * time.Minute,
		log:    logger.New("captchaService"),
	}
}

func (s *CaptchaService) Generate(ctx context.Context) (*CaptchaChallenge, error) {
	log := s.log.Function("Generate")

	_, content, answer := s.driver.GenerateIdQuestionAnswer()

	item, err := s.driver.DrawCaptcha(content)
	if err != nil {
		return nil, log.Err("failed to draw captcha", err)
	}

	captchaID := uuid.New().String()
	err = database.NewCacheBuilder(s.cache, captchaID).
		WithContext(ctx).
		WithHash(CAPTCHA_CACHE_PREFIX).
		WithValue(strings.ToLower(answer)).
		WithTTL(s.ttl).
		Set()
	if err != nil {
		return nil, log.Err("failed to store captcha answer", err, "captchaID", captchaID)
	}

	return &CaptchaChallenge{
		CaptchaID: captchaID,
		Image:     item.EncodeB64string(),
	}, nil
}

// Verify checks the answer and deletes the stored challenge regardless of the
// outcome, so an id cannot be replayed.
func (s *CaptchaService) Verify(ctx context.Context, captchaID, answer string) bool {
	log := s.log.Function("Verify")

	if captchaID == "" || answer == "" {
		return false
	}

	builder := database.NewCacheBuilder(s.cache, captchaID).
		WithContext(ctx).
		WithHash(CAPTCHA_CACHE_PREFIX)

	stored, found, err := builder.GetString()
	if err != nil {
		log.Warn("failed to look up captcha answer", "captchaID", captchaID, "error", err)
		return false
	}

	if !found {
		return false
	}

	if err := builder.Delete(); err != nil {
		log.Warn("failed to consume captcha answer", "captchaID", captchaID, "error", err)
	}

	return stored == strings.ToLower(strings.TrimSpace(answer))
}
