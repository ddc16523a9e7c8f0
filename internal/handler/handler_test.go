package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/somang-church/website-api/internal/db"
	"github.com/somang-church/website-api/internal/models"
	"github.com/somang-church/website-api/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	_ = logger.Init("error", "")
}

// fakeReviewRepo is an in-memory ReviewRepository keyed by token.
type fakeReviewRepo struct {
	byToken map[string]*models.VideoReview
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{byToken: make(map[string]*models.VideoReview)}
}

func (f *fakeReviewRepo) Create(_ context.Context, review *models.VideoReview) error {
	review.ID = uuid.New()
	review.CreatedAt = time.Now()
	f.byToken[review.ReviewToken] = review
	return nil
}

func (f *fakeReviewRepo) GetByToken(_ context.Context, token string) (*models.VideoReview, error) {
	review, ok := f.byToken[token]
	if !ok {
		return nil, db.ErrNotFound
	}
	return review, nil
}

func (f *fakeReviewRepo) UpdateDecision(_ context.Context, token string, status models.ReviewStatus, comment *string, reviewedAt time.Time) (*models.VideoReview, error) {
	review, ok := f.byToken[token]
	if !ok {
		return nil, db.ErrNotFound
	}
	review.Status = status
	review.ReviewerComment = comment
	review.ReviewedAt = &reviewedAt
	return review, nil
}

func (f *fakeReviewRepo) List(_ context.Context) ([]*models.VideoReview, error) {
	reviews := make([]*models.VideoReview, 0, len(f.byToken))
	for _, r := range f.byToken {
		reviews = append(reviews, r)
	}
	return reviews, nil
}

func (f *fakeReviewRepo) Delete(_ context.Context, id uuid.UUID) error {
	for token, r := range f.byToken {
		if r.ID == id {
			delete(f.byToken, token)
			return nil
		}
	}
	return db.ErrNotFound
}

// fakeNoticeRepo is an in-memory NoticeRepository.
type fakeNoticeRepo struct {
	byID map[uuid.UUID]*models.Notice
}

func newFakeNoticeRepo() *fakeNoticeRepo {
	return &fakeNoticeRepo{byID: make(map[uuid.UUID]*models.Notice)}
}

func (f *fakeNoticeRepo) Create(_ context.Context, notice *models.Notice) error {
	notice.ID = uuid.New()
	notice.CreatedAt = time.Now()
	notice.UpdatedAt = notice.CreatedAt
	f.byID[notice.ID] = notice
	return nil
}

func (f *fakeNoticeRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Notice, error) {
	notice, ok := f.byID[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	copied := *notice
	return &copied, nil
}

func (f *fakeNoticeRepo) List(_ context.Context, _ bool) ([]*models.Notice, error) {
	notices := make([]*models.Notice, 0, len(f.byID))
	for _, n := range f.byID {
		notices = append(notices, n)
	}
	return notices, nil
}

func (f *fakeNoticeRepo) Update(_ context.Context, notice *models.Notice) error {
	if _, ok := f.byID[notice.ID]; !ok {
		return db.ErrNotFound
	}
	notice.UpdatedAt = time.Now()
	f.byID[notice.ID] = notice
	return nil
}

func (f *fakeNoticeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.byID[id]; !ok {
		return db.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeSettingRepo is an in-memory SettingRepository.
type fakeSettingRepo struct {
	byKey map[string]*models.Setting
}

func newFakeSettingRepo() *fakeSettingRepo {
	return &fakeSettingRepo{byKey: make(map[string]*models.Setting)}
}

func (f *fakeSettingRepo) Get(_ context.Context, key string) (*models.Setting, error) {
	setting, ok := f.byKey[key]
	if !ok {
		return nil, db.ErrNotFound
	}
	return setting, nil
}

func (f *fakeSettingRepo) List(_ context.Context) ([]*models.Setting, error) {
	settings := make([]*models.Setting, 0, len(f.byKey))
	for _, s := range f.byKey {
		settings = append(settings, s)
	}
	return settings, nil
}

func (f *fakeSettingRepo) Upsert(_ context.Context, key, value string) (*models.Setting, error) {
	setting := &models.Setting{Key: key, Value: value, UpdatedAt: time.Now()}
	f.byKey[key] = setting
	return setting, nil
}

// fakeInquiryRepo is an in-memory InquiryRepository.
type fakeInquiryRepo struct {
	byID map[uuid.UUID]*models.NewcomerInquiry
}

func newFakeInquiryRepo() *fakeInquiryRepo {
	return &fakeInquiryRepo{byID: make(map[uuid.UUID]*models.NewcomerInquiry)}
}

func (f *fakeInquiryRepo) Create(_ context.Context, inquiry *models.NewcomerInquiry) error {
	inquiry.ID = uuid.New()
	inquiry.CreatedAt = time.Now()
	f.byID[inquiry.ID] = inquiry
	return nil
}

func (f *fakeInquiryRepo) List(_ context.Context) ([]*models.NewcomerInquiry, error) {
	inquiries := make([]*models.NewcomerInquiry, 0, len(f.byID))
	for _, i := range f.byID {
		inquiries = append(inquiries, i)
	}
	return inquiries, nil
}

func (f *fakeInquiryRepo) UpdateStatus(_ context.Context, id uuid.UUID, status models.InquiryStatus) (*models.NewcomerInquiry, error) {
	inquiry, ok := f.byID[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	inquiry.Status = status
	return inquiry, nil
}
