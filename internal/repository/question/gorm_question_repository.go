// File: internal/repository/question/gorm_question_repository.go
package question

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/carelink/carelink-server/internal/domain"
)

var ErrQuestionNotFound = errors.New("question not found")

type gormQuestionRepository struct {
	db *gorm.DB
}

func NewGormQuestionRepository(db *gorm.DB) QuestionRepository {
	return &gormQuestionRepository{db: db}
}

func (r *gormQuestionRepository) Create(ctx context.Context, question *domain.Question) (*domain.Question, error) {
	if question.PatientID == "" {
		return nil, errors.New("question patient ID is required")
	}
	if question.Status == "" {
		question.Status = domain.QuestionStatusPending
	}
	if err := r.db.WithContext(ctx).Create(question).Error; err != nil {
		return nil, err
	}
	return question, nil
}

func (r *gormQuestionRepository) FindByID(ctx context.Context, id uint) (*domain.Question, error) {
	if id == 0 {
		return nil, errors.New("invalid question ID")
	}
	var question domain.Question
	err := r.db.WithContext(ctx).First(&question, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	return &question, nil
}

func (r *gormQuestionRepository) FindPendingByPatient(ctx context.Context, patientID string) ([]domain.Question, error) {
	var questions []domain.Question
	err := r.db.WithContext(ctx).
		Where("patient_id = ? AND status = ?", patientID, domain.QuestionStatusPending).
		Find(&questions).Error
	return questions, err
}

func (r *gormQuestionRepository) FindPendingByPatients(ctx context.Context, patientIDs []string) ([]domain.Question, error) {
	if len(patientIDs) == 0 {
		return nil, nil
	}
	var questions []domain.Question
	err := r.db.WithContext(ctx).
		Where("patient_id IN ? AND status = ?", patientIDs, domain.QuestionStatusPending).
		Order("daterecorded desc").
		Find(&questions).Error
	return questions, err
}

func (r *gormQuestionRepository) FindOpenByPatient(ctx context.Context, patientID string) ([]domain.Question, error) {
	var questions []domain.Question
	err := r.db.WithContext(ctx).
		Where("patient_id = ? AND status <> ?", patientID, domain.QuestionStatusAnswered).
		Order("daterecorded desc").
		Find(&questions).Error
	return questions, err
}

func (r *gormQuestionRepository) Answer(ctx context.Context, id uint, response string) error {
	if id == 0 {
		return errors.New("invalid question ID")
	}
	res := r.db.WithContext(ctx).
		Model(&domain.Question{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"doctorresponse": response,
			"status":         domain.QuestionStatusAnswered,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrQuestionNotFound
	}
	return nil
}
