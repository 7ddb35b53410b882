package services

import (
	"errors"
	"fmt"
	"log"
	"unicode/utf8"

	"gorm.io/gorm"

	"chatquestbot/internal/clock"
	"chatquestbot/internal/models"
	"chatquestbot/internal/repository"
)

var (
	ErrAnswerTooShort    = errors.New("answer text below minimum length")
	ErrAnswerNotFound    = errors.New("answer not found")
	ErrAnswerNotApproved = errors.New("answer is not approved")
	ErrAlreadyReviewed   = errors.New("answer already reviewed")
)

// AnswerService runs the answer lifecycle: submission, review, and the
// idempotent point award that follows an approval.
type AnswerService struct {
	answers       repository.AnswerRepository
	points        *PointsService
	clock         clock.Clock
	minTextLength int
}

// NewAnswerService creates a new AnswerService
func NewAnswerService(answers repository.AnswerRepository, points *PointsService, clk clock.Clock, minTextLength int) *AnswerService {
	return &AnswerService{
		answers:       answers,
		points:        points,
		clock:         clk,
		minTextLength: minTextLength,
	}
}

// SubmitInput carries one submission against a daily task.
type SubmitInput struct {
	UserID      int64
	DailyTaskID uint64
	MessageID   int
	ContentType models.ContentType
	Content     string
}

// Submit validates and stores a new pending answer. Text answers below the
// configured minimum are rejected with ErrAnswerTooShort; media answers
// carry a file reference and have no length check.
func (s *AnswerService) Submit(input SubmitInput) (*models.Answer, error) {
	if input.ContentType == models.ContentTypeText &&
		utf8.RuneCountInString(input.Content) < s.minTextLength {
		return nil, ErrAnswerTooShort
	}

	answer := &models.Answer{
		UserID:      input.UserID,
		DailyTaskID: input.DailyTaskID,
		MessageID:   input.MessageID,
		ContentType: input.ContentType,
		Content:     input.Content,
		AnsweredAt:  s.clock.Now(),
	}
	if err := s.answers.Create(answer); err != nil {
		return nil, fmt.Errorf("failed to create answer: %w", err)
	}
	return answer, nil
}

// Get returns an answer with its daily task and template.
func (s *AnswerService) Get(answerID uint64) (*models.Answer, error) {
	answer, err := s.answers.FindByID(answerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnswerNotFound
		}
		return nil, fmt.Errorf("failed to find answer: %w", err)
	}
	return answer, nil
}

// Review moves a pending answer to approved or rejected. On approval the
// task's point value is awarded afterwards; the award is a separate,
// idempotent step keyed on the answer id, so a retry or the startup
// reconciliation can safely finish what a crash interrupted. Returns the
// reviewed answer and the points awarded (0 on rejection).
func (s *AnswerService) Review(answerID uint64, approve bool, reviewerID int64) (*models.Answer, int, error) {
	status := models.AnswerStatusRejected
	if approve {
		status = models.AnswerStatusApproved
	}

	err := s.answers.Review(answerID, status, reviewerID, s.clock.Now())
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrAnswerNotFound):
			return nil, 0, ErrAnswerNotFound
		case errors.Is(err, repository.ErrAnswerAlreadyReviewed):
			return nil, 0, ErrAlreadyReviewed
		}
		return nil, 0, fmt.Errorf("failed to review answer: %w", err)
	}

	answer, err := s.Get(answerID)
	if err != nil {
		return nil, 0, err
	}

	if !approve {
		return answer, 0, nil
	}

	awarded, err := s.AwardAnswerPoints(answerID)
	if err != nil {
		return answer, 0, err
	}
	return answer, awarded, nil
}

// AwardAnswerPoints posts the task_answer ledger entry for an approved
// answer unless one referencing it already exists. Returns the points
// posted, 0 when the award was already there.
func (s *AnswerService) AwardAnswerPoints(answerID uint64) (int, error) {
	answer, err := s.Get(answerID)
	if err != nil {
		return 0, err
	}
	if answer.Status != models.AnswerStatusApproved {
		return 0, ErrAnswerNotApproved
	}

	exists, err := s.points.HasAnswerAward(answerID)
	if err != nil {
		return 0, fmt.Errorf("failed to check existing award: %w", err)
	}
	if exists {
		return 0, nil
	}

	points := answer.DailyTask.Task.Points
	refID := answerID
	if err := s.points.AddPoints(answer.UserID, points, models.PointReasonTaskAnswer, &refID); err != nil {
		return 0, err
	}
	return points, nil
}

// ReconcileApprovedAnswers backfills awards for approved answers whose
// ledger entry is missing. Runs once at startup; returns how many answers
// were paid out.
func (s *AnswerService) ReconcileApprovedAnswers() (int, error) {
	unpaid, err := s.answers.ListApprovedWithoutAward()
	if err != nil {
		return 0, fmt.Errorf("failed to list unpaid answers: %w", err)
	}

	reconciled := 0
	for _, answer := range unpaid {
		awarded, err := s.AwardAnswerPoints(answer.ID)
		if err != nil {
			return reconciled, err
		}
		if awarded > 0 {
			log.Printf("Reconciled award for answer %d: %d points to user %d", answer.ID, awarded, answer.UserID)
			reconciled++
		}
	}
	return reconciled, nil
}

// ListPending returns all answers still waiting for review.
func (s *AnswerService) ListPending() ([]models.Answer, error) {
	answers, err := s.answers.ListPending()
	if err != nil {
		return nil, fmt.Errorf("failed to list pending answers: %w", err)
	}
	return answers, nil
}
