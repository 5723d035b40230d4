package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"salonbot/models"
	"salonbot/services/dialogue"
	"salonbot/utils"
)

// completionTimeout bounds the completion listener, which runs detached
// from the caller's cancellation.
const completionTimeout = 10 * time.Second

// CompletionListener is told about every booking a client confirms. It runs
// after the session has been saved and outside the session lock.
type CompletionListener interface {
	BookingCompleted(ctx context.Context, s models.BookingSession) error
}

// Service owns the dialogue sessions: it serializes utterances per session,
// runs the state machine and persists the result.
type Service struct {
	store    Store
	machine  *dialogue.Machine
	listener CompletionListener
	logger   *zap.Logger
	locks    *keyedMutex
	now      func() time.Time
}

// NewService wires a session service. listener and logger may be nil.
func NewService(store Store, machine *dialogue.Machine, listener CompletionListener, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    store,
		machine:  machine,
		listener: listener,
		logger:   logger,
		locks:    newKeyedMutex(),
		now:      time.Now,
	}
}

func (s *Service) Machine() *dialogue.Machine { return s.machine }

// GetOrCreate returns the session, creating it at the initial step if needed.
func (s *Service) GetOrCreate(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	if sessionID == "" {
		return nil, ErrEmptySessionID
	}
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	sess, err := s.store.Get(ctx, sessionID)
	if err == nil {
		return sess, nil
	}
	if !errors.Is(err, ErrSessionNotFound) {
		return nil, err
	}

	sess = models.NewBookingSession(sessionID, s.now())
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, err
	}
	s.logger.Debug("session created", zap.String("session_id", sessionID))
	return sess, nil
}

// Apply feeds one utterance to the session's dialogue and returns the reply.
func (s *Service) Apply(ctx context.Context, sessionID, utterance string) (*models.ChatReply, error) {
	if sessionID == "" {
		return nil, ErrEmptySessionID
	}

	sess, from, res, err := s.transition(ctx, sessionID, utterance)
	if err != nil {
		return nil, err
	}
	s.observe(sessionID, from, res)

	if res.Outcome == dialogue.OutcomeCompleted && s.listener != nil {
		// The transition is already saved; the side effects must outlive a
		// client that hangs up right after confirming.
		lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), completionTimeout)
		defer cancel()
		if err := s.listener.BookingCompleted(lctx, *sess); err != nil {
			s.logger.Error("booking completion handling failed",
				zap.String("session_id", sessionID),
				zap.Error(err),
			)
		}
	}

	return &models.ChatReply{
		SessionID: sessionID,
		Reply:     res.Message,
		Step:      res.Step,
		Draft:     res.Draft.Snapshot(),
	}, nil
}

func (s *Service) transition(ctx context.Context, sessionID, utterance string) (*models.BookingSession, models.Step, dialogue.Result, error) {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	sess, err := s.store.Get(ctx, sessionID)
	switch {
	case errors.Is(err, ErrSessionNotFound):
		sess = models.NewBookingSession(sessionID, s.now())
	case err != nil:
		return nil, "", dialogue.Result{}, err
	}

	from := sess.Step
	res := s.machine.Transition(sess.Step, sess.Draft, utterance)
	sess.Step = res.Step
	sess.Draft = res.Draft
	sess.UpdatedAt = s.now()

	if err := s.store.Save(ctx, sess); err != nil {
		return nil, "", dialogue.Result{}, err
	}
	return sess, from, res, nil
}

func (s *Service) observe(sessionID string, from models.Step, res dialogue.Result) {
	utils.DialogueTransitions.WithLabelValues(string(from), string(res.Outcome)).Inc()

	switch res.Outcome {
	case dialogue.OutcomeInvalidStep:
		utils.DialogueInvalidSteps.Inc()
		s.logger.Error("session was in an unknown step and has been reset",
			zap.String("session_id", sessionID),
			zap.String("step", string(from)),
		)
	case dialogue.OutcomeCompleted:
		utils.BookingsCompleted.Inc()
		s.logger.Info("booking confirmed", zap.String("session_id", sessionID))
	default:
		s.logger.Debug("dialogue transition",
			zap.String("session_id", sessionID),
			zap.String("step", string(from)),
			zap.String("next_step", string(res.Step)),
			zap.String("outcome", string(res.Outcome)),
		)
	}
}

// Reset forgets the session; the next utterance starts from the beginning.
func (s *Service) Reset(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrEmptySessionID
	}
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	if err := s.store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("reset session: %w", err)
	}
	return nil
}
