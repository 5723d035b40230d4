package dialogue

import "salonbot/models"

// Outcome classifies what a transition did, for logging, metrics and
// completion hooks. The next step never depends on it.
type Outcome string

const (
	OutcomeAdvanced    Outcome = "advanced"
	OutcomeNoMatch     Outcome = "no_match"
	OutcomeInfo        Outcome = "info"
	OutcomeCancelled   Outcome = "cancelled"
	OutcomeCompleted   Outcome = "completed"
	OutcomeRestarted   Outcome = "restarted"
	OutcomeInvalidStep Outcome = "invalid_step"
)

// Result is the state produced by one transition together with the reply.
type Result struct {
	Step    models.Step
	Draft   models.BookingDraft
	Message string
	Outcome Outcome
}

// slotStep describes a step that collects exactly one draft field.
type slotStep struct {
	next    models.Step
	extract Extractor
	assign  func(d *models.BookingDraft, value string)
	prompt  func(m Messages, d models.BookingDraft) string
	retry   func(m Messages) string
}

var slotSteps = map[models.Step]slotStep{
	models.StepService: {
		next:    models.StepDate,
		extract: ExtractService,
		assign:  func(d *models.BookingDraft, v string) { d.Service = v },
		prompt:  func(m Messages, d models.BookingDraft) string { return m.DatePrompt(d.Service) },
		retry:   Messages.InvalidService,
	},
	models.StepDate: {
		next:    models.StepTime,
		extract: ExtractDate,
		assign:  func(d *models.BookingDraft, v string) { d.Date = v },
		prompt:  func(m Messages, d models.BookingDraft) string { return m.SlotMenu(d.Date) },
		retry:   Messages.InvalidDate,
	},
	models.StepTime: {
		next:    models.StepName,
		extract: ExtractTime,
		assign:  func(d *models.BookingDraft, v string) { d.Time = v },
		prompt:  func(m Messages, d models.BookingDraft) string { return m.NamePrompt(d.Time) },
		retry:   Messages.InvalidTime,
	},
	models.StepName: {
		next:    models.StepPhone,
		extract: ExtractName,
		assign:  func(d *models.BookingDraft, v string) { d.Name = v },
		prompt:  func(m Messages, d models.BookingDraft) string { return m.PhonePrompt(d.Name) },
		retry:   Messages.InvalidName,
	},
	models.StepPhone: {
		next:    models.StepConfirm,
		extract: ExtractPhone,
		assign:  func(d *models.BookingDraft, v string) { d.Phone = v },
		prompt:  Messages.Summary,
		retry:   Messages.InvalidPhone,
	},
}

// Machine is the booking dialogue. It holds no per-session state and is safe
// for concurrent use.
type Machine struct {
	cfg models.BusinessConfig
	msg Messages
}

func NewMachine(cfg models.BusinessConfig) *Machine {
	return &Machine{cfg: cfg, msg: NewMessages(cfg)}
}

func (m *Machine) Config() models.BusinessConfig { return m.cfg }

// Greeting is the text shown before the first utterance.
func (m *Machine) Greeting() string { return m.msg.Greeting() }

// Transition computes the next step, draft and reply for one utterance.
func (m *Machine) Transition(step models.Step, draft models.BookingDraft, utterance string) Result {
	in := Normalize(utterance)

	switch step {
	case models.StepInitial:
		return m.initial(draft, in)
	case models.StepService, models.StepDate, models.StepTime, models.StepName, models.StepPhone:
		return m.collect(step, draft, in)
	case models.StepConfirm:
		return m.confirm(draft, in)
	case models.StepCompleted:
		return m.completed(draft, in)
	default:
		return Result{
			Step:    models.StepInitial,
			Draft:   models.BookingDraft{},
			Message: m.msg.InvalidStep(),
			Outcome: OutcomeInvalidStep,
		}
	}
}

func (m *Machine) initial(draft models.BookingDraft, in Input) Result {
	switch initialRouter.Route(in) {
	case IntentBooking:
		return Result{Step: models.StepService, Draft: models.BookingDraft{}, Message: m.msg.ServiceMenu(), Outcome: OutcomeAdvanced}
	case IntentHours:
		return Result{Step: models.StepInitial, Draft: draft, Message: m.msg.Hours(), Outcome: OutcomeInfo}
	default:
		return Result{Step: models.StepInitial, Draft: draft, Message: m.msg.Help(), Outcome: OutcomeNoMatch}
	}
}

func (m *Machine) collect(step models.Step, draft models.BookingDraft, in Input) Result {
	s := slotSteps[step]
	match := s.extract(in, m.cfg)
	if !match.OK {
		return Result{Step: step, Draft: draft, Message: s.retry(m.msg), Outcome: OutcomeNoMatch}
	}

	next := draft
	s.assign(&next, match.Value)
	return Result{Step: s.next, Draft: next, Message: s.prompt(m.msg, next), Outcome: OutcomeAdvanced}
}

func (m *Machine) confirm(draft models.BookingDraft, in Input) Result {
	switch Confirmation(in) {
	case AnswerYes:
		// The draft stays attached to the completed session for display.
		return Result{Step: models.StepCompleted, Draft: draft, Message: m.msg.Confirmed(), Outcome: OutcomeCompleted}
	case AnswerNo:
		return Result{Step: models.StepInitial, Draft: models.BookingDraft{}, Message: m.msg.Cancelled(), Outcome: OutcomeCancelled}
	default:
		return Result{Step: models.StepConfirm, Draft: draft, Message: m.msg.InvalidConfirmation(), Outcome: OutcomeNoMatch}
	}
}

func (m *Machine) completed(draft models.BookingDraft, in Input) Result {
	switch completedRouter.Route(in) {
	case IntentBooking:
		return Result{Step: models.StepService, Draft: models.BookingDraft{}, Message: m.msg.NewBookingMenu(), Outcome: OutcomeRestarted}
	case IntentHours:
		return Result{Step: models.StepCompleted, Draft: draft, Message: m.msg.HoursAfterBooking(), Outcome: OutcomeInfo}
	default:
		return Result{Step: models.StepCompleted, Draft: draft, Message: m.msg.CompletedHelp(), Outcome: OutcomeNoMatch}
	}
}
