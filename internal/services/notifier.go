package services

import (
	"fmt"

	"github.com/asaskevich/EventBus"
	"github.com/devjobs/board/internal/events"
	"github.com/devjobs/board/internal/logger"
	log "github.com/sirupsen/logrus"
)

type mailSender interface {
	Send(to string, subject string, htmlBody string) error
}

// Notifier turns bus events into outbound email. Delivery failures are
// logged and never bubble up to the operation that raised the event.
type Notifier struct {
	sender mailSender
}

func NewNotifier(bus EventBus.Bus, sender mailSender) (*Notifier, error) {

	n := &Notifier{sender: sender}

	if err := bus.Subscribe(events.ResetRequestedTopic, n.onResetRequested); err != nil {
		return nil, err
	}

	if err := bus.Subscribe(events.CandidateAppliedTopic, n.onCandidateApplied); err != nil {
		return nil, err
	}

	return n, nil
}

func (n *Notifier) onResetRequested(event events.ResetRequested) {

	body := fmt.Sprintf(
		"<p>Hola %s,</p>"+
			"<p>Solicitaste reestablecer tu password. Sigue el enlace, valido por una hora:</p>"+
			"<p><a href=%q>%s</a></p>",
		event.Name, event.ResetURL, event.ResetURL)

	if err := n.sender.Send(event.Email, "Password Reset", body); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeSmtp).
			Errorf("failed to send reset email: %v", err)
	}
}

func (n *Notifier) onCandidateApplied(event events.CandidateApplied) {

	body := fmt.Sprintf(
		"<p>Hola %s,</p>"+
			"<p>%s envió su curriculum para la vacante %q.</p>",
		event.OwnerName, event.CandidateName, event.PostingTitle)

	if err := n.sender.Send(event.OwnerEmail, "Nuevo Candidato", body); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeSmtp).
			Errorf("failed to send candidate email: %v", err)
	}
}
