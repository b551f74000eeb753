package client

import (
	"fmt"
	"strings"

	"github.com/example/studenthustle/domain/marketplace"
)

// ModalKind identifies which dialog, if any, is showing.
type ModalKind int

const (
	ModalClosed ModalKind = iota
	ModalCollectingApplication
	ModalCollectingInfo
)

// ApplicationStep is the field currently being collected for an application.
type ApplicationStep int

const (
	StepApplicantName ApplicationStep = iota
	StepMessage
	StepOffer
)

// ApplicationDraft accumulates the answers given in the application dialog.
type ApplicationDraft struct {
	ApplicantName string
	Message       string
	Offer         string
}

// Modal is the dialog state: closed, collecting an application for Task, or
// showing an informational Message.
type Modal struct {
	Kind    ModalKind
	Task    marketplace.Task
	Step    ApplicationStep
	Draft   ApplicationDraft
	Message string
}

// ClosedModal returns the closed dialog state.
func ClosedModal() Modal {
	return Modal{Kind: ModalClosed}
}

// ApplicationModal starts collecting an application for t.
func ApplicationModal(t marketplace.Task) Modal {
	return Modal{Kind: ModalCollectingApplication, Task: t, Step: StepApplicantName}
}

// InfoModal shows message until dismissed.
func InfoModal(message string) Modal {
	return Modal{Kind: ModalCollectingInfo, Message: message}
}

// Open reports whether a dialog is showing.
func (m Modal) Open() bool {
	return m.Kind != ModalClosed
}

// Prompt returns the text shown for the current dialog state in lang.
func (m Modal) Prompt(lang string) string {
	switch m.Kind {
	case ModalCollectingApplication:
		switch m.Step {
		case StepApplicantName:
			return fmt.Sprintf(Translate(lang, "promptApplicant"), m.Task.Title)
		case StepMessage:
			return Translate(lang, "promptMessage")
		default:
			return Translate(lang, "promptOffer")
		}
	case ModalCollectingInfo:
		return m.Message
	}
	return ""
}

// Advance records input for the current step and returns the next state.
// complete is true once the optional offer has been answered and the draft
// is ready to submit. A blank name or message cancels the dialog.
func (m Modal) Advance(input string) (next Modal, complete bool) {
	if m.Kind != ModalCollectingApplication {
		return ClosedModal(), false
	}

	input = strings.TrimSpace(input)
	switch m.Step {
	case StepApplicantName:
		if input == "" {
			return ClosedModal(), false
		}
		m.Draft.ApplicantName = input
		m.Step = StepMessage
		return m, false
	case StepMessage:
		if input == "" {
			return ClosedModal(), false
		}
		m.Draft.Message = input
		m.Step = StepOffer
		return m, false
	default:
		m.Draft.Offer = input
		return m, true
	}
}
