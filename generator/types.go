package generator

import "html/template"

// User-facing messages. Provider errors are never shown; they are logged.
const (
	MsgMissingCredential = "Please add your actual OpenAI API key to the .env file. You can get your API key from https://platform.openai.com/account/api-keys"
	MsgEmptyResult       = "Failed to generate lyrics. Please try again."
	MsgTransport         = "Error connecting to OpenAI. Please check your API key and try again."
)

// Outcome is the result of one accepted submission.
type Outcome int

const (
	// OutcomeRejected is returned together with an error when the submission
	// was never accepted (empty prompt or a request already in flight).
	OutcomeRejected Outcome = iota
	OutcomeSuccess
	OutcomeEmpty
	OutcomeBlocked
	OutcomeTransportError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeEmpty:
		return "empty"
	case OutcomeBlocked:
		return "blocked"
	case OutcomeTransportError:
		return "transport_error"
	default:
		return "rejected"
	}
}

// State is the UI state of one controller.
type State struct {
	Prompt     string
	Result     string
	ResultHTML template.HTML
	InFlight   bool
	Error      string
}
