// AngelaMos | 2026
// dto.go

package contact

type SubmitMessageRequest struct {
	Name    string `json:"name"    validate:"required,max=100"`
	Email   string `json:"email"   validate:"required,max=255"`
	Service string `json:"service" validate:"max=100"`
	Message string `json:"message" validate:"required,max=2000"`
}

type SubscribeRequest struct {
	Email string `json:"email" validate:"required,max=255"`
}

type SubscribeResponse struct {
	Outcome SubscribeOutcome `json:"outcome"`
	Message string           `json:"message"`
}

func subscribeMessage(outcome SubscribeOutcome) string {
	switch outcome {
	case OutcomeAlreadySubscribed:
		return "You are already subscribed to our newsletter!"
	case OutcomeResubscribed:
		return "Welcome back! You have been re-subscribed."
	default:
		return "Thank you for subscribing to our newsletter!"
	}
}
