package customer

type OperationIntent int

const (
	IntentAdd OperationIntent = iota
	IntentUpdate
	IntentDelete
)

func (o OperationIntent) String() string {
	switch o {
	case IntentAdd:
		return "add"
	case IntentUpdate:
		return "update"
	case IntentDelete:
		return "delete"
	default:
		return "unknown"
	}
}

const MsgCustomerDoesNotExist = "the customer with the specified ID does not exist"

type ValidationFailure struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationResult struct {
	Failures []ValidationFailure
}

func (r ValidationResult) IsValid() bool {
	return len(r.Failures) == 0
}

// CustomerValidator checks a mutation against the record currently stored for
// the target ID. Build one per operation.
type CustomerValidator struct {
	intent   OperationIntent
	existing *Customer
}

func NewCustomerValidator(intent OperationIntent, existing *Customer) *CustomerValidator {
	return &CustomerValidator{intent: intent, existing: existing}
}

func (v *CustomerValidator) Validate() ValidationResult {
	if v.intent == IntentAdd {
		return ValidationResult{}
	}
	if v.existing == nil {
		return ValidationResult{Failures: []ValidationFailure{{Field: "", Message: MsgCustomerDoesNotExist}}}
	}
	return ValidationResult{}
}
