package service

// Operation names reported to CredentialMetrics.
const (
	OperationRegister   = "register"
	OperationLogin      = "login"
	OperationProfile    = "profile"
	OperationAssignRole = "assign_role"
)

// OutcomeSuccess is reported when an operation completes without error.
const OutcomeSuccess = "success"

// CredentialMetrics records the outcome of every credential operation.
// Failures are reported by error kind, which keeps unknown-email and wrong-password apart.
type CredentialMetrics interface {
	ObserveOutcome(operation, outcome string)
}
