package omni

// Diagnostic codes reported by the transformation passes.
const (
	DiagGenericAmbiguousSignature = "generic-ambiguous-signature"
	DiagGenericPrimitiveAbort     = "generic-primitive-abort"
	DiagGenericNoBenefit          = "generic-no-benefit"
	DiagGenericPropertyMissing    = "generic-property-missing"
	DiagGenericBoundWidened       = "generic-bound-widened"
	DiagCompositionNoParent       = "composition-no-parent"
	DiagCommonNameFallback        = "common-name-fallback"
)

// Diagnostic is a non-fatal observation made while transforming a model.
// Passes return diagnostics instead of logging them; callers decide where they go.
type Diagnostic struct {
	Code    string
	Message string
	Type    Type
}

// String formats the diagnostic for display.
func (d Diagnostic) String() string {
	if d.Type == nil {
		return d.Code + ": " + d.Message
	}
	return d.Code + ": " + d.Message + " (" + Describe(d.Type) + ")"
}

// Diagnostics accumulates diagnostics. The zero value is ready to use.
type Diagnostics []Diagnostic

// Add appends a diagnostic.
func (ds *Diagnostics) Add(code string, t Type, message string) {
	*ds = append(*ds, Diagnostic{Code: code, Message: message, Type: t})
}
