package diag

// Code identifies the kind of a compiler diagnostic, e.g. "TS18046".
// tsc коды — строки, не перечисление: набор открытый, фиксируем только те,
// по которым есть правила.
type Code string

const (
	// UnknownCode marks a record whose code could not be recognized.
	UnknownCode Code = ""

	// CodeUnknownType is "'X' is of type 'unknown'".
	CodeUnknownType Code = "TS18046"
	// CodeImplicitAny is "Parameter 'X' implicitly has an 'any' type".
	CodeImplicitAny Code = "TS7006"
	// CodePropertyMissing is "Property 'X' does not exist on type 'Y'".
	CodePropertyMissing Code = "TS2339"
	// CodeArgumentType is "Argument of type 'X' is not assignable ...".
	CodeArgumentType Code = "TS2345"
)

func (c Code) String() string {
	if c == UnknownCode {
		return "unknown"
	}
	return string(c)
}
