package sqldb

type targetFieldsProvider interface {
	TargetFields() []any
}

// Scannable is satisfied by *T when T lists its scan destinations
type Scannable[T any] interface {
	~*T                  // Type Constraint: Underlying Type(~) = *T
	targetFieldsProvider // must implement targetFieldsProvider
}
