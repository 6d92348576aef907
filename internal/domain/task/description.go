package task

// Description is free text. An empty description means none was given.
type Description struct {
	value string
}

// NewDescription wraps a description. Any string is accepted.
func NewDescription(value string) Description {
	return Description{value: value}
}

// Value returns the description text.
func (d Description) Value() string {
	return d.value
}

// IsEmpty reports whether the task has no description.
func (d Description) IsEmpty() bool {
	return d.value == ""
}

func (d Description) String() string {
	return d.value
}
