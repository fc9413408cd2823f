package ports

// Prompter asks the operator for input.
type Prompter interface {
	// Confirm asks a yes/no question until it gets a recognizable answer.
	Confirm(question string) (bool, error)

	// Line asks for a single line of free text.
	Line(question string) (string, error)
}
