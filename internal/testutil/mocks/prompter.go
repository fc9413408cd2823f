package mocks

import (
	"errors"
	"sync"

	"github.com/felixgeelhaar/waypoint/internal/ports"
)

// ErrNoScriptedAnswer is returned when a prompt has nothing left to answer with.
var ErrNoScriptedAnswer = errors.New("no scripted answer")

// Prompter answers prompts from scripted queues and records the questions.
type Prompter struct {
	mu        sync.Mutex
	confirms  []bool
	lines     []string
	questions []string
}

// NewPrompter creates a Prompter with no scripted answers.
func NewPrompter() *Prompter {
	return &Prompter{}
}

// QueueConfirm adds answers for Confirm calls.
func (p *Prompter) QueueConfirm(answers ...bool) *Prompter {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.confirms = append(p.confirms, answers...)
	return p
}

// QueueLine adds answers for Line calls.
func (p *Prompter) QueueLine(answers ...string) *Prompter {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lines = append(p.lines, answers...)
	return p
}

// Confirm pops the next scripted yes/no answer.
func (p *Prompter) Confirm(question string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.questions = append(p.questions, question)
	if len(p.confirms) == 0 {
		return false, ErrNoScriptedAnswer
	}
	answer := p.confirms[0]
	p.confirms = p.confirms[1:]
	return answer, nil
}

// Line pops the next scripted line.
func (p *Prompter) Line(question string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.questions = append(p.questions, question)
	if len(p.lines) == 0 {
		return "", ErrNoScriptedAnswer
	}
	answer := p.lines[0]
	p.lines = p.lines[1:]
	return answer, nil
}

// Questions returns every question asked so far.
func (p *Prompter) Questions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.questions))
	copy(out, p.questions)
	return out
}

// Ensure Prompter implements ports.Prompter.
var _ ports.Prompter = (*Prompter)(nil)
