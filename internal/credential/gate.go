package credential

import "sync"

// State tracks where the gate is in its prompt cycle.
type State int

const (
	// StateIdle means no prompt is outstanding.
	StateIdle State = iota
	// StatePrompting means a prompt has been handed to the UI and the
	// starting goroutine is blocked awaiting the outcome.
	StatePrompting
)

// Prompter is what the supervisor needs from a credential source: a blocking
// prompt that yields a secret or reports cancellation.
type Prompter interface {
	// Prompt blocks until the user supplies a secret or cancels.
	// ok is false on cancel, and the secret is nil.
	Prompt(command string) (secret *Secret, ok bool)
}

// Request is one outstanding password prompt, delivered to the UI over
// Requests(). Exactly one of Grant or Deny must be called.
type Request struct {
	// Command is the command line the prompt is for, shown to the user.
	Command string

	respond chan *Secret
}

// Grant completes the prompt with the captured secret.
func (r Request) Grant(secret *Secret) {
	r.respond <- secret
}

// Deny completes the prompt as cancelled.
func (r Request) Deny() {
	r.respond <- nil
}

// Gate is the interactive Prompter. The goroutine calling Prompt blocks
// while the UI, listening on Requests(), collects the password, the same
// hand-off shape as any other modal request in the app. Only the start path
// is blocked; the event bus and any running process are unaffected.
type Gate struct {
	mu       sync.Mutex
	state    State
	requests chan Request
}

// NewGate creates a gate ready to mediate prompts.
func NewGate() *Gate {
	return &Gate{
		requests: make(chan Request),
	}
}

// Requests returns the channel the UI listens on for outstanding prompts.
func (g *Gate) Requests() <-chan Request {
	return g.requests
}

// State returns the gate's current state.
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Prompt hands a request to the UI and blocks until it is granted or denied.
func (g *Gate) Prompt(command string) (*Secret, bool) {
	g.mu.Lock()
	g.state = StatePrompting
	g.mu.Unlock()

	req := Request{
		Command: command,
		respond: make(chan *Secret, 1),
	}
	g.requests <- req
	secret := <-req.respond

	g.mu.Lock()
	g.state = StateIdle
	g.mu.Unlock()

	return secret, secret != nil
}
