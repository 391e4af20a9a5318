// Package supervisor owns the lifecycle of the single supervised command:
// spawning it, streaming its output onto the event bus, watching for exit,
// and terminating it gracefully on request. At most one process runs at a
// time; a finished run must be observed (its exit event published) before
// the slot is free again.
package supervisor

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"github.com/google/shlex"
	"github.com/google/uuid"

	"github.com/kboone/vigil/internal/credential"
	"github.com/kboone/vigil/internal/event"
	"github.com/kboone/vigil/internal/logger"
)

const (
	// PollInterval is how often the liveness poller checks whether the
	// current process has exited on its own.
	PollInterval = 500 * time.Millisecond

	// GracePeriod is how long a process gets to exit after SIGTERM
	// before it is killed.
	GracePeriod = 2 * time.Second

	// maxLineSize caps a single output line read from the child.
	maxLineSize = 1024 * 1024
)

// managedProcess is one running instance of the supervised command.
type managedProcess struct {
	runID string
	cmd   *exec.Cmd

	// readersDone tracks the two stream readers. cmd.Wait closes the
	// parent ends of the output pipes, so the monitor must not call it
	// until both readers have drained to EOF or output is lost.
	readersDone sync.WaitGroup

	// waitDone is closed by the monitor goroutine after cmd.Wait returns.
	// exitCode is written before the close and must only be read after
	// waitDone is observed closed.
	waitDone chan struct{}
	exitCode *int
}

// exited reports whether the process has been reaped, without blocking.
func (p *managedProcess) exited() bool {
	select {
	case <-p.waitDone:
		return true
	default:
		return false
	}
}

// Supervisor runs at most one instance of the profile's command and reports
// everything that happens to it on the event bus. All methods are safe for
// concurrent use.
type Supervisor struct {
	bus      *event.Bus
	prompter credential.Prompter
	log      *slog.Logger

	mu       sync.Mutex
	proc     *managedProcess
	starting bool

	pollStop chan struct{}
	pollOnce sync.Once

	pollEvery time.Duration
	grace     time.Duration
}

// New creates a supervisor publishing to bus. The prompter is consulted when
// a command needs privilege escalation; it may be nil, in which case such
// commands are treated as cancelled.
func New(bus *event.Bus, prompter credential.Prompter) *Supervisor {
	s := &Supervisor{
		bus:       bus,
		prompter:  prompter,
		log:       logger.ComponentLogger("supervisor"),
		pollStop:  make(chan struct{}),
		pollEvery: PollInterval,
		grace:     GracePeriod,
	}
	go s.poll()
	return s
}

// IsRunning reports whether a supervised process is currently attached.
func (s *Supervisor) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.proc != nil || s.starting
}

// Start tokenizes commandLine, spawns it, and wires its output to the bus.
// If the command invokes sudo, the prompter is consulted for a password
// first, and the password is relayed over stdin. Start returns once the
// process is running; it does not wait for exit.
func (s *Supervisor) Start(commandLine string) error {
	args, err := shlex.Split(commandLine)
	if err != nil {
		return &ParseError{Err: err}
	}
	if len(args) == 0 {
		return ErrEmptyCommand
	}

	// Claim the single process slot before the (possibly slow) password
	// prompt so a second Start fails fast instead of racing the spawn.
	s.mu.Lock()
	if s.proc != nil || s.starting {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}
	s.starting = true
	s.mu.Unlock()

	release := func() {
		s.mu.Lock()
		s.starting = false
		s.mu.Unlock()
	}

	var secret *credential.Secret
	if credential.IsEscalation(args) {
		args = credential.EnsureStdinFlag(args)
		if s.prompter == nil {
			release()
			return ErrCredentialCancelled
		}
		pw, ok := s.prompter.Prompt(commandLine)
		if !ok {
			release()
			return ErrCredentialCancelled
		}
		secret = pw
	}

	cmd := exec.Command(args[0], args[1:]...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		destroy(secret)
		release()
		return &SpawnError{Err: err}
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		destroy(secret)
		release()
		return &SpawnError{Err: err}
	}
	var stdin io.WriteCloser
	if secret != nil {
		stdin, err = cmd.StdinPipe()
		if err != nil {
			destroy(secret)
			release()
			return &SpawnError{Err: err}
		}
	}

	if err := cmd.Start(); err != nil {
		destroy(secret)
		release()
		return &SpawnError{Err: err}
	}

	p := &managedProcess{
		runID:    uuid.NewString()[:8],
		cmd:      cmd,
		waitDone: make(chan struct{}),
	}
	s.log.Info("process started", "run", p.runID, "pid", cmd.Process.Pid, "command", args[0])

	if secret != nil {
		s.relaySecret(stdin, secret)
	}

	s.bus.Publish(event.SetRunning{Running: true})
	s.bus.Publish(event.AppendLog{Line: "command started", Source: event.SourceSystem})

	p.readersDone.Add(2)
	go s.readStream(p, stdout, event.SourceStdout)
	go s.readStream(p, stderr, event.SourceStderr)
	go s.monitor(p)

	s.mu.Lock()
	s.proc = p
	s.starting = false
	s.mu.Unlock()
	return nil
}

// relaySecret writes the password followed by a newline to the child's stdin,
// closes the pipe so sudo sees EOF, and scrubs the secret.
func (s *Supervisor) relaySecret(stdin io.WriteCloser, secret *credential.Secret) {
	defer secret.Destroy()
	defer stdin.Close()

	if _, err := stdin.Write(secret.Bytes()); err != nil {
		s.log.Error("stdin write failed", "error", err)
		s.bus.Publish(event.AppendLog{
			Line:   fmt.Sprintf("failed to send sudo password to process: %v", err),
			Source: event.SourceSystem,
		})
		return
	}
	if _, err := io.WriteString(stdin, "\n"); err != nil {
		s.log.Error("stdin write failed", "error", err)
		s.bus.Publish(event.AppendLog{
			Line:   fmt.Sprintf("failed to send sudo password to process: %v", err),
			Source: event.SourceSystem,
		})
	}
}

// readStream forwards one output pipe to the bus, line by line. EOF ends the
// reader silently; a read error is reported as a log line first.
func (s *Supervisor) readStream(p *managedProcess, r io.Reader, src event.Source) {
	defer p.readersDone.Done()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		s.bus.Publish(event.AppendLog{Line: scanner.Text(), Source: src})
	}
	if err := scanner.Err(); err != nil {
		s.log.Warn("stream read error", "run", p.runID, "source", src.String(), "error", err)
		s.bus.Publish(event.AppendLog{
			Line:   fmt.Sprintf("log read error: %v", err),
			Source: event.SourceSystem,
		})
	}
}

// monitor is the sole caller of cmd.Wait for this process. It waits for both
// stream readers first so Wait cannot close the pipes under them, then records
// the exit code and closes waitDone; publishing the exit event is left to the
// poller or the stop path, whichever detaches the process.
func (s *Supervisor) monitor(p *managedProcess) {
	p.readersDone.Wait()
	err := p.cmd.Wait()
	if state := p.cmd.ProcessState; state != nil {
		if code := state.ExitCode(); code >= 0 {
			p.exitCode = &code
		}
	}
	if err != nil {
		s.log.Debug("process wait returned", "run", p.runID, "error", err)
	} else {
		s.log.Debug("process wait returned", "run", p.runID)
	}
	close(p.waitDone)
}

// poll watches the attached process for exit on its own schedule. When the
// monitor has reaped the process and no Stop has claimed it, the poller
// detaches it and publishes the exit event.
func (s *Supervisor) poll() {
	ticker := time.NewTicker(s.pollEvery)
	defer ticker.Stop()
	for {
		select {
		case <-s.pollStop:
			return
		case <-ticker.C:
		}

		s.mu.Lock()
		p := s.proc
		if p == nil || !p.exited() {
			s.mu.Unlock()
			continue
		}
		s.proc = nil
		s.mu.Unlock()

		s.log.Info("process exited", "run", p.runID, "code", codeString(p.exitCode))
		s.bus.Publish(event.ProcessExited{Code: p.exitCode})
	}
}

// Stop detaches the current process and terminates it in the background:
// SIGTERM, a grace period, then SIGKILL. The exit event is published once
// the process is gone. Calling Stop with nothing running is a no-op, and
// Start may be called again immediately after Stop returns.
func (s *Supervisor) Stop() {
	p := s.detach()
	if p == nil {
		return
	}
	go func() {
		s.terminate(p)
		s.bus.Publish(event.ProcessExited{Code: p.exitCode})
	}()
}

// StopBlocking terminates the current process and waits for it to be reaped.
// No exit event is published; this is for application shutdown, when nothing
// is left to consume one.
func (s *Supervisor) StopBlocking() {
	p := s.detach()
	if p == nil {
		return
	}
	s.terminate(p)
}

// Close stops the liveness poller. It does not touch a running process;
// call StopBlocking first when shutting down.
func (s *Supervisor) Close() {
	s.pollOnce.Do(func() {
		close(s.pollStop)
	})
}

// detach removes the current process from the supervisor, transferring
// responsibility for publishing its exit event to the caller.
func (s *Supervisor) detach() *managedProcess {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.proc
	s.proc = nil
	return p
}

// terminate asks the process to exit and escalates to SIGKILL after the
// grace period. It returns only after the monitor goroutine has reaped the
// process, so p.exitCode is valid afterwards.
func (s *Supervisor) terminate(p *managedProcess) {
	if p.exited() {
		return
	}

	s.log.Info("terminating process", "run", p.runID, "pid", p.cmd.Process.Pid)
	if err := p.cmd.Process.Signal(syscall.SIGTERM); err != nil {
		s.log.Warn("SIGTERM failed", "run", p.runID, "error", err)
	}

	select {
	case <-p.waitDone:
		return
	case <-time.After(s.grace):
	}

	s.log.Warn("grace period elapsed, killing process", "run", p.runID)
	if err := p.cmd.Process.Kill(); err != nil {
		s.log.Error("kill failed", "run", p.runID, "error", err)
	}
	<-p.waitDone
}

// destroy scrubs a secret if one was captured.
func destroy(secret *credential.Secret) {
	if secret != nil {
		secret.Destroy()
	}
}

// codeString formats an optional exit code for diagnostics.
func codeString(code *int) string {
	if code == nil {
		return "unknown"
	}
	return fmt.Sprintf("%d", *code)
}
