package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/kardolus/ue-agent/agent/tools"
	"github.com/kardolus/ue-agent/agent/types"
	"github.com/kardolus/ue-agent/command"
	"github.com/kardolus/ue-agent/config"
	errtypes "github.com/kardolus/ue-agent/types"
	"go.uber.org/zap"
)

// ErrInterrupt is returned by a LineReader when the user presses Ctrl-C.
var ErrInterrupt = errors.New("interrupt")

const (
	rule          = "======================================================================"
	goodbyeMsg    = "\n👋 Goodbye!"
	interruptMsg  = "\n\n👋 Interrupted"
	processingMsg = "\n⏳ Processing..."
)

type LineReader interface {
	// ReadLine shows prompt and returns the next line without its newline.
	// It returns io.EOF at end of input and ErrInterrupt on Ctrl-C.
	ReadLine(prompt string) (string, error)
}

type Agent interface {
	RunAgentGoal(ctx context.Context, goal string) (types.Outcome, error)
}

type Dispatcher interface {
	Run(cmd command.Command) tools.Result
}

// Clock provides the time shown in prompt placeholders.
type Clock interface {
	Now() time.Time
}

type Session struct {
	cfg        config.Config
	in         LineReader
	out        *zap.SugaredLogger
	agent      Agent
	dispatcher Dispatcher
	clock      Clock

	requests int
	tokens   int
}

func New(cfg config.Config, in LineReader, out *zap.SugaredLogger, agent Agent, dispatcher Dispatcher, clock Clock) *Session {
	return &Session{
		cfg:        cfg,
		in:         in,
		out:        out,
		agent:      agent,
		dispatcher: dispatcher,
		clock:      clock,
	}
}

// Run reads and answers lines until exit, end of input or an interrupt. Only a
// failing reader ends it with an error; request failures are printed.
func (s *Session) Run(ctx context.Context) error {
	s.printBanner()

	for {
		line, err := s.in.ReadLine(s.prompt())
		if errors.Is(err, ErrInterrupt) || ctx.Err() != nil {
			s.out.Info(interruptMsg)
			return nil
		}
		if errors.Is(err, io.EOF) {
			s.out.Info(goodbyeMsg)
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if isExit(line) {
			s.out.Info(goodbyeMsg)
			return nil
		}

		s.Handle(ctx, line)

		if ctx.Err() != nil {
			s.out.Info(interruptMsg)
			return nil
		}
	}
}

// Handle answers a single non-empty line: a direct command runs locally,
// anything else goes to the agent.
func (s *Session) Handle(ctx context.Context, line string) {
	cmd, ok, err := command.Parse(line)
	if err != nil {
		s.out.Errorf("❌ %s", errtypes.Message(err))
		return
	}
	if ok {
		s.out.Infof("\n🤖 Agent:\n%s", s.dispatcher.Run(cmd).String())
		return
	}

	s.out.Info(processingMsg)
	s.requests++

	outcome, err := s.agent.RunAgentGoal(ctx, line)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		s.out.Error(s.describeError(err))
		return
	}
	s.tokens += outcome.Tokens

	s.out.Infof("\n🤖 Agent:\n%s", outcome.Answer)
	if outcome.Stats != "" {
		s.out.Infof("\n📊 [%s]", outcome.Stats)
	}
}

func (s *Session) describeError(err error) string {
	switch errtypes.KindOf(err) {
	case errtypes.KindTimeout:
		return fmt.Sprintf("❌ Timed out after %ds (the response may be too long)", s.cfg.Timeout)
	case errtypes.KindConnectionFailure:
		return fmt.Sprintf("❌ Cannot connect to the model server at %s (run `ollama serve`)", s.cfg.URL)
	default:
		return fmt.Sprintf("❌ Error: %s", errtypes.Message(err))
	}
}

func (s *Session) prompt() string {
	return config.Prompt(s.cfg, s.requests, s.tokens, s.clock.Now())
}

func (s *Session) printBanner() {
	s.out.Info(rule)
	s.out.Info("🎮 UE Development Agent - Ready!")
	s.out.Info(rule)
	s.out.Info("")
	s.out.Info("Usage:")
	for _, d := range command.Registry() {
		s.out.Infof("  > %s", d.Usage)
	}
	s.out.Info("  > any other text is sent to the model")
	s.out.Info("")
	s.out.Info("Quit: exit or quit")
	s.out.Info(rule)
}

func isExit(line string) bool {
	l := strings.ToLower(line)
	return l == "exit" || l == "quit"
}

// ScannerReader reads lines from a non-interactive input such as a pipe.
// Lines are scanned in the background so a cancelled context ends ReadLine
// with ErrInterrupt even while the input is idle.
type ScannerReader struct {
	ctx     context.Context
	results chan scanResult
}

type scanResult struct {
	line string
	err  error
}

func NewScannerReader(ctx context.Context, r io.Reader) *ScannerReader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	sr := &ScannerReader{ctx: ctx, results: make(chan scanResult)}
	go sr.scan(s)
	return sr
}

func (r *ScannerReader) scan(s *bufio.Scanner) {
	defer close(r.results)

	for s.Scan() {
		select {
		case r.results <- scanResult{line: s.Text()}:
		case <-r.ctx.Done():
			return
		}
	}

	err := s.Err()
	if err == nil {
		err = io.EOF
	}
	select {
	case r.results <- scanResult{err: err}:
	case <-r.ctx.Done():
	}
}

func (r *ScannerReader) ReadLine(string) (string, error) {
	select {
	case res, ok := <-r.results:
		if !ok {
			return "", io.EOF
		}
		return res.line, res.err
	case <-r.ctx.Done():
		return "", ErrInterrupt
	}
}
