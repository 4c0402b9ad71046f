package wizard

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ppiankov/footfit/internal/model"
	"github.com/ppiankov/footfit/internal/render"
)

// errQuit ends the prompt loop without an error
var errQuit = errors.New("quit")

// Prompter drives a Session over a line-oriented terminal
type Prompter struct {
	scanner     *bufio.Scanner
	out         io.Writer
	recommender Recommender
	renderer    *render.Renderer
	speak       bool
}

// NewPrompter creates a prompter reading answers from in and writing to out
func NewPrompter(in io.Reader, out io.Writer, recommender Recommender, renderer *render.Renderer, speak bool) *Prompter {
	return &Prompter{
		scanner:     bufio.NewScanner(in),
		out:         out,
		recommender: recommender,
		renderer:    renderer,
		speak:       speak,
	}
}

// Run loops until the user quits or input ends
func (p *Prompter) Run(s *Session) error {
	for {
		fmt.Fprintf(p.out, "\nStep %d / %d: %s\n", s.Step(), StepCount, s.Step())

		var err error
		switch s.Step() {
		case StepPersonal:
			err = p.personal(s)
		case StepFoot:
			err = p.foot(s)
		case StepResult:
			err = p.result(s)
		}

		if errors.Is(err, errQuit) || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (p *Prompter) personal(s *Session) error {
	age, err := p.askIndex("Age group", labels(model.AgeBrackets), DefaultAgeIndex)
	if err != nil {
		return err
	}
	weight, err := p.askIndex("Weight category", labels(model.WeightBrackets), DefaultWeightIndex)
	if err != nil {
		return err
	}
	activity, err := p.askIndex("Daily activity level", labels(model.ActivityLevels), DefaultActivityIndex)
	if err != nil {
		return err
	}
	if err := s.SetPersonal(age, weight, activity); err != nil {
		return err
	}

	switch cmd, err := p.askCommand("[n]ext, [q]uit", "nq"); {
	case err != nil:
		return err
	case cmd == 'n':
		return s.Next()
	default:
		return errQuit
	}
}

func (p *Prompter) foot(s *Session) error {
	foot, err := p.askIndex("Foot type", labels(model.FootTypes), DefaultFootIndex)
	if err != nil {
		return err
	}
	pref, err := p.askIndex("Preferred footwear type (optional)", PreferenceOptions, DefaultPreferenceIndex)
	if err != nil {
		return err
	}
	if err := s.SetFoot(foot, pref); err != nil {
		return err
	}

	switch cmd, err := p.askCommand("[b]ack, [n]ext, [q]uit", "bnq"); {
	case err != nil:
		return err
	case cmd == 'b':
		s.Back()
		return nil
	case cmd == 'n':
		return s.Next()
	default:
		return errQuit
	}
}

func (p *Prompter) result(s *Session) error {
	cmd, err := p.askCommand("[a]nalyze, [b]ack, [s]tart over, [q]uit", "absq")
	if err != nil {
		return err
	}

	switch cmd {
	case 'a':
		rec, err := s.Analyze(p.recommender)
		if err != nil {
			return fmt.Errorf("analyze: %w", err)
		}
		p.renderer.RenderSummary(p.out, rec)
		if p.speak {
			fmt.Fprintf(p.out, "%s\n", render.SpeechText(rec))
		}
	case 'b':
		s.Back()
	case 's':
		s.Reset()
	default:
		return errQuit
	}
	return nil
}

// askIndex lists options and reads a choice; an empty line takes the default
func (p *Prompter) askIndex(label string, options []string, def int) (int, error) {
	for {
		fmt.Fprintf(p.out, "%s:\n", label)
		for i, opt := range options {
			fmt.Fprintf(p.out, "  %d) %s\n", i, opt)
		}
		fmt.Fprintf(p.out, "Choice [%d]: ", def)

		line, err := p.readLine()
		if err != nil {
			return 0, err
		}
		if line == "" {
			return def, nil
		}

		idx, err := strconv.Atoi(line)
		if err == nil && idx >= 0 && idx < len(options) {
			return idx, nil
		}
		fmt.Fprintf(p.out, "Please enter a number between 0 and %d.\n", len(options)-1)
	}
}

// askCommand reads a single-letter command from the allowed set
func (p *Prompter) askCommand(prompt, allowed string) (byte, error) {
	for {
		fmt.Fprintf(p.out, "%s: ", prompt)

		line, err := p.readLine()
		if err != nil {
			return 0, err
		}
		if line != "" && strings.IndexByte(allowed, line[0]) >= 0 {
			return line[0], nil
		}
		fmt.Fprintf(p.out, "Unknown command %q.\n", line)
	}
}

func (p *Prompter) readLine() (string, error) {
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", io.EOF
	}
	return strings.ToLower(strings.TrimSpace(p.scanner.Text())), nil
}

type labeled interface {
	Label() string
}

func labels[T labeled](items []T) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Label()
	}
	return out
}
