package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/goalstack/internal/dto"
	"github.com/aretw0/goalstack/internal/presentation/scene"
	"github.com/aretw0/goalstack/internal/presentation/tui"
	"github.com/aretw0/goalstack/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by --format.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Printer writes command results in the selected format.
// Rich text output goes through glamour and termenv; plain text is stable for pipes.
type Printer struct {
	Out     io.Writer
	Format  string
	Rich    bool
	palette tui.Palette
	render  func(string) (string, error)
	yamlEnc *yaml.Encoder
}

// NewPrinter validates format and prepares the renderers.
func NewPrinter(out io.Writer, format string, rich bool) (*Printer, error) {
	switch format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return nil, fmt.Errorf("unknown format %q: expected text, json or yaml", format)
	}

	p := &Printer{Out: out, Format: format, Rich: rich, palette: tui.PlainPalette()}
	if rich && format == FormatText {
		p.palette = tui.NewPalette(out)
		p.render = tui.NewRenderer("", 0)
	}
	return p, nil
}

// Structured writes v as indented JSON or as one YAML document.
func (p *Printer) Structured(v any) error {
	if p.Format == FormatYAML {
		if p.yamlEnc == nil {
			p.yamlEnc = yaml.NewEncoder(p.Out)
			p.yamlEnc.SetIndent(2)
		}
		return p.yamlEnc.Encode(v)
	}
	enc := json.NewEncoder(p.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Result prints a finished or bounded run.
func (p *Printer) Result(rep tui.Report, resp dto.PlanResponse) error {
	if p.Format != FormatText {
		return p.Structured(resp)
	}

	if p.render != nil {
		out, err := p.render(rep.Markdown())
		if err != nil {
			return err
		}
		_, err = io.WriteString(p.Out, out)
		return err
	}

	var sb strings.Builder
	if rep.Done {
		fmt.Fprintf(&sb, "plan: %d operators in %d steps\n", len(rep.Plan), rep.Steps)
	} else {
		fmt.Fprintf(&sb, "stopped after %d of %d steps with %d operators\n", rep.Steps, rep.Limit, len(rep.Plan))
	}
	sb.WriteString(scene.Plan(rep.Plan))
	if !rep.Done {
		sb.WriteString("reached:\n")
		sb.WriteString(scene.Render(rep.Final))
	}
	_, err := io.WriteString(p.Out, sb.String())
	return err
}

// StepView is the structured form of one interactive step.
type StepView struct {
	Record  domain.StepRecord  `json:"record" yaml:"record"`
	Agenda  []domain.Entry     `json:"agenda" yaml:"agenda"`
	Current domain.Arrangement `json:"current" yaml:"current"`
}

// Step prints one step record. Text output shows the world after each commit.
func (p *Printer) Step(v StepView) error {
	if p.Format == FormatJSON {
		// One object per line so consumers can stream.
		return json.NewEncoder(p.Out).Encode(v)
	}
	if p.Format == FormatYAML {
		return p.Structured(v)
	}

	var sb strings.Builder
	rec := v.Record
	if p.render != nil {
		fmt.Fprintf(&sb, "%s %s %s\n", p.palette.Faint(fmt.Sprintf("#%d", rec.Index)), p.palette.Rule(rec.Rule.String()), rec.Current)
		if rec.Committed != nil {
			fmt.Fprintf(&sb, "   commit %s\n", p.palette.Operator(rec.Committed.String()))
		}
	} else {
		sb.WriteString(scene.Step(rec))
		sb.WriteByte('\n')
	}
	if rec.Committed != nil {
		sb.WriteString(scene.Render(v.Current))
	}
	_, err := io.WriteString(p.Out, sb.String())
	return err
}

// Agenda prints the goal stack, top first.
func (p *Printer) Agenda(entries []domain.Entry) error {
	if p.Format != FormatText {
		return p.Structured(entries)
	}
	_, err := io.WriteString(p.Out, scene.Agenda(entries))
	return err
}
