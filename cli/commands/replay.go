package commands

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/petal-labs/calla/core"
	"github.com/petal-labs/calla/pipeline"
	"github.com/petal-labs/calla/profiles"
)

// deltaEvent is one line of replay input: a decoded streaming delta.
type deltaEvent struct {
	Index int    `json:"index"`
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Args  string `json:"args,omitempty"`

	// Done marks the turn-completion signal; the pipeline is drained and the
	// result printed.
	Done bool `json:"done,omitempty"`
}

func (a *App) newReplayCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "replay [file]",
		Short: "Replay captured delta events through the assembly pipeline",
		Long: `Replay reads tool-call delta events as JSON Lines from a file or stdin,
feeds them through the assembly pipeline under the selected capability
profile, and prints the accepted and rejected calls for each turn.

Event format, one object per line:

  {"index":0,"name":"todo_write"}
  {"index":0,"args":"{\"items\":["}
  {"index":0,"args":"\"a\",\"b\"]}"}
  {"done":true}

A stream that ends without {"done":true} is treated as interrupted: pending
calls are reported as rejected with an incomplete-stream reason.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runReplay(args)
		},
	}
}

func (a *App) runReplay(args []string) error {
	in := a.stdin
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	} else if f, ok := a.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprintln(a.stderr, "reading delta events from stdin, one JSON object per line; finish with Ctrl-D")
	}

	prof, err := a.resolveProfile()
	if err != nil {
		return err
	}

	p := pipeline.New(prof.Capabilities,
		pipeline.WithHints(prof),
		pipeline.WithTelemetry(zapHook{log: a.logger}),
	)

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	lineNo := 0
	pending := false
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var ev deltaEvent
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}

		if ev.Done {
			if err := a.printResult(p.Process()); err != nil {
				return err
			}
			pending = false
			continue
		}

		frag := core.Fragment{Index: ev.Index, ID: ev.ID, Name: ev.Name, ArgsChunk: ev.Args}
		if err := p.AddFragment(frag); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		if !frag.Empty() {
			pending = true
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	if pending {
		// Stream ended without a completion signal.
		return a.printResult(p.Interrupt())
	}
	return nil
}

// resolveProfile selects the capability profile for this run: a profile from
// the config file wins over a built-in of the same name, and config-level
// hints apply on top of either.
func (a *App) resolveProfile() (profiles.Profile, error) {
	name := a.profileName
	if name == "" {
		name = "strict"
	}

	var prof profiles.Profile
	if pc, ok := a.cfg.Profiles[name]; ok {
		caps, err := pc.Capabilities()
		if err != nil {
			return profiles.Profile{}, fmt.Errorf("profile %s: %w", name, err)
		}
		prof = profiles.Profile{Capabilities: caps}
	} else {
		var err error
		prof, err = profiles.Resolve(name)
		if err != nil {
			return profiles.Profile{}, err
		}
	}

	if len(a.cfg.Hints) > 0 {
		merged := make(map[string]core.SchemaHint, len(prof.Hints)+len(a.cfg.Hints))
		for tool, hint := range prof.Hints {
			merged[tool] = hint
		}
		for tool, hc := range a.cfg.Hints {
			hint, err := hc.Hint()
			if err != nil {
				return profiles.Profile{}, fmt.Errorf("hint %s: %w", tool, err)
			}
			merged[strings.ToLower(strings.TrimSpace(tool))] = hint
		}
		prof.Hints = merged
	}

	return prof, nil
}

func (a *App) printResult(result *core.Result) error {
	if a.jsonOutput {
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Fprintf(a.stdout, "turn: %d accepted, %d rejected (total %d)\n",
		result.Stats.Valid, result.Stats.Invalid, result.Stats.Total)
	for _, call := range result.Accepted {
		params, err := json.Marshal(call.Parameters)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "  ok   #%d %s %s", call.Index, call.NormalizedName, params)
		if call.Note != "" {
			fmt.Fprintf(a.stdout, " (%s)", call.Note)
		}
		fmt.Fprintln(a.stdout)
	}
	for _, call := range result.Rejected {
		fmt.Fprintf(a.stdout, "  FAIL #%d %s: %s\n",
			call.Index, call.Name, strings.Join(call.Errors, "; "))
	}
	return nil
}

// zapHook adapts a zap logger to the pipeline's telemetry hook. Events carry
// sizes and counts only, never argument content.
type zapHook struct {
	log *zap.Logger
}

func (h zapHook) OnFragment(e core.FragmentEvent) {
	h.log.Debug("fragment accepted",
		zap.Int("index", e.Index),
		zap.Int("seq", e.Seq),
		zap.Int("name_len", e.NameLen),
		zap.Int("args_len", e.ArgsLen),
	)
}

func (h zapHook) OnTurn(e core.TurnEvent) {
	h.log.Info("turn drained",
		zap.Int("accepted", e.Accepted),
		zap.Int("rejected", e.Rejected),
		zap.Bool("interrupted", e.Interrupted),
		zap.Duration("elapsed", e.Elapsed),
	)
}
