// Package repl implements the line-based prompt for interactive play.
//
// The protocol: each line is either the literal word "state", printing the
// current score and field availability, or a whitespace-separated roll --
// the d6 faces as one run of digits, optionally followed by the d10 face for
// Extreme. Bad input yields an error line and the loop continues.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
	"k8s.io/klog/v2"

	. "github.com/janpfeifer/yahtzeeGo/internal/game"
	"github.com/janpfeifer/yahtzeeGo/internal/viewmodel"
)

var (
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// REPL reads rolls and prints recommendations until its input ends.
type REPL struct {
	vm    *viewmodel.ViewModel
	in    io.Reader
	out   io.Writer
	color bool
}

// New returns a REPL reading from in and writing to out. With color enabled
// the prompt and error lines are styled.
func New(vm *viewmodel.ViewModel, in io.Reader, out io.Writer, color bool) *REPL {
	return &REPL{vm: vm, in: in, out: out, color: color}
}

// Run loops until in is exhausted. Only I/O failures end it early;
// per-line problems are reported and the loop continues.
func (r *REPL) Run() error {
	prompt := ">>> "
	if r.color {
		prompt = promptStyle.Render(prompt)
	}
	interactive := false
	if file, ok := r.in.(*os.File); ok {
		interactive = term.IsTerminal(int(file.Fd()))
	}

	scanner := bufio.NewScanner(r.in)
	for {
		if interactive {
			fmt.Fprint(r.out, prompt)
		}
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		var output string
		var err error
		if input == "state" {
			output = r.stateReport()
		} else {
			output, err = r.recommend(input)
		}
		if err != nil {
			klog.V(1).Infof("Rejected input %q: %v", input, err)
			output = "Error: " + err.Error()
			if r.color {
				output = errorStyle.Render(output)
			}
		}
		fmt.Fprintln(r.out, output)
	}
	return scanner.Err()
}

// stateReport renders the "state" command: scores, per-field availability
// and -- where the variant has them -- the Yahtzee-bonus and chip status.
func (r *REPL) stateReport() string {
	rules := r.vm.Rules
	state := r.vm.State

	var sb strings.Builder
	fmt.Fprintf(&sb, "You have scored %d in the upper section and %d in the lower section.\n",
		state.Score[US], state.Score[LS])
	for _, section := range []Section{US, LS} {
		for field, rule := range rules.Fields[section] {
			status := "unused"
			if state.Used[section][field] {
				status = "used"
			}
			fmt.Fprintf(&sb, "\n%s: %s", rule.Name, status)
		}
	}
	if rules.HasYahtzeeBonus() {
		negation := "not "
		if state.ScoredYahtzee {
			negation = ""
		}
		fmt.Fprintf(&sb, "\nYou have %sscored a Yahtzee.", negation)
	}
	if rules.Chips > 0 {
		fmt.Fprintf(&sb, "\nYou have %d chip(s) left.", state.Chips)
	}
	return sb.String()
}

func (r *REPL) recommend(input string) (string, error) {
	hand, err := parseHand(input)
	if err != nil {
		return "", err
	}
	recommendation, err := r.vm.Recommend(hand)
	if err != nil {
		return "", err
	}
	switch rec := recommendation.(type) {
	case viewmodel.Field:
		return fmt.Sprintf("You should score as %s.", r.vm.Rules.Fields[rec.Section][rec.Field].Name), nil
	case viewmodel.Reroll:
		return formatKeep(rec.Keep), nil
	}
	// The two cases above are the whole Recommendation interface.
	panic("unhandled recommendation type")
}

// parseHand turns an input line into an (unsorted) partial hand: a run of
// d6 digits, optionally followed by a d10 face.
func parseHand(input string) (PartialHand, error) {
	parts := strings.Fields(input)
	if len(parts) > 2 {
		return nil, fmt.Errorf("expected d6 faces and at most one d10 face, got %d groups", len(parts))
	}
	var hand PartialHand
	for _, c := range parts[0] {
		pip, err := strconv.Atoi(string(c))
		if err != nil {
			return nil, fmt.Errorf("invalid d6 face %q", string(c))
		}
		hand = append(hand, PartialDie{Die: D6, Pip: Pip(pip)})
	}
	if len(parts) == 2 {
		pip, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("invalid d10 face %q", parts[1])
		}
		hand = append(hand, PartialDie{Die: D10, Pip: Pip(pip)})
	}
	return hand, nil
}

// formatKeep renders a reroll recommendation, e.g.
// "You should keep d6 1, 3 and the d10.".
func formatKeep(keep PartialHand) string {
	var d6s []string
	keptD10 := false
	for _, pd := range keep {
		switch pd.Die {
		case D6:
			d6s = append(d6s, strconv.Itoa(int(pd.Pip)))
		case D10:
			keptD10 = true
		}
	}
	if len(d6s) == 0 && !keptD10 {
		return "You should keep nothing."
	}
	var out string
	if len(d6s) > 0 {
		out = "You should keep d6 " + strings.Join(d6s, ", ")
	}
	if keptD10 {
		if out == "" {
			out = "You should keep the d10"
		} else {
			out += " and the d10"
		}
	}
	return out + "."
}
