package dashboard

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Confirmer is the yes/no decision point before a delete.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

// Confirm calls f.
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// AlwaysConfirm approves every prompt, used for --yes.
var AlwaysConfirm = ConfirmFunc(func(context.Context, string) (bool, error) { return true, nil })

// NeverConfirm declines every prompt, used when no terminal is attached.
var NeverConfirm = ConfirmFunc(func(context.Context, string) (bool, error) { return false, nil })

// PromptConfirmer asks on Out and reads a y/n answer from In.
// Anything other than y or yes is a refusal.
type PromptConfirmer struct {
	In  io.Reader
	Out io.Writer
}

// Confirm writes the prompt and waits for one line of input.
func (p *PromptConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	if _, err := fmt.Fprintf(p.Out, "%s [y/N]: ", prompt); err != nil {
		return false, err
	}

	type answer struct {
		line string
		err  error
	}
	// buffered: the reader may finish after ctx is done
	ch := make(chan answer, 1)
	go func() {
		line, err := bufio.NewReader(p.In).ReadString('\n')
		ch <- answer{line, err}
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case a := <-ch:
		if a.err != nil && a.err != io.EOF {
			return false, a.err
		}
		switch strings.ToLower(strings.TrimSpace(a.line)) {
		case "y", "yes":
			return true, nil
		default:
			return false, nil
		}
	}
}
