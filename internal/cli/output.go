package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/itchyny/gojq"
)

// Printer writes command results as JSON, optionally through a jq filter.
type Printer struct {
	Out    io.Writer
	Pretty bool
	// JQ, when set, is applied to the result; each output is printed on its own.
	JQ string
}

// Print encodes v as one JSON document (or one per jq output).
func (p *Printer) Print(ctx context.Context, v any) error {
	if p.JQ == "" {
		return p.encode(v)
	}

	outputs, err := Filter(ctx, p.JQ, v)
	if err != nil {
		return err
	}
	for _, out := range outputs {
		if err := p.encode(out); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) encode(v any) error {
	enc := json.NewEncoder(p.Out)
	enc.SetEscapeHTML(false)
	if p.Pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

// Filter runs a jq expression over v. v is first round-tripped through JSON so
// that struct results look the same to jq as they do on the wire.
func Filter(ctx context.Context, expression string, v any) ([]any, error) {
	query, err := gojq.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("jq parse error in %q: %w", expression, err)
	}
	code, err := gojq.Compile(query,
		// Sandbox: return empty env to block $ENV and env access.
		gojq.WithEnvironLoader(func() []string { return nil }),
	)
	if err != nil {
		return nil, fmt.Errorf("jq compile error in %q: %w", expression, err)
	}

	input, err := normalize(v)
	if err != nil {
		return nil, err
	}

	var results []any
	iter := code.RunWithContext(ctx, input)
	for {
		val, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := val.(error); isErr {
			if haltErr, ok := err.(*gojq.HaltError); ok && haltErr.Value() == nil {
				break
			}
			return nil, fmt.Errorf("jq evaluation failed for %q: %w", expression, err)
		}
		results = append(results, val)
	}
	return results, nil
}

func normalize(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ReadInput returns the contents of path, or of stdin when path is "" or "-".
func ReadInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
