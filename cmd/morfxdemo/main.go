// Command morfxdemo is a small cobra CLI that exercises morfx's structural
// editing packages — refactor, queryedit and inserter — against the sample
// fixtures, to demonstrate the library end to end without writing any Go.
//
// Grounded on the teacher's demo/cmd/main.go DemoRunner: a scenario table
// keyed by name, a "run [scenario]" command defaulting to every scenario in
// order, and a "list" command — rebuilt over morfxtree/refactor/queryedit
// instead of the teacher's core.AgentQuery/TransformOp provider interface.
package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oxhq/morfx/inserter"
	"github.com/oxhq/morfx/internal/difftext"
	"github.com/oxhq/morfx/internal/fixtures"
	"github.com/oxhq/morfx/morfxtree"
	"github.com/oxhq/morfx/providers"
	_ "github.com/oxhq/morfx/providers/golang"
	_ "github.com/oxhq/morfx/providers/javascript"
	_ "github.com/oxhq/morfx/providers/php"
	_ "github.com/oxhq/morfx/providers/python"
	_ "github.com/oxhq/morfx/providers/typescript"
	"github.com/oxhq/morfx/queryedit"
	"github.com/oxhq/morfx/refactor"
)

// scenario is one self-contained demonstration: parse the named language's
// fixture, run a transformation or query, and describe what happened.
type scenario struct {
	description string
	language    string
	isQuery     bool
	run         func(tree *morfxtree.Tree, source []byte) (string, error)
}

func scenarios() map[string]scenario {
	return map[string]scenario{
		"go-list-functions": {
			description: "Go: list every top-level function and method",
			language:    "go",
			isQuery:     true,
			run:         runListFunctions,
		},
		"go-rename-validate-email": {
			description: "Go: rename ValidateEmail to IsValidEmail at its declaration and call sites",
			language:    "go",
			run:         runGoRename,
		},
		"js-insert-phone-validation": {
			description: "JavaScript: insert a phone validator after validateEmail",
			language:    "javascript",
			run:         runJSInsert,
		},
		"ts-remove-comments": {
			description: "TypeScript: strip every comment",
			language:    "typescript",
			run:         runTSRemoveComments,
		},
		"php-wrap-class": {
			description: "PHP: wrap the User class in a generated-class banner comment",
			language:    "php",
			run:         runPHPWrap,
		},
	}
}

func runListFunctions(tree *morfxtree.Tree, source []byte) (string, error) {
	spec, ok := providers.Resolve("go")
	if !ok {
		return "", fmt.Errorf("go provider not registered")
	}

	r := queryedit.New(source, tree, nil)
	if _, err := r.Query("go", `[(function_declaration) (method_declaration)] @fn`); err != nil {
		return "", err
	}
	matches, err := r.Matches()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for i, m := range matches {
		cap, ok := m.CaptureByName("@fn")
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "  %d. %s\n", i+1, spec.ExtractNodeName(cap.Node))
	}
	return b.String(), nil
}

func runGoRename(tree *morfxtree.Tree, source []byte) (string, error) {
	f := refactor.New(source, tree, nil, "go")
	out, err := f.RenameSymbol("ValidateEmail", "IsValidEmail", refactor.KindFunction)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func runJSInsert(tree *morfxtree.Tree, source []byte) (string, error) {
	r := queryedit.New(source, tree, nil)
	if _, err := r.Query("javascript", `(function_declaration name: (identifier) @name) @fn`); err != nil {
		return "", err
	}
	r.Where(func(m morfxtree.Match) bool {
		c, ok := m.CaptureByName("@name")
		return ok && c.Node.Text() == "validateEmail"
	})
	matches, err := r.Matches()
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("validateEmail function not found")
	}
	fnNode, _ := matches[0].CaptureByName("@fn")

	ins := inserter.New(source)
	ins.After(fnNode.Node)
	if err := ins.InsertStatement(strings.TrimSpace(`
function validatePhone(phone) {
    return /^\+?[\d\s\-()]+$/.test(phone) && phone.length >= 10;
}`)); err != nil {
		return "", err
	}
	return string(ins.Rewrite()), nil
}

func runTSRemoveComments(tree *morfxtree.Tree, source []byte) (string, error) {
	r := queryedit.New(source, tree, nil)
	if _, err := r.Query("typescript", `(comment) @c`); err != nil {
		return "", err
	}
	r.Remove("@c")
	out, err := r.Rewrite()
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func runPHPWrap(tree *morfxtree.Tree, source []byte) (string, error) {
	r := queryedit.New(source, tree, nil)
	if _, err := r.Query("php", `(class_declaration) @class`); err != nil {
		return "", err
	}
	r.Wrap("@class", "// --- begin generated class ---\n", "\n// --- end generated class ---")
	out, err := r.Rewrite()
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func runScenario(name string, s scenario) error {
	fmt.Printf("\n%s\n", s.description)
	fmt.Println(strings.Repeat("-", len(s.description)))

	path, source, err := fixtures.ForLanguage(s.language)
	if err != nil {
		return err
	}

	p, err := morfxtree.NewParser(s.language)
	if err != nil {
		return err
	}
	tree, err := p.Parse(source)
	if err != nil {
		return err
	}
	defer tree.Close()

	result, err := s.run(tree, source)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	if s.isQuery {
		fmt.Printf("fixture: %s\n\n%s\n", path, result)
		return nil
	}

	fmt.Printf("fixture: %s\n\n%s", path, difftext.Unified(string(source), result, path, 2))
	return nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "morfxdemo",
		Short: "Demonstrate morfx's structural editing packages against sample fixtures",
	}

	run := &cobra.Command{
		Use:   "run [scenario]",
		Short: "Run one demo scenario, or every scenario if none is named",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			all := scenarios()
			if len(args) == 1 {
				s, ok := all[args[0]]
				if !ok {
					return fmt.Errorf("unknown scenario %q (see: morfxdemo list)", args[0])
				}
				return runScenario(args[0], s)
			}

			names := make([]string, 0, len(all))
			for name := range all {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				if err := runScenario(name, all[name]); err != nil {
					fmt.Fprintf(os.Stderr, "error: %v\n", err)
				}
			}
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List available demo scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			all := scenarios()
			names := make([]string, 0, len(all))
			for name := range all {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Printf("%-28s %s\n", name, all[name].description)
			}
			return nil
		},
	}

	root.AddCommand(run, list)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
