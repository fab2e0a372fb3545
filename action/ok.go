package action

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/wayfarer-tools/findx/eval"
	"github.com/wayfarer-tools/findx/pkg/platform/terminal"
)

// Ok behaves like Exec, but first prompts the user on the controlling
// terminal for confirmation, refusing to run if standard input isn't
// actually a terminal (matching find's own refusal to prompt blindly when
// stdin has been redirected).
func (r *Registry) Ok(command []string, entry *eval.Entry, inDir bool) (bool, error) {
	if inDir && execdirUnsafe(entry) {
		return false, nil
	}

	substitution := entry.Path
	if inDir {
		substitution = filepath.Base(entry.Path)
	}
	resolved := substituteBraces(command, substitution)

	prompt := color.YellowString("< %s ... %s > ? ", strings.Join(resolved, " "), terminal.NeutralizeControlCharacters(entry.Path))
	fmt.Fprint(os.Stderr, prompt)

	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		fmt.Fprintln(os.Stderr, "n")
		return false, nil
	}

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false, nil
	}

	response := strings.ToLower(strings.TrimSpace(line))
	if response != "y" && response != "yes" {
		return false, nil
	}

	dir := ""
	if inDir {
		dir = filepath.Dir(entry.Path)
	}
	return runCommand(resolved, dir)
}
