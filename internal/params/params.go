// ABOUTME: Detection and validation of $1..$N, $@, and $* placeholders
// ABOUTME: Generates usage examples with auto-detected argument names

package params

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	positionalRe = regexp.MustCompile(`\$(\d+)`)
	allArgsRe    = regexp.MustCompile(`\$[@*]`)
	anyParamRe   = regexp.MustCompile(`\$\d+|\$@|\$\*`)
)

// Extract returns the unique parameter placeholders in a command,
// positionals in numeric order followed by $@ and $*.
func Extract(command string) []string {
	seen := map[string]bool{}
	var positional []int
	for _, m := range positionalRe.FindAllStringSubmatch(command, -1) {
		n, _ := strconv.Atoi(m[1])
		if !seen[m[0]] {
			seen[m[0]] = true
			positional = append(positional, n)
		}
	}
	sort.Ints(positional)

	var out []string
	for _, n := range positional {
		out = append(out, "$"+strconv.Itoa(n))
	}

	var special []string
	for _, m := range allArgsRe.FindAllString(command, -1) {
		if !seen[m] {
			seen[m] = true
			special = append(special, m)
		}
	}
	sort.Strings(special)
	return append(out, special...)
}

// MaxIndex returns the highest positional parameter number, or 0.
func MaxIndex(command string) int {
	max := 0
	for _, m := range positionalRe.FindAllStringSubmatch(command, -1) {
		if n, _ := strconv.Atoi(m[1]); n > max {
			max = n
		}
	}
	return max
}

// HasParameters reports whether a command uses any placeholder.
func HasParameters(command string) bool {
	return anyParamRe.MatchString(command)
}

// Validate checks that positional parameters start at $1 with no gaps.
// Returns nil for commands without parameters.
func Validate(command string) error {
	nums := map[int]bool{}
	for _, m := range positionalRe.FindAllStringSubmatch(command, -1) {
		n, _ := strconv.Atoi(m[1])
		nums[n] = true
	}
	if len(nums) == 0 {
		return nil
	}

	sorted := make([]int, 0, len(nums))
	for n := range nums {
		sorted = append(sorted, n)
	}
	sort.Ints(sorted)

	if sorted[0] != 1 {
		return fmt.Errorf("parameters should start at $1")
	}
	for i := 0; i < len(sorted)-1; i++ {
		if sorted[i+1]-sorted[i] > 1 {
			return fmt.Errorf("missing parameter $%d in sequence", sorted[i]+1)
		}
	}
	return nil
}

// Describe returns a readable name for a placeholder, preferring the
// provided descriptions.
func Describe(param string, descriptions map[string]string) string {
	if d, ok := descriptions[param]; ok {
		return d
	}
	switch param {
	case "$@":
		return "all arguments"
	case "$*":
		return "all arguments as string"
	}
	return "arg" + strings.TrimPrefix(param, "$")
}

// UsageExample renders `name <hint> <hint>` for a parameterized
// command, or just the name when there are no parameters.
func UsageExample(name, command string, descriptions map[string]string) string {
	if !HasParameters(command) {
		return name
	}
	if descriptions == nil {
		descriptions = AutoDescriptions(command)
	}

	var hints []string
	for _, p := range Extract(command) {
		hints = append(hints, "<"+Describe(p, descriptions)+">")
	}
	return name + " " + strings.Join(hints, " ")
}

// commandHints maps command shapes to suggested parameter names.
var commandHints = []struct {
	re    *regexp.Regexp
	descs map[string]string
}{
	{regexp.MustCompile(`(^|\s)cp\b.*\$1.*\$2`), map[string]string{"$1": "source", "$2": "destination"}},
	{regexp.MustCompile(`(^|\s)mv\b.*\$1.*\$2`), map[string]string{"$1": "source", "$2": "destination"}},
	{regexp.MustCompile(`(^|\s)git\s+commit\b.*\$1`), map[string]string{"$1": "message"}},
	{regexp.MustCompile(`(^|\s)docker\s+run\b.*\$1`), map[string]string{"$1": "image"}},
	{regexp.MustCompile(`(^|\s)ssh\b.*\$1`), map[string]string{"$1": "host"}},
	{regexp.MustCompile(`(^|\s)curl\b.*\$1`), map[string]string{"$1": "url"}},
	{regexp.MustCompile(`(^|\s)echo\b.*\$1`), map[string]string{"$1": "message"}},
	{regexp.MustCompile(`(^|\s)cat\b.*\$1`), map[string]string{"$1": "file"}},
	{regexp.MustCompile(`(^|\s)grep\b.*\$1.*\$2`), map[string]string{"$1": "pattern", "$2": "file"}},
}

// AutoDescriptions guesses parameter names from well-known command
// patterns.
func AutoDescriptions(command string) map[string]string {
	out := map[string]string{}
	used := Extract(command)
	for _, hint := range commandHints {
		if !hint.re.MatchString(command) {
			continue
		}
		for _, p := range used {
			if d, ok := hint.descs[p]; ok {
				out[p] = d
			}
		}
	}
	return out
}
