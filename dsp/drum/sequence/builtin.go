package sequence

import (
	"fmt"
	"sort"
)

var builtins = map[string]string{
	"four-on-floor": `
kick       x...x...x...x...
clap       ....x.......x...
hat-closed ..x...x...x...x.
hat-open   ......o.......o.
`,
	"backbeat": `
kick       x.....x...x.....
snare      ....x.......x...
hat-closed x.o.x.o.x.o.x.o.
perc1      ...............o
`,
	"breakbeat": `
kick       x.........x.....
snare      ....x..o.o..x..o
hat-closed x.x.x.x.x.x.x.x.
tom        ..............o.
perc2      ......o.........
`,
}

// Builtin returns the named built-in pattern.
func Builtin(name string) (*Pattern, error) {
	src, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("sequence: unknown built-in pattern %q", name)
	}
	return ParsePatternString(src)
}

// BuiltinNames returns the built-in pattern names in sorted order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
