package run

import (
	"bufio"
	"errors"
	"fmt"
	"github.com/ValentinKolb/rangevec/lib/rangevec"
	"github.com/ValentinKolb/rangevec/lib/registry"
	"github.com/rcrowley/go-metrics"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"
)

// maxSpan limits the spans of add-range, iter and rev
const maxSpan = 1 << 16

// Interpreter executes rvec scripts against a registry of int64 RangeVecs.
//
// A script consists of one command per line. Blank lines and everything after
// a '#' are ignored. Commands work on the currently selected RangeVec (see use).
type Interpreter struct {
	reg     *registry.Registry[int64]
	current string
	out     io.Writer
	stats   metrics.Registry // nil if statistics are disabled
}

// NewInterpreter creates an interpreter that starts with store selected and
// writes command output to out. If stats is true, a counter and a timer are
// recorded for every command.
func NewInterpreter(reg *registry.Registry[int64], store string, out io.Writer, stats bool) *Interpreter {
	in := &Interpreter{
		reg:     reg,
		current: store,
		out:     out,
	}
	if stats {
		in.stats = metrics.NewRegistry()
	}
	return in
}

// Current returns the name of the selected RangeVec
func (in *Interpreter) Current() string {
	return in.current
}

// Run executes all lines of r. It stops at the first failing command and
// reports its line number.
func (in *Interpreter) Run(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := in.Exec(scanner.Text()); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}
	return nil
}

// Exec executes a single line
func (in *Interpreter) Exec(line string) error {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	name, args := fields[0], fields[1:]
	c, ok := commands[name]
	if !ok {
		return fmt.Errorf("unknown command %q", name)
	}
	if len(args) != len(c.args) {
		return fmt.Errorf("usage: %s", strings.Join(append([]string{name}, c.args...), " "))
	}

	start := time.Now()
	err := c.run(in, args)
	if in.stats != nil {
		metrics.GetOrRegisterCounter("cmd."+name, in.stats).Inc(1)
		metrics.GetOrRegisterTimer("cmd."+name+".time", in.stats).UpdateSince(start)
		if err != nil {
			metrics.GetOrRegisterCounter("errors", in.stats).Inc(1)
		}
	}
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// WriteStats writes the recorded counters and timers sorted by name.
// Does nothing if statistics are disabled.
func (in *Interpreter) WriteStats(w io.Writer) {
	if in.stats == nil {
		return
	}

	var names []string
	in.stats.Each(func(name string, _ interface{}) {
		names = append(names, name)
	})
	slices.Sort(names)

	fmt.Fprintln(w, "\nSTATISTICS")
	for _, name := range names {
		switch m := in.stats.Get(name).(type) {
		case metrics.Counter:
			fmt.Fprintf(w, "  %-22s: %d\n", name, m.Count())
		case metrics.Timer:
			s := m.Snapshot()
			fmt.Fprintf(w, "  %-22s: mean %s, p99 %s, max %s\n", name,
				time.Duration(s.Mean()), time.Duration(s.Percentile(0.99)), time.Duration(s.Max()))
		}
	}
}

// --------------------------------------------------------------------------
// Commands
// --------------------------------------------------------------------------

type command struct {
	args []string
	run  func(in *Interpreter, args []string) error
}

var commands = map[string]command{
	"use":       {args: []string{"NAME"}, run: (*Interpreter).use},
	"set":       {args: []string{"INDEX", "VALUE"}, run: (*Interpreter).set},
	"get":       {args: []string{"INDEX"}, run: (*Interpreter).get},
	"add":       {args: []string{"INDEX", "DELTA"}, run: (*Interpreter).add},
	"add-range": {args: []string{"START", "END", "DELTA"}, run: (*Interpreter).addRange},
	"scale":     {args: []string{"FACTOR"}, run: (*Interpreter).scale},
	"reset":     {args: []string{"INDEX"}, run: (*Interpreter).reset},
	"truncate":  {args: []string{"START", "END"}, run: (*Interpreter).truncate},
	"clear":     {run: (*Interpreter).clear},
	"iter":      {args: []string{"START", "END"}, run: (*Interpreter).iter},
	"rev":       {args: []string{"START", "END"}, run: (*Interpreter).rev},
	"range":     {run: (*Interpreter).printRange},
	"print":     {run: (*Interpreter).print},
	"drop":      {args: []string{"NAME"}, run: (*Interpreter).drop},
	"stores":    {run: (*Interpreter).stores},
	"info":      {run: (*Interpreter).info},
}

// CommandNames returns the names of all script commands in lexical order
func CommandNames() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (in *Interpreter) update(fn func(rv *rangevec.RangeVec[int64])) {
	in.reg.Update(in.current, fn)
}

// view calls fn with the selected RangeVec, or with an empty one if it does not exist yet
func (in *Interpreter) view(fn func(rv *rangevec.RangeVec[int64])) {
	if !in.reg.View(in.current, fn) {
		fn(rangevec.New[int64]())
	}
}

func (in *Interpreter) use(args []string) error {
	in.current = args[0]
	return nil
}

func (in *Interpreter) set(args []string) error {
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	value, err := parseValue(args[1])
	if err != nil {
		return err
	}
	return catchPanic(func() {
		in.update(func(rv *rangevec.RangeVec[int64]) { rv.Set(index, value) })
	})
}

func (in *Interpreter) get(args []string) error {
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	in.view(func(rv *rangevec.RangeVec[int64]) {
		fmt.Fprintln(in.out, rv.Get(index))
	})
	return nil
}

func (in *Interpreter) add(args []string) error {
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	delta, err := parseValue(args[1])
	if err != nil {
		return err
	}
	return catchPanic(func() {
		in.update(func(rv *rangevec.RangeVec[int64]) {
			rv.Mutate(index, func(v *int64) { *v += delta })
		})
	})
}

func (in *Interpreter) addRange(args []string) error {
	span, err := parseSpan(args[0], args[1])
	if err != nil {
		return err
	}
	delta, err := parseValue(args[2])
	if err != nil {
		return err
	}
	if span.Len() > maxSpan {
		return fmt.Errorf("span %s is larger than %d", span, maxSpan)
	}
	return catchPanic(func() {
		in.update(func(rv *rangevec.RangeVec[int64]) {
			rv.MutateRange(span, func(_ uint64, v *int64) { *v += delta })
		})
	})
}

func (in *Interpreter) scale(args []string) error {
	factor, err := parseValue(args[0])
	if err != nil {
		return err
	}
	in.update(func(rv *rangevec.RangeVec[int64]) {
		rv.MutateNonDefault(func(_ uint64, v *int64) { *v *= factor })
	})
	return nil
}

func (in *Interpreter) reset(args []string) error {
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	in.update(func(rv *rangevec.RangeVec[int64]) { rv.Reset(index) })
	return nil
}

func (in *Interpreter) truncate(args []string) error {
	span, err := parseSpan(args[0], args[1])
	if err != nil {
		return err
	}
	in.update(func(rv *rangevec.RangeVec[int64]) { rv.Truncate(span) })
	return nil
}

func (in *Interpreter) clear(_ []string) error {
	in.update(func(rv *rangevec.RangeVec[int64]) { rv.Clear() })
	return nil
}

func (in *Interpreter) iter(args []string) error {
	span, err := parseSpan(args[0], args[1])
	if err != nil {
		return err
	}
	if span.Len() > maxSpan {
		return fmt.Errorf("span %s is larger than %d", span, maxSpan)
	}
	in.view(func(rv *rangevec.RangeVec[int64]) {
		in.printValues(rv.Values(span))
	})
	return nil
}

func (in *Interpreter) rev(args []string) error {
	span, err := parseSpan(args[0], args[1])
	if err != nil {
		return err
	}
	if span.Len() > maxSpan {
		return fmt.Errorf("span %s is larger than %d", span, maxSpan)
	}
	in.view(func(rv *rangevec.RangeVec[int64]) {
		in.printValues(func(yield func(int64) bool) {
			for _, v := range rv.Backward(span) {
				if !yield(v) {
					return
				}
			}
		})
	})
	return nil
}

func (in *Interpreter) printValues(values func(yield func(int64) bool)) {
	var parts []string
	for v := range values {
		parts = append(parts, strconv.FormatInt(v, 10))
	}
	fmt.Fprintf(in.out, "[%s]\n", strings.Join(parts, ", "))
}

func (in *Interpreter) printRange(_ []string) error {
	in.view(func(rv *rangevec.RangeVec[int64]) {
		if span, ok := rv.Range(); ok {
			fmt.Fprintln(in.out, span)
		} else {
			fmt.Fprintln(in.out, "<empty>")
		}
	})
	return nil
}

func (in *Interpreter) print(_ []string) error {
	in.view(func(rv *rangevec.RangeVec[int64]) {
		fmt.Fprintln(in.out, rv)
	})
	return nil
}

func (in *Interpreter) drop(args []string) error {
	if !in.reg.Delete(args[0]) {
		return fmt.Errorf("unknown store %q", args[0])
	}
	return nil
}

func (in *Interpreter) stores(_ []string) error {
	for _, name := range in.reg.Names() {
		in.reg.View(name, func(rv *rangevec.RangeVec[int64]) {
			if span, ok := rv.Range(); ok {
				fmt.Fprintf(in.out, "%s %s\n", name, span)
			} else {
				fmt.Fprintf(in.out, "%s <empty>\n", name)
			}
		})
	}
	return nil
}

func (in *Interpreter) info(_ []string) error {
	fmt.Fprint(in.out, in.reg.Info())
	return nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func parseIndex(s string) (uint64, error) {
	index, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q: %w", s, err)
	}
	return index, nil
}

func parseValue(s string) (int64, error) {
	value, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q: %w", s, err)
	}
	return value, nil
}

func parseSpan(start, end string) (rangevec.Span, error) {
	s, err := parseIndex(start)
	if err != nil {
		return rangevec.Span{}, err
	}
	e, err := parseIndex(end)
	if err != nil {
		return rangevec.Span{}, err
	}
	return rangevec.NewSpan(s, e), nil
}

var errUnstorable = errors.New("index cannot be stored")

// catchPanic turns the panics of writes that cannot be stored into errors
func catchPanic(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", errUnstorable, r)
		}
	}()
	fn()
	return nil
}
