package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/evanjt06/ringlru/cache"
	"github.com/natefinch/atomic"
	"github.com/peterh/liner"
)

var commands = []string{
	"set", "get", "peek", "has", "keys", "oldest", "len", "stats", "dump", "help", "quit",
}

// shell is the interactive command loop.
type shell struct {
	cache       *cache.OpenCache[string, string]
	out         io.Writer
	historyPath string
	liner       *liner.State
}

func newShell(c *cache.OpenCache[string, string], out io.Writer, historyPath string) *shell {
	return &shell{cache: c, out: out, historyPath: historyPath}
}

// Run reads commands until quit, Ctrl-C or EOF.
func (s *shell) Run() error {
	s.liner = liner.NewLiner()
	defer s.liner.Close()

	s.liner.SetCtrlCAborts(true)
	s.liner.SetCompleter(complete)
	s.loadHistory()

	fmt.Fprintf(s.out, "ringlru - LRU cache shell (capacity=%d)\n", s.cache.Cap())
	fmt.Fprintln(s.out, "Type 'help' for available commands.")

	for {
		line, err := s.liner.Prompt("ringlru> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(s.out, "\nBye!")
				break
			}
			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		s.liner.AppendHistory(line)

		if !s.exec(line) {
			fmt.Fprintln(s.out, "Bye!")
			break
		}
	}

	return s.saveHistory()
}

// exec runs one command line. It returns false when the shell should exit.
func (s *shell) exec(line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return true
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "exit", "quit", "q":
		return false

	case "help", "?":
		s.printHelp()

	case "set", "put":
		if len(args) < 2 {
			fmt.Fprintln(s.out, "usage: set <key> <value>")
			return true
		}
		value := strings.Join(args[1:], " ")
		if prev, ok := s.cache.Set(args[0], value); ok {
			fmt.Fprintf(s.out, "OK (was %s)\n", strconv.Quote(prev))
		} else {
			fmt.Fprintln(s.out, "OK")
		}

	case "get", "peek":
		if len(args) != 1 {
			fmt.Fprintf(s.out, "usage: %s <key>\n", cmd)
			return true
		}
		get := s.cache.Get
		if cmd == "peek" {
			get = s.cache.Peek
		}
		if v, ok := get(args[0]); ok {
			fmt.Fprintln(s.out, strconv.Quote(v))
		} else {
			fmt.Fprintln(s.out, "(nil)")
		}

	case "has":
		if len(args) != 1 {
			fmt.Fprintln(s.out, "usage: has <key>")
			return true
		}
		fmt.Fprintln(s.out, s.cache.Contains(args[0]))

	case "keys", "ls":
		keys := s.cache.Keys()
		if len(keys) == 0 {
			fmt.Fprintln(s.out, "(empty)")
			return true
		}
		for i, k := range keys {
			fmt.Fprintf(s.out, "%d) %s\n", i+1, k)
		}

	case "oldest":
		k, v, ok := s.cache.Oldest()
		if !ok {
			fmt.Fprintln(s.out, "(empty)")
			return true
		}
		fmt.Fprintf(s.out, "%s = %s\n", k, strconv.Quote(v))

	case "len":
		fmt.Fprintf(s.out, "%d/%d\n", s.cache.Len(), s.cache.Cap())

	case "stats":
		st := s.cache.Stats()
		fmt.Fprintf(s.out, "items:     %d/%d\n", st.Items, st.Capacity)
		fmt.Fprintf(s.out, "hits:      %d\n", st.Hits)
		fmt.Fprintf(s.out, "misses:    %d\n", st.Misses)
		fmt.Fprintf(s.out, "inserts:   %d\n", st.Inserts)
		fmt.Fprintf(s.out, "updates:   %d\n", st.Updates)
		fmt.Fprintf(s.out, "evictions: %d\n", st.Evictions)
		fmt.Fprintf(s.out, "rejected:  %d\n", st.Rejected)

	case "dump":
		s.cache.Log()
		fmt.Fprintln(s.out, "entries written to log")

	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}

	return true
}

func (s *shell) printHelp() {
	fmt.Fprint(s.out, `Commands:
  set <key> <value>   Store a value, evicting the LRU entry when full
  get <key>           Read a value and mark it most recently used
  peek <key>          Read a value without changing recency
  has <key>           Report whether a key is cached
  keys                List keys, most recently used first
  oldest              Show the next eviction candidate
  len                 Show entry count and capacity
  stats               Show hit/miss/eviction counters
  dump                Write all entries to the log
  help                Show this help
  quit                Exit
`)
}

func complete(line string) []string {
	var out []string
	lower := strings.ToLower(line)
	for _, c := range commands {
		if strings.HasPrefix(c, lower) {
			out = append(out, c)
		}
	}
	return out
}

func (s *shell) loadHistory() {
	if s.historyPath == "" {
		return
	}
	data, err := os.ReadFile(s.historyPath)
	if err != nil {
		return
	}
	_, _ = s.liner.ReadHistory(bytes.NewReader(data))
}

// saveHistory persists command history without leaving a torn file behind.
func (s *shell) saveHistory() error {
	if s.historyPath == "" {
		return nil
	}

	var buf bytes.Buffer
	if _, err := s.liner.WriteHistory(&buf); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	if err := atomic.WriteFile(s.historyPath, &buf); err != nil {
		return fmt.Errorf("saving history: %w", err)
	}
	return nil
}
