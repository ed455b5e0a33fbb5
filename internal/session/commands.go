package session

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mamaeo/pandora-mqtt/internal/codec"
)

// Result is the outcome of one shell command.
type Result struct {
	// Output is printed to standard output when not empty.
	Output string
	// Err is printed to standard error. The session continues.
	Err error
	// Exit ends the shell.
	Exit bool
}

// command is one entry in the shell's command table.
type command struct {
	name    string
	aliases []string
	params  []Param
	summary string
	help    string
	run     func(s *Session, args Args) Result
}

// Shared parameter descriptors.
var (
	paramIndex = Param{Name: "index", Kind: KindInt, Default: "-1"}
	paramQoS   = Param{Name: "qos", Kind: KindQoS, Default: "0"}
)

var commands = []*command{
	{
		name: "subscribe",
		params: []Param{
			{Name: "topic", Kind: KindString, Default: "#"},
			{Name: "prefix", Kind: KindBool, Default: "true"},
		},
		summary: "subscribe to a topic",
		help: "subscribe [topic=#] [prefix=true]\n" +
			"Subscribe to a new topic. When prefix is true the topic is placed\n" +
			"under the session prefix (%s). A topic starting with $/ is always\n" +
			"placed under the prefix.",
		run: runSubscribe,
	},
	{
		name:    "unsubscribe",
		params:  []Param{paramIndex},
		summary: "unsubscribe from a topic by index",
		help: "unsubscribe [index=-1]\n" +
			"Unsubscribe from a topic. Use list to see topic indices; -1 is the\n" +
			"most recent subscription.",
		run: runUnsubscribe,
	},
	{
		name:    "list",
		summary: "print subscribed topics with their indices",
		help:    "list\nPrint the topics preceded by their indices.",
		run:     runList,
	},
	{
		name: "drain",
		params: []Param{
			{Name: "on", Kind: KindBool, Default: "true"},
			{Name: "limit", Kind: KindUint32, Default: "10"},
			paramIndex,
			paramQoS,
		},
		summary: "send a DRAIN command",
		help: "drain [on=true] [limit=10] [index=-1] [qos=0]\n" +
			"Switch the drain on or off for limit seconds.",
		run: runDrain,
	},
	{
		name: "light",
		params: []Param{
			{Name: "color", Kind: KindString, Default: "white"},
			{Name: "limit", Kind: KindUint32, Default: "60"},
			paramIndex,
			paramQoS,
		},
		summary: "send a LIGHT command",
		help: "light [color=white] [limit=60] [index=-1] [qos=0]\n" +
			"Set the light colour for limit seconds. Colours: " +
			strings.Join(codec.ColorNames(), ", ") + ".",
		run: runLight,
	},
	{
		name: "auto",
		params: []Param{
			{Name: "on", Kind: KindBool, Default: "true"},
			{Name: "dryness_max", Kind: KindUint16, Default: "0"},
			{Name: "drain_range", Kind: KindString, Default: "00:00-00:00"},
			{Name: "brightness_min", Kind: KindUint16, Default: "0"},
			{Name: "light_range", Kind: KindString, Default: "00:00-00:00"},
			paramIndex,
			paramQoS,
		},
		summary: "send an AUTO command",
		help: "auto [on=true] [dryness_max=0] [drain_range=00:00-00:00] [brightness_min=0]\n" +
			"     [light_range=00:00-00:00] [index=-1] [qos=0]\n" +
			"Configure automatic mode. Ranges are HH:MM-HH:MM.",
		run: runAuto,
	},
	{
		name: "force_update",
		params: []Param{
			{Name: "on", Kind: KindBool, Default: "true"},
			paramIndex,
			paramQoS,
		},
		summary: "send a FORCE_UPDATE command",
		help: "force_update [on=true] [index=-1] [qos=0]\n" +
			"Ask the controller to publish an UPDATE now.",
		run: runForceUpdate,
	},
	{
		name:    "exit",
		aliases: []string{"quit"},
		summary: "leave the shell",
		help:    "exit\nDisconnect and leave the shell. Ctrl-D does the same.",
		run:     func(*Session, Args) Result { return Result{Exit: true} },
	},
}

// lookupCommand finds a command by name or alias.
func lookupCommand(name string) (*command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
		for _, a := range c.aliases {
			if a == name {
				return c, true
			}
		}
	}
	return nil, false
}

// Execute runs one shell line.
//
// The first word selects the command and the rest are its positional
// arguments. "help" and "?" list commands or describe one.
func (s *Session) Execute(line string) Result {
	line = strings.TrimSpace(line)
	if line == "" {
		return Result{}
	}

	if strings.HasPrefix(line, "?") {
		line = "help " + line[1:]
	}

	name, rest, _ := strings.Cut(line, " ")
	if name == "help" {
		return s.help(strings.TrimSpace(rest))
	}

	cmd, ok := lookupCommand(name)
	if !ok {
		return Result{Err: fmt.Errorf("%w: %s (type help or ? to list commands)", ErrUnknownCommand, name)}
	}

	args, err := ParseArgs(rest, cmd.params)
	if err != nil {
		return Result{Err: err}
	}

	return cmd.run(s, args)
}

func (s *Session) help(topic string) Result {
	if topic != "" {
		cmd, ok := lookupCommand(topic)
		if !ok {
			return Result{Err: fmt.Errorf("%w: %s", ErrUnknownCommand, topic)}
		}
		text := cmd.help
		if strings.Contains(text, "%s") {
			text = fmt.Sprintf(text, s.prefix)
		}
		return Result{Output: text}
	}

	names := make([]string, 0, len(commands))
	summaries := make(map[string]string, len(commands))
	for _, c := range commands {
		names = append(names, c.name)
		summaries[c.name] = c.summary
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("Commands (type help <command> for details):\n")
	for _, n := range names {
		fmt.Fprintf(&b, "  %-13s %s\n", n, summaries[n])
	}
	return Result{Output: strings.TrimRight(b.String(), "\n")}
}

func runSubscribe(s *Session, args Args) Result {
	if _, err := s.Subscribe(args.String("topic"), args.Bool("prefix")); err != nil {
		return Result{Err: err}
	}
	return Result{}
}

func runUnsubscribe(s *Session, args Args) Result {
	if _, err := s.Unsubscribe(args.Int("index")); err != nil {
		return Result{Err: err}
	}
	return Result{}
}

func runList(s *Session, _ Args) Result {
	var b strings.Builder
	for i, t := range s.Topics() {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "[%d] %s", i, t)
	}
	return Result{Output: b.String()}
}

func runDrain(s *Session, args Args) Result {
	rec := codec.Drain{
		On:     args.Bool("on"),
		Limit:  args.Uint32("limit"),
		Origin: s.now(),
	}
	return s.publishResult(args, rec)
}

func runLight(s *Session, args Args) Result {
	color, err := codec.ParseColor(args.String("color"))
	if err != nil {
		return Result{Err: err}
	}

	rec := codec.Light{
		Color:  color,
		Limit:  args.Uint32("limit"),
		Origin: s.now(),
	}
	return s.publishResult(args, rec)
}

func runAuto(s *Session, args Args) Result {
	drain, err := codec.ParseTimeRange(args.String("drain_range"))
	if err != nil {
		return Result{Err: fmt.Errorf("drain_range: %w", err)}
	}
	light, err := codec.ParseTimeRange(args.String("light_range"))
	if err != nil {
		return Result{Err: fmt.Errorf("light_range: %w", err)}
	}

	rec := codec.Auto{
		On:            args.Bool("on"),
		DrynessMax:    args.Uint16("dryness_max"),
		DrainWindow:   drain,
		BrightnessMin: args.Uint16("brightness_min"),
		LightWindow:   light,
		Origin:        s.now(),
	}
	return s.publishResult(args, rec)
}

func runForceUpdate(s *Session, args Args) Result {
	rec := codec.ForceUpdate{
		On:     args.Bool("on"),
		Origin: s.now(),
	}
	return s.publishResult(args, rec)
}

func (s *Session) publishResult(args Args, rec codec.Record) Result {
	if _, err := s.Publish(args.Int("index"), args.QoS("qos"), rec); err != nil {
		return Result{Err: err}
	}
	return Result{}
}
