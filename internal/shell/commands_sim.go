package shell

import (
	"fmt"
	"hash/fnv"
	"net"
	"strconv"
	"strings"
)

const (
	defaultPingCount = 4
	maxPingCount     = 10
	progressWidth    = 30
)

var fortunes = []string{
	"The best way to predict the future is to invent it. - Alan Kay",
	"Talk is cheap. Show me the code. - Linus Torvalds",
	"Simplicity is prerequisite for reliability. - Edsger W. Dijkstra",
	"First, solve the problem. Then, write the code. - John Johnson",
	"Programs must be written for people to read. - Harold Abelson",
	"Any fool can write code that a computer can understand. - Martin Fowler",
	"Make it work, make it right, make it fast. - Kent Beck",
	"The only way to go fast is to go well. - Robert C. Martin",
}

var jokes = []string{
	"Why do programmers prefer dark mode? Because light attracts bugs.",
	"There are 10 kinds of people: those who understand binary and those who don't.",
	"A SQL query walks into a bar, walks up to two tables and asks: can I join you?",
	"Why did the developer go broke? Because he used up all his cache.",
	"I would tell you a UDP joke, but you might not get it.",
	"It works on my machine. Then we'll ship your machine.",
	"How many programmers does it take to change a light bulb? None, that's a hardware problem.",
}

func cmdPing(s *Session, args []string) ([]string, error) {
	count := defaultPingCount
	var host string
	for i := 0; i < len(args); i++ {
		if args[i] == "-c" {
			if i+1 >= len(args) {
				return nil, usage("ping [-c count] <host>")
			}
			n, err := strconv.Atoi(args[i+1])
			if err != nil || n < 1 {
				return nil, fmt.Errorf("ping: invalid count of packets to transmit: '%s'", args[i+1])
			}
			count = min(n, maxPingCount)
			i++
			continue
		}
		host = args[i]
	}
	if host == "" {
		return nil, usage("ping [-c count] <host>")
	}

	addr := fakeAddress(host)
	times := make([]float64, count)
	for i := range times {
		times[i] = 10 + s.opts.Rand.Float64()*40
	}

	steps := []func(){
		func() { s.emit(fmt.Sprintf("PING %s (%s): 56 data bytes", host, addr)) },
	}
	for i, t := range times {
		seq, rtt := i, t
		steps = append(steps, func() {
			s.emit(fmt.Sprintf("64 bytes from %s: icmp_seq=%d ttl=64 time=%.1f ms", addr, seq, rtt))
		})
	}
	steps = append(steps, func() {
		lo, hi, sum := times[0], times[0], 0.0
		for _, t := range times {
			lo, hi, sum = min(lo, t), max(hi, t), sum+t
		}
		s.emit(
			"",
			fmt.Sprintf("--- %s ping statistics ---", host),
			fmt.Sprintf("%d packets transmitted, %d packets received, 0.0%% packet loss", count, count),
			fmt.Sprintf("round-trip min/avg/max = %.3f/%.3f/%.3f ms", lo, sum/float64(count), hi),
		)
	})

	s.scheduler.Sequence(s.opts.StepDelay, steps...)
	return nil, nil
}

// fakeAddress gives every host a stable private address
func fakeAddress(host string) string {
	if ip := net.ParseIP(host); ip != nil {
		return ip.String()
	}
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(host)))
	sum := h.Sum32()
	return fmt.Sprintf("10.%d.%d.%d", byte(sum>>16), byte(sum>>8), byte(sum)|1)
}

func cmdSudo(s *Session, args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, usage("sudo <command>")
	}
	banner := fmt.Sprintf("[sudo] password for %s:", s.env.User)

	if cmd, ok := s.commands["sudo "+strings.Join(args, " ")]; ok {
		out, err := s.invoke(cmd, nil)
		return append([]string{banner}, out...), err
	}

	name := strings.ToLower(args[0])
	cmd, ok := s.lookup(name)
	if !ok {
		return []string{banner}, fmt.Errorf("sudo: %s: command not found", name)
	}
	out, err := s.invoke(cmd, args[1:])
	return append([]string{banner}, out...), err
}

func cmdDestroy(s *Session, args []string) ([]string, error) {
	var steps []func()
	for pct := 20; pct <= 100; pct += 20 {
		line := progressBar(pct)
		steps = append(steps, func() { s.emit(line) })
	}
	steps = append(steps,
		func() {
			s.emit("", "SYSTEM DESTROYED.", "Rebooting...", "", "Just kidding. Refreshing session...", "")
		},
		s.reboot,
	)
	s.scheduler.Sequence(s.opts.StepDelay, steps...)

	return []string{
		"",
		"[SYSTEM WARNING] CRITICAL OPERATION DETECTED",
		"",
		"Proceeding with file system deletion...",
	}, nil
}

func progressBar(pct int) string {
	filled := progressWidth * pct / 100
	return fmt.Sprintf("[%s%s] %d%%", strings.Repeat("#", filled), strings.Repeat(".", progressWidth-filled), pct)
}

func cmdFortune(s *Session, args []string) ([]string, error) {
	return []string{fortunes[s.opts.Rand.Intn(len(fortunes))]}, nil
}

func cmdJoke(s *Session, args []string) ([]string, error) {
	return []string{jokes[s.opts.Rand.Intn(len(jokes))]}, nil
}

func cmdCowsay(s *Session, args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, usage("cowsay <message>")
	}
	msg := strings.Join(args, " ")
	border := strings.Repeat("-", len([]rune(msg))+2)
	return []string{
		" " + strings.Repeat("_", len([]rune(msg))+2),
		"< " + msg + " >",
		" " + border,
		`        \   ^__^`,
		`         \  (oo)\_______`,
		`            (__)\       )\/\`,
		`                ||----w |`,
		`                ||     ||`,
	}, nil
}
