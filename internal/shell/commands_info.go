package shell

import (
	"fmt"
	"strings"
	"time"
)

// dateLayout mimics the browser's Date.toString
const dateLayout = "Mon Jan 02 2006 15:04:05 GMT-0700 (MST)"

var neofetchLogo = []string{
	"                 ",
	"      ██╗██████╗ ",
	"      ██║██╔══██╗",
	"      ██║██████╔╝",
	"      ██║██╔═══╝ ",
	"      ██║██║     ",
	"      ╚═╝╚═╝     ",
	"                 ",
}

func cmdWhoami(s *Session, args []string) ([]string, error) {
	p := s.env.Profile
	return []string{
		p.Name,
		p.Title,
		"Location: " + p.Location,
		"Email: " + p.Email,
		"",
	}, nil
}

func cmdNeofetch(s *Session, args []string) ([]string, error) {
	p := s.env.Profile
	out := append([]string(nil), neofetchLogo...)
	return append(out,
		"  USER: "+p.Name,
		"  ROLE: "+p.Title,
		"  LOCATION: "+p.Location,
		"  OS: Portfolio OS v"+s.env.Version,
		"  SHELL: bash",
		"  TERMINAL: WebTerminal",
		fmt.Sprintf("  UPTIME: %ds", int(s.uptime().Seconds())),
		"",
	), nil
}

func cmdAbout(s *Session, args []string) ([]string, error) {
	p := s.env.Profile
	return []string{
		fmt.Sprintf("Hi! I'm %s", p.Name),
		"",
		p.Bio,
		"",
		`Type "cat about.txt" for more details`,
		"",
	}, nil
}

func cmdSkills(s *Session, args []string) ([]string, error) {
	skills := s.env.Profile.Skills
	return []string{
		"Technical Skills:",
		"",
		"  Frontend: " + strings.Join(skills.Frontend, ", "),
		"  Backend: " + strings.Join(skills.Backend, ", "),
		"  Other: " + strings.Join(skills.Other, ", "),
		"",
		`Type "ls ~/skills" and "cat [file]" for details`,
		"",
	}, nil
}

func cmdProjects(s *Session, args []string) ([]string, error) {
	out := []string{"Featured Projects:", ""}
	for i, p := range s.env.Profile.Projects {
		out = append(out, fmt.Sprintf("  %d. %s - %s", i+1, p.Name, p.Description))
	}
	return append(out, "", "Visit: "+s.env.Profile.GitHubURL(), ""), nil
}

func cmdContact(s *Session, args []string) ([]string, error) {
	p := s.env.Profile
	return []string{
		"Contact Me:",
		"",
		"  Email: " + p.Email,
		"  Phone: " + p.Phone,
		"  Location: " + p.Location,
		"  GitHub: " + p.GitHubURL(),
		"",
	}, nil
}

func cmdGithub(s *Session, args []string) ([]string, error) {
	return []string{"Opening GitHub profile...", s.env.Profile.GitHubURL()}, nil
}

func cmdHistory(s *Session, args []string) ([]string, error) {
	out := make([]string, 0, len(s.history))
	for i, line := range s.history {
		out = append(out, fmt.Sprintf("  %d  %s", i+1, line))
	}
	return out, nil
}

func cmdEcho(s *Session, args []string) ([]string, error) {
	return []string{strings.Join(args, " ")}, nil
}

func cmdDate(s *Session, args []string) ([]string, error) {
	return []string{s.opts.Now().Format(dateLayout)}, nil
}

func cmdUname(s *Session, args []string) ([]string, error) {
	if len(args) == 0 {
		return []string{"PortfolioOS"}, nil
	}
	if args[0] != "-a" {
		return nil, usage("uname [-a]")
	}
	return []string{fmt.Sprintf("PortfolioOS %s %s #1 SMP WebTerminal x86_64", s.env.Hostname, s.env.Version)}, nil
}

func cmdUptime(s *Session, args []string) ([]string, error) {
	return []string{fmt.Sprintf("up %s, 1 user", s.uptime().Truncate(time.Second))}, nil
}

func (s *Session) uptime() time.Duration {
	return s.opts.Now().Sub(s.started)
}
