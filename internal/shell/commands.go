package shell

import (
	"fmt"
)

// Command is an entry of the dispatch table. Commands without a Summary
// are not listed by help.
type Command struct {
	Name    string
	Usage   string
	Summary string
	Handler Handler
}

// destroyCommand is matched against the whole input line
const destroyCommand = "sudo rm -rf /"

func builtins() []Command {
	return []Command{
		{Name: "help", Usage: "help", Summary: "Show this help message", Handler: cmdHelp},
		{Name: "clear", Usage: "clear", Summary: "Clear the terminal", Handler: cmdClear},
		{Name: "whoami", Usage: "whoami", Summary: "Display current user info", Handler: cmdWhoami},
		{Name: "neofetch", Usage: "neofetch", Summary: "Display system information", Handler: cmdNeofetch},
		{Name: "ls", Usage: "ls [path]", Summary: "List directory contents", Handler: cmdLs},
		{Name: "cd", Usage: "cd [dir]", Summary: "Change directory", Handler: cmdCd},
		{Name: "pwd", Usage: "pwd", Summary: "Print working directory", Handler: cmdPwd},
		{Name: "cat", Usage: "cat [file]", Summary: "Display file contents", Handler: cmdCat},
		{Name: "mkdir", Usage: "mkdir [-p] [dir]", Summary: "Create a directory", Handler: cmdMkdir},
		{Name: "touch", Usage: "touch [file]", Summary: "Create an empty file", Handler: cmdTouch},
		{Name: "rm", Usage: "rm [-rf] [path]", Summary: "Remove a file or directory", Handler: cmdRm},
		{Name: "tree", Usage: "tree [path]", Summary: "Show a directory tree", Handler: cmdTree},
		{Name: "find", Usage: "find [path] [-name glob]", Summary: "Search for files", Handler: cmdFind},
		{Name: "file", Usage: "file [path]", Summary: "Determine file type", Handler: cmdFile},
		{Name: "about", Usage: "about", Summary: "About me", Handler: cmdAbout},
		{Name: "skills", Usage: "skills", Summary: "My technical skills", Handler: cmdSkills},
		{Name: "projects", Usage: "projects", Summary: "View my projects", Handler: cmdProjects},
		{Name: "contact", Usage: "contact", Summary: "Get contact information", Handler: cmdContact},
		{Name: "github", Usage: "github", Summary: "Open GitHub profile", Handler: cmdGithub},
		{Name: "history", Usage: "history", Summary: "Show command history", Handler: cmdHistory},
		{Name: "echo", Usage: "echo [text]", Summary: "Print text", Handler: cmdEcho},
		{Name: "date", Usage: "date", Summary: "Show the current date", Handler: cmdDate},
		{Name: "uname", Usage: "uname [-a]", Summary: "Print system name", Handler: cmdUname},
		{Name: "uptime", Usage: "uptime", Summary: "Show session uptime", Handler: cmdUptime},
		{Name: "ping", Usage: "ping [host]", Summary: "Ping a host", Handler: cmdPing},
		{Name: "fortune", Usage: "fortune", Summary: "Print a random quote", Handler: cmdFortune},
		{Name: "joke", Usage: "joke", Summary: "Tell a programming joke", Handler: cmdJoke},
		{Name: "cowsay", Usage: "cowsay [text]", Summary: "A talking cow", Handler: cmdCowsay},
		{Name: "sudo", Usage: "sudo [command]", Summary: "Run a command as root", Handler: cmdSudo},
		{Name: destroyCommand, Usage: destroyCommand, Summary: "DON'T TRY THIS! (just kidding, try it)", Handler: cmdDestroy},
		{Name: "exit", Usage: "exit", Summary: "Close terminal", Handler: cmdExit},
	}
}

func cmdHelp(s *Session, args []string) ([]string, error) {
	width := 0
	for _, name := range s.order {
		if cmd := s.commands[name]; cmd.Summary != "" && len(cmd.Usage) > width {
			width = len(cmd.Usage)
		}
	}

	out := []string{"Available commands:", ""}
	for _, name := range s.order {
		cmd := s.commands[name]
		if cmd.Summary == "" {
			continue
		}
		out = append(out, fmt.Sprintf("  %-*s - %s", width+1, cmd.Usage, cmd.Summary))
	}
	return append(out, ""), nil
}

func cmdClear(s *Session, args []string) ([]string, error) {
	s.log.Clear()
	s.cleared = true
	return nil, nil
}

func cmdExit(s *Session, args []string) ([]string, error) {
	s.exited = true
	return []string{"[PROCESS TERMINATED]"}, nil
}
